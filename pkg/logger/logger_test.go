package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestInitLogger(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "parking.log")

	cfg := &Config{
		Level:      "DEBUG",
		Filename:   filename,
		MaxSize:    1,
		MaxBackups: 1,
		MaxAge:     1,
		Compress:   false,
	}

	err := InitLogger(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, Log)
	defer func() { Log = zap.NewNop() }()

	Log.Info("Spot reserved", zap.Uint("spot_id", 7))
	Sync()

	// Verify file exists
	_, err = os.Stat(filename)
	assert.NoError(t, err)
}

func TestInitLoggerConsoleOnly(t *testing.T) {
	err := InitLogger(&Config{Level: "WARN"})
	assert.NoError(t, err)
	defer func() { Log = zap.NewNop() }()

	assert.False(t, Log.Core().Enabled(zap.InfoLevel))
	assert.True(t, Log.Core().Enabled(zap.ErrorLevel))
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(&Config{Level: "INVALID"})
	assert.Error(t, err)
}
