// Package sweeper frees spots whose reservations have run out. It runs on a
// cron schedule and can also be nudged by incoming requests.
package sweeper

import (
	"context"
	"fmt"
	"sync"
	"time"

	"parking-backend/internal/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// Func performs one sweep and reports how many spots it freed.
type Func func(ctx context.Context) (int64, error)

type Sweeper struct {
	fn       Func
	interval time.Duration
	clock    Clock
	log      *zap.Logger

	// running is held for the duration of a sweep; state guards lastRun.
	running sync.Mutex
	state   sync.Mutex
	lastRun time.Time
	hasRun  bool

	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
}

func New(fn Func, interval time.Duration, clock Clock, log *zap.Logger) *Sweeper {
	if clock == nil {
		clock = ClockFunc(func() time.Time { return time.Now().UTC() })
	}
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	cronLog := cronLogger{log.Sugar()}
	return &Sweeper{
		fn:       fn,
		interval: interval,
		clock:    clock,
		log:      log,
		cron:     cron.New(cron.WithLogger(cronLog), cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog))),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Trigger sweeps if at least one interval has passed since the last sweep.
// It never waits on a sweep already in progress. It reports whether this
// call swept.
func (s *Sweeper) Trigger(ctx context.Context) bool {
	if !s.due() {
		return false
	}
	return s.run(ctx, false)
}

func (s *Sweeper) due() bool {
	s.state.Lock()
	defer s.state.Unlock()
	return !s.hasRun || s.clock.Now().Sub(s.lastRun) >= s.interval
}

func (s *Sweeper) run(ctx context.Context, scheduled bool) bool {
	if !s.running.TryLock() {
		return false
	}
	defer s.running.Unlock()

	// Re-check under the run lock; another caller may have just finished.
	if !scheduled && !s.due() {
		return false
	}

	s.state.Lock()
	s.lastRun = s.clock.Now()
	s.hasRun = true
	s.state.Unlock()

	freed, err := s.fn(ctx)
	metrics.RecordSweep(freed, err)
	if err != nil {
		s.log.Error("Expired reservation sweep failed", zap.Error(err), zap.Bool("scheduled", scheduled))
		return true
	}
	s.log.Debug("Expired reservation sweep finished", zap.Int64("spots_freed", freed), zap.Bool("scheduled", scheduled))
	return true
}

// LastRun returns when the last sweep started and whether one has run.
func (s *Sweeper) LastRun() (time.Time, bool) {
	s.state.Lock()
	defer s.state.Unlock()
	return s.lastRun, s.hasRun
}

// Start sweeps once and then every interval until Stop.
func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.interval), func() {
		s.run(s.ctx, true)
	}); err != nil {
		return err
	}

	s.run(s.ctx, true)
	s.cron.Start()
	s.log.Info("Sweeper started", zap.Duration("interval", s.interval))
	return nil
}

// Stop halts the schedule and waits for a running sweep. It is safe to call
// more than once.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
	s.cancel()
}

type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
