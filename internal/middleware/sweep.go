package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// Trigger is satisfied by *sweeper.Sweeper.
type Trigger interface {
	Trigger(ctx context.Context) bool
}

// Sweep gives the expiry sweeper a chance to run before each request, so
// spot listings are fresh even between scheduled sweeps.
func Sweep(t Trigger) gin.HandlerFunc {
	return func(c *gin.Context) {
		t.Trigger(c.Request.Context())
		c.Next()
	}
}
