package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a dependency is usable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RegisterHealth registers /health (liveness) and /ready, which returns 200
// only when every named dependency answers its ping.
func RegisterHealth(r gin.IRouter, startTime time.Time, deps map[string]Pinger) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		ready := true
		status := map[string]bool{}
		for name, dep := range deps {
			ok := dep.Ping(ctx) == nil
			status[name] = ok
			ready = ready && ok
		}

		code, state := http.StatusOK, "ready"
		if !ready {
			code, state = http.StatusServiceUnavailable, "not_ready"
		}
		c.JSON(code, gin.H{"status": state, "deps": status, "uptime": time.Since(startTime).String()})
	})
}
