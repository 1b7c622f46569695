package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

// Health wires the status endpoints.
// - GET /        banner
// - GET /health  liveness plus record store connectivity
// - GET /ready   200 only when every dependency answers
type Health struct {
	Database Check
	// Deps are extra dependencies reported by /ready (redis, media).
	Deps    map[string]Check
	Started time.Time
	Timeout time.Duration
}

func RegisterHealth(r gin.IRouter, h Health) {
	if h.Timeout <= 0 {
		h.Timeout = 2 * time.Second
	}
	if h.Started.IsZero() {
		h.Started = time.Now()
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":   "Burger Boots API Server is running!",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	r.GET("/health", func(c *gin.Context) {
		db := "Disconnected"
		if h.run(c.Request.Context(), h.Database) == nil {
			db = "Connected"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"database":  db,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{"database": h.run(c.Request.Context(), h.Database) == nil}
		for name, check := range h.Deps {
			deps[name] = h.run(c.Request.Context(), check) == nil
		}
		for _, ok := range deps {
			ready = ready && ok
		}
		status, code := "ready", http.StatusOK
		if !ready {
			status, code = "not_ready", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "deps": deps, "uptime": time.Since(h.Started).Round(time.Second).String()})
	})
}

func (h Health) run(ctx context.Context, check Check) error {
	if check == nil {
		return errNoCheck
	}
	ctx, cancel := context.WithTimeout(ctx, h.Timeout)
	defer cancel()
	return check(ctx)
}

var errNoCheck = errors.New("no check configured")
