// internal/server/router.go
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "mergington-activities/internal/common/errors"
	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/common/observability"
)

// Options configures the router.
type Options struct {
	// StaticDir is served under /static.
	StaticDir string
	// Ready reports whether dependencies are reachable. Nil means always ready.
	Ready func(ctx context.Context) error
	// Metrics serves /metrics. Nil uses the default prometheus handler.
	Metrics http.Handler
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(opts Options, svc DirectoryService, obs *observability.Observability, log logger.Logger) *gin.Engine {
	h := NewHandler(svc, log)

	r := gin.New()
	r.Use(recovery(h.errors), requestMetrics(obs, h.logger))

	r.GET("/", h.Root)
	if opts.StaticDir != "" {
		static := staticFiles(opts.StaticDir)
		r.GET("/static/*filepath", static)
		r.HEAD("/static/*filepath", static)
	}

	r.GET("/activities", h.ListActivities)
	r.POST("/activities/:name/signup", h.Signup)
	r.DELETE("/activities/:name/unregister", h.Unregister)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if opts.Ready != nil {
			if err := opts.Ready(c.Request.Context()); err != nil {
				h.fail(c, apperrors.NewDatabaseConnectionFailedError(err))
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	metricsHandler := opts.Metrics
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.GET("/metrics", gin.WrapH(metricsHandler))

	return r
}
