// Package http exposes the coordinator over gin.
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/greenroom/internal/config"
)

// RequestIDMiddleware tags every request with an id for log correlation.
// Honors an inbound X-Request-ID so ids survive proxies.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func SetupRouter(cfg *config.Config, h *Handlers) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())

	r.GET("/healthz", h.Health)

	api := r.Group("/api")
	api.GET("/token", h.Token)
	api.POST("/token", h.Token)
	api.POST("/participant/metadata", h.UpdateMetadata)

	log.Info().Str("module", "adapters.http").Msg("router setup")
	return r
}
