package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"cocktail-bar-api/config"
	"cocktail-bar-api/metrics"
	"cocktail-bar-api/middleware"
)

// NewEngine builds the gin engine with the shared middleware chain. m may be
// nil when metrics are disabled.
func NewEngine(cfg *config.AppConfig, log zerolog.Logger, m *metrics.Metrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.RedirectTrailingSlash = true

	engine.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Recovery(log),
		middleware.CORS(cfg.AllowCORSOrigins),
	)

	if m != nil {
		engine.Use(m.Instrument())
		engine.GET("/metrics", gin.WrapH(m.Handler()))
	}
	return engine
}
