package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/natal-chart/internal/infra/config"
	"github.com/yanqian/natal-chart/pkg/util"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
		bodyLimitMiddleware(cfg.HTTP.MaxBodyBytes),
	)
	router.NoMethod(handler.MethodNotAllowed)
	router.NoRoute(handler.NotFound)

	router.GET("/", handler.Alive)
	router.GET("/healthz", handler.Health)
	router.POST("/api/natal", handler.Natal)

	api := router.Group("/api/v1")
	if handler.authSvc.Enabled() {
		api.Use(authMiddleware(handler.authSvc))
	}
	{
		api.POST("/charts", handler.CreateChart)
		api.GET("/charts/:id", handler.GetChart)
	}

	return &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		MaxHeaderBytes:    1 << 20,
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", util.SinceMillis(start))
	}
}
