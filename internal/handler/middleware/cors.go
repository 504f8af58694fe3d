package middleware

import (
	"log/slog"
	"net/http"
	"slices"

	"slot-swapper/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// headers the API depends on regardless of what the environment lists
var (
	requiredAllowHeaders  = []string{"Authorization", "Content-Type", RequestIDHeader}
	requiredExposeHeaders = []string{RequestIDHeader, processTimeHeader, apiVersionHeader, "Retry-After"}
)

func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     withRequired(cfg.AllowMethods, http.MethodPut, http.MethodDelete),
		AllowHeaders:     withRequired(cfg.AllowHeaders, requiredAllowHeaders...),
		ExposeHeaders:    withRequired(cfg.ExposeHeaders, requiredExposeHeaders...),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("CORS middleware initialized",
		"allow_origins", corsCfg.AllowOrigins,
		"expose_headers", corsCfg.ExposeHeaders)
	return cors.New(corsCfg)
}

func withRequired(configured []string, required ...string) []string {
	out := slices.Clone(configured)
	for _, h := range required {
		if !slices.Contains(out, h) {
			out = append(out, h)
		}
	}
	return out
}
