package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"slot-swapper/internal/handler/api"
	"slot-swapper/internal/handler/middleware"
	"slot-swapper/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth *api.AuthHandler
	Slot *api.SlotHandler
	Swap *api.SwapHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware, logger *middleware.Logger, stats *middleware.RequestStats) {
	setupMiddleware(engine, cfg, logger, stats)
	setupRoutes(engine, cfg, h, authMiddleware, stats)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, stats *middleware.RequestStats) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(stats.Middleware(cfg.Server.APIVersion))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
	if cfg.RateLimit.Enabled {
		engine.Use(middleware.NewRateLimiter(cfg.RateLimit).Middleware())
	}
}

func setupRoutes(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware, stats *middleware.RequestStats) {
	engine.GET("/", banner(cfg.Server.APIVersion))
	engine.GET("/health", healthCheck)
	engine.GET("/api/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, stats.Snapshot())
	})

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	auth := engine.Group("/auth")
	{
		addRoutes(auth, []route{
			{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register},
			{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
			{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me, Mw: []gin.HandlerFunc{authMiddleware.RequireAuth()}},
		})
	}

	events := engine.Group("/events")
	events.Use(authMiddleware.RequireAuth())
	{
		addRoutes(events, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Slot.List},
			{Method: http.MethodPost, Path: "", Handler: h.Slot.Create},
			{Method: http.MethodGet, Path: "/stats", Handler: h.Slot.Stats},
			{Method: http.MethodPut, Path: "/:id", Handler: h.Slot.Update},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Slot.Delete},
		})
	}

	swap := engine.Group("/swap")
	swap.Use(authMiddleware.RequireAuth())
	{
		addRoutes(swap, []route{
			{Method: http.MethodGet, Path: "/swappable-slots", Handler: h.Swap.SwappableSlots},
			{Method: http.MethodPost, Path: "/swap-request", Handler: h.Swap.CreateRequest},
			{Method: http.MethodPost, Path: "/swap-request/:id/cancel", Handler: h.Swap.Cancel},
			{Method: http.MethodGet, Path: "/requests", Handler: h.Swap.ListRequests},
			{Method: http.MethodPost, Path: "/swap-response/:id", Handler: h.Swap.Respond},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func banner(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "slot-swapper",
			"version": version,
			"docs":    "/swagger/index.html",
		})
	}
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
