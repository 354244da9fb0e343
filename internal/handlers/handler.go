package handlers

import (
	"net/http"

	"habit_tracker/internal/logger"
	"habit_tracker/internal/service"

	"github.com/gin-gonic/gin"

	_ "habit_tracker/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	limiter  *ipRateLimiter
	// trustedProxies may set X-Forwarded-For; nil means use the peer address.
	trustedProxies []string
}

// NewHandler constructs a new HTTP handler with dependencies. A nil log discards output.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{services: services, log: log}
}

// WithAuthRateLimit throttles /auth requests per client IP. rps <= 0 disables it.
func (h *Handler) WithAuthRateLimit(rps float64, burst int) *Handler {
	if rps > 0 {
		h.limiter = newIPRateLimiter(rps, burst)
	}
	return h
}

// WithTrustedProxies lists the proxy addresses or CIDRs whose forwarding
// headers are believed when resolving the client IP.
func (h *Handler) WithTrustedProxies(proxies []string) *Handler {
	h.trustedProxies = proxies
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	if err := router.SetTrustedProxies(h.trustedProxies); err != nil {
		h.log.Errorw("invalid trusted proxies; trusting none", "proxies", h.trustedProxies, "err", err)
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(gin.Recovery(), h.requestLogger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerUserRoutes(router)

	protected := router.Group("", h.principalMiddleware)
	{
		h.registerHabitRoutes(protected)
		h.registerSummaryRoutes(protected)
	}

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	if h.limiter != nil {
		auth.Use(h.rateLimit)
	}
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
	}
}

func (h *Handler) registerUserRoutes(r *gin.Engine) {
	users := r.Group("/users")
	{
		users.GET("", h.listUsers)
		users.GET("/:id", h.getUser)
		users.DELETE("/:id", h.deleteUser)
	}
}

func (h *Handler) registerHabitRoutes(api *gin.RouterGroup) {
	habits := api.Group("/habits")
	{
		habits.POST("", h.createHabit)
		habits.GET("", h.listHabits)
		habits.GET("/:id", h.getHabit)
		habits.DELETE("/:id", h.deleteHabit)
		habits.POST("/:id/log", h.logHabit)
		habits.GET("/:id/log", h.listHabitLogs)
	}
}

func (h *Handler) registerSummaryRoutes(api *gin.RouterGroup) {
	summary := api.Group("/summary")
	{
		summary.GET("/daily-summary", h.dailySummary)
		summary.GET("/daily-summary/image", h.dailySummaryImage)
		summary.GET("/ws", h.wsSummary)
	}
}

// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
