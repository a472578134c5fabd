package handlers

import (
	"errors"
	"net/http"

	"roast_monitor/internal/logger"
	"roast_monitor/internal/service"
	"roast_monitor/internal/synchronizer"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const statusOK = "ok"

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	metrics  prometheus.Gatherer
}

// NewHandler constructs a new HTTP handler with dependencies. A nil gatherer
// leaves /metrics unregistered.
func NewHandler(services *service.Service, log *logger.Logger, metrics prometheus.Gatherer) *Handler {
	return &Handler{services: services, log: log, metrics: metrics}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)
	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.metrics, promhttp.HandlerOpts{})))
	}

	h.registerAPIRoutes(router)

	// dashboard stream
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		h.registerDashboardRoutes(api)
		h.registerControlRoutes(api)
		api.GET("/logs", h.getLogs)
	}
}

func (h *Handler) registerDashboardRoutes(api *gin.RouterGroup) {
	api.GET("/dashboard", h.getDashboard)
	chart := api.Group("/chart")
	{
		chart.GET("", h.getChart)
		// Body example: {"title":"Ethiopia Guji","subtitle":"batch 12"}
		chart.PUT("/title", h.setChartTitle)
	}
}

func (h *Handler) registerControlRoutes(api *gin.RouterGroup) {
	api.POST("/actions/:action", h.postAction)
	// Body example: {"action":"true"}
	api.POST("/controls/:control", h.postControl)
	// Body example: {"value":5}
	api.POST("/sliders/:slider", h.postSlider)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// statusForActionError maps operator errors onto HTTP status codes.
func statusForActionError(err error) int {
	switch {
	case errors.Is(err, synchronizer.ErrUnknownAction), errors.Is(err, synchronizer.ErrUnknownControl):
		return http.StatusNotFound
	case errors.Is(err, synchronizer.ErrInvalidPending), errors.Is(err, synchronizer.ErrInvalidLevel):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrControlDisabled):
		return http.StatusConflict
	case errors.Is(err, synchronizer.ErrStopped):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
