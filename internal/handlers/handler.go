package handlers

import (
	_ "embed"
	"html/template"
	"time"

	"potarig/internal/logger"
	"potarig/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//go:embed templates/index.html
var indexTemplate string

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	now      func() time.Time
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log, now: time.Now}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestMiddleware)
	router.SetHTMLTemplate(template.Must(template.New(indexTemplateName).Funcs(templateFuncs).Parse(indexTemplate)))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", h.health)

	// Routes used by the browser page.
	router.GET("/", h.index)
	router.POST("/", h.index)
	router.GET("/flrig", h.legacyTune)
	router.GET("/logdata", h.legacyLogData)

	h.registerAPIRoutes(router)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		h.registerSpotRoutes(api)
		h.registerRigRoutes(api)
		h.registerContactRoutes(api)
		h.registerEventRoutes(api)
	}
}

func (h *Handler) registerSpotRoutes(api *gin.RouterGroup) {
	api.GET("/spots", h.getSpots)
	// Body example: {"band":"40m","mode":"cw","exclude_terminated":true}
	api.POST("/spots", h.postSpots)
	api.GET("/filters", h.getFilters)
	api.PUT("/filters", h.putFilters)
}

func (h *Handler) registerRigRoutes(api *gin.RouterGroup) {
	rig := api.Group("/rig")
	{
		rig.GET("", h.getRig)
		// Body example: {"mode":"SSB","freq":"7200"}
		rig.POST("/tune", h.tune)
	}
}

func (h *Handler) registerContactRoutes(api *gin.RouterGroup) {
	api.POST("/contacts", h.logContact)
	api.GET("/contacts", h.listContacts)
}

func (h *Handler) registerEventRoutes(api *gin.RouterGroup) {
	api.GET("/events", h.getEvents)
}
