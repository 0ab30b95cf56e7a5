package handlers

import (
	"html/template"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jadarat-dashboard/internal/middleware"
	"go.uber.org/zap"
)

// NewRouter wires middleware and routes. An empty allowOrigins allows any
// origin.
func NewRouter(h *DashboardHandler, tmpl *template.Template, allowOrigins []string, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(logger))

	config := cors.DefaultConfig()
	if len(allowOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowOrigins
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader}
	config.ExposeHeaders = []string{middleware.RequestIDHeader, "X-Cache"}
	r.Use(cors.New(config))

	r.SetHTMLTemplate(tmpl)
	r.GET("/", h.Page)

	api := r.Group("/api/v1")
	{
		api.GET("/health", HealthCheck)

		api.GET("/dashboard", h.Dashboard)
		api.GET("/postings", h.Postings)
		api.GET("/insights", h.Insights)
		api.GET("/charts/:kind", h.Chart)

		api.POST("/dataset/reload", h.Reload)
	}

	return r
}
