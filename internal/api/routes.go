package api

import (
	"github.com/gin-gonic/gin"

	"github.com/ajharbinger/tennis-decider/internal/auth"
	"github.com/ajharbinger/tennis-decider/internal/logger"
	"github.com/ajharbinger/tennis-decider/internal/services"
	"github.com/ajharbinger/tennis-decider/pkg/config"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, cfg *config.Config, svc *services.Services, log logger.Logger) {
	classifyHandler := NewClassifyHandler(svc.Classification)
	uploadHandler := NewUploadHandler(svc.Classification, svc.Export, cfg.PreviewRows)

	// Public routes
	public := r.Group("/api/v1")
	{
		public.GET("/healthz", HealthCheck)
	}

	// Protected routes, open when no JWT secret is configured
	protected := r.Group("/api/v1")
	if cfg.AuthEnabled() {
		protected.Use(auth.JWTMiddleware(cfg.JWTSecret))
	} else {
		log.Warn("JWT_SECRET not set, API is unauthenticated")
	}
	{
		// Single scores
		protected.POST("/classify", classifyHandler.Classify)
		protected.POST("/classify/batch", classifyHandler.ClassifyBatch)
		protected.GET("/samples", classifyHandler.Samples)
		protected.GET("/stats", classifyHandler.Stats)

		// Tables
		protected.POST("/upload/csv", uploadHandler.UploadCSV)
		protected.POST("/upload/html", uploadHandler.UploadHTML)
		protected.POST("/export", uploadHandler.Export)
	}
}
