// Package api wires the gin router for the autocart service.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Zolikazer/forktimize-autocart/internal/handlers"
	"github.com/Zolikazer/forktimize-autocart/internal/logger"
	"github.com/Zolikazer/forktimize-autocart/internal/telemetry"
)

const corsMaxAgeHours = 12

// NewRouter builds the service router.
func NewRouter(
	cartHandler *handlers.CartHandler,
	recordHandler *handlers.RecordHandler,
	corsOrigins []string,
	log logger.Logger,
) *gin.Engine {
	router := gin.New()

	// CORS middleware - must be first
	router.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept-Encoding",
			"Authorization", "accept", "origin", "Cache-Control", "X-Requested-With",
		},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           corsMaxAgeHours * time.Hour,
	}))

	router.Use(ginLogger(log))
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(telemetry.Handler()))

	v1 := router.Group("/api/v1")

	cartGroup := v1.Group("/cart")
	cartGroup.POST("/auto", cartHandler.AutoCart)
	cartGroup.GET("/availability", cartHandler.Availability)
	cartGroup.GET("/records", recordHandler.List)
	cartGroup.GET("/records/:date", recordHandler.GetByDate)
	cartGroup.DELETE("/records/:date", recordHandler.Delete)

	v1.GET("/vendors", cartHandler.Vendors)

	return router
}

func ginLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("HTTP request",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status_code", c.Writer.Status()),
			logger.String("client_ip", c.ClientIP()),
			logger.Duration("duration", time.Since(start)),
		)
	}
}
