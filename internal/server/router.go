// Package server exposes the bills API over HTTP: login, the bills
// resource with its two-phase proof upload, user registration and the
// accounting export.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterConfig carries the router's dependencies.
type RouterConfig struct {
	Bills    *BillsHandler
	Auth     *AuthHandler
	Users    *UsersHandler
	Secret   string
	ProofDir string
	Logger   *zap.Logger
}

// NewRouter assembles the gin engine with middleware and routes.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(cfg.Logger))
	router.Use(corsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "billed",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	router.POST("/auth/login", cfg.Auth.Login)
	router.POST("/users", cfg.Users.Create)

	// Stored proof images are served as static content under the URL
	// prefix recorded on bills.
	if cfg.ProofDir != "" {
		router.Static("/public", cfg.ProofDir)
	}

	authed := router.Group("/", AuthMiddleware(cfg.Secret, cfg.Logger))
	{
		authed.GET("/bills", cfg.Bills.List)
		authed.POST("/bills", cfg.Bills.Create)
		authed.GET("/bills/export", cfg.Bills.Export)
		authed.GET("/bills/:id", cfg.Bills.Get)
		authed.PATCH("/bills/:id", cfg.Bills.Update)
		authed.DELETE("/bills/:id", cfg.Bills.Delete)
		authed.GET("/users/:id", cfg.Users.Get)
	}

	return router
}

// loggingMiddleware logs each request with latency and status.
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
		)
	}
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
