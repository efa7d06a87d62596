//go:build !embed
// +build !embed

package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// setupStaticFiles configures static file serving for development (no embedding)
func setupStaticFiles(router *gin.Engine, log *zap.Logger) {
	log.Info("using local filesystem for frontend assets (development mode)",
		zap.String("hint", "run 'cd web && npm run dev' to serve the frontend separately"))

	router.Static("/static", "./web/static")
	router.StaticFile("/", "./web/index.html")

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Frontend is running separately",
			"dev_url": "http://localhost:3000",
			"hint":    "Run 'cd web && npm run dev' to start the frontend",
		})
	})
}
