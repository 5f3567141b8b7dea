package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// registerHomeRoutes registers the public root and health check routes.
func registerHomeRoutes(r *gin.Engine) {
	r.GET("/", home)
	r.GET("/health", health)
}

func home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"name": "pair_ledger_app", "status": "running"})
}

func health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
