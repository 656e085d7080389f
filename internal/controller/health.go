package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"todoboard/internal/database"
)

// Health returns 200 if the process is alive. Used by load balancers.
func Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// Ready returns 200 if the database is reachable. Used by readiness probes.
func Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	db := database.DB(ctx)
	if db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database unavailable"})
		return
	}
	if err := db.PingContext(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database ping failed"})
		return
	}
	c.String(http.StatusOK, "OK")
}
