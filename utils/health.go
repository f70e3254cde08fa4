package utils

import (
	"context"
	"net/http"
	"time"

	"bookify/database"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness of the process and its collaborators.
func HealthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	mongoStatus := "ok"
	if database.MongoClient == nil || database.MongoClient.Ping(ctx, nil) != nil {
		mongoStatus = "unreachable"
	}
	redisStatus := "ok"
	if SessionCacheClient == nil || SessionCacheClient.Ping(ctx).Err() != nil {
		redisStatus = "unreachable"
	}

	status := http.StatusOK
	if mongoStatus != "ok" || redisStatus != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"mongo": mongoStatus,
		"redis": redisStatus,
	})
}
