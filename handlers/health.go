package handlers

import (
	"net/http"

	"mindwell/utils"

	"github.com/gin-gonic/gin"
)

// Health reports the last dependency health snapshot. It answers 503 when any
// checked dependency was down.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	healthy := status.Mongo == nil || *status.Mongo
	for _, ok := range status.Redis {
		healthy = healthy && ok
	}
	code := http.StatusOK
	if !healthy {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": map[bool]string{true: "ok", false: "degraded"}[healthy], "checks": status})
}
