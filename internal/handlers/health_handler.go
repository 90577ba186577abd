package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// @Summary  Health check
// @Tags     health
// @Produce  json
// @Success  200  {object}  HealthResponse
// @Router   /api/health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Message: "Server is running"})
}
