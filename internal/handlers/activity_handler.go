package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskflow/internal/models"
	"taskflow/internal/services"
)

type ActivityHandler struct {
	service services.ActivityService
	log     *zap.Logger
}

func NewActivityHandler(service services.ActivityService, log *zap.Logger) *ActivityHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ActivityHandler{service: service, log: log}
}

// @Summary      Recent activity
// @Description  Newest first, at most 1000 entries
// @Tags         activities
// @Produce      json
// @Success      200  {array}  models.Activity
// @Router       /api/activities [get]
func (h *ActivityHandler) List(c *gin.Context) {
	acts, err := h.service.ListRecent(c.Request.Context())
	if err != nil {
		respondError(c, h.log, "[activity][list]", err)
		return
	}
	c.JSON(http.StatusOK, acts)
}

// @Summary      Append activity
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        activity  body      models.ActivityInput  true  "Entry"
// @Success      201       {object}  models.Activity
// @Failure      400       {object}  ErrorResponse
// @Router       /api/activities [post]
func (h *ActivityHandler) Create(c *gin.Context) {
	var req models.ActivityInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "[activity][create]", err)
		return
	}
	a, err := h.service.Append(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, "[activity][create]", err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// @Summary      Clear activity log
// @Tags         activities
// @Produce      json
// @Success      200  {object}  MessageResponse
// @Router       /api/activities [delete]
func (h *ActivityHandler) Clear(c *gin.Context) {
	if _, err := h.service.Clear(c.Request.Context()); err != nil {
		respondError(c, h.log, "[activity][clear]", err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "All activities cleared"})
}
