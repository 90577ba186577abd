package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskflow/internal/models"
	"taskflow/internal/services"
)

type TaskHandler struct {
	service services.TaskService
	log     *zap.Logger
}

func NewTaskHandler(service services.TaskService, log *zap.Logger) *TaskHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &TaskHandler{service: service, log: log}
}

// FocusRequest is the body of POST /api/tasks/:id/focus.
type FocusRequest struct {
	Seconds int64 `json:"seconds"`
}

// ClearedResponse reports how many tasks a clear removed.
type ClearedResponse struct {
	Deleted int64 `json:"deleted"`
}

// @Summary      List tasks
// @Description  All tasks, newest first
// @Tags         tasks
// @Produce      json
// @Success      200  {array}   models.Task
// @Failure      500  {object}  ErrorResponse
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, "[task][list]", err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// @Summary      Create task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        task  body      models.TaskInput  true  "Task"
// @Success      201   {object}  models.Task
// @Failure      400   {object}  ErrorResponse
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req models.TaskInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "[task][create]", err)
		return
	}
	task, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, "[task][create]", err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// @Summary      Update task
// @Description  Sparse update; null clears dueDate or assignee
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id     path      string            true  "Task ID"
// @Param        patch  body      models.TaskPatch  true  "Fields to change"
// @Success      200    {object}  models.Task
// @Failure      400    {object}  ErrorResponse
// @Failure      404    {object}  ErrorResponse
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	var req models.TaskPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "[task][update]", err)
		return
	}
	task, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, h.log, "[task][update]", err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// @Summary      Delete task
// @Tags         tasks
// @Produce      json
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  MessageResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, "[task][delete]", err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{ID: id, Message: "Task removed"})
}

// @Summary      Toggle completion
// @Tags         tasks
// @Produce      json
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  models.Task
// @Failure      404  {object}  ErrorResponse
// @Router       /api/tasks/{id}/toggle [post]
func (h *TaskHandler) Toggle(c *gin.Context) {
	task, err := h.service.Toggle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, "[task][toggle]", err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// @Summary      Log focus time
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path      string        true  "Task ID"
// @Param        body  body      FocusRequest  true  "Elapsed seconds"
// @Success      200   {object}  models.Task
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/tasks/{id}/focus [post]
func (h *TaskHandler) LogFocus(c *gin.Context) {
	var req FocusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "[task][focus]", err)
		return
	}
	task, err := h.service.LogFocusTime(c.Request.Context(), c.Param("id"), req.Seconds)
	if err != nil {
		respondError(c, h.log, "[task][focus]", err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// @Summary      Clear completed tasks
// @Tags         tasks
// @Produce      json
// @Success      200  {object}  ClearedResponse
// @Router       /api/tasks/clear-completed [post]
func (h *TaskHandler) ClearCompleted(c *gin.Context) {
	n, err := h.service.ClearCompleted(c.Request.Context())
	if err != nil {
		respondError(c, h.log, "[task][clear-completed]", err)
		return
	}
	c.JSON(http.StatusOK, ClearedResponse{Deleted: n})
}
