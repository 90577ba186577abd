package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskflow/internal/models"
	"taskflow/internal/services"
)

type UserHandler struct {
	service services.UserService
	log     *zap.Logger
}

func NewUserHandler(service services.UserService, log *zap.Logger) *UserHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserHandler{service: service, log: log}
}

// @Summary      List team members
// @Tags         users
// @Produce      json
// @Success      200  {array}   models.User
// @Router       /api/users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, "[user][list]", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// @Summary      Create team member
// @Description  Hashes the password and mails an invitation
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user  body      models.UserInput  true  "Member"
// @Success      201   {object}  models.User
// @Failure      400   {object}  ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req models.UserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "[user][create]", err)
		return
	}
	user, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, "[user][create]", err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// @Summary      Update team member
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id     path      string            true  "User ID"
// @Param        patch  body      models.UserPatch  true  "Fields to change"
// @Success      200    {object}  models.User
// @Failure      400    {object}  ErrorResponse
// @Failure      404    {object}  ErrorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	var req models.UserPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "[user][update]", err)
		return
	}
	user, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, h.log, "[user][update]", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary      Delete team member
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  MessageResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, "[user][delete]", err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{ID: id, Message: "User removed"})
}

// @Summary      Log in
// @Description  Checks a loginId and password; never reveals which one was wrong
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Credentials"
// @Success      200    {object}  models.User
// @Failure      401    {object}  ErrorResponse
// @Router       /api/users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "[user][login]", err)
		return
	}
	req.LoginID = strings.TrimSpace(req.LoginID)
	reqLog(c, h.log).Info("[user][login] attempt", zap.String("login_id", req.LoginID))

	user, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, "[user][login]", err)
		return
	}
	c.JSON(http.StatusOK, user)
}
