package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"events-web-app/internal/dto"
	"events-web-app/internal/service"
	"events-web-app/pkg/utils"
)

// UserHandler serves the admin user management endpoints
type UserHandler struct {
	userService *service.UserService
	log         *zap.Logger
}

func NewUserHandler(userService *service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		log:         log,
	}
}

func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.userService.GetAllUsers(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, dto.ToUserResponses(users))
}

func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, err := queryID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, dto.ToUserResponse(*user))
}

func (h *UserHandler) GetUserByEmail(c *gin.Context) {
	user, err := h.userService.GetUserByEmail(c.Request.Context(), strings.TrimSpace(c.Query("email")))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, dto.ToUserResponse(*user))
}

// UpdateUser changes the email, username and role of a user
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := req.ToUser()
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	id, err := h.userService.UpdateUser(c.Request.Context(), user)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, dto.NewIDResponse(id))
}

// DeleteUser removes a user together with their registrations
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := bodyID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	deleted, err := h.userService.DeleteUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, dto.NewIDResponse(deleted))
}
