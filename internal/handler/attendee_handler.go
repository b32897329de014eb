package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"events-web-app/internal/apperror"
	"events-web-app/internal/dto"
	"events-web-app/internal/middleware"
	"events-web-app/internal/service"
	"events-web-app/pkg/utils"
)

type AttendeeHandler struct {
	attendeeService *service.AttendeeService
	log             *zap.Logger
}

func NewAttendeeHandler(attendeeService *service.AttendeeService, log *zap.Logger) *AttendeeHandler {
	return &AttendeeHandler{
		attendeeService: attendeeService,
		log:             log,
	}
}

// GetAttendees lists every attendee
func (h *AttendeeHandler) GetAttendees(c *gin.Context) {
	attendees, err := h.attendeeService.GetAllAttendees(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, dto.ToAttendeeResponses(attendees))
}

func (h *AttendeeHandler) GetAttendeeByID(c *gin.Context) {
	id, err := queryID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	attendee, err := h.attendeeService.GetAttendeeByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, dto.ToAttendeeResponse(*attendee))
}

// GetAttendeesBySocialEvent lists the attendees of one event
func (h *AttendeeHandler) GetAttendeesBySocialEvent(c *gin.Context) {
	id, err := queryID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	attendees, err := h.attendeeService.GetAttendeesBySocialEvent(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, dto.ToAttendeeResponses(attendees))
}

// RegisterAttendee registers the caller for an event
func (h *AttendeeHandler) RegisterAttendee(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		respondError(c, h.log, apperror.ErrInvalidUser)
		return
	}

	var req dto.CreateAttendeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	attendee, err := req.ToAttendee(userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	id, err := h.attendeeService.RegisterAttendee(c.Request.Context(), attendee)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewIDResponse(id))
}

func (h *AttendeeHandler) UpdateAttendee(c *gin.Context) {
	var req dto.UpdateAttendeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	attendee, err := req.ToAttendee()
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	id, err := h.attendeeService.UpdateAttendee(c.Request.Context(), attendee, actorID(c), middleware.CurrentRoles(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, dto.NewIDResponse(id))
}

func (h *AttendeeHandler) DeleteAttendee(c *gin.Context) {
	id, err := bodyID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	deleted, err := h.attendeeService.DeleteAttendee(c.Request.Context(), id, actorID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, dto.NewIDResponse(deleted))
}
