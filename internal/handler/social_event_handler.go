package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"events-web-app/internal/apperror"
	"events-web-app/internal/dto"
	"events-web-app/internal/models"
	"events-web-app/internal/service"
	"events-web-app/pkg/utils"
)

const (
	createImageField = "image"
	uploadImageField = "formFile"
)

type SocialEventHandler struct {
	socialEventService *service.SocialEventService
	maxUploadBytes     int64
	log                *zap.Logger
}

func NewSocialEventHandler(socialEventService *service.SocialEventService, maxUploadBytes int64, log *zap.Logger) *SocialEventHandler {
	return &SocialEventHandler{
		socialEventService: socialEventService,
		maxUploadBytes:     maxUploadBytes,
		log:                log,
	}
}

// GetSocialEvents returns one page of events
func (h *SocialEventHandler) GetSocialEvents(c *gin.Context) {
	pageIndex, indexErr := queryInt(c, "pageIndex", defaultPageIndex)
	pageSize, sizeErr := queryInt(c, "pageSize", defaultPageSize)
	if err := apperror.Merge(indexErr, sizeErr); err != nil {
		respondError(c, h.log, err)
		return
	}

	page, err := h.socialEventService.GetAllSocialEvents(c.Request.Context(), pageIndex, pageSize)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, dto.ToSocialEventPage(page))
}

// GetSocialEventByID returns a single event
func (h *SocialEventHandler) GetSocialEventByID(c *gin.Context) {
	id, err := queryID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	event, err := h.socialEventService.GetSocialEventByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, dto.ToSocialEventResponse(*event))
}

func (h *SocialEventHandler) GetSocialEventsByName(c *gin.Context) {
	events, err := h.socialEventService.GetSocialEventsByName(c.Request.Context(), c.Query("name"))
	h.respondEvents(c, events, err)
}

// GetSocialEventsByDate accepts a calendar day or an RFC3339 timestamp
func (h *SocialEventHandler) GetSocialEventsByDate(c *gin.Context) {
	date, err := dto.ParseDate("date", c.Query("date"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	events, err := h.socialEventService.GetSocialEventsByDate(c.Request.Context(), date)
	h.respondEvents(c, events, err)
}

func (h *SocialEventHandler) GetSocialEventsByCategory(c *gin.Context) {
	category := models.Category(c.Query("category"))
	events, err := h.socialEventService.GetSocialEventsByCategory(c.Request.Context(), category)
	h.respondEvents(c, events, err)
}

func (h *SocialEventHandler) GetSocialEventsByPlace(c *gin.Context) {
	events, err := h.socialEventService.GetSocialEventsByPlace(c.Request.Context(), c.Query("place"))
	h.respondEvents(c, events, err)
}

func (h *SocialEventHandler) respondEvents(c *gin.Context, events []models.SocialEvent, err error) {
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	utils.SuccessResponse(c, dto.ToSocialEventResponses(events))
}

// CreateSocialEvent handles the multipart create form with an optional image
func (h *SocialEventHandler) CreateSocialEvent(c *gin.Context) {
	var req dto.CreateSocialEventRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	event, err := req.ToSocialEvent()
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var image *service.ImageUpload
	fh, err := c.FormFile(createImageField)
	switch {
	case err == nil:
		data, readErr := readUpload(fh, createImageField, h.maxUploadBytes)
		if readErr != nil {
			respondError(c, h.log, readErr)
			return
		}
		image = &service.ImageUpload{Filename: fh.Filename, Data: data}
	case !errors.Is(err, http.ErrMissingFile):
		badRequest(c, err)
		return
	}

	id, err := h.socialEventService.CreateSocialEvent(c.Request.Context(), event, image, actorID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewIDResponse(id))
}

// UpdateSocialEvent handles event updates
func (h *SocialEventHandler) UpdateSocialEvent(c *gin.Context) {
	var req dto.UpdateSocialEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	event, err := req.ToSocialEvent()
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	id, err := h.socialEventService.UpdateSocialEvent(c.Request.Context(), event, actorID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, dto.NewIDResponse(id))
}

// DeleteSocialEvent handles event deletion
func (h *SocialEventHandler) DeleteSocialEvent(c *gin.Context) {
	id, err := bodyID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	deleted, err := h.socialEventService.DeleteSocialEvent(c.Request.Context(), id, actorID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, dto.NewIDResponse(deleted))
}

// UploadImage replaces the image of an existing event
func (h *SocialEventHandler) UploadImage(c *gin.Context) {
	id, err := queryID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	fh, err := c.FormFile(uploadImageField)
	if err != nil {
		respondError(c, h.log, apperror.NewValidationError("field 'formFile' is required"))
		return
	}
	data, err := readUpload(fh, uploadImageField, h.maxUploadBytes)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	path, err := h.socialEventService.ReplaceImage(c.Request.Context(), id,
		service.ImageUpload{Filename: fh.Filename, Data: data}, actorID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"image": path})
}
