package handler

import (
	"errors"
	"net/http"

	"go-gin-event-lookup/internal/middleware"
	"go-gin-event-lookup/internal/model"
	"go-gin-event-lookup/internal/service"
	"go-gin-event-lookup/internal/validation"
	apperrors "go-gin-event-lookup/pkg/app_errors"
	"go-gin-event-lookup/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/events")
	{
		router.GET("", h.List)
		router.GET("/", h.GetBySlug)
		router.GET("/:slug", h.GetBySlug)
		router.POST("", h.Create)
		router.PATCH("/:slug", h.UpdateBySlug)
	}
}

// CreateEventRequest 建立活動請求，欄位檢查交由 validation.NormalizeEvent
type CreateEventRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Overview    string   `json:"overview"`
	Image       string   `json:"image"`
	Venue       string   `json:"venue"`
	Location    string   `json:"location"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Mode        string   `json:"mode"`
	Audience    string   `json:"audience"`
	Agenda      []string `json:"agenda"`
	Organizer   string   `json:"organizer"`
	Tags        []string `json:"tags"`
}

// UpdateEventRequest 更新活動請求，未提供的欄位不變更
type UpdateEventRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Overview    *string  `json:"overview"`
	Image       *string  `json:"image"`
	Venue       *string  `json:"venue"`
	Location    *string  `json:"location"`
	Date        *string  `json:"date"`
	Time        *string  `json:"time"`
	Mode        *string  `json:"mode"`
	Audience    *string  `json:"audience"`
	Agenda      []string `json:"agenda"`
	Organizer   *string  `json:"organizer"`
	Tags        []string `json:"tags"`
}

func (h *EventHandler) List(c *gin.Context) {
	events, err := h.service.List(c)
	if err != nil {
		h.handleError(c, err, "List")
		return
	}
	c.JSON(http.StatusOK, model.EventListResponse{Success: true, Data: events})
}

func (h *EventHandler) GetBySlug(c *gin.Context) {
	slug, err := validation.CanonicalSlug(c.Param("slug"))
	if err != nil {
		h.handleError(c, err, "GetBySlug")
		return
	}
	event, err := h.service.GetBySlug(c, slug)
	if err != nil {
		h.handleError(c, err, "GetBySlug")
		return
	}
	c.JSON(http.StatusOK, model.EventResponse{Success: true, Data: event})
}

func (h *EventHandler) Create(c *gin.Context) {
	var req CreateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	event := &model.Event{
		Title:       req.Title,
		Description: req.Description,
		Overview:    req.Overview,
		Image:       req.Image,
		Venue:       req.Venue,
		Location:    req.Location,
		Date:        req.Date,
		Time:        req.Time,
		Mode:        model.EventMode(req.Mode),
		Audience:    req.Audience,
		Agenda:      req.Agenda,
		Organizer:   req.Organizer,
		Tags:        req.Tags,
	}
	created, err := h.service.Create(c, event)
	if err != nil {
		h.handleError(c, err, "Create")
		return
	}
	c.JSON(http.StatusCreated, model.EventResponse{Success: true, Data: created})
}

func (h *EventHandler) UpdateBySlug(c *gin.Context) {
	slug, err := validation.CanonicalSlug(c.Param("slug"))
	if err != nil {
		h.handleError(c, err, "UpdateBySlug")
		return
	}
	var req UpdateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	params := model.UpdateEventParams{
		Title:       req.Title,
		Description: req.Description,
		Overview:    req.Overview,
		Image:       req.Image,
		Venue:       req.Venue,
		Location:    req.Location,
		Date:        req.Date,
		Time:        req.Time,
		Audience:    req.Audience,
		Agenda:      req.Agenda,
		Organizer:   req.Organizer,
		Tags:        req.Tags,
	}
	if req.Mode != nil {
		mode := model.EventMode(*req.Mode)
		params.Mode = &mode
	}
	if params.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one field is required"})
		return
	}
	updated, err := h.service.UpdateBySlug(c, slug, params)
	if err != nil {
		h.handleError(c, err, "UpdateBySlug")
		return
	}
	c.JSON(http.StatusOK, model.EventResponse{Success: true, Data: updated})
}

func (h *EventHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(
		zap.String("operation", operation),
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.Error(err),
	)

	var validationErr *validation.ValidationError
	switch {
	case errors.Is(err, apperrors.ErrInvalidSlugParam):
		log.Warn("Invalid slug parameter")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slug parameter"})
	case errors.Is(err, apperrors.ErrSlugInvalidCharacters):
		log.Warn("Slug contains invalid characters")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Slug contains invalid characters"})
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case errors.Is(err, apperrors.ErrDatabaseConfig):
		log.Error("Database configuration error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database configuration error"})
	case errors.Is(err, apperrors.ErrStorageValidation):
		log.Warn("Storage rejected request parameters")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
	case errors.Is(err, apperrors.ErrSlugConflict):
		log.Warn("Slug conflict")
		c.JSON(http.StatusConflict, gin.H{"error": "An event with this slug already exists"})
	case errors.As(err, &validationErr):
		log.Warn("Event validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "errors": validationErr.Fields})
	case errors.Is(err, apperrors.ErrInvalidDateFormat):
		log.Warn("Invalid date format")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
	case errors.Is(err, apperrors.ErrInvalidTimeFormat):
		log.Warn("Invalid time format")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Time must be HH:MM"})
	case errors.Is(err, apperrors.ErrEmptySlug):
		log.Warn("Title produces empty slug")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title must contain at least one letter or digit"})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
