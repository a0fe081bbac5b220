package rest

import (
	"context"
	"net/http"
	"time"

	"devenirShop/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
)

type (
	ProfileHandler struct {
		validate       *validator.Validate
		profileService ProfileService
		eventStore     EventStore
	}

	ProfileService interface {
		GetProfile(ctx context.Context, userID uint) *domain.UserProfile
		UpdateProfileIncremental(ctx context.Context, userID uint, event domain.InteractionEvent) error
		DeleteProfile(ctx context.Context, userID uint) error
	}

	EventStore interface {
		SaveEvent(ctx context.Context, event domain.InteractionEvent) error
	}

	InteractionRequest struct {
		SessionID     string         `json:"session_id"`
		EventType     string         `json:"event_type" validate:"required,oneof=product_view purchase chat_message"`
		ProductID     uint64         `json:"product_id"`
		ProductsShown int            `json:"products_shown" validate:"gte=0"`
		Context       map[string]any `json:"context"`
	}
)

func NewProfileHandler(svc ProfileService, events EventStore) *ProfileHandler {
	return &ProfileHandler{
		validate:       validator.New(),
		profileService: svc,
		eventStore:     events,
	}
}

// GET /api/v1/profile
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	prof := h.profileService.GetProfile(c.Request().Context(), userID)
	if prof == nil {
		return c.JSON(http.StatusNotFound, ResponseError{Message: "profile not available"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(prof))
}

// POST /api/v1/interactions
// Records a behavioral event and folds it into the caller's profile.
func (h *ProfileHandler) TrackInteraction(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req InteractionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	event := domain.InteractionEvent{
		UserID:        userID,
		SessionID:     req.SessionID,
		EventType:     req.EventType,
		ProductID:     req.ProductID,
		ProductsShown: req.ProductsShown,
		Context:       datatypes.JSONMap(req.Context),
		CreatedAt:     time.Now(),
	}

	if err := h.eventStore.SaveEvent(c.Request().Context(), event); err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	if err := h.profileService.UpdateProfileIncremental(c.Request().Context(), userID, event); err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("interaction recorded"))
}

// DELETE /api/v1/profile
// User data erasure: removes the stored preference profile.
func (h *ProfileHandler) DeleteProfile(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	if err := h.profileService.DeleteProfile(c.Request().Context(), userID); err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("profile deleted"))
}
