package handler

import (
	"context"

	"github.com/deppfellow/mobile-api/internal/errs"
	"github.com/deppfellow/mobile-api/internal/middleware"
	"github.com/deppfellow/mobile-api/internal/model"
	"github.com/deppfellow/mobile-api/internal/param"
	"github.com/deppfellow/mobile-api/internal/server"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type feedbackService interface {
	Create(ctx context.Context, memberID string, payloads []model.CreateFeedbackPayload) ([]model.Feedback, error)
	Get(ctx context.Context, memberID string, id uuid.UUID) (*model.Feedback, error)
	List(ctx context.Context, memberID string, q model.ListFeedbackQuery) (*model.FeedbackPage, error)
}

type FeedbackHandler struct {
	Handler
	feedback feedbackService
}

func NewFeedbackHandler(s *server.Server, feedback feedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		Handler:  NewHandler(s),
		feedback: feedback,
	}
}

// Create stores one item or a list. The response data mirrors the input
// shape: an object for an object, an array for an array.
func (h *FeedbackHandler) Create(c echo.Context, p param.Param[model.CreateFeedbackPayload]) (any, error) {
	stored, err := h.feedback.Create(c.Request().Context(), middleware.GetUserID(c), p.Items())
	if err != nil {
		return nil, err
	}

	if !p.IsList() && len(stored) == 1 {
		return stored[0], nil
	}
	return stored, nil
}

func (h *FeedbackHandler) List(c echo.Context, p param.Param[model.ListFeedbackQuery]) (*model.FeedbackPage, error) {
	q, ok := p.One()
	if !ok {
		return nil, errs.NewInvalidParameterError(param.Name, "param must be a single object", nil)
	}
	return h.feedback.List(c.Request().Context(), middleware.GetUserID(c), q)
}

func (h *FeedbackHandler) Get(c echo.Context) (*model.Feedback, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, errs.NewInvalidParameterError("id", "id must be a valid UUID", err)
	}
	return h.feedback.Get(c.Request().Context(), middleware.GetUserID(c), id)
}
