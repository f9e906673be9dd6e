package service

import (
	"context"

	"github.com/deppfellow/mobile-api/internal/errs"
	"github.com/deppfellow/mobile-api/internal/lib/job"
	"github.com/deppfellow/mobile-api/internal/logger"
	"github.com/deppfellow/mobile-api/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// FeedbackStore persists feedback.
type FeedbackStore interface {
	CreateMany(ctx context.Context, memberID string, payloads []model.CreateFeedbackPayload) ([]model.Feedback, error)
	GetByID(ctx context.Context, memberID string, id uuid.UUID) (*model.Feedback, error)
	ListByMember(ctx context.Context, memberID string, q model.ListFeedbackQuery) ([]model.Feedback, int64, error)
}

// FeedbackNotifier schedules the inbox notification for a stored item.
type FeedbackNotifier interface {
	EnqueueFeedbackNotification(ctx context.Context, p job.FeedbackReceivedPayload) error
}

type FeedbackService struct {
	store    FeedbackStore
	notifier FeedbackNotifier
	logger   *zerolog.Logger
}

func NewFeedbackService(store FeedbackStore, notifier FeedbackNotifier, logger *zerolog.Logger) *FeedbackService {
	return &FeedbackService{
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// Create stores every payload for memberID in one transaction, then enqueues
// one notification per stored item. A failed enqueue is logged and does not
// fail the call: the feedback itself is already safe.
func (s *FeedbackService) Create(ctx context.Context, memberID string, payloads []model.CreateFeedbackPayload) ([]model.Feedback, error) {
	if memberID == "" {
		return nil, errs.NewUnauthorizedError("")
	}
	if len(payloads) == 0 {
		return []model.Feedback{}, nil
	}

	stored, err := s.store.CreateMany(ctx, memberID, payloads)
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx, s.logger)
	for _, f := range stored {
		p := job.FeedbackReceivedPayload{
			FeedbackID: f.ID.String(),
			MemberID:   f.MemberID,
			Category:   string(f.Category),
			Content:    f.Content,
			CreatedAt:  f.CreatedAt,
		}
		if f.Contact != nil {
			p.Contact = *f.Contact
		}

		if err := s.notifier.EnqueueFeedbackNotification(ctx, p); err != nil {
			log.Warn().
				Err(err).
				Str("feedback_id", p.FeedbackID).
				Msg("failed to enqueue feedback notification")
		}
	}

	log.Info().Int("count", len(stored)).Msg("feedback stored")

	return stored, nil
}

// Get returns one item owned by memberID.
func (s *FeedbackService) Get(ctx context.Context, memberID string, id uuid.UUID) (*model.Feedback, error) {
	if memberID == "" {
		return nil, errs.NewUnauthorizedError("")
	}
	return s.store.GetByID(ctx, memberID, id)
}

// List returns one page of the member's feedback. Paging defaults are applied here.
func (s *FeedbackService) List(ctx context.Context, memberID string, q model.ListFeedbackQuery) (*model.FeedbackPage, error) {
	if memberID == "" {
		return nil, errs.NewUnauthorizedError("")
	}

	q = q.WithDefaults()

	items, total, err := s.store.ListByMember(ctx, memberID, q)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Feedback{}
	}

	return &model.FeedbackPage{
		Items: items,
		Page:  q.Page,
		Limit: q.Limit,
		Total: total,
	}, nil
}
