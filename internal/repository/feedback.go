package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/mobile-api/internal/model"
	"github.com/deppfellow/mobile-api/internal/server"
	"github.com/deppfellow/mobile-api/internal/sqlerr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const feedbackTable = "feedback"

const feedbackColumns = `id, member_id, category, content, contact, created_at`

type FeedbackRepository struct {
	server *server.Server
}

func NewFeedbackRepository(s *server.Server) *FeedbackRepository {
	return &FeedbackRepository{server: s}
}

// CreateMany inserts all payloads in one transaction and returns the stored
// rows in input order. Nothing is stored if any insert fails.
func (r *FeedbackRepository) CreateMany(ctx context.Context, memberID string, payloads []model.CreateFeedbackPayload) ([]model.Feedback, error) {
	stored := make([]model.Feedback, 0, len(payloads))

	err := pgx.BeginFunc(ctx, r.server.DB.Pool, func(tx pgx.Tx) error {
		for _, p := range payloads {
			rows, err := tx.Query(ctx, `
				INSERT INTO feedback (member_id, category, content, contact)
				VALUES (@member_id, @category, @content, @contact)
				RETURNING `+feedbackColumns,
				pgx.NamedArgs{
					"member_id": memberID,
					"category":  string(p.Category),
					"content":   p.Content,
					"contact":   p.Contact,
				})
			if err != nil {
				return err
			}

			item, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Feedback])
			if err != nil {
				return err
			}
			stored = append(stored, item)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert feedback: %w", err)
	}

	return stored, nil
}

// GetByID returns the item when it belongs to memberID.
// A missing row is reported as sqlerr-tagged pgx.ErrNoRows.
func (r *FeedbackRepository) GetByID(ctx context.Context, memberID string, id uuid.UUID) (*model.Feedback, error) {
	rows, err := r.server.DB.Pool.Query(ctx, `
		SELECT `+feedbackColumns+`
		FROM feedback
		WHERE id = @id AND member_id = @member_id`,
		pgx.NamedArgs{
			"id":        id,
			"member_id": memberID,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}

	item, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Feedback])
	if err != nil {
		return nil, sqlerr.WithTable(feedbackTable, err)
	}

	return &item, nil
}

// ListByMember returns one page of the member's feedback, newest first, and
// the total number of items.
func (r *FeedbackRepository) ListByMember(ctx context.Context, memberID string, q model.ListFeedbackQuery) ([]model.Feedback, int64, error) {
	var total int64
	err := r.server.DB.Pool.QueryRow(ctx,
		`SELECT count(*) FROM feedback WHERE member_id = @member_id`,
		pgx.NamedArgs{"member_id": memberID},
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count feedback: %w", err)
	}

	rows, err := r.server.DB.Pool.Query(ctx, `
		SELECT `+feedbackColumns+`
		FROM feedback
		WHERE member_id = @member_id
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`,
		pgx.NamedArgs{
			"member_id": memberID,
			"limit":     q.Limit,
			"offset":    q.Offset(),
		})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list feedback: %w", err)
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Feedback])
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan feedback: %w", err)
	}

	return items, total, nil
}
