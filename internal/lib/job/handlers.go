package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/deppfellow/mobile-api/internal/lib/email"
	"github.com/hibiken/asynq"
)

// handleFeedbackReceivedTask emails the feedback inbox.
// A returned error makes asynq retry the task.
func (j *JobService) handleFeedbackReceivedTask(ctx context.Context, t *asynq.Task) error {
	var p FeedbackReceivedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// Retrying cannot fix a malformed payload.
		return fmt.Errorf("failed to unmarshal feedback payload: %v: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", TaskFeedbackReceived).
		Str("feedback_id", p.FeedbackID).
		Logger()

	log.Info().Msg("processing feedback notification")

	err := j.emails.SendFeedbackNotification(j.feedbackInbox, email.FeedbackReceivedData{
		FeedbackID: p.FeedbackID,
		MemberID:   p.MemberID,
		Category:   p.Category,
		Content:    p.Content,
		Contact:    p.Contact,
		CreatedAt:  p.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to send feedback notification")
		return err
	}

	log.Info().Msg("sent feedback notification")
	return nil
}
