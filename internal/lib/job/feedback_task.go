package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// TaskFeedbackReceived is the task type for the feedback inbox notification.
const TaskFeedbackReceived = "email:feedback_received"

// FeedbackReceivedPayload is the task payload stored in Redis.
type FeedbackReceivedPayload struct {
	FeedbackID string    `json:"feedback_id"`
	MemberID   string    `json:"member_id"`
	Category   string    `json:"category"`
	Content    string    `json:"content"`
	Contact    string    `json:"contact,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewFeedbackReceivedTask builds the notification task for one feedback item.
//
// The task id is derived from the feedback id, so enqueuing the same item
// twice is rejected by asynq with ErrTaskIDConflict.
func NewFeedbackReceivedTask(p FeedbackReceivedPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskFeedbackReceived,
		payload,
		asynq.TaskID("feedback:"+p.FeedbackID),
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
