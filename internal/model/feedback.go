package model

import (
	"time"

	"github.com/deppfellow/mobile-api/internal/validation"
	"github.com/google/uuid"
)

// FeedbackCategory classifies a feedback item.
type FeedbackCategory string

const (
	FeedbackCategoryBug        FeedbackCategory = "bug"
	FeedbackCategorySuggestion FeedbackCategory = "suggestion"
	FeedbackCategoryComplaint  FeedbackCategory = "complaint"
	FeedbackCategoryOther      FeedbackCategory = "other"
)

// Feedback is a stored feedback item.
type Feedback struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	MemberID  string           `json:"memberId" db:"member_id"`
	Category  FeedbackCategory `json:"category" db:"category"`
	Content   string           `json:"content" db:"content"`
	Contact   *string          `json:"contact" db:"contact"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
}

// CreateFeedbackPayload is one item of POST /api/v1/feedback.
type CreateFeedbackPayload struct {
	Category FeedbackCategory `json:"category" validate:"required,oneof=bug suggestion complaint other"`
	Content  string           `json:"content" validate:"required,min=5,max=2000"`
	Contact  *string          `json:"contact,omitempty" validate:"omitempty,max=255"`
}

func (p *CreateFeedbackPayload) Validate() error {
	return validation.Struct(p)
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100

	// MaxPage keeps (page-1)*limit far from integer overflow.
	MaxPage = 1_000_000
)

// ListFeedbackQuery is the paging parameter of GET /api/v1/feedback.
// Zero values mean "use the default".
type ListFeedbackQuery struct {
	Page  int `json:"page" validate:"gte=0,lte=1000000"`
	Limit int `json:"limit" validate:"gte=0,lte=100"`
}

func (q *ListFeedbackQuery) Validate() error {
	return validation.Struct(q)
}

// WithDefaults fills in page 1 and the default limit.
func (q ListFeedbackQuery) WithDefaults() ListFeedbackQuery {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}
	return q
}

// Offset is the number of rows to skip for the current page.
func (q ListFeedbackQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// FeedbackPage is the data of a list response.
type FeedbackPage struct {
	Items []Feedback `json:"items"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
	Total int64      `json:"total"`
}
