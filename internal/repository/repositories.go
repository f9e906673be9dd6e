// Package repository holds the SQL for each aggregate and keeps pgx out of
// the service layer.
package repository

import (
	"github.com/deppfellow/mobile-api/internal/server"
)

// Repositories groups every repository so services receive one value.
type Repositories struct {
	Feedback *FeedbackRepository
}

func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Feedback: NewFeedbackRepository(s),
	}
}
