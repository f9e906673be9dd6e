// Package service contains the business logic.
//
// It sits between the handler and repository layers: handlers pass decoded,
// validated input in, and services call repositories and background jobs.
package service

import (
	"github.com/deppfellow/mobile-api/internal/repository"
	"github.com/deppfellow/mobile-api/internal/server"
)

type Services struct {
	Auth     *AuthService
	Feedback *FeedbackService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		Auth:     NewAuthService(s),
		Feedback: NewFeedbackService(repos.Feedback, s.Job, s.Logger),
	}
}
