// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives request
// data from the handler, enforces the post rules and calls the repository.
package service

import (
	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/repository"
	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/server"
)

type Services struct {
	Auth  *AuthService
	Posts *PostService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	// Avoid storing a typed nil pointer in the interface.
	var notifier PostNotifier
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Auth:  NewAuthService(s),
		Posts: NewPostService(repos.Posts, notifier),
	}
}
