// Package repository handles all interactions with the database.
//
// It contains the SQL for fetching and persisting data, keeping query
// details away from the service layer.
package repository

import (
	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Posts *PostRepository
}

// NewRepositories constructs the repository container on top of the shared
// connection pool held by the server.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Posts: NewPostRepository(s.DB.Pool),
	}
}
