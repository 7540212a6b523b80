// Package handler is the HTTP layer of the posts API. Handlers bind the
// request, call the service layer and translate its errors into
// errs.HTTPError responses.
package handler

import (
	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/server"
	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/service"
)

// Handlers groups every HTTP handler.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Posts   *PostHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Posts:   NewPostHandler(s, services.Posts),
	}
}
