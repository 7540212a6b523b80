package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/handler"
	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/middleware"
)

// registerPostRoutes mounts the posts resource. Writes require a Clerk
// session when authentication is enabled.
func registerPostRoutes(g *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	posts := h.Posts
	requireAuth := m.Auth.Optional()

	g.GET("", handler.HandleOK(posts.Handler, posts.ListPosts))
	g.GET("/:id", handler.HandleOK(posts.Handler, posts.GetPost))
	g.GET("/:id/comments", handler.HandleOK(posts.Handler, posts.ListComments))

	g.POST("", handler.Handle(posts.Handler, posts.CreatePost, http.StatusCreated), requireAuth)
	g.PUT("/:id", handler.HandleOK(posts.Handler, posts.UpdatePost), requireAuth)
	g.DELETE("/:id", handler.HandleOK(posts.Handler, posts.DeletePost), requireAuth)
}
