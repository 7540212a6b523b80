package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/errs"
	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/locale"
	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/middleware"
	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/model"
	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/server"
	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/service"
	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/validation"
)

// ListPostsRequest has no inputs.
type ListPostsRequest struct{}

func (r *ListPostsRequest) Validate() error { return nil }

// PostIDRequest addresses a single post through the :id path parameter.
type PostIDRequest struct {
	ID string `param:"id" json:"-"`
}

func (r *PostIDRequest) Validate() error { return nil }

// CreatePostRequest is the body of POST /api/posts. Fields are decoded
// loosely: a value that is not a string counts as missing. Presence of both
// fields is checked by the post service.
type CreatePostRequest struct {
	Title    any `json:"title"`
	Contents any `json:"contents"`
}

func (r *CreatePostRequest) Validate() error { return nil }

func (r *CreatePostRequest) BindMessage(c echo.Context) string {
	return middleware.Text(c, locale.PostFieldsRequired)
}

func (r *CreatePostRequest) input() model.PostInput {
	return postInput(r.Title, r.Contents)
}

// UpdatePostRequest is the path id and body of PUT /api/posts/:id. Any
// decodable body reaches the service, which checks existence before field
// presence.
type UpdatePostRequest struct {
	ID       string `param:"id" json:"-"`
	Title    any    `json:"title"`
	Contents any    `json:"contents"`
}

func (r *UpdatePostRequest) Validate() error { return nil }

func (r *UpdatePostRequest) BindMessage(c echo.Context) string {
	return middleware.Text(c, locale.PostUpdateFieldsReq)
}

func (r *UpdatePostRequest) input() model.PostInput {
	return postInput(r.Title, r.Contents)
}

func postInput(title, contents any) model.PostInput {
	t, _ := title.(string)
	c, _ := contents.(string)
	return model.PostInput{Title: t, Contents: c}
}

// PostHandler serves the /api/posts resource.
type PostHandler struct {
	Handler
	posts *service.PostService
}

func NewPostHandler(s *server.Server, posts *service.PostService) *PostHandler {
	return &PostHandler{
		Handler: NewHandler(s),
		posts:   posts,
	}
}

func (h *PostHandler) ListPosts(c echo.Context, _ *ListPostsRequest) ([]model.Post, error) {
	posts, err := h.posts.List(c.Request().Context())
	if err != nil {
		return nil, postErrorToHTTP(c, service.OpList, err)
	}
	return posts, nil
}

func (h *PostHandler) GetPost(c echo.Context, req *PostIDRequest) (*model.Post, error) {
	post, err := h.posts.Get(c.Request().Context(), req.ID)
	if err != nil {
		return nil, postErrorToHTTP(c, service.OpGet, err)
	}
	return post, nil
}

func (h *PostHandler) CreatePost(c echo.Context, req *CreatePostRequest) (*model.Post, error) {
	post, err := h.posts.Create(c.Request().Context(), req.input())
	if err != nil {
		return nil, postErrorToHTTP(c, service.OpCreate, err)
	}
	return post, nil
}

func (h *PostHandler) UpdatePost(c echo.Context, req *UpdatePostRequest) (*model.Post, error) {
	post, err := h.posts.Update(c.Request().Context(), req.ID, req.input())
	if err != nil {
		return nil, postErrorToHTTP(c, service.OpUpdate, err)
	}
	return post, nil
}

// DeletePost responds with the post as it was before deletion.
func (h *PostHandler) DeletePost(c echo.Context, req *PostIDRequest) (*model.Post, error) {
	post, err := h.posts.Delete(c.Request().Context(), req.ID)
	if err != nil {
		return nil, postErrorToHTTP(c, service.OpDelete, err)
	}
	return post, nil
}

func (h *PostHandler) ListComments(c echo.Context, req *PostIDRequest) ([]model.Comment, error) {
	comments, err := h.posts.Comments(c.Request().Context(), req.ID)
	if err != nil {
		return nil, postErrorToHTTP(c, service.OpComments, err)
	}
	return comments, nil
}

var failureMessages = map[service.Operation]locale.Key{
	service.OpList:     locale.PostsListFailed,
	service.OpGet:      locale.PostGetFailed,
	service.OpCreate:   locale.PostCreateFailed,
	service.OpUpdate:   locale.PostUpdateFailed,
	service.OpDelete:   locale.PostDeleteFailed,
	service.OpComments: locale.CommentsListFailed,
}

// postErrorToHTTP maps a PostService error onto the response of op.
//
// Unknown ids give 404, rejected input 400 with field errors. Any other error
// gives 500 with the operation's failure message; store errors are attached
// as the cause for logging only.
func postErrorToHTTP(c echo.Context, op service.Operation, err error) error {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		key := locale.PostNotFound
		if op == service.OpComments {
			key = locale.CommentsPostNotFound
		}
		return errs.NewNotFoundError(middleware.Text(c, key), false, nil).WithCause(err)

	case errors.Is(err, service.ErrInvalidPost):
		key := locale.PostFieldsRequired
		if op == service.OpUpdate {
			key = locale.PostUpdateFieldsReq
		}
		return errs.NewBadRequestError(middleware.Text(c, key), false, nil, validation.FieldErrors(err), nil).WithCause(err)
	}

	var opErr *service.OperationError
	if errors.As(err, &opErr) {
		middleware.GetLogger(c).Error().
			Err(opErr.Err).
			Str("post_operation", string(opErr.Op)).
			Str("outcome", opErr.Outcome.String()).
			Msg("post operation failed")
	}

	internal := errs.NewInternalServerError()
	if key, ok := failureMessages[op]; ok {
		internal = internal.WithMessage(middleware.Text(c, key))
	}
	return internal.WithCause(err)
}
