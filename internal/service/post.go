package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/model"
)

// PostStore is the persistence collaborator of PostService. Ids are opaque
// lookup keys. FindByID returns (nil, nil) when no post matches; Update and
// Remove report the number of affected rows.
type PostStore interface {
	FindAll(ctx context.Context) ([]model.Post, error)
	FindByID(ctx context.Context, id string) (*model.Post, error)
	Insert(ctx context.Context, in model.PostInput) (model.PostID, error)
	Update(ctx context.Context, id string, in model.PostInput) (int64, error)
	Remove(ctx context.Context, id string) (int64, error)
	FindPostComments(ctx context.Context, id string) ([]model.Comment, error)
}

// PostNotifier is told about every post created through the service.
type PostNotifier interface {
	NotifyPostCreated(ctx context.Context, post model.Post) error
}

var (
	// ErrPostNotFound is returned when the addressed post does not exist.
	ErrPostNotFound = errors.New("post not found")

	// ErrInvalidPost wraps the validator errors of a rejected PostInput.
	ErrInvalidPost = errors.New("invalid post")

	// errPostVanished means a post read back right after a successful write
	// was no longer there.
	errPostVanished = errors.New("post disappeared after write")
)

// Operation names a post use case; it selects the failure message shown to
// clients.
type Operation string

const (
	OpList     Operation = "list"
	OpGet      Operation = "get"
	OpCreate   Operation = "create"
	OpUpdate   Operation = "update"
	OpDelete   Operation = "delete"
	OpComments Operation = "comments"
)

// Outcome tells apart the ways a store call can go wrong.
type Outcome int

const (
	// OutcomeApplied means the store performed the requested change.
	OutcomeApplied Outcome = iota
	// OutcomeNotApplied means the store answered without error but changed
	// no row, even though the post existed a moment earlier.
	OutcomeNotApplied
	// OutcomeFailed means the store returned an error.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeNotApplied:
		return "not_applied"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// OperationError reports a store-side failure of an operation. Clients see
// the same response for OutcomeNotApplied and OutcomeFailed; the outcome is
// kept for logs and tests.
type OperationError struct {
	Op      Operation
	Outcome Outcome
	Err     error
}

func (e *OperationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s post: %s", e.Op, e.Outcome)
	}
	return fmt.Sprintf("%s post: %s: %v", e.Op, e.Outcome, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

func failed(op Operation, err error) error {
	return &OperationError{Op: op, Outcome: OutcomeFailed, Err: err}
}

func notApplied(op Operation) error {
	return &OperationError{Op: op, Outcome: OutcomeNotApplied}
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidPost, err)
}

// PostService implements the post use cases on top of a PostStore.
//
// It holds no per-request state. Existence checks and the mutations that
// follow them are separate store calls; a concurrent delete between the two
// surfaces as OutcomeNotApplied.
type PostService struct {
	store    PostStore
	notifier PostNotifier
}

// NewPostService creates a PostService. notifier may be nil.
func NewPostService(store PostStore, notifier PostNotifier) *PostService {
	return &PostService{
		store:    store,
		notifier: notifier,
	}
}

// List returns all posts.
func (s *PostService) List(ctx context.Context) ([]model.Post, error) {
	posts, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, failed(OpList, err)
	}
	return posts, nil
}

// Get returns one post or ErrPostNotFound.
func (s *PostService) Get(ctx context.Context, id string) (*model.Post, error) {
	post, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, failed(OpGet, err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Create validates the input, inserts it and returns the stored record as
// read back from the store.
func (s *PostService) Create(ctx context.Context, in model.PostInput) (*model.Post, error) {
	if err := in.Validate(); err != nil {
		return nil, invalid(err)
	}

	created, err := s.store.Insert(ctx, in)
	if err != nil {
		return nil, failed(OpCreate, err)
	}

	post, err := s.store.FindByID(ctx, strconv.FormatInt(created.ID, 10))
	if err != nil {
		return nil, failed(OpCreate, err)
	}
	if post == nil {
		return nil, failed(OpCreate, errPostVanished)
	}

	s.notifyCreated(ctx, *post)

	return post, nil
}

// Update replaces title and contents of an existing post.
//
// The existence check runs before input validation, so an unknown id is
// reported as ErrPostNotFound even when the body is invalid too.
func (s *PostService) Update(ctx context.Context, id string, in model.PostInput) (*model.Post, error) {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, failed(OpUpdate, err)
	}
	if existing == nil {
		return nil, ErrPostNotFound
	}

	if err := in.Validate(); err != nil {
		return nil, invalid(err)
	}

	count, err := s.store.Update(ctx, id, in)
	if err != nil {
		return nil, failed(OpUpdate, err)
	}
	if count == 0 {
		return nil, notApplied(OpUpdate)
	}

	updated, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, failed(OpUpdate, err)
	}
	if updated == nil {
		return nil, failed(OpUpdate, errPostVanished)
	}

	return updated, nil
}

// Delete removes a post and returns it as it was before deletion.
func (s *PostService) Delete(ctx context.Context, id string) (*model.Post, error) {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, failed(OpDelete, err)
	}
	if existing == nil {
		return nil, ErrPostNotFound
	}

	count, err := s.store.Remove(ctx, id)
	if err != nil {
		return nil, failed(OpDelete, err)
	}
	if count == 0 {
		return nil, notApplied(OpDelete)
	}

	return existing, nil
}

// Comments lists the comments of an existing post.
func (s *PostService) Comments(ctx context.Context, id string) ([]model.Comment, error) {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, failed(OpComments, err)
	}
	if existing == nil {
		return nil, ErrPostNotFound
	}

	comments, err := s.store.FindPostComments(ctx, id)
	if err != nil {
		return nil, failed(OpComments, err)
	}
	return comments, nil
}

// notifyCreated hands the post to the notifier. Failures are logged only;
// the post is already stored.
func (s *PostService) notifyCreated(ctx context.Context, post model.Post) {
	if s.notifier == nil {
		return
	}

	if err := s.notifier.NotifyPostCreated(ctx, post); err != nil {
		zerolog.Ctx(ctx).Warn().
			Err(err).
			Int64("post_id", post.ID).
			Msg("failed to enqueue post created notification")
	}
}
