package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/model"
	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/service"
	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/testutil"
)

type recordingNotifier struct {
	posts []model.Post
	err   error
}

func (n *recordingNotifier) NotifyPostCreated(_ context.Context, post model.Post) error {
	n.posts = append(n.posts, post)
	return n.err
}

func requireOperationError(t *testing.T, err error, op service.Operation, outcome service.Outcome) *service.OperationError {
	t.Helper()
	var opErr *service.OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, op, opErr.Op)
	assert.Equal(t, outcome, opErr.Outcome)
	return opErr
}

func existing(id int64) func(context.Context, string) (*model.Post, error) {
	return func(context.Context, string) (*model.Post, error) {
		return &model.Post{ID: id, Title: "old", Contents: "old body"}, nil
	}
}

func TestCreate_ReturnsStoredRecord(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemoryPostStore()
	svc := service.NewPostService(store, nil)

	created, err := svc.Create(ctx, model.PostInput{Title: "A", Contents: "B"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "A", created.Title)
	assert.Equal(t, "B", created.Contents)

	fetched, err := svc.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func TestCreate_MissingFieldsNeverReachStore(t *testing.T) {
	inputs := []model.PostInput{
		{Title: "only title"},
		{Contents: "only contents"},
		{},
	}

	for _, in := range inputs {
		store := &testutil.MockPostStore{}
		svc := service.NewPostService(store, nil)

		_, err := svc.Create(context.Background(), in)

		require.ErrorIs(t, err, service.ErrInvalidPost)
		var validationErrs validator.ValidationErrors
		assert.ErrorAs(t, err, &validationErrs)
		assert.Empty(t, store.Calls)
	}
}

func TestCreate_InsertFailure(t *testing.T) {
	storeErr := errors.New("disk full")
	store := &testutil.MockPostStore{
		InsertFn: func(context.Context, model.PostInput) (model.PostID, error) {
			return model.PostID{}, storeErr
		},
	}

	_, err := service.NewPostService(store, nil).Create(context.Background(), model.PostInput{Title: "A", Contents: "B"})

	opErr := requireOperationError(t, err, service.OpCreate, service.OutcomeFailed)
	assert.ErrorIs(t, opErr, storeErr)
	assert.False(t, store.Called("FindByID"))
}

func TestCreate_VanishedAfterInsert(t *testing.T) {
	store := &testutil.MockPostStore{
		InsertFn: func(context.Context, model.PostInput) (model.PostID, error) {
			return model.PostID{ID: 7}, nil
		},
		FindByIDFn: func(context.Context, string) (*model.Post, error) {
			return nil, nil
		},
	}

	_, err := service.NewPostService(store, nil).Create(context.Background(), model.PostInput{Title: "A", Contents: "B"})

	requireOperationError(t, err, service.OpCreate, service.OutcomeFailed)
}

func TestCreate_NotifiesAndIgnoresNotifierFailure(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("redis down")}
	svc := service.NewPostService(testutil.NewMemoryPostStore(), notifier)

	created, err := svc.Create(context.Background(), model.PostInput{Title: "A", Contents: "B"})

	require.NoError(t, err)
	require.Len(t, notifier.posts, 1)
	assert.Equal(t, *created, notifier.posts[0])
}

func TestGet_UnknownID(t *testing.T) {
	svc := service.NewPostService(testutil.NewMemoryPostStore(), nil)

	for _, id := range []string{"999", "abc", "0", "-1", ""} {
		_, err := svc.Get(context.Background(), id)
		assert.ErrorIs(t, err, service.ErrPostNotFound, "id %q", id)
	}
}

func TestGet_StoreFailure(t *testing.T) {
	_, err := service.NewPostService(&testutil.MockPostStore{}, nil).Get(context.Background(), "1")

	requireOperationError(t, err, service.OpGet, service.OutcomeFailed)
	assert.ErrorIs(t, err, testutil.ErrStoreDown)
}

func TestGet_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemoryPostStore()
	svc := service.NewPostService(store, nil)
	_, err := svc.Create(ctx, model.PostInput{Title: "A", Contents: "B"})
	require.NoError(t, err)

	first, err := svc.Get(ctx, "1")
	require.NoError(t, err)
	second, err := svc.Get(ctx, "1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.Len())
}

func TestList(t *testing.T) {
	ctx := context.Background()
	svc := service.NewPostService(testutil.NewMemoryPostStore(), nil)

	posts, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)

	for _, title := range []string{"first", "second", "third"} {
		_, err := svc.Create(ctx, model.PostInput{Title: title, Contents: "x"})
		require.NoError(t, err)
	}

	posts, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "first", posts[0].Title)
	assert.Equal(t, "third", posts[2].Title)
}

func TestList_StoreFailure(t *testing.T) {
	_, err := service.NewPostService(&testutil.MockPostStore{}, nil).List(context.Background())

	requireOperationError(t, err, service.OpList, service.OutcomeFailed)
}

func TestUpdate_UnknownIDWinsOverInvalidBody(t *testing.T) {
	store := &testutil.MockPostStore{
		FindByIDFn: func(context.Context, string) (*model.Post, error) { return nil, nil },
	}

	_, err := service.NewPostService(store, nil).Update(context.Background(), "999", model.PostInput{})

	assert.ErrorIs(t, err, service.ErrPostNotFound)
	assert.False(t, store.Called("Update"))
}

func TestUpdate_InvalidBodyOnExistingPost(t *testing.T) {
	store := &testutil.MockPostStore{FindByIDFn: existing(1)}

	_, err := service.NewPostService(store, nil).Update(context.Background(), "1", model.PostInput{Title: ""})

	assert.ErrorIs(t, err, service.ErrInvalidPost)
	assert.Equal(t, []string{"FindByID"}, store.Calls)
}

func TestUpdate_ReturnsRefetchedRecord(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemoryPostStore()
	svc := service.NewPostService(store, nil)
	_, err := svc.Create(ctx, model.PostInput{Title: "A", Contents: "B"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "1", model.PostInput{Title: "A2", Contents: "B2"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), updated.ID)
	assert.Equal(t, "A2", updated.Title)
	assert.Equal(t, "B2", updated.Contents)

	fetched, err := svc.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, updated, fetched)
}

func TestUpdate_ZeroRowsIsNotApplied(t *testing.T) {
	store := &testutil.MockPostStore{
		FindByIDFn: existing(1),
		UpdateFn: func(context.Context, string, model.PostInput) (int64, error) {
			return 0, nil
		},
	}

	_, err := service.NewPostService(store, nil).Update(context.Background(), "1", model.PostInput{Title: "A", Contents: "B"})

	opErr := requireOperationError(t, err, service.OpUpdate, service.OutcomeNotApplied)
	assert.NoError(t, opErr.Err)
}

func TestUpdate_StoreErrorIsFailed(t *testing.T) {
	store := &testutil.MockPostStore{FindByIDFn: existing(1)}

	_, err := service.NewPostService(store, nil).Update(context.Background(), "1", model.PostInput{Title: "A", Contents: "B"})

	requireOperationError(t, err, service.OpUpdate, service.OutcomeFailed)
	assert.ErrorIs(t, err, testutil.ErrStoreDown)
}

func TestDelete_ReturnsSnapshotThenNotFound(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemoryPostStore()
	svc := service.NewPostService(store, nil)
	created, err := svc.Create(ctx, model.PostInput{Title: "A", Contents: "B"})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, created, deleted)
	assert.Equal(t, 0, store.Len())

	_, err = svc.Get(ctx, "1")
	assert.ErrorIs(t, err, service.ErrPostNotFound)

	_, err = svc.Delete(ctx, "1")
	assert.ErrorIs(t, err, service.ErrPostNotFound)
}

func TestDelete_UnknownIDDoesNotRemove(t *testing.T) {
	store := &testutil.MockPostStore{
		FindByIDFn: func(context.Context, string) (*model.Post, error) { return nil, nil },
	}

	_, err := service.NewPostService(store, nil).Delete(context.Background(), "42")

	assert.ErrorIs(t, err, service.ErrPostNotFound)
	assert.False(t, store.Called("Remove"))
}

func TestDelete_Outcomes(t *testing.T) {
	tests := []struct {
		name    string
		remove  func(context.Context, string) (int64, error)
		outcome service.Outcome
	}{
		{
			name:    "zero rows",
			remove:  func(context.Context, string) (int64, error) { return 0, nil },
			outcome: service.OutcomeNotApplied,
		},
		{
			name:    "store error",
			remove:  func(context.Context, string) (int64, error) { return 0, errors.New("locked") },
			outcome: service.OutcomeFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &testutil.MockPostStore{FindByIDFn: existing(3), RemoveFn: tt.remove}

			_, err := service.NewPostService(store, nil).Delete(context.Background(), "3")

			requireOperationError(t, err, service.OpDelete, tt.outcome)
		})
	}
}

func TestComments(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemoryPostStore()
	svc := service.NewPostService(store, nil)
	post, err := svc.Create(ctx, model.PostInput{Title: "A", Contents: "B"})
	require.NoError(t, err)
	store.AddComment(post.ID, "first!")
	store.AddComment(post.ID, "second")

	comments, err := svc.Comments(ctx, "1")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first!", comments[0].Text)
	assert.Equal(t, "A", comments[0].Post)

	_, err = svc.Comments(ctx, "2")
	assert.ErrorIs(t, err, service.ErrPostNotFound)
}

func TestComments_StoreFailure(t *testing.T) {
	store := &testutil.MockPostStore{FindByIDFn: existing(1)}

	_, err := service.NewPostService(store, nil).Comments(context.Background(), "1")

	requireOperationError(t, err, service.OpComments, service.OutcomeFailed)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "applied", service.OutcomeApplied.String())
	assert.Equal(t, "not_applied", service.OutcomeNotApplied.String())
	assert.Equal(t, "failed", service.OutcomeFailed.String())
}
