//go:build integration

package repository_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/database"
	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/model"
	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/repository"
)

// newTestRepository starts PostgreSQL in a container, applies the embedded
// migrations and returns a repository on a fresh pool.
func newTestRepository(t *testing.T) (*repository.PostRepository, *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("posts"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	logger := zerolog.Nop()
	require.NoError(t, database.Migrate(ctx, &logger, dsn))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return repository.NewPostRepository(pool), pool
}

func TestPostRepository_InsertAndFind(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Insert(ctx, model.PostInput{Title: "A", Contents: "B"})
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	post, err := repo.FindByID(ctx, strconv.FormatInt(created.ID, 10))
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, "A", post.Title)
	assert.Equal(t, "B", post.Contents)
	assert.False(t, post.CreatedAt.IsZero())
}

func TestPostRepository_FindByID_Absent(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	for _, id := range []string{"999", "abc", "0", ""} {
		post, err := repo.FindByID(ctx, id)
		require.NoError(t, err, "id %q", id)
		assert.Nil(t, post, "id %q", id)
	}
}

func TestPostRepository_FindAll_InsertionOrder(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	posts, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)

	for _, title := range []string{"one", "two", "three"} {
		_, err := repo.Insert(ctx, model.PostInput{Title: title, Contents: "x"})
		require.NoError(t, err)
	}

	posts, err = repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "one", posts[0].Title)
	assert.Equal(t, "three", posts[2].Title)
}

func TestPostRepository_UpdateAndRemove(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Insert(ctx, model.PostInput{Title: "A", Contents: "B"})
	require.NoError(t, err)
	id := strconv.FormatInt(created.ID, 10)

	count, err := repo.Update(ctx, id, model.PostInput{Title: "A2", Contents: "B2"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	post, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "A2", post.Title)

	count, err = repo.Update(ctx, "999", model.PostInput{Title: "x", Contents: "y"})
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = repo.Remove(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = repo.Remove(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPostRepository_FindPostComments(t *testing.T) {
	repo, pool := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Insert(ctx, model.PostInput{Title: "With comments", Contents: "x"})
	require.NoError(t, err)

	for _, text := range []string{"first", "second"} {
		_, err := pool.Exec(ctx, `INSERT INTO comments (text, post_id) VALUES ($1, $2)`, text, created.ID)
		require.NoError(t, err)
	}

	comments, err := repo.FindPostComments(ctx, strconv.FormatInt(created.ID, 10))
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, "With comments", comments[0].Post)
	assert.Equal(t, created.ID, comments[1].PostID)

	_, err = repo.Remove(ctx, strconv.FormatInt(created.ID, 10))
	require.NoError(t, err)

	comments, err = repo.FindPostComments(ctx, strconv.FormatInt(created.ID, 10))
	require.NoError(t, err)
	assert.Empty(t, comments)
}
