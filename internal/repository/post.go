package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/model"
)

// Querier is the subset of pgxpool.Pool used by PostRepository. pgx.Tx
// satisfies it as well.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

var postColumns = []string{"id", "title", "contents", "created_at", "updated_at"}

// PostRepository stores posts and reads their comments in PostgreSQL.
//
// Ids are accepted as strings and are opaque to callers: a key that is not a
// valid bigint simply matches no row.
type PostRepository struct {
	db Querier
	sb sq.StatementBuilderType
}

// NewPostRepository creates a repository using Postgres $n placeholders.
func NewPostRepository(db Querier) *PostRepository {
	return &PostRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// parseID converts an opaque key into a posts.id value.
func parseID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// FindAll returns every post in insertion order.
func (r *PostRepository) FindAll(ctx context.Context) ([]model.Post, error) {
	sqlStr, args, err := r.sb.
		Select(postColumns...).
		From("posts").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building posts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("querying posts: %w", err)
	}

	posts, err := pgx.CollectRows(rows, scanPost)
	if err != nil {
		return nil, fmt.Errorf("scanning posts: %w", err)
	}

	if posts == nil {
		posts = []model.Post{}
	}
	return posts, nil
}

// FindByID returns the post with the given id, or nil when there is none.
func (r *PostRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	postID, ok := parseID(id)
	if !ok {
		return nil, nil
	}

	sqlStr, args, err := r.sb.
		Select(postColumns...).
		From("posts").
		Where(sq.Eq{"id": postID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building post query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("querying post %d: %w", postID, err)
	}

	post, err := pgx.CollectOneRow(rows, scanPost)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning post %d: %w", postID, err)
	}

	return &post, nil
}

// Insert stores a new post and returns its generated id.
func (r *PostRepository) Insert(ctx context.Context, in model.PostInput) (model.PostID, error) {
	sqlStr, args, err := r.sb.
		Insert("posts").
		Columns("title", "contents").
		Values(in.Title, in.Contents).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return model.PostID{}, fmt.Errorf("building insert: %w", err)
	}

	var created model.PostID
	if err := r.db.QueryRow(ctx, sqlStr, args...).Scan(&created.ID); err != nil {
		return model.PostID{}, fmt.Errorf("inserting post: %w", err)
	}

	return created, nil
}

// Update replaces title and contents of a post and returns the number of
// rows changed.
func (r *PostRepository) Update(ctx context.Context, id string, in model.PostInput) (int64, error) {
	postID, ok := parseID(id)
	if !ok {
		return 0, nil
	}

	sqlStr, args, err := r.sb.
		Update("posts").
		Set("title", in.Title).
		Set("contents", in.Contents).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": postID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("building update: %w", err)
	}

	tag, err := r.db.Exec(ctx, sqlStr, args...)
	if err != nil {
		return 0, fmt.Errorf("updating post %d: %w", postID, err)
	}

	return tag.RowsAffected(), nil
}

// Remove deletes a post and returns the number of rows deleted. Comments go
// with it through the foreign key's ON DELETE CASCADE.
func (r *PostRepository) Remove(ctx context.Context, id string) (int64, error) {
	postID, ok := parseID(id)
	if !ok {
		return 0, nil
	}

	sqlStr, args, err := r.sb.
		Delete("posts").
		Where(sq.Eq{"id": postID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("building delete: %w", err)
	}

	tag, err := r.db.Exec(ctx, sqlStr, args...)
	if err != nil {
		return 0, fmt.Errorf("deleting post %d: %w", postID, err)
	}

	return tag.RowsAffected(), nil
}

// FindPostComments lists the comments of a post, oldest first, each carrying
// the post title.
func (r *PostRepository) FindPostComments(ctx context.Context, id string) ([]model.Comment, error) {
	postID, ok := parseID(id)
	if !ok {
		return []model.Comment{}, nil
	}

	sqlStr, args, err := r.sb.
		Select(
			"comments.id",
			"comments.text",
			"comments.post_id",
			"posts.title",
			"comments.created_at",
			"comments.updated_at",
		).
		From("comments").
		Join("posts ON posts.id = comments.post_id").
		Where(sq.Eq{"comments.post_id": postID}).
		OrderBy("comments.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building comments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("querying comments of post %d: %w", postID, err)
	}

	comments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Comment, error) {
		var c model.Comment
		err := row.Scan(&c.ID, &c.Text, &c.PostID, &c.Post, &c.CreatedAt, &c.UpdatedAt)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning comments of post %d: %w", postID, err)
	}

	if comments == nil {
		comments = []model.Comment{}
	}
	return comments, nil
}

func scanPost(row pgx.CollectableRow) (model.Post, error) {
	var p model.Post
	err := row.Scan(&p.ID, &p.Title, &p.Contents, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
