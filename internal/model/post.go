// Package model contains the domain types shared by the repository, service
// and handler layers.
package model

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Post is a blog post as stored in the posts table.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Contents  string    `json:"contents"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Comment is a read-only comment attached to a post. Post carries the title
// of the owning post.
type Comment struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	PostID    int64     `json:"post_id"`
	Post      string    `json:"post"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostID is what the store hands back after an insert.
type PostID struct {
	ID int64 `json:"id"`
}

// PostInput carries the writable fields of a post.
type PostInput struct {
	Title    string `json:"title" validate:"required"`
	Contents string `json:"contents" validate:"required"`
}

var validate = validator.New()

// Validate reports missing fields as validator.ValidationErrors.
func (in PostInput) Validate() error {
	return validate.Struct(in)
}
