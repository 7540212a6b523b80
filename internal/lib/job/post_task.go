package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/model"
)

const (
	// TaskPostCreated is the task type enqueued after a post is stored.
	TaskPostCreated = "post:created"
)

// PostCreatedPayload is the JSON payload of a TaskPostCreated task.
type PostCreatedPayload struct {
	PostID    int64     `json:"post_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPostCreatedTask builds the task for a freshly created post.
//
// Options:
//   - MaxRetry(3): retry up to 3 times on failure
//   - Queue("default")
//   - Timeout(30s): the handler is cancelled after 30 seconds
func NewPostCreatedTask(post model.Post) (*asynq.Task, error) {
	payload, err := json.Marshal(PostCreatedPayload{
		PostID:    post.ID,
		Title:     post.Title,
		CreatedAt: post.CreatedAt,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskPostCreated,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
