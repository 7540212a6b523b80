package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// handlePostCreatedTask sends the new-post notification email.
//
// Returning an error makes asynq mark the task failed and schedule a retry.
func (j *JobService) handlePostCreatedTask(ctx context.Context, t *asynq.Task) error {
	var p PostCreatedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal post created payload: %w", err)
	}

	j.logger.Info().
		Str("type", TaskPostCreated).
		Int64("post_id", p.PostID).
		Msg("Processing post created task")

	if j.mailer == nil {
		j.logger.Debug().
			Int64("post_id", p.PostID).
			Msg("Notifications disabled, skipping post created email")
		return nil
	}

	if err := j.mailer.SendPostCreatedEmail(j.notifyTo, p.PostID, p.Title); err != nil {
		j.logger.Error().
			Str("type", TaskPostCreated).
			Int64("post_id", p.PostID).
			Err(err).
			Msg("Failed to send post created email")
		return err
	}

	j.logger.Info().
		Str("type", TaskPostCreated).
		Int64("post_id", p.PostID).
		Msg("Successfully sent post created email")

	return nil
}
