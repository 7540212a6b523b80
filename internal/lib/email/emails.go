package email

import "strconv"

// SendPostCreatedEmail tells the editor that a post was published.
func (c *Client) SendPostCreatedEmail(to string, postID int64, title string) error {
	data := map[string]string{
		"PostID":    strconv.FormatInt(postID, 10),
		"PostTitle": title,
	}

	return c.SendEmail(
		to,
		"New post: "+title,
		TemplatePostCreated,
		data,
	)
}
