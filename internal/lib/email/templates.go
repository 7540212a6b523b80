package email

// Template names an email template under templates/.
type Template string

const (
	// TemplatePostCreated corresponds to templates/post_created.html
	TemplatePostCreated Template = "post_created"
)
