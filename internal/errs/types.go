package errs

import "strings"

// FieldError is a validation failure tied to one input field.
//
//	{ "field": "title", "error": "is required" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

type ActionType string

const (
	ActionTypeRedirect ActionType = "redirect"
)

// Action is an optional hint telling the client what to do next.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is an error that knows its HTTP status and client message.
//
// Message is shown to the client as is. The cause, when set, is only used
// for logging and is never serialized.
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	Errors []FieldError `json:"errors"`
	Action *Action      `json:"action"`

	cause error
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Unwrap exposes the internal cause to errors.Is and errors.As.
func (e *HTTPError) Unwrap() error {
	return e.cause
}

// Is reports any *HTTPError as a match.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// Cause returns the internal error attached with WithCause, if any.
func (e *HTTPError) Cause() error {
	return e.cause
}

func (e *HTTPError) clone() *HTTPError {
	c := *e
	return &c
}

// WithMessage returns a copy of e with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	c := e.clone()
	c.Message = message
	return c
}

// WithCause returns a copy of e carrying err as its internal cause.
func (e *HTTPError) WithCause(err error) *HTTPError {
	c := e.clone()
	c.cause = err
	return c
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
