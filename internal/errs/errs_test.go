package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBadRequestError_DefaultCode(t *testing.T) {
	err := NewBadRequestError("bad", false, nil, nil, nil)

	assert.Equal(t, "BAD_REQUEST", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "bad", err.Error())
}

func TestNewBadRequestError_CustomCode(t *testing.T) {
	code := "POST_INVALID"
	err := NewBadRequestError("bad", true, &code, []FieldError{{Field: "title", Error: "is required"}}, nil)

	assert.Equal(t, "POST_INVALID", err.Code)
	require.Len(t, err.Errors, 1)
	assert.Equal(t, "title", err.Errors[0].Field)
}

func TestWithCause_KeepsOriginalUntouched(t *testing.T) {
	cause := errors.New("connection refused")
	base := NewInternalServerError()

	withCause := base.WithCause(cause)

	assert.Nil(t, base.Cause())
	assert.Equal(t, cause, withCause.Cause())
	assert.ErrorIs(t, withCause, cause)
	assert.Equal(t, base.Message, withCause.Message)
}

func TestWithMessage_PreservesCause(t *testing.T) {
	cause := errors.New("boom")
	err := NewInternalServerError().WithCause(cause).WithMessage("Gönderi silinemedi")

	assert.Equal(t, "Gönderi silinemedi", err.Message)
	assert.ErrorIs(t, err, cause)
}

func TestHTTPError_AsThroughWrapping(t *testing.T) {
	wrapped := errors.Join(errors.New("outer"), NewNotFoundError("missing", false, nil))

	var httpErr *HTTPError
	require.ErrorAs(t, wrapped, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "TOO_MANY_REQUESTS", MakeUpperCaseWithUnderscores("Too Many Requests"))
}
