package validation

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/errs"
)

var validate = validator.New()

type samplePayload struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

func (p *samplePayload) Validate() error {
	return validate.Struct(p)
}

type customPayload struct{}

func (customPayload) Validate() error {
	return CustomValidationErrors{{Field: "title", Message: "is required"}}
}

type describedPayload struct {
	Name string `json:"name"`
}

func (*describedPayload) Validate() error { return nil }

func (*describedPayload) BindMessage(echo.Context) string { return "send a name" }

func newContext(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func requireHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	return httpErr
}

func TestBindAndValidate_Valid(t *testing.T) {
	payload := &samplePayload{}

	err := BindAndValidate(newContext(`{"name":"Ada"}`), payload)

	require.NoError(t, err)
	assert.Equal(t, "Ada", payload.Name)
}

func TestBindAndValidate_MalformedJSON(t *testing.T) {
	err := BindAndValidate(newContext(`{"name":`), &samplePayload{})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.NotEmpty(t, httpErr.Message)
}

func TestBindAndValidate_FieldErrors(t *testing.T) {
	err := BindAndValidate(newContext(`{"email":"nope"}`), &samplePayload{})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "name", Error: "is required"},
		{Field: "email", Error: "must be a valid email address"},
	}, httpErr.Errors)
}

func TestFieldErrors_Wrapped(t *testing.T) {
	err := fmt.Errorf("invalid post: %w", validate.Struct(&samplePayload{}))

	assert.Equal(t, []errs.FieldError{{Field: "name", Error: "is required"}}, FieldErrors(err))
}

func TestFieldErrors_Custom(t *testing.T) {
	assert.Equal(t,
		[]errs.FieldError{{Field: "title", Error: "is required"}},
		FieldErrors(customPayload{}.Validate()),
	)
}

func TestFieldErrors_Unrelated(t *testing.T) {
	assert.Nil(t, FieldErrors(fmt.Errorf("boom")))
}

func TestBindAndValidate_BindMessager(t *testing.T) {
	err := BindAndValidate(newContext(`{"name":5}`), &describedPayload{})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "send a name", httpErr.Message)
	assert.NotContains(t, httpErr.Message, "Unmarshal")
	assert.Error(t, httpErr.Cause())
}
