package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/errs"
	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/locale"
	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/middleware"
	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/model"
	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/service"
)

func newContext(tag string) echo.Context {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.Set(middleware.LocaleKey, locale.Parse(tag))
	return c
}

func mapError(t *testing.T, c echo.Context, op service.Operation, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.ErrorAs(t, postErrorToHTTP(c, op, err), &httpErr)
	return httpErr
}

func TestPostErrorToHTTP_NotFound(t *testing.T) {
	c := newContext("tr")

	httpErr := mapError(t, c, service.OpGet, service.ErrPostNotFound)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, locale.Text(locale.Turkish, locale.PostNotFound), httpErr.Message)

	httpErr = mapError(t, c, service.OpComments, service.ErrPostNotFound)
	assert.Equal(t, locale.Text(locale.Turkish, locale.CommentsPostNotFound), httpErr.Message)
}

func TestPostErrorToHTTP_Invalid(t *testing.T) {
	verr := model.PostInput{Title: "A"}.Validate()
	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, verr, &validationErrs)

	httpErr := mapError(t, newContext("en"), service.OpCreate, fmt.Errorf("%w: %w", service.ErrInvalidPost, verr))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, locale.Text(locale.English, locale.PostFieldsRequired), httpErr.Message)
	assert.Equal(t, []errs.FieldError{{Field: "contents", Error: "is required"}}, httpErr.Errors)
}

func TestPostErrorToHTTP_UpdateAndDeleteCollapseOutcomes(t *testing.T) {
	storeErr := errors.New("deadlock detected")

	for _, op := range []service.Operation{service.OpUpdate, service.OpDelete} {
		notApplied := mapError(t, newContext("tr"), op, &service.OperationError{Op: op, Outcome: service.OutcomeNotApplied})
		failed := mapError(t, newContext("tr"), op, &service.OperationError{Op: op, Outcome: service.OutcomeFailed, Err: storeErr})

		assert.Equal(t, http.StatusInternalServerError, notApplied.Status)
		assert.Equal(t, notApplied.Status, failed.Status)
		assert.Equal(t, notApplied.Message, failed.Message)
		assert.ErrorIs(t, failed, storeErr)
	}
}

func TestPostErrorToHTTP_FailureMessages(t *testing.T) {
	tests := []struct {
		op  service.Operation
		key locale.Key
	}{
		{service.OpList, locale.PostsListFailed},
		{service.OpGet, locale.PostGetFailed},
		{service.OpCreate, locale.PostCreateFailed},
		{service.OpUpdate, locale.PostUpdateFailed},
		{service.OpDelete, locale.PostDeleteFailed},
		{service.OpComments, locale.CommentsListFailed},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			err := &service.OperationError{Op: tt.op, Outcome: service.OutcomeFailed, Err: errors.New("x")}

			httpErr := mapError(t, newContext("en"), tt.op, err)

			assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
			assert.Equal(t, locale.Text(locale.English, tt.key), httpErr.Message)
		})
	}
}

func TestPostInput_NonStringsAreMissing(t *testing.T) {
	assert.Equal(t, model.PostInput{Title: "A", Contents: "B"}, postInput("A", "B"))
	assert.Equal(t, model.PostInput{Contents: "B"}, postInput(5.0, "B"))
	assert.Equal(t, model.PostInput{}, postInput([]any{"A"}, true))
	assert.Equal(t, model.PostInput{}, postInput(nil, nil))
}

func TestBindMessage_Localized(t *testing.T) {
	assert.Equal(t, locale.Text(locale.Turkish, locale.PostFieldsRequired), (&CreatePostRequest{}).BindMessage(newContext("tr")))
	assert.Equal(t, locale.Text(locale.English, locale.PostUpdateFieldsReq), (&UpdatePostRequest{}).BindMessage(newContext("en")))
}
