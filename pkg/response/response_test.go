package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "recyclemart/pkg/errors"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	return e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec), rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var r Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))
	return r
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"app error", apperrors.InvalidTransition("completed", "accepted"), http.StatusConflict, apperrors.CodeInvalidTransition},
		{"wrapped app error", fmt.Errorf("submit: %w", apperrors.EmptyQueue()), http.StatusUnprocessableEntity, apperrors.CodeEmptyQueue},
		{"echo error", echo.NewHTTPError(http.StatusUnsupportedMediaType), http.StatusUnsupportedMediaType, apperrors.CodeBadRequest},
		{"unknown error", fmt.Errorf("boom"), http.StatusInternalServerError, apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext()
			require.NoError(t, Error(c, tt.err))

			assert.Equal(t, tt.status, rec.Code)
			r := decode(t, rec)
			assert.False(t, r.Success)
			require.NotNil(t, r.Error)
			assert.Equal(t, tt.code, r.Error.Code)
		})
	}
}

func TestValidationError(t *testing.T) {
	type body struct {
		ItemID string `validate:"required"`
	}
	err := validator.New().Struct(body{})
	require.Error(t, err)

	c, rec := newContext()
	require.NoError(t, Error(c, err))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	r := decode(t, rec)
	require.NotNil(t, r.Error)
	assert.Equal(t, CodeValidation, r.Error.Code)
	assert.Equal(t, "itemid is required", r.Error.Message)
}

func TestNoticeIsSuccessful(t *testing.T) {
	c, rec := newContext()
	require.NoError(t, Notice(c, map[string]bool{"duplicate": true}, apperrors.DuplicateEntry("paper")))

	assert.Equal(t, http.StatusOK, rec.Code)
	r := decode(t, rec)
	assert.True(t, r.Success)
	require.NotNil(t, r.Error)
	assert.Equal(t, apperrors.CodeDuplicateEntry, r.Error.Code)
}

func TestPaginatedTotalPages(t *testing.T) {
	c, rec := newContext()
	require.NoError(t, Paginated(c, []int{1, 2}, 41, 1, 20))

	var r struct {
		Data PaginatedResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))
	assert.Equal(t, 3, r.Data.TotalPages)
	assert.Equal(t, int64(41), r.Data.Total)
}
