package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app_errors "kenotrix/backend/internal/errors"
)

func TestValidateRequest(t *testing.T) {
	t.Run("Valid payload", func(t *testing.T) {
		assert.NoError(t, validateRequest(&UpdateTitleRequest{Title: "Jazz"}))
	})

	t.Run("Every failing field is listed", func(t *testing.T) {
		payload := &struct {
			Title string `validate:"required"`
			Voice string `validate:"max=3"`
		}{Voice: "too long"}

		err := validateRequest(payload)
		require.True(t, errors.Is(err, app_errors.ErrValidation))
		assert.Contains(t, err.Error(), "Field 'Title' failed on the 'required' tag; Field 'Voice' failed on the 'max' tag")
	})

	t.Run("Non-struct payload is a validation error", func(t *testing.T) {
		err := validateRequest("not a struct")
		require.True(t, errors.Is(err, app_errors.ErrValidation))
		assert.Contains(t, err.Error(), "an unexpected error occurred during validation")
	})

	t.Run("Shared instance", func(t *testing.T) {
		assert.Same(t, getInstance(), getInstance())
	})
}

func TestDecodeAndValidate(t *testing.T) {
	t.Run("Invalid JSON does not echo the body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"title": secret`))
		var payload UpdateTitleRequest

		err := decodeAndValidate(req, &payload)
		require.True(t, errors.Is(err, app_errors.ErrValidation))
		assert.NotContains(t, err.Error(), "secret")
	})

	t.Run("Decoded payload is validated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"title": ""}`))
		var payload UpdateTitleRequest

		err := decodeAndValidate(req, &payload)
		assert.ErrorContains(t, err, "Field 'Title' failed on the 'required' tag")
	})
}

func TestWriteStreamEvent(t *testing.T) {
	t.Run("Named event is written and flushed", func(t *testing.T) {
		rr := httptest.NewRecorder()
		require.NoError(t, writeStreamEvent(rr, "chunk", map[string]string{"content": "Hi"}))
		assert.Equal(t, "event: chunk\ndata: {\"content\":\"Hi\"}\n\n", rr.Body.String())
		assert.True(t, rr.Flushed)
	})

	t.Run("Unencodable payload keeps the stream open", func(t *testing.T) {
		rr := httptest.NewRecorder()
		assert.NoError(t, writeStreamEvent(rr, "chunk", make(chan int)))
		assert.Empty(t, rr.Body.String())
	})
}

func TestRespondWithError_HidesInternalDetails(t *testing.T) {
	rr := httptest.NewRecorder()
	respondWithError(rr, errors.New("disk /var/lib/kenotrix is full"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "/var/lib")
	assert.JSONEq(t, `{"error":"An unexpected internal server error occurred."}`, rr.Body.String())
}
