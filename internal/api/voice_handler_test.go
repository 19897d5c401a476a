package api_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"kenotrix/backend/internal/api"
	app_errors "kenotrix/backend/internal/errors"
	"kenotrix/backend/internal/interfaces/mocks"
	"kenotrix/backend/internal/service"
	"kenotrix/backend/internal/voice"
)

func setupVoiceHandler(t *testing.T) (*api.VoiceHandler, *mocks.MockVoiceService) {
	mockVoiceSvc := mocks.NewMockVoiceService(t)
	return api.NewVoiceHandler(mockVoiceSvc), mockVoiceSvc
}

func TestVoiceHandler_GetCapabilities(t *testing.T) {
	handler, mockVoiceSvc := setupVoiceHandler(t)
	mockVoiceSvc.On("Capabilities", mock.Anything).Return(voice.Capabilities{
		Synthesis: true, Locale: "en-US", Voices: []voice.Voice{{Name: "Google US English"}},
	}).Once()

	rr := httptest.NewRecorder()
	handler.GetCapabilities(rr, httptest.NewRequest(http.MethodGet, "/api/v1/voice", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"recognition":false,"synthesis":true,"locale":"en-US","voices":[{"name":"Google US English"}]}`, rr.Body.String())
}

func TestVoiceHandler_HandleListen(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockVoiceSvc := setupVoiceHandler(t)
		mockVoiceSvc.On("Listen", mock.Anything).Return("history of jazz", nil).Once()

		rr := httptest.NewRecorder()
		handler.HandleListen(rr, httptest.NewRequest(http.MethodPost, "/api/v1/voice/listen", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"transcript":"history of jazz"}`, rr.Body.String())
	})

	t.Run("Unsupported", func(t *testing.T) {
		handler, mockVoiceSvc := setupVoiceHandler(t)
		mockVoiceSvc.On("Listen", mock.Anything).
			Return("", fmt.Errorf("%w: %s", app_errors.ErrUnsupported, voice.UnsupportedRecognitionNotice)).Once()

		rr := httptest.NewRecorder()
		handler.HandleListen(rr, httptest.NewRequest(http.MethodPost, "/api/v1/voice/listen", nil))

		assert.Equal(t, http.StatusNotImplemented, rr.Code)
		assert.Contains(t, rr.Body.String(), voice.UnsupportedRecognitionNotice)
	})
}

func TestVoiceHandler_HandleSpeak(t *testing.T) {
	t.Run("Speaking", func(t *testing.T) {
		handler, mockVoiceSvc := setupVoiceHandler(t)
		mockVoiceSvc.On("Speak", mock.Anything, &service.SpeakRequest{Text: "hello"}).Return(true, nil).Once()

		rr := httptest.NewRecorder()
		handler.HandleSpeak(rr, httptest.NewRequest(http.MethodPost, "/api/v1/voice/speak", strings.NewReader(`{"text":"hello"}`)))

		assert.Equal(t, http.StatusAccepted, rr.Code)
		assert.JSONEq(t, `{"status":"speaking"}`, rr.Body.String())
	})

	t.Run("Unsupported", func(t *testing.T) {
		handler, mockVoiceSvc := setupVoiceHandler(t)
		mockVoiceSvc.On("Speak", mock.Anything, mock.Anything).Return(false, nil).Once()

		rr := httptest.NewRecorder()
		handler.HandleSpeak(rr, httptest.NewRequest(http.MethodPost, "/api/v1/voice/speak", strings.NewReader(`{"thread_id":"t1","message_id":"m1"}`)))

		assert.Equal(t, http.StatusAccepted, rr.Code)
		assert.JSONEq(t, `{"status":"unsupported"}`, rr.Body.String())
	})

	t.Run("Failure - Validation Error", func(t *testing.T) {
		handler, _ := setupVoiceHandler(t)

		rr := httptest.NewRecorder()
		handler.HandleSpeak(rr, httptest.NewRequest(http.MethodPost, "/api/v1/voice/speak", strings.NewReader(`{"message_id":"m1"}`)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Field 'ThreadID' failed on the 'required_with' tag")
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		handler, mockVoiceSvc := setupVoiceHandler(t)
		mockVoiceSvc.On("Speak", mock.Anything, mock.Anything).Return(false, app_errors.ErrNotFound).Once()

		rr := httptest.NewRecorder()
		handler.HandleSpeak(rr, httptest.NewRequest(http.MethodPost, "/api/v1/voice/speak", strings.NewReader(`{"thread_id":"t1","message_id":"m1"}`)))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
