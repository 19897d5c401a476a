package app

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kenotrix/backend/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		AppPort:       8123,
		LogLevel:      "DEBUG",
		LLMProvider:   "gemini",
		GeminiBaseURL: "http://127.0.0.1:1",
		GeminiAPIKey:  "test-key",
		MainModel:     "gemini-2.5-flash",
		StorageDriver: "sqlite",
		DatabasePath:  filepath.Join(t.TempDir(), "kenotrix.db"),
		StorageKey:    "kenotrix_threads",
	}
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(testConfig(t))
	require.NoError(t, err)
	require.NotNil(t, app)
	defer func() { require.NoError(t, app.Close()) }()

	assert.NotNil(t, app.DB)
	assert.Nil(t, app.Redis)
	assert.NotNil(t, app.Server)
	assert.Equal(t, ":8123", app.Server.Addr)
	assert.Empty(t, app.Store.Threads())

	rr := httptest.NewRecorder()
	app.Server.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestNewApp_ThreadsSurviveRestart(t *testing.T) {
	cfg := testConfig(t)

	first, err := NewApp(cfg)
	require.NoError(t, err)
	threadID := first.Store.CreateThread()
	first.Store.SetTitle(threadID, "Kept")
	require.NoError(t, first.Close())

	second, err := NewApp(cfg)
	require.NoError(t, err)
	defer func() { require.NoError(t, second.Close()) }()

	thread, ok := second.Store.Thread(threadID)
	require.True(t, ok)
	assert.Equal(t, "Kept", thread.Title)
	assert.Empty(t, second.Store.ActiveThreadID(), "the selection is not persisted")
}

func TestNewApp_InvalidSettings(t *testing.T) {
	cfg := testConfig(t)
	cfg.StorageDriver = "floppy"
	_, err := NewApp(cfg)
	assert.ErrorContains(t, err, "unknown storage driver")

	cfg = testConfig(t)
	cfg.LLMProvider = "carrier-pigeon"
	_, err = NewApp(cfg)
	assert.ErrorContains(t, err, "unknown llm provider")

	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	cfg = testConfig(t)
	cfg.GeminiAPIKey = ""
	_, err = NewApp(cfg)
	assert.ErrorContains(t, err, "failed to initialize gemini provider")
}
