package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "kenotrix/backend/internal/errors"
	mock_repo "kenotrix/backend/internal/repository/mocks"
	"kenotrix/backend/internal/service"
	"kenotrix/backend/internal/store"
	"kenotrix/backend/internal/voice"
)

type stubRecognizer struct {
	transcript string
	block      bool
}

func (r *stubRecognizer) Supported() bool { return true }

func (r *stubRecognizer) Recognize(ctx context.Context, _ string) (string, error) {
	if r.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return r.transcript, nil
}

type stubSynthesizer struct {
	spoken []string
}

func (s *stubSynthesizer) Supported() bool       { return true }
func (s *stubSynthesizer) Voices() []voice.Voice { return nil }
func (s *stubSynthesizer) Cancel()               {}

func (s *stubSynthesizer) Speak(u voice.Utterance) error {
	s.spoken = append(s.spoken, u.Text)
	return nil
}

func setupVoiceService(t *testing.T, rec voice.Recognizer, syn voice.Synthesizer) (*service.VoiceService, *store.Store) {
	repo := mock_repo.NewMockThreadRepository(t)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil).Maybe()
	st := store.New(repo)
	return service.NewVoiceService(voice.NewAdapter(rec, syn, nil, voice.DefaultOptions()), st), st
}

func TestVoiceService_Listen(t *testing.T) {
	t.Run("Unsupported", func(t *testing.T) {
		svc, _ := setupVoiceService(t, nil, nil)
		_, err := svc.Listen(context.Background())
		assert.ErrorIs(t, err, app_errors.ErrUnsupported)
	})

	t.Run("Transcript", func(t *testing.T) {
		svc, _ := setupVoiceService(t, &stubRecognizer{transcript: "history of jazz"}, nil)
		text, err := svc.Listen(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "history of jazz", text)
	})

	t.Run("Cancelled", func(t *testing.T) {
		svc, _ := setupVoiceService(t, &stubRecognizer{block: true}, nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		text, err := svc.Listen(ctx)
		require.NoError(t, err)
		assert.Empty(t, text)
	})
}

func TestVoiceService_Speak(t *testing.T) {
	ctx := context.Background()

	t.Run("Unsupported is reported without error", func(t *testing.T) {
		svc, _ := setupVoiceService(t, nil, nil)
		spoken, err := svc.Speak(ctx, &service.SpeakRequest{Text: "hi"})
		require.NoError(t, err)
		assert.False(t, spoken)
	})

	t.Run("Speaks text and stored messages", func(t *testing.T) {
		syn := &stubSynthesizer{}
		svc, st := setupVoiceService(t, nil, syn)
		threadID := st.CreateThread()
		messageID := st.AppendUserMessage(threadID, "**Read** me")

		spoken, err := svc.Speak(ctx, &service.SpeakRequest{Text: "# Hello"})
		require.NoError(t, err)
		assert.True(t, spoken)

		spoken, err = svc.Speak(ctx, &service.SpeakRequest{ThreadID: threadID, MessageID: messageID})
		require.NoError(t, err)
		assert.True(t, spoken)

		assert.Equal(t, []string{" Hello", "Read me"}, syn.spoken)
	})

	t.Run("Errors", func(t *testing.T) {
		svc, st := setupVoiceService(t, nil, &stubSynthesizer{})
		threadID := st.CreateThread()

		_, err := svc.Speak(ctx, &service.SpeakRequest{ThreadID: threadID, MessageID: "missing"})
		assert.ErrorIs(t, err, app_errors.ErrNotFound)

		_, err = svc.Speak(ctx, &service.SpeakRequest{ThreadID: "missing", MessageID: "m"})
		assert.ErrorIs(t, err, app_errors.ErrNotFound)

		_, err = svc.Speak(ctx, &service.SpeakRequest{Text: "  "})
		assert.ErrorIs(t, err, app_errors.ErrValidation)
	})
}
