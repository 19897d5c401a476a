package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	app_errors "kenotrix/backend/internal/errors"
	"kenotrix/backend/internal/model"
	"kenotrix/backend/internal/store"
	"kenotrix/backend/internal/voice"
)

// SpeakRequest selects what to read aloud: either Text, or the content of a
// message addressed by ThreadID and MessageID.
type SpeakRequest struct {
	Text      string `json:"text,omitempty" validate:"required_without=MessageID" example:"Jazz originated in New Orleans."`
	ThreadID  string `json:"thread_id,omitempty" validate:"required_with=MessageID"`
	MessageID string `json:"message_id,omitempty"`
}

type VoiceService struct {
	adapter *voice.Adapter
	store   *store.Store
}

func NewVoiceService(adapter *voice.Adapter, st *store.Store) *VoiceService {
	return &VoiceService{adapter: adapter, store: st}
}

func (s *VoiceService) Capabilities(ctx context.Context) voice.Capabilities {
	return s.adapter.Capabilities()
}

// Listen records one utterance and returns its transcript, which may be empty
// when nothing was recognised. Cancelling ctx stops the recognition.
func (s *VoiceService) Listen(ctx context.Context) (string, error) {
	var transcript string
	session := s.adapter.StartListening(func(text string) { transcript = text }, nil)
	if session == nil {
		return "", fmt.Errorf("%w: %s", app_errors.ErrUnsupported, voice.UnsupportedRecognitionNotice)
	}
	select {
	case <-session.Done():
	case <-ctx.Done():
		session.Stop()
		<-session.Done()
	}
	return transcript, nil
}

// Speak reads text aloud, replacing any utterance in progress. It reports
// false without error when synthesis is unsupported.
func (s *VoiceService) Speak(ctx context.Context, req *SpeakRequest) (bool, error) {
	text := req.Text
	if req.MessageID != "" {
		msg, err := s.message(req.ThreadID, req.MessageID)
		if err != nil {
			return false, err
		}
		text = msg.Content
	}
	if strings.TrimSpace(text) == "" {
		return false, fmt.Errorf("%w: nothing to speak", app_errors.ErrValidation)
	}
	if !s.adapter.Capabilities().Synthesis {
		return false, nil
	}
	if err := s.adapter.SpeakText(text); err != nil {
		slog.Error("Speech synthesis failed", "error", err)
		return false, fmt.Errorf("%w: %v", app_errors.ErrInternal, err)
	}
	return true, nil
}

func (s *VoiceService) message(threadID, messageID string) (*model.Message, error) {
	thread, ok := s.store.Thread(threadID)
	if !ok {
		return nil, fmt.Errorf("thread %s: %w", threadID, app_errors.ErrNotFound)
	}
	for i := range thread.Messages {
		if thread.Messages[i].ID == messageID {
			return &thread.Messages[i], nil
		}
	}
	return nil, fmt.Errorf("message %s: %w", messageID, app_errors.ErrNotFound)
}
