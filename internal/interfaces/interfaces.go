package interfaces

import (
	"context"

	"kenotrix/backend/internal/model"
	"kenotrix/backend/internal/service"
	"kenotrix/backend/internal/voice"
)

// Service contracts consumed by the API layer.

// ChatService defines the contract for thread management and chat exchanges.
type ChatService interface {
	ListThreads(ctx context.Context) (*service.ThreadList, error)
	GetThread(ctx context.Context, threadID string) (*model.Thread, error)
	CreateThread(ctx context.Context) (*model.Thread, error)
	UpdateThreadTitle(ctx context.Context, threadID, title string) error
	SetActiveThread(ctx context.Context, threadID string) error
	DeleteThread(ctx context.Context, threadID string) error
	HandleNewMessage(ctx context.Context, req *service.SendMessageRequest) (<-chan model.StreamEvent, error)
}

// VoiceService defines the contract for speech input and output.
type VoiceService interface {
	Capabilities(ctx context.Context) voice.Capabilities
	Listen(ctx context.Context) (string, error)
	Speak(ctx context.Context, req *service.SpeakRequest) (bool, error)
}

var (
	_ ChatService  = (*service.ChatService)(nil)
	_ VoiceService = (*service.VoiceService)(nil)
)
