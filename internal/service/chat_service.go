package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	app_errors "kenotrix/backend/internal/errors"
	"kenotrix/backend/internal/llm"
	"kenotrix/backend/internal/model"
	"kenotrix/backend/internal/store"
)

// titleThreshold is the largest message count at which a thread still gets a
// generated title: one user turn and one model turn.
const titleThreshold = 2

type ChatService struct {
	store  *store.Store
	client *llm.Client
}

// SendMessageRequest is a new user message. An empty ThreadID sends to the
// active thread, or to a new thread when nothing is selected.
type SendMessageRequest struct {
	ThreadID string `json:"thread_id,omitempty" example:"0190f5d2-8c4e-7b7a-9d7e-2f1c3a4b5c6d"`
	Content  string `json:"content" example:"History of jazz"`
}

// ThreadList is the library view.
type ThreadList struct {
	Threads        []model.Thread `json:"threads"`
	ActiveThreadID string         `json:"active_thread_id"`
}

func NewChatService(st *store.Store, client *llm.Client) *ChatService {
	return &ChatService{store: st, client: client}
}

// ListThreads returns every thread, newest first, and the current selection.
func (s *ChatService) ListThreads(ctx context.Context) (*ThreadList, error) {
	return &ThreadList{Threads: s.store.Threads(), ActiveThreadID: s.store.ActiveThreadID()}, nil
}

// GetThread returns one thread with all its messages.
func (s *ChatService) GetThread(ctx context.Context, threadID string) (*model.Thread, error) {
	thread, ok := s.store.Thread(threadID)
	if !ok {
		return nil, fmt.Errorf("thread %s: %w", threadID, app_errors.ErrNotFound)
	}
	return &thread, nil
}

// CreateThread starts an empty thread and selects it.
func (s *ChatService) CreateThread(ctx context.Context) (*model.Thread, error) {
	threadID := s.store.CreateThread()
	return s.GetThread(ctx, threadID)
}

// UpdateThreadTitle handles a manual rename.
func (s *ChatService) UpdateThreadTitle(ctx context.Context, threadID, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("%w: title cannot be empty", app_errors.ErrValidation)
	}
	if _, ok := s.store.Thread(threadID); !ok {
		return fmt.Errorf("thread %s: %w", threadID, app_errors.ErrNotFound)
	}
	slog.Info("Manually updating thread title", "thread_id", threadID, "title", title)
	s.store.SetTitle(threadID, title)
	return nil
}

// SetActiveThread selects a thread; an empty id returns to the home view.
func (s *ChatService) SetActiveThread(ctx context.Context, threadID string) error {
	if !s.store.SetActiveThread(threadID) {
		return fmt.Errorf("thread %s: %w", threadID, app_errors.ErrNotFound)
	}
	return nil
}

// DeleteThread removes a thread. A reply still streaming into it keeps running
// and its updates are dropped.
func (s *ChatService) DeleteThread(ctx context.Context, threadID string) error {
	if _, ok := s.store.Thread(threadID); !ok {
		return fmt.Errorf("thread %s: %w", threadID, app_errors.ErrNotFound)
	}
	slog.Info("Deleting thread", "thread_id", threadID)
	s.store.DeleteThread(threadID)
	return nil
}

// HandleNewMessage resolves the target thread and starts the exchange. It
// fails only when an explicit thread id is unknown. The returned channel
// carries the exchange events and is closed when the exchange is over; the
// caller must drain it. Blank content yields a closed channel.
//
// The exchange is detached from ctx cancellation: once started it runs to
// completion even if the caller goes away.
func (s *ChatService) HandleNewMessage(ctx context.Context, req *SendMessageRequest) (<-chan model.StreamEvent, error) {
	events := make(chan model.StreamEvent)
	if strings.TrimSpace(req.Content) == "" {
		close(events)
		return events, nil
	}

	threadID, err := s.resolveThread(req.ThreadID)
	if err != nil {
		return nil, err
	}

	go s.exchange(context.WithoutCancel(ctx), threadID, req.Content, events)
	return events, nil
}

func (s *ChatService) resolveThread(threadID string) (string, error) {
	if threadID != "" {
		if _, ok := s.store.Thread(threadID); !ok {
			return "", fmt.Errorf("thread %s: %w", threadID, app_errors.ErrNotFound)
		}
		s.store.SetActiveThread(threadID)
		return threadID, nil
	}
	if active := s.store.ActiveThreadID(); active != "" {
		if _, ok := s.store.Thread(active); ok {
			return active, nil
		}
	}
	return s.store.CreateThread(), nil
}

func (s *ChatService) exchange(ctx context.Context, threadID, content string, events chan<- model.StreamEvent) {
	defer close(events)

	thread, ok := s.store.Thread(threadID)
	if !ok {
		slog.Warn("Thread disappeared before the exchange started", "thread_id", threadID)
		// Still end the stream properly so clients are not left waiting.
		events <- model.StreamEvent{Type: model.EventDone, ThreadID: threadID}
		return
	}
	history := make([]model.Turn, 0, len(thread.Messages))
	for _, m := range thread.Messages {
		history = append(history, model.Turn{Role: m.Role, Text: m.Content})
	}

	userMessageID := s.store.AppendUserMessage(threadID, content)
	replyID := s.store.BeginAssistantReply(threadID)
	events <- model.StreamEvent{Type: model.EventStart, ThreadID: threadID, MessageID: replyID, UserMessageID: userMessageID}

	s.client.StreamResponse(ctx, history, content,
		func(chunk string) {
			s.store.AppendChunk(threadID, replyID, chunk)
			events <- model.StreamEvent{Type: model.EventChunk, ThreadID: threadID, MessageID: replyID, Content: chunk}
		},
		func(sources []model.Source) {
			s.store.AttachSources(threadID, replyID, sources)
			events <- model.StreamEvent{Type: model.EventSources, ThreadID: threadID, MessageID: replyID, Sources: store.DedupSources(sources)}
		},
	)
	s.store.FinishReply(threadID, replyID)

	// Only the opening exchange of a thread is titled. The thread is
	// re-read because it may have been deleted or grown meanwhile.
	if current, ok := s.store.Thread(threadID); ok && len(current.Messages) <= titleThreshold {
		title := s.client.GenerateTitle(ctx, content)
		s.store.SetTitle(threadID, title)
		slog.Info("Generated thread title", "thread_id", threadID, "title", title)
		events <- model.StreamEvent{Type: model.EventTitle, ThreadID: threadID, Title: title}
	}

	events <- model.StreamEvent{Type: model.EventDone, ThreadID: threadID, MessageID: replyID}
}
