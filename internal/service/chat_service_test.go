package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "kenotrix/backend/internal/errors"
	"kenotrix/backend/internal/llm"
	mock_llm "kenotrix/backend/internal/llm/mocks"
	"kenotrix/backend/internal/model"
	mock_repo "kenotrix/backend/internal/repository/mocks"
	"kenotrix/backend/internal/service"
	"kenotrix/backend/internal/store"
)

type Mocks struct {
	repo     *mock_repo.MockThreadRepository
	provider *mock_llm.MockProvider
	store    *store.Store
}

func setupChatService(t *testing.T) (*service.ChatService, Mocks) {
	m := Mocks{
		repo:     mock_repo.NewMockThreadRepository(t),
		provider: mock_llm.NewMockProvider(t),
	}
	m.repo.On("Save", mock.Anything, mock.Anything).Return(nil).Maybe()
	m.store = store.New(m.repo)
	client := llm.NewClient(m.provider, llm.ClientOptions{Model: "main", TitleModel: "title", SystemInstruction: "persona"})
	return service.NewChatService(m.store, client), m
}

// streamOf makes the mock provider emit chunks, run before the first one, and close the channel.
func streamOf(before func(), chunks ...llm.StreamResponse) func(mock.Arguments) {
	return func(args mock.Arguments) {
		ctx := args.Get(0).(context.Context)
		ch := args.Get(2).(chan<- llm.StreamResponse)
		defer close(ch)
		if before != nil {
			before()
		}
		for _, c := range chunks {
			select {
			case ch <- c:
			case <-ctx.Done():
				return
			}
		}
	}
}

func collect(t *testing.T, events <-chan model.StreamEvent) []model.StreamEvent {
	t.Helper()
	var out []model.StreamEvent
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-timeout:
			t.Fatal("exchange did not finish")
			return nil
		}
	}
}

func eventTypes(events []model.StreamEvent) []model.StreamEventType {
	out := make([]model.StreamEventType, len(events))
	for i, ev := range events {
		out[i] = ev.Type
	}
	return out
}

func TestChatService_HandleNewMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("Blank content does nothing", func(t *testing.T) {
		svc, m := setupChatService(t)

		events, err := svc.HandleNewMessage(ctx, &service.SendMessageRequest{Content: "   "})
		require.NoError(t, err)

		assert.Empty(t, collect(t, events))
		assert.Empty(t, m.store.Threads())
	})

	t.Run("Unknown thread is not found", func(t *testing.T) {
		svc, _ := setupChatService(t)

		_, err := svc.HandleNewMessage(ctx, &service.SendMessageRequest{ThreadID: "missing", Content: "hi"})
		assert.ErrorIs(t, err, app_errors.ErrNotFound)
	})

	t.Run("First exchange creates, streams and titles a thread", func(t *testing.T) {
		svc, m := setupChatService(t)
		m.provider.On("GenerateStream", mock.Anything, mock.MatchedBy(func(req *llm.ChatRequest) bool {
			return req.Model == "main" && req.Grounding && len(req.Messages) == 1 && req.Messages[0].Content == "History of jazz"
		}), mock.Anything).Return(nil).Run(streamOf(nil,
			llm.StreamResponse{Content: "Jazz began ", Citations: []llm.Citation{{Title: "Wiki", URI: "http://wiki"}}},
			llm.StreamResponse{Content: "in New Orleans.", Citations: []llm.Citation{{URI: "http://wiki"}, {URI: "http://pbs"}}},
			llm.StreamResponse{Done: true},
		)).Once()
		m.provider.On("Generate", mock.Anything, mock.MatchedBy(func(req *llm.GenerateRequest) bool {
			return req.Model == "title"
		})).Return(&llm.GenerateResponse{Response: ` "Jazz Origins" `}, nil).Once()

		events, err := svc.HandleNewMessage(ctx, &service.SendMessageRequest{Content: "History of jazz"})
		require.NoError(t, err)
		got := collect(t, events)

		require.Equal(t, []model.StreamEventType{
			model.EventStart, model.EventChunk, model.EventChunk, model.EventSources, model.EventTitle, model.EventDone,
		}, eventTypes(got))

		threads := m.store.Threads()
		require.Len(t, threads, 1)
		thread := threads[0]
		assert.Equal(t, thread.ID, m.store.ActiveThreadID())
		assert.Equal(t, "Jazz Origins", thread.Title)
		require.Len(t, thread.Messages, 2)
		assert.Equal(t, model.RoleUser, thread.Messages[0].Role)
		assert.Equal(t, "History of jazz", thread.Messages[0].Content)
		assert.Equal(t, "Jazz began in New Orleans.", thread.Messages[1].Content)
		assert.Equal(t, []model.Source{
			{Title: "Wiki", URI: "http://wiki"},
			{Title: model.DefaultSourceTitle, URI: "http://pbs"},
		}, thread.Messages[1].Sources)

		start := got[0]
		assert.Equal(t, thread.ID, start.ThreadID)
		assert.Equal(t, thread.Messages[0].ID, start.UserMessageID)
		assert.Equal(t, thread.Messages[1].ID, start.MessageID)
		assert.Equal(t, "Jazz Origins", got[4].Title)
		assert.False(t, m.store.IsStreaming(start.MessageID))
	})

	t.Run("Later exchanges keep the title and send history", func(t *testing.T) {
		svc, m := setupChatService(t)
		m.provider.On("GenerateStream", mock.Anything, mock.MatchedBy(func(req *llm.ChatRequest) bool {
			return len(req.Messages) == 1
		}), mock.Anything).Return(nil).Run(streamOf(nil, llm.StreamResponse{Content: "first answer"})).Once()
		m.provider.On("Generate", mock.Anything, mock.Anything).Return(&llm.GenerateResponse{Response: "Opening"}, nil).Once()

		events, err := svc.HandleNewMessage(ctx, &service.SendMessageRequest{Content: "first"})
		require.NoError(t, err)
		collect(t, events)
		threadID := m.store.ActiveThreadID()

		m.provider.On("GenerateStream", mock.Anything, mock.MatchedBy(func(req *llm.ChatRequest) bool {
			return len(req.Messages) == 3 &&
				req.Messages[0] == llm.Message{Role: "user", Content: "first"} &&
				req.Messages[1] == llm.Message{Role: "model", Content: "first answer"} &&
				req.Messages[2] == llm.Message{Role: "user", Content: "second"}
		}), mock.Anything).Return(nil).Run(streamOf(nil, llm.StreamResponse{Content: "second answer"})).Once()

		events, err = svc.HandleNewMessage(ctx, &service.SendMessageRequest{ThreadID: threadID, Content: "second"})
		require.NoError(t, err)
		got := collect(t, events)

		assert.Equal(t, []model.StreamEventType{model.EventStart, model.EventChunk, model.EventDone}, eventTypes(got))
		thread, ok := m.store.Thread(threadID)
		require.True(t, ok)
		assert.Equal(t, "Opening", thread.Title)
		assert.Len(t, thread.Messages, 4)
	})

	t.Run("Failures append the notice and fall back to the default title", func(t *testing.T) {
		svc, m := setupChatService(t)
		m.provider.On("GenerateStream", mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("connection refused")).Run(streamOf(nil, llm.StreamResponse{Content: "partial"})).Once()
		m.provider.On("Generate", mock.Anything, mock.Anything).Return(nil, errors.New("quota")).Once()

		events, err := svc.HandleNewMessage(ctx, &service.SendMessageRequest{Content: "q"})
		require.NoError(t, err)
		got := collect(t, events)

		assert.Equal(t, []model.StreamEventType{
			model.EventStart, model.EventChunk, model.EventChunk, model.EventTitle, model.EventDone,
		}, eventTypes(got))
		assert.Equal(t, llm.ErrorNotice, got[2].Content)

		thread := m.store.Threads()[0]
		assert.Equal(t, "partial"+llm.ErrorNotice, thread.Messages[1].Content)
		assert.Nil(t, thread.Messages[1].Sources)
		assert.Equal(t, llm.DefaultTitle, thread.Title)
	})

	t.Run("Deleting the thread mid-stream drops late updates", func(t *testing.T) {
		svc, m := setupChatService(t)
		threadID := m.store.CreateThread()
		m.provider.On("GenerateStream", mock.Anything, mock.Anything, mock.Anything).
			Return(nil).Run(streamOf(func() { m.store.DeleteThread(threadID) },
			llm.StreamResponse{Content: "late", Citations: []llm.Citation{{URI: "http://late"}}},
		)).Once()

		events, err := svc.HandleNewMessage(ctx, &service.SendMessageRequest{ThreadID: threadID, Content: "q"})
		require.NoError(t, err)
		got := collect(t, events)

		assert.Equal(t, []model.StreamEventType{model.EventStart, model.EventChunk, model.EventSources, model.EventDone}, eventTypes(got))
		assert.Empty(t, m.store.Threads())
		assert.Empty(t, m.store.ActiveThreadID())
		m.provider.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("Thread deleted before the exchange starts still ends the stream", func(t *testing.T) {
		svc, m := setupChatService(t)
		threadID := m.store.CreateThread()
		m.store.DeleteThread(threadID)

		events := make(chan model.StreamEvent)
		go service.Exchange(svc, ctx, threadID, "q", events)
		got := collect(t, events)

		assert.Equal(t, []model.StreamEvent{{Type: model.EventDone, ThreadID: threadID}}, got)
		assert.Empty(t, m.store.Threads())
		m.provider.AssertNotCalled(t, "GenerateStream", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Long message is streamed", func(t *testing.T) {
		svc, m := setupChatService(t)
		content := strings.Repeat("history of jazz ", 1250)
		m.provider.On("GenerateStream", mock.Anything, mock.MatchedBy(func(req *llm.ChatRequest) bool {
			return len(req.Messages) == 1 && req.Messages[0].Content == content
		}), mock.Anything).Return(nil).Run(streamOf(nil, llm.StreamResponse{Content: "ok"})).Once()
		m.provider.On("Generate", mock.Anything, mock.Anything).Return(&llm.GenerateResponse{Response: "Jazz"}, nil).Once()

		events, err := svc.HandleNewMessage(ctx, &service.SendMessageRequest{Content: content})
		require.NoError(t, err)
		got := collect(t, events)

		assert.Equal(t, []model.StreamEventType{model.EventStart, model.EventChunk, model.EventTitle, model.EventDone}, eventTypes(got))
		thread := m.store.Threads()[0]
		assert.Equal(t, content, thread.Messages[0].Content)
		assert.Equal(t, "ok", thread.Messages[1].Content)
	})

	t.Run("Cancelled request does not stop the exchange", func(t *testing.T) {
		svc, m := setupChatService(t)
		reqCtx, cancel := context.WithCancel(ctx)
		m.provider.On("GenerateStream", mock.Anything, mock.Anything, mock.Anything).
			Return(nil).Run(streamOf(cancel, llm.StreamResponse{Content: "complete answer"})).Once()
		m.provider.On("Generate", mock.Anything, mock.Anything).Return(&llm.GenerateResponse{Response: "T"}, nil).Once()

		events, err := svc.HandleNewMessage(reqCtx, &service.SendMessageRequest{Content: "q"})
		require.NoError(t, err)
		collect(t, events)

		assert.Equal(t, "complete answer", m.store.Threads()[0].Messages[1].Content)
	})

	t.Run("Active thread receives messages without an id", func(t *testing.T) {
		svc, m := setupChatService(t)
		older := m.store.CreateThread()
		m.store.CreateThread()
		require.True(t, m.store.SetActiveThread(older))
		m.provider.On("GenerateStream", mock.Anything, mock.Anything, mock.Anything).
			Return(nil).Run(streamOf(nil, llm.StreamResponse{Content: "a"})).Once()
		m.provider.On("Generate", mock.Anything, mock.Anything).Return(&llm.GenerateResponse{Response: "T"}, nil).Once()

		events, err := svc.HandleNewMessage(ctx, &service.SendMessageRequest{Content: "q"})
		require.NoError(t, err)
		got := collect(t, events)

		assert.Equal(t, older, got[0].ThreadID)
		assert.Len(t, m.store.Threads(), 2)
	})
}

func TestChatService_ThreadManagement(t *testing.T) {
	ctx := context.Background()

	t.Run("Create, list and get", func(t *testing.T) {
		svc, _ := setupChatService(t)

		created, err := svc.CreateThread(ctx)
		require.NoError(t, err)
		assert.Equal(t, model.DefaultThreadTitle, created.Title)

		list, err := svc.ListThreads(ctx)
		require.NoError(t, err)
		require.Len(t, list.Threads, 1)
		assert.Equal(t, created.ID, list.ActiveThreadID)

		got, err := svc.GetThread(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)

		_, err = svc.GetThread(ctx, "missing")
		assert.ErrorIs(t, err, app_errors.ErrNotFound)
	})

	t.Run("Update title", func(t *testing.T) {
		svc, m := setupChatService(t)
		threadID := m.store.CreateThread()

		require.NoError(t, svc.UpdateThreadTitle(ctx, threadID, "  Renamed "))
		thread, _ := m.store.Thread(threadID)
		assert.Equal(t, "Renamed", thread.Title)

		assert.ErrorIs(t, svc.UpdateThreadTitle(ctx, threadID, " "), app_errors.ErrValidation)
		assert.ErrorIs(t, svc.UpdateThreadTitle(ctx, "missing", "x"), app_errors.ErrNotFound)
	})

	t.Run("Select and delete", func(t *testing.T) {
		svc, m := setupChatService(t)
		a := m.store.CreateThread()
		m.store.CreateThread()

		require.NoError(t, svc.SetActiveThread(ctx, a))
		assert.Equal(t, a, m.store.ActiveThreadID())
		assert.ErrorIs(t, svc.SetActiveThread(ctx, "missing"), app_errors.ErrNotFound)

		require.NoError(t, svc.DeleteThread(ctx, a))
		assert.Empty(t, m.store.ActiveThreadID())
		assert.Len(t, m.store.Threads(), 1)
		assert.ErrorIs(t, svc.DeleteThread(ctx, a), app_errors.ErrNotFound)
	})
}
