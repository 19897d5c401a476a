package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"kenotrix/backend/internal/interfaces"
	"kenotrix/backend/internal/service"
)

type ChatHandler struct {
	service interfaces.ChatService
}

func NewChatHandler(svc interfaces.ChatService) *ChatHandler {
	return &ChatHandler{service: svc}
}

// GetThreads godoc
// @Summary      List threads
// @Description  Returns every thread, newest first, and the id of the active thread.
// @Tags         Threads
// @Produce      json
// @Success      200  {object}  service.ThreadList
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/threads [get]
func (h *ChatHandler) GetThreads(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListThreads(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, list)
}

// CreateThread godoc
// @Summary      Start a new thread
// @Description  Creates an empty thread and makes it the active one.
// @Tags         Threads
// @Produce      json
// @Success      201  {object}  ThreadView
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/threads [post]
func (h *ChatHandler) CreateThread(w http.ResponseWriter, r *http.Request) {
	thread, err := h.service.CreateThread(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, newThreadView(thread))
}

// GetThread godoc
// @Summary      Get a thread
// @Description  Returns a thread with its messages. Model messages include rendered markdown blocks.
// @Tags         Threads
// @Produce      json
// @Param        threadID  path      string  true  "Thread ID"
// @Success      200       {object}  ThreadView
// @Failure      404       {object}  ErrorResponse
// @Router       /v1/threads/{threadID} [get]
func (h *ChatHandler) GetThread(w http.ResponseWriter, r *http.Request) {
	thread, err := h.service.GetThread(r.Context(), chi.URLParam(r, "threadID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, newThreadView(thread))
}

// UpdateThreadTitle godoc
// @Summary      Rename a thread
// @Tags         Threads
// @Accept       json
// @Produce      json
// @Param        threadID  path      string              true  "Thread ID"
// @Param        request   body      UpdateTitleRequest  true  "New title"
// @Success      200       {object}  StatusResponse
// @Failure      400       {object}  ErrorResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /v1/threads/{threadID}/title [put]
func (h *ChatHandler) UpdateThreadTitle(w http.ResponseWriter, r *http.Request) {
	var req UpdateTitleRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.service.UpdateThreadTitle(r.Context(), chi.URLParam(r, "threadID"), req.Title); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// SetActiveThread godoc
// @Summary      Open a thread
// @Description  Makes the thread the target of messages sent without a thread id.
// @Tags         Threads
// @Produce      json
// @Param        threadID  path      string  true  "Thread ID"
// @Success      200       {object}  StatusResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /v1/threads/{threadID}/active [put]
func (h *ChatHandler) SetActiveThread(w http.ResponseWriter, r *http.Request) {
	if err := h.service.SetActiveThread(r.Context(), chi.URLParam(r, "threadID")); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// ClearActiveThread godoc
// @Summary      Return to the home view
// @Description  Clears the thread selection; the next message starts a new thread.
// @Tags         Threads
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /v1/threads/active [delete]
func (h *ChatHandler) ClearActiveThread(w http.ResponseWriter, r *http.Request) {
	if err := h.service.SetActiveThread(r.Context(), ""); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// DeleteThread godoc
// @Summary      Delete a thread
// @Tags         Threads
// @Produce      json
// @Param        threadID  path      string  true  "Thread ID"
// @Success      200       {object}  StatusResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /v1/threads/{threadID} [delete]
func (h *ChatHandler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteThread(r.Context(), chi.URLParam(r, "threadID")); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleStreamMessage godoc
// @Summary      Send a message
// @Description  Appends a user message and streams the answer as Server-Sent Events named start, chunk, sources, title and done.
// @Description  Blank content is ignored with 204.
// @Tags         Messages
// @Accept       json
// @Produce      text/event-stream
// @Param        request  body      service.SendMessageRequest  true  "Message"
// @Success      200      {object}  model.StreamEvent
// @Success      204
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /v1/messages [post]
func (h *ChatHandler) HandleStreamMessage(w http.ResponseWriter, r *http.Request) {
	var req service.SendMessageRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	events, err := h.service.HandleNewMessage(r.Context(), &req)
	if err != nil {
		respondWithError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// The exchange keeps running after a disconnect, so the channel is
	// drained to the end either way.
	connected := true
	for ev := range events {
		if !connected {
			continue
		}
		if r.Context().Err() != nil {
			slog.Info("Client disconnected, finishing exchange in the background", "thread_id", ev.ThreadID)
			connected = false
			continue
		}
		if err := writeStreamEvent(w, string(ev.Type), ev); err != nil {
			slog.Warn("Failed to write stream event", "error", err)
			connected = false
		}
	}
	slog.Debug("Finished streaming response")
}
