package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	app_errors "kenotrix/backend/internal/errors"
	"kenotrix/backend/internal/markdown"
	"kenotrix/backend/internal/model"
)

// This file contains shared DTOs (Data Transfer Objects) for API responses
// and helper functions for sending consistent HTTP responses.

// ErrorResponse defines the standard JSON structure for error messages.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse defines a generic success response for operations such as
// PUT and DELETE that don't need to return a full resource.
type StatusResponse struct {
	Status string `json:"status"`
}

// UpdateTitleRequest is the DTO for the manual thread title update endpoint.
// Its validation tags enforce the title rules at the API boundary.
type UpdateTitleRequest struct {
	Title string `json:"title" validate:"required,min=1,max=100" example:"Jazz Origins"`
}

// RenderRequest is the DTO for the markdown rendering endpoint. Any text is
// accepted, including an empty one.
type RenderRequest struct {
	Text string `json:"text" example:"**Bold** and [a link](https://example.com)"`
}

// RenderResponse carries the rendered blocks of a text.
type RenderResponse struct {
	Blocks []markdown.Block `json:"blocks"`
}

// TranscriptResponse is the result of a voice recognition.
type TranscriptResponse struct {
	Transcript string `json:"transcript"`
}

// MessageView is a message as shown to the client. Model messages carry
// their content pre-rendered as blocks.
type MessageView struct {
	model.Message
	Blocks []markdown.Block `json:"blocks,omitempty"`
}

// ThreadView is a thread with rendered messages.
type ThreadView struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	UpdatedAt int64         `json:"updatedAt"`
	Messages  []MessageView `json:"messages"`
}

// newThreadView copies a thread into its client view. Only model messages are
// rendered; user messages are shown verbatim.
func newThreadView(t *model.Thread) ThreadView {
	view := ThreadView{ID: t.ID, Title: t.Title, UpdatedAt: t.UpdatedAt, Messages: make([]MessageView, len(t.Messages))}
	for i, m := range t.Messages {
		view.Messages[i] = MessageView{Message: m}
		if m.Role == model.RoleModel {
			view.Messages[i].Blocks = markdown.Render(m.Content)
		}
	}
	return view
}

// respondWithError is the centralized error handling function for the API
// layer. It maps business-layer errors to HTTP status codes and writes a
// standard JSON error response.
func respondWithError(w http.ResponseWriter, err error) {
	var statusCode int
	var message string

	switch {
	case errors.Is(err, app_errors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "The requested resource was not found."
	case errors.Is(err, app_errors.ErrValidation):
		statusCode = http.StatusBadRequest
		// Validation messages are already written for the user.
		message = err.Error()
	case errors.Is(err, app_errors.ErrUnsupported):
		statusCode = http.StatusNotImplemented
		// The message names the missing capability, e.g. speech recognition.
		message = err.Error()
	default:
		// Any unhandled error is an internal server error. Its details are
		// not sent to the client.
		statusCode = http.StatusInternalServerError
		message = "An unexpected internal server error occurred."
	}

	// The original error is logged for debugging, while the client only
	// sees the message chosen above.
	slog.Warn("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)

	respondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondWithJSON is a low-level helper for marshaling a payload to JSON and
// writing it to the http.ResponseWriter with a given status code.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		// This indicates a programming error, e.g. a payload holding a channel.
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

// writeStreamEvent marshals data and writes it as one named Server-Sent Event.
// The `event:` line lets clients register a listener per event type, e.g.
// `eventSource.addEventListener('chunk', ...)`. It returns an error on write
// failure, which signals that the client has disconnected.
func writeStreamEvent(w http.ResponseWriter, event string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		slog.Error("Failed to marshal stream data to JSON", "error", err)
		// Don't report this to the caller: the connection is fine, only this
		// payload could not be encoded.
		return nil
	}

	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		// A write failure here almost always means a closed connection.
		return fmt.Errorf("failed to write data to stream: %w", err)
	}

	// Flush so the event reaches the client now rather than when a buffer fills.
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}
