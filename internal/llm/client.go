package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"kenotrix/backend/internal/metrics"
	"kenotrix/backend/internal/model"
)

// ErrorNotice is appended to an answer when the exchange fails.
const ErrorNotice = "\n\n*I encountered an error connecting to the knowledge base. Please try again.*"

// DefaultTitle is used whenever title generation fails or returns nothing.
const DefaultTitle = "New Conversation"

const titlePrompt = `Generate a very short, concise title (max 5 words) for a conversation starting with this message: "%s". Return ONLY the title text.`

// ClientOptions configures a Client.
type ClientOptions struct {
	Model             string
	TitleModel        string
	SystemInstruction string
}

// Client runs chat exchanges against a Provider. It never returns errors:
// failures are converted into a visible notice or a default value.
type Client struct {
	provider Provider
	opts     ClientOptions
}

func NewClient(provider Provider, opts ClientOptions) *Client {
	if opts.TitleModel == "" {
		opts.TitleModel = opts.Model
	}
	return &Client{provider: provider, opts: opts}
}

// StreamResponse performs one exchange. onChunk receives answer fragments in
// arrival order; onSources is called at most once, after a successful stream,
// with citations deduplicated by URI in first-seen order. The returned string
// is the concatenation of all fragments received from the provider, without
// the error notice.
func (c *Client) StreamResponse(
	ctx context.Context,
	history []model.Turn,
	message string,
	onChunk func(string),
	onSources func([]model.Source),
) string {
	req := &ChatRequest{
		Model:     c.opts.Model,
		System:    c.opts.SystemInstruction,
		Messages:  toMessages(history, message),
		Grounding: true,
	}

	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := make(chan StreamResponse)
	errCh := make(chan error, 1)
	go func() {
		errCh <- c.provider.GenerateStream(streamCtx, req, ch)
	}()

	var full strings.Builder
	var sources []model.Source
	seen := make(map[string]struct{})
	failed := false

	for chunk := range ch {
		if chunk.Error != "" {
			slog.Warn("Provider reported a stream error", "error", chunk.Error)
			failed = true
			cancel()
			break
		}
		if chunk.Content != "" {
			full.WriteString(chunk.Content)
			metrics.Chunks.Inc()
			if onChunk != nil {
				onChunk(chunk.Content)
			}
		}
		for _, cit := range chunk.Citations {
			if cit.URI == "" {
				continue
			}
			if _, dup := seen[cit.URI]; dup {
				continue
			}
			seen[cit.URI] = struct{}{}
			title := cit.Title
			if title == "" {
				title = model.DefaultSourceTitle
			}
			sources = append(sources, model.Source{Title: title, URI: cit.URI})
		}
	}
	// Let the provider observe the cancellation and close the channel.
	for range ch {
	}
	if err := <-errCh; err != nil {
		slog.Warn("Streaming exchange failed", "model", req.Model, "error", err)
		failed = true
	}

	if failed {
		metrics.Exchanges.WithLabelValues(metrics.OutcomeFailed).Inc()
		if onChunk != nil {
			onChunk(ErrorNotice)
		}
		return full.String()
	}

	metrics.Exchanges.WithLabelValues(metrics.OutcomeOK).Inc()
	if len(sources) > 0 {
		metrics.Citations.Add(float64(len(sources)))
		if onSources != nil {
			onSources(sources)
		}
	}
	return full.String()
}

// GenerateTitle asks for a short title for a conversation opened with message.
func (c *Client) GenerateTitle(ctx context.Context, message string) string {
	resp, err := c.provider.Generate(ctx, &GenerateRequest{
		Model:  c.opts.TitleModel,
		Prompt: fmt.Sprintf(titlePrompt, message),
	})
	if err != nil {
		slog.Warn("Failed to generate title", "error", err)
		metrics.Titles.WithLabelValues(metrics.OutcomeFallback).Inc()
		return DefaultTitle
	}

	title := strings.TrimSpace(resp.Response)
	title = strings.TrimSpace(strings.Trim(title, `"'`))
	if title == "" {
		metrics.Titles.WithLabelValues(metrics.OutcomeFallback).Inc()
		return DefaultTitle
	}
	metrics.Titles.WithLabelValues(metrics.OutcomeOK).Inc()
	return title
}

// toMessages converts history plus the new user turn. Empty turns are
// skipped because the API rejects parts without text.
func toMessages(history []model.Turn, message string) []Message {
	out := make([]Message, 0, len(history)+1)
	for _, t := range history {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		out = append(out, Message{Role: string(t.Role), Content: t.Text})
	}
	return append(out, Message{Role: string(model.RoleUser), Content: message})
}
