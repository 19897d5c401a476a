package llm

import "context"

// Provider is a text-generation backend.
//
// GenerateStream must close ch before returning, on every path. Content is
// sent in arrival order; a chunk with Error set reports a failure that the
// provider could not turn into a returned error.
type Provider interface {
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
	GenerateStream(ctx context.Context, req *ChatRequest, ch chan<- StreamResponse) error
}

// Message is a role-tagged turn. Role is "user" or "model".
type Message struct {
	Role    string
	Content string
}

// ChatRequest is one streamed exchange. Messages ends with the new user turn.
type ChatRequest struct {
	Model     string
	System    string
	Messages  []Message
	Grounding bool
}

// GenerateRequest is a single-prompt, non-streamed request.
type GenerateRequest struct {
	Model  string
	Prompt string
}

type GenerateResponse struct {
	Model    string
	Response string
}

// Citation is a grounding reference as reported by the provider, before deduplication.
type Citation struct {
	Title string
	URI   string
}

// StreamResponse is a single chunk of a streamed answer.
type StreamResponse struct {
	Content   string
	Citations []Citation
	Done      bool
	Error     string
}
