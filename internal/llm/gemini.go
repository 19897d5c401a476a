package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"
)

type geminiProvider struct {
	client *genai.Client
}

// NewGeminiProvider talks to the Gemini API through the genai SDK. An empty
// baseURL keeps the SDK default endpoint. A zero timeout means no client-side
// limit.
func NewGeminiProvider(baseURL, apiKey string, timeout time.Duration) (Provider, error) {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  &http.Client{Timeout: timeout},
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("could not create gemini client: %w", err)
	}
	return &geminiProvider{client: client}, nil
}

// citations extracts the web sources of the first candidate. Chunks without
// a URI are skipped.
func citations(resp *genai.GenerateContentResponse) []Citation {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	var out []Citation
	for _, c := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if c == nil || c.Web == nil || c.Web.URI == "" {
			continue
		}
		out = append(out, Citation{Title: c.Web.Title, URI: c.Web.URI})
	}
	return out
}

func (p *geminiProvider) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	resp, err := p.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("generate content failed: %w", err)
	}
	return &GenerateResponse{Model: req.Model, Response: resp.Text()}, nil
}

func (p *geminiProvider) GenerateStream(ctx context.Context, req *ChatRequest, ch chan<- StreamResponse) error {
	defer close(ch)

	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		contents = append(contents, genai.NewContentFromText(m.Content, genai.Role(m.Role)))
	}

	cfg := &genai.GenerateContentConfig{}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Grounding {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	for resp, err := range p.client.Models.GenerateContentStream(ctx, req.Model, contents, cfg) {
		if err != nil {
			return fmt.Errorf("stream generate content failed: %w", err)
		}

		chunk := StreamResponse{Content: resp.Text(), Citations: citations(resp)}
		if chunk.Content == "" && len(chunk.Citations) == 0 {
			continue
		}
		select {
		case ch <- chunk:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	select {
	case ch <- StreamResponse{Done: true}:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
