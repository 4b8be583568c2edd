package parser

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModelName is the Gemini model used for message classification.
const DefaultModelName = "gemini-2.5-flash"

// TextModel is the single-round-trip completion capability the parser
// consumes: an instruction document plus one user message in, raw model
// text out. Implementations own their own timeouts and auth.
type TextModel interface {
	Generate(ctx context.Context, instructions, message string) (string, error)
}

// GeminiModel implements TextModel on top of the GenAI SDK. The client
// is created once at startup and reused for every message; the API key
// comes from the environment (GEMINI_API_KEY or GOOGLE_API_KEY).
type GeminiModel struct {
	client *genai.Client
	model  string
}

// NewGeminiModel creates the long-lived Gemini client. An empty model
// name selects DefaultModelName.
func NewGeminiModel(ctx context.Context, model string) (*GeminiModel, error) {
	if model == "" {
		model = DefaultModelName
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("NewGeminiModel: create genai client: %w", err)
	}
	return &GeminiModel{client: client, model: model}, nil
}

// Generate performs exactly one generate-content round trip.
func (g *GeminiModel) Generate(ctx context.Context, instructions, message string) (string, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: instructions + "\n\nMensaje del usuario:\n" + message},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("Generate: generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return "", fmt.Errorf("Generate: empty response from model")
	}
	return rawText, nil
}
