package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"resume-parser/internal/llm"
	"resume-parser/internal/shared/telemetry"
)

const DefaultModel = "gemini-1.5-flash"

// Client implements llm.Client for Google Gemini in JSON response mode.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini client. Close releases the underlying connection.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// ExtractProfile generates one JSON completion and returns its text exactly as
// the model sent it, or "{}" when the response has no text parts. Markdown
// fences are not stripped; JSON response mode does not emit them.
func (c *Client) ExtractProfile(ctx context.Context, input llm.ExtractInput) (string, error) {
	messages := llm.BuildMessages(input)
	system, history, last := splitMessages(messages)

	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0)
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = genai.NewUserContent(genai.Text(system))

	session := model.StartChat()
	session.History = history
	resp, err := session.SendMessage(ctx, genai.Text(last))
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	fields := map[string]any{
		"provider":    "gemini",
		"model":       c.model,
		"prompt_hash": llm.PromptHash(messages),
	}
	if resp.UsageMetadata != nil {
		fields["prompt_tokens"] = resp.UsageMetadata.PromptTokenCount
		fields["completion_tokens"] = resp.UsageMetadata.CandidatesTokenCount
		fields["total_tokens"] = resp.UsageMetadata.TotalTokenCount
	}
	telemetry.Info("llm.response", fields)

	return responseText(resp), nil
}

// Close releases resources held by the client.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// splitMessages maps the neutral conversation onto Gemini's system
// instruction, prior turns and the final user turn.
func splitMessages(messages []llm.Message) (string, []*genai.Content, string) {
	var system []string
	var turns []llm.Message
	for _, m := range messages {
		if m.Role == llm.RoleSystem {
			system = append(system, m.Content)
			continue
		}
		turns = append(turns, m)
	}
	if len(turns) == 0 {
		return strings.Join(system, "\n\n"), nil, ""
	}

	history := make([]*genai.Content, 0, len(turns)-1)
	for _, m := range turns[:len(turns)-1] {
		role := "user"
		if m.Role == llm.RoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(m.Content)}})
	}
	return strings.Join(system, "\n\n"), history, turns[len(turns)-1].Content
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return llm.EmptyCompletion
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return llm.EmptyCompletion
	}
	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return llm.EmptyCompletion
	}
	return strings.Join(parts, "")
}

var _ llm.Client = (*Client)(nil)
