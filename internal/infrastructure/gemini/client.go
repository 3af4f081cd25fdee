package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(apiKey string) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-pro")
	model.SetTemperature(0.7)

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) Close() {
	c.client.Close()
}

// GenerateIcebreaker produces one short conversation opener for a fresh
// session, seeded with the pair's shared interests. Errors are for the caller
// to tolerate; a session without an icebreaker is fine.
func (c *GeminiClient) GenerateIcebreaker(ctx context.Context, sharedInterests []string) (string, error) {
	topic := "getting to know a stranger"
	if len(sharedInterests) > 0 {
		topic = strings.Join(sharedInterests, ", ")
	}

	prompt := fmt.Sprintf(`
		Two anonymous students were just matched for a 24-hour blind-date chat.
		Shared interests: %s

		Task: Write ONE short, playful opening question they could start with.
		Do not mention names or ask for identities.
		Output: just the question text, no quotes.
	`, topic)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	return strings.TrimSpace(strings.Trim(sb.String(), `"`)), nil
}
