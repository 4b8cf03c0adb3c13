package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/a11ytools/alt-text-mcp/internal/imaging"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultVisionModel   = "gpt-4o-mini"
)

// systemPrompt frames the captioning request for the vision model.
const systemPrompt = `You are an accessibility expert specializing in creating descriptive alt text for images.
Generate 3 different alt text options that are:
1. Descriptive and specific
2. Concise but informative (under 125 characters when possible)
3. Focused on the image's purpose and context
4. Accessible to screen reader users
5. Varied in detail level (brief, moderate, detailed)

Consider the page context provided and prioritize information that would be most valuable to someone who cannot see the image.
Return one alt text option per line, briefest first, with no numbering or commentary.`

// OpenAICaptioner calls an OpenAI-compatible chat-completions endpoint with
// the image attached, and turns each non-empty response line into a caption.
type OpenAICaptioner struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewOpenAICaptioner creates a captioner for the given API key. Empty
// baseURL and model select the OpenAI defaults.
func NewOpenAICaptioner(apiKey, baseURL, model string) *OpenAICaptioner {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if model == "" {
		model = defaultVisionModel
	}
	return &OpenAICaptioner{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []chatContent `json:"content"`
}

type chatContent struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *chatImageURL `json:"image_url,omitempty"`
}

type chatImageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Caption sends the image and prompt to the model and parses one caption
// per non-empty response line. Confidence decays by rank since the API
// reports none.
func (c *OpenAICaptioner) Caption(ctx context.Context, img *imaging.Input, prompt string) ([]Caption, error) {
	imageRef, err := imageReference(img)
	if err != nil {
		return nil, err
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: []chatContent{{Type: "text", Text: systemPrompt}},
			},
			{
				Role: "user",
				Content: []chatContent{
					{Type: "text", Text: prompt},
					{Type: "image_url", ImageURL: &chatImageURL{URL: imageRef}},
				},
			},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode vision request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build vision request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vision request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read vision response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode vision response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("vision API error: %s", parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vision API returned status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("vision API returned no choices")
	}

	captions := parseCaptions(parsed.Choices[0].Message.Content)
	if len(captions) == 0 {
		return nil, fmt.Errorf("vision API returned no captions")
	}
	return captions, nil
}

// imageReference renders an Input as an image_url value: the original URL
// when one exists, otherwise a base64 data URL.
func imageReference(img *imaging.Input) (string, error) {
	if img == nil {
		return "", fmt.Errorf("no image input")
	}
	if img.URL != "" {
		return img.URL, nil
	}
	if len(img.Data) == 0 {
		return "", fmt.Errorf("empty image input")
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(img.Data), nil
}

func parseCaptions(content string) []Caption {
	var captions []Caption
	confidence := 0.90
	for _, line := range strings.Split(content, "\n") {
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		captions = append(captions, Caption{Text: text, Confidence: confidence})
		if confidence > 0.70 {
			confidence -= 0.05
		}
	}
	return captions
}
