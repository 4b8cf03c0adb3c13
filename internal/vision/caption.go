package vision

import (
	"context"
	"strings"

	"github.com/a11ytools/alt-text-mcp/internal/imaging"
)

// Caption is a single caption candidate produced by a Captioner.
type Caption struct {
	// Text is the caption itself.
	Text string

	// Confidence is the captioner's self-reported confidence in [0,1].
	Confidence float64
}

// Captioner generates ranked caption candidates for an image.
//
// Implementations receive the normalized image input and the context prompt
// built from page metadata, and return captions ordered from briefest to
// most detailed.
type Captioner interface {
	Caption(ctx context.Context, img *imaging.Input, prompt string) ([]Caption, error)
}

// productCaptions are returned for pages that look like product/ecommerce
// content.
var productCaptions = []Caption{
	{Text: "Product image showing key features", Confidence: 0.85},
	{Text: "Detailed product photo highlighting main functionality and design", Confidence: 0.90},
	{Text: "High-quality product photograph showcasing design, features, and build quality in professional lighting setup", Confidence: 0.88},
}

// genericCaptions are returned when no page signal matches.
var genericCaptions = []Caption{
	{Text: "Descriptive image relevant to page content", Confidence: 0.80},
	{Text: "Detailed visual content supporting the main page topic and user context", Confidence: 0.85},
	{Text: "Comprehensive visual description including key elements, composition, and contextual relevance to surrounding content", Confidence: 0.82},
}

// MockCaptioner returns canned caption sets keyed on the page-context lines
// in the prompt. It never reads image bytes.
type MockCaptioner struct{}

// NewMockCaptioner creates a MockCaptioner.
func NewMockCaptioner() *MockCaptioner {
	return &MockCaptioner{}
}

// Caption selects the product caption set when the prompt's page title
// contains "product" (case-insensitive) or its page topic is "ecommerce",
// and the generic set otherwise.
func (c *MockCaptioner) Caption(ctx context.Context, img *imaging.Input, prompt string) ([]Caption, error) {
	if promptSignalsProduct(prompt) {
		return append([]Caption(nil), productCaptions...), nil
	}
	return append([]Caption(nil), genericCaptions...), nil
}

// promptSignalsProduct inspects only the structured context lines the
// prompt builder emits, so free-form surrounding text cannot trigger the
// product branch.
func promptSignalsProduct(prompt string) bool {
	for _, line := range strings.Split(prompt, "\n") {
		if title, ok := strings.CutPrefix(line, "Page title: "); ok {
			if strings.Contains(strings.ToLower(title), "product") {
				return true
			}
		}
		if topic, ok := strings.CutPrefix(line, "Page topic: "); ok {
			if topic == "ecommerce" {
				return true
			}
		}
	}
	return false
}
