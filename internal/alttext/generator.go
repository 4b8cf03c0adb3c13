package alttext

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/a11ytools/alt-text-mcp/internal/imaging"
	"github.com/a11ytools/alt-text-mcp/internal/vision"
)

// fallbackText is the suggestion offered when generation fails entirely.
const fallbackText = "Image description unavailable - please add manual alt text"

// suggestionTypes maps caption rank to the suggestion detail level.
var suggestionTypes = []string{"brief", "moderate", "detailed"}

// PageContext carries the page metadata a client may supply alongside an
// image.
type PageContext struct {
	PageTitle       string `json:"page_title,omitempty"`
	SurroundingText string `json:"surrounding_text,omitempty"`
	ImageFilename   string `json:"image_filename,omitempty"`
	PageTopic       string `json:"page_topic,omitempty"`
	ElementRole     string `json:"element_role,omitempty"`
}

// Suggestion is a single alt text candidate. Length is always the rune
// count of Text.
type Suggestion struct {
	Type       string  `json:"type"`
	Text       string  `json:"text"`
	Length     int     `json:"length"`
	Confidence float64 `json:"confidence"`
}

// NewSuggestion builds a Suggestion with Length derived from the text.
func NewSuggestion(kind, text string, confidence float64) Suggestion {
	return Suggestion{
		Type:       kind,
		Text:       text,
		Length:     utf8.RuneCountInString(text),
		Confidence: confidence,
	}
}

// AnalysisResult is the payload returned by generate_alt_text. On failure
// Success is false, Error is set, and AltSuggestions holds a single
// fallback entry.
type AnalysisResult struct {
	Success               bool                  `json:"success"`
	Error                 string                `json:"error,omitempty"`
	AltSuggestions        []Suggestion          `json:"alt_suggestions"`
	AccessibilityAnalysis *vision.Accessibility `json:"accessibility_analysis,omitempty"`
	ContextUsed           json.RawMessage       `json:"context_used,omitempty"`
}

// Generator produces alt text suggestions and accessibility analyses
// through the configured image source, captioner, and analyzer.
type Generator struct {
	source    imaging.Resolver
	captioner vision.Captioner
	analyzer  vision.Analyzer
}

// NewGenerator wires a Generator from its collaborators.
func NewGenerator(source imaging.Resolver, captioner vision.Captioner, analyzer vision.Analyzer) *Generator {
	return &Generator{
		source:    source,
		captioner: captioner,
		analyzer:  analyzer,
	}
}

// GenerateAltText resolves the image, captions it with the page context,
// and assembles the full analysis result. Failures are reported inside the
// result envelope, never as a Go error.
func (g *Generator) GenerateAltText(ctx context.Context, imageData string, pageContext json.RawMessage) *AnalysisResult {
	contextUsed := normalizeContext(pageContext)

	var pc PageContext
	if len(pageContext) > 0 {
		// A context that is not an object is treated as absent.
		_ = json.Unmarshal(pageContext, &pc)
	}

	img, err := g.source.Resolve(ctx, imageData)
	if err != nil {
		log.Printf("image input rejected: %v", err)
		return errorResult("Invalid image format or size")
	}

	captions, err := g.captioner.Caption(ctx, img, BuildPrompt(pc))
	if err != nil {
		log.Printf("caption generation failed: %v", err)
		return errorResult(fmt.Sprintf("Analysis failed: %v", err))
	}

	analysis, err := g.analyzer.Analyze(ctx, img)
	if err != nil {
		log.Printf("accessibility analysis failed: %v", err)
		return errorResult(fmt.Sprintf("Analysis failed: %v", err))
	}

	return &AnalysisResult{
		Success:               true,
		AltSuggestions:        suggestionsFromCaptions(captions),
		AccessibilityAnalysis: analysis,
		ContextUsed:           contextUsed,
	}
}

// BuildPrompt renders the page context as the line-oriented prompt the
// captioners consume. An empty context yields a fixed placeholder.
//
// Field values are flattened onto one line each, so a newline inside a
// value cannot forge another context line.
func BuildPrompt(pc PageContext) string {
	var parts []string

	if pc.PageTitle != "" {
		parts = append(parts, "Page title: "+flattenLine(pc.PageTitle))
	}
	if pc.SurroundingText != "" {
		parts = append(parts, "Surrounding text: "+truncateRunes(flattenLine(pc.SurroundingText), 200)+"...")
	}
	if pc.ImageFilename != "" {
		parts = append(parts, "Image filename: "+flattenLine(pc.ImageFilename))
	}
	if pc.PageTopic != "" {
		parts = append(parts, "Page topic: "+flattenLine(pc.PageTopic))
	}

	if len(parts) == 0 {
		return "No additional context available."
	}
	return strings.Join(parts, "\n")
}

func flattenLine(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

// suggestionsFromCaptions assigns detail levels by rank: brief, moderate,
// then detailed for everything after.
func suggestionsFromCaptions(captions []vision.Caption) []Suggestion {
	suggestions := make([]Suggestion, 0, len(captions))
	for i, c := range captions {
		kind := suggestionTypes[len(suggestionTypes)-1]
		if i < len(suggestionTypes) {
			kind = suggestionTypes[i]
		}
		suggestions = append(suggestions, NewSuggestion(kind, c.Text, c.Confidence))
	}
	return suggestions
}

// errorResult builds the standardized failure envelope.
func errorResult(message string) *AnalysisResult {
	return &AnalysisResult{
		Success:        false,
		Error:          message,
		AltSuggestions: []Suggestion{NewSuggestion("fallback", fallbackText, 0.0)},
	}
}

// normalizeContext echoes the caller's context object, substituting an
// empty object when none was supplied.
func normalizeContext(pageContext json.RawMessage) json.RawMessage {
	if len(pageContext) == 0 || string(pageContext) == "null" {
		return json.RawMessage(`{}`)
	}
	return pageContext
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
