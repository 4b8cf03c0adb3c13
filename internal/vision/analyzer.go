package vision

import (
	"context"

	"github.com/a11ytools/alt-text-mcp/internal/imaging"
)

// Accessibility describes how an image should be treated for accessibility
// purposes.
type Accessibility struct {
	// IsDecorative indicates the image conveys no information and should
	// carry empty alt text.
	IsDecorative bool `json:"is_decorative"`

	// ContainsText indicates visible text that may need transcription.
	ContainsText bool `json:"contains_text"`

	// ComplexityLevel is "simple", "moderate", or "complex".
	ComplexityLevel string `json:"complexity_level"`

	// RecommendedApproach is the suggested alt-text strategy.
	RecommendedApproach string `json:"recommended_approach"`

	// WCAGConsiderations lists guideline reminders for the author.
	WCAGConsiderations []string `json:"wcag_considerations"`
}

// Analyzer produces the accessibility analysis for an image.
type Analyzer interface {
	Analyze(ctx context.Context, img *imaging.Input) (*Accessibility, error)
}

// wcagConsiderations is the fixed reminder set attached to every analysis.
var wcagConsiderations = []string{
	"Ensure description conveys essential information",
	"Consider if image contains important text that should be transcribed",
	"Evaluate if image is purely decorative",
}

// StaticAnalyzer returns a fixed moderate/descriptive analysis without
// inspecting pixels.
type StaticAnalyzer struct{}

// NewStaticAnalyzer creates a StaticAnalyzer.
func NewStaticAnalyzer() *StaticAnalyzer {
	return &StaticAnalyzer{}
}

// Analyze returns the fixed analysis.
func (a *StaticAnalyzer) Analyze(ctx context.Context, img *imaging.Input) (*Accessibility, error) {
	return &Accessibility{
		IsDecorative:        false,
		ContainsText:        false,
		ComplexityLevel:     "moderate",
		RecommendedApproach: "descriptive",
		WCAGConsiderations:  append([]string(nil), wcagConsiderations...),
	}, nil
}
