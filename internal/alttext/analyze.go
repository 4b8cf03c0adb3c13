package alttext

import (
	"context"
	"log"
	"unicode/utf8"

	"github.com/a11ytools/alt-text-mcp/internal/vision"
)

// CurrentAltEvaluation scores whatever alt text the image currently has.
type CurrentAltEvaluation struct {
	Text            string   `json:"text"`
	Length          int      `json:"length"`
	QualityScore    float64  `json:"quality_score"`
	Recommendations []string `json:"recommendations"`
}

// ContextAnalysis is the payload returned by analyze_image_context: the
// accessibility analysis augmented with an evaluation of the existing alt
// text.
type ContextAnalysis struct {
	*vision.Accessibility
	CurrentAltEvaluation CurrentAltEvaluation `json:"current_alt_evaluation"`
}

// AnalyzeImageContext resolves and analyzes the image and evaluates the
// current alt text. On any fault it returns the standardized error
// envelope instead, so callers always have a well-formed payload.
func (g *Generator) AnalyzeImageContext(ctx context.Context, imageData, currentAlt string) any {
	img, err := g.source.Resolve(ctx, imageData)
	if err != nil {
		log.Printf("image input rejected: %v", err)
		return errorResult("Invalid image format or size")
	}

	analysis, err := g.analyzer.Analyze(ctx, img)
	if err != nil {
		log.Printf("accessibility analysis failed: %v", err)
		return errorResult("Analysis failed: " + err.Error())
	}

	return &ContextAnalysis{
		Accessibility:        analysis,
		CurrentAltEvaluation: evaluateCurrentAlt(currentAlt),
	}
}

// evaluateCurrentAlt applies the fixed scoring for existing alt text: a flat
// 0.5 for any non-empty text, 0.0 otherwise.
func evaluateCurrentAlt(currentAlt string) CurrentAltEvaluation {
	eval := CurrentAltEvaluation{
		Text:   currentAlt,
		Length: utf8.RuneCountInString(currentAlt),
	}

	if currentAlt != "" {
		eval.QualityScore = 0.5
		eval.Recommendations = []string{
			"Consider more descriptive language",
			"Ensure essential information is conveyed",
			"Keep under 125 characters when possible",
		}
	} else {
		eval.QualityScore = 0.0
		eval.Recommendations = []string{
			"Add descriptive alt text",
			"Ensure essential information is conveyed",
			"Keep under 125 characters when possible",
		}
	}

	return eval
}
