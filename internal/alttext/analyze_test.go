package alttext

import (
	"context"
	"testing"
)

func TestAnalyzeImageContext_WithCurrentAlt(t *testing.T) {
	gen := newFixtureGenerator()

	result := gen.AnalyzeImageContext(context.Background(), "https://example.com/a.jpg", "A red bicycle")

	analysis, ok := result.(*ContextAnalysis)
	if !ok {
		t.Fatalf("expected *ContextAnalysis, got %T", result)
	}

	if analysis.IsDecorative {
		t.Error("IsDecorative: want false")
	}
	if analysis.ContainsText {
		t.Error("ContainsText: want false")
	}
	if analysis.ComplexityLevel != "moderate" {
		t.Errorf("ComplexityLevel: got %q, want moderate", analysis.ComplexityLevel)
	}
	if analysis.RecommendedApproach != "descriptive" {
		t.Errorf("RecommendedApproach: got %q, want descriptive", analysis.RecommendedApproach)
	}
	if len(analysis.WCAGConsiderations) != 3 {
		t.Errorf("WCAGConsiderations: got %d entries, want 3", len(analysis.WCAGConsiderations))
	}

	eval := analysis.CurrentAltEvaluation
	if eval.Text != "A red bicycle" {
		t.Errorf("eval text: got %q", eval.Text)
	}
	if eval.Length != len("A red bicycle") {
		t.Errorf("eval length: got %d, want %d", eval.Length, len("A red bicycle"))
	}
	if eval.QualityScore != 0.5 {
		t.Errorf("eval quality: got %v, want 0.5", eval.QualityScore)
	}
	if len(eval.Recommendations) == 0 || eval.Recommendations[0] != "Consider more descriptive language" {
		t.Errorf("first recommendation: got %v", eval.Recommendations)
	}
}

func TestAnalyzeImageContext_MissingCurrentAlt(t *testing.T) {
	gen := newFixtureGenerator()

	result := gen.AnalyzeImageContext(context.Background(), "https://example.com/a.jpg", "")

	analysis, ok := result.(*ContextAnalysis)
	if !ok {
		t.Fatalf("expected *ContextAnalysis, got %T", result)
	}

	eval := analysis.CurrentAltEvaluation
	if eval.Length != 0 {
		t.Errorf("eval length: got %d, want 0", eval.Length)
	}
	if eval.QualityScore != 0.0 {
		t.Errorf("eval quality: got %v, want 0", eval.QualityScore)
	}
	if len(eval.Recommendations) == 0 || eval.Recommendations[0] != "Add descriptive alt text" {
		t.Errorf("first recommendation: got %v", eval.Recommendations)
	}
}

func TestAnalyzeImageContext_InvalidImage(t *testing.T) {
	gen := newFixtureGenerator()

	result := gen.AnalyzeImageContext(context.Background(), "!!not-base64!!", "alt")

	errResult, ok := result.(*AnalysisResult)
	if !ok {
		t.Fatalf("expected error envelope *AnalysisResult, got %T", result)
	}
	if errResult.Success {
		t.Error("expected success false")
	}
	if errResult.Error != "Invalid image format or size" {
		t.Errorf("Error: got %q", errResult.Error)
	}
}
