package server

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/a11ytools/alt-text-mcp/internal/alttext"
)

// callTool routes a tools/call request and decodes the embedded tool
// payload from the response's content block.
func callTool(t *testing.T, s *Server, id interface{}, params string) (*MCPResponse, string) {
	t.Helper()

	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0",
		ID:      id,
		Method:  "tools/call",
		Params:  json.RawMessage(params),
	})
	if resp == nil {
		t.Fatal("expected a response")
	}
	if resp.Error != nil {
		return resp, ""
	}

	encoded, err := json.Marshal(resp.Result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(encoded, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if len(result.Content) != 1 {
		t.Fatalf("expected 1 content block, got %d", len(result.Content))
	}
	if result.Content[0].Type != "text" {
		t.Fatalf("content type: got %q", result.Content[0].Type)
	}
	return resp, result.Content[0].Text
}

func TestToolsCall_GenerateAltText(t *testing.T) {
	s := newTestServer()

	resp, text := callTool(t, s, 11,
		`{"name":"generate_alt_text","arguments":{"image_data":"https://x/y.jpg","context":{"page_topic":"ecommerce"}}}`)

	if resp.ID != 11 {
		t.Errorf("ID not echoed: got %v", resp.ID)
	}

	var result alttext.AnalysisResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		t.Fatalf("content text is not valid JSON: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}
	if len(result.AltSuggestions) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(result.AltSuggestions))
	}
	if result.AltSuggestions[0].Type != "brief" {
		t.Errorf("first suggestion type: got %q, want brief", result.AltSuggestions[0].Type)
	}
	if result.AccessibilityAnalysis == nil {
		t.Error("missing accessibility_analysis")
	}
}

func TestToolsCall_AnalyzeImageContext(t *testing.T) {
	s := newTestServer()

	_, text := callTool(t, s, "a-1",
		`{"name":"analyze_image_context","arguments":{"image_data":"https://x/y.jpg","current_alt":"old alt"}}`)

	var analysis struct {
		ComplexityLevel      string `json:"complexity_level"`
		CurrentAltEvaluation struct {
			Length       int     `json:"length"`
			QualityScore float64 `json:"quality_score"`
		} `json:"current_alt_evaluation"`
	}
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		t.Fatalf("content text is not valid JSON: %v", err)
	}
	if analysis.ComplexityLevel != "moderate" {
		t.Errorf("complexity_level: got %q", analysis.ComplexityLevel)
	}
	if analysis.CurrentAltEvaluation.Length != len("old alt") {
		t.Errorf("evaluation length: got %d", analysis.CurrentAltEvaluation.Length)
	}
	if analysis.CurrentAltEvaluation.QualityScore != 0.5 {
		t.Errorf("evaluation quality: got %v", analysis.CurrentAltEvaluation.QualityScore)
	}
}

func TestToolsCall_ValidateAltTextQuality(t *testing.T) {
	s := newTestServer()

	_, text := callTool(t, s, 5,
		`{"name":"validate_alt_text_quality","arguments":{"alt_text":"Hi","image_data":"https://x/y.jpg"}}`)

	var report alttext.QualityReport
	if err := json.Unmarshal([]byte(text), &report); err != nil {
		t.Fatalf("content text is not valid JSON: %v", err)
	}
	if report.QualityScore != 2.0/50 {
		t.Errorf("quality_score: got %v, want %v", report.QualityScore, 2.0/50)
	}
	if len(report.Issues) != 1 || report.Issues[0] != "Alt text too brief" {
		t.Errorf("issues: got %v", report.Issues)
	}
}

func TestToolsCall_UnknownTool(t *testing.T) {
	s := newTestServer()

	resp, _ := callTool(t, s, 8, `{"name":"image_ocr_full","arguments":{}}`)

	if resp.Error == nil {
		t.Fatal("expected error response")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("code: got %d, want -32000", resp.Error.Code)
	}
	data, _ := resp.Error.Data.(string)
	if !strings.Contains(data, "image_ocr_full") {
		t.Errorf("error data should name the tool: %q", data)
	}
}

func TestToolsCall_InvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		params string
	}{
		{"no params", ``},
		{"params not an object", `"zap"`},
		{"missing tool name", `{"arguments":{}}`},
		{"arguments not an object", `{"name":"generate_alt_text","arguments":[1,2]}`},
		{"missing required image_data", `{"name":"generate_alt_text","arguments":{"context":{}}}`},
		{"missing one of two required", `{"name":"validate_alt_text_quality","arguments":{"alt_text":"x"}}`},
		{"no arguments at all", `{"name":"validate_alt_text_quality"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer()
			resp, _ := callTool(t, s, 1, tt.params)
			if resp.Error == nil {
				t.Fatal("expected error response")
			}
			if resp.Error.Code != -32602 {
				t.Errorf("code: got %d, want -32602", resp.Error.Code)
			}
		})
	}
}

func TestToolsCall_BadImageStaysInsideResult(t *testing.T) {
	s := newTestServer()

	// A known tool with an undecodable image must answer with a normal
	// result carrying the error envelope, not a JSON-RPC error.
	resp, text := callTool(t, s, 2,
		`{"name":"generate_alt_text","arguments":{"image_data":"%%%"}}`)

	if resp.Error != nil {
		t.Fatalf("fault leaked as protocol error: %+v", resp.Error)
	}

	var result alttext.AnalysisResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		t.Fatalf("content text is not valid JSON: %v", err)
	}
	if result.Success {
		t.Error("expected success false")
	}
	if result.Error != "Invalid image format or size" {
		t.Errorf("error: got %q", result.Error)
	}
	if len(result.AltSuggestions) != 1 || result.AltSuggestions[0].Type != "fallback" {
		t.Errorf("expected single fallback suggestion, got %v", result.AltSuggestions)
	}
}

func TestToolsCall_OptionalArgumentsOmitted(t *testing.T) {
	s := newTestServer()

	resp, text := callTool(t, s, 3,
		`{"name":"generate_alt_text","arguments":{"image_data":"https://x/y.jpg"}}`)
	if resp.Error != nil {
		t.Fatalf("optional context should not be required: %+v", resp.Error)
	}

	var result alttext.AnalysisResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		t.Fatalf("content text is not valid JSON: %v", err)
	}
	if !result.Success {
		t.Errorf("expected success, got %q", result.Error)
	}
	if string(result.ContextUsed) != "{}" {
		t.Errorf("context_used: got %s, want {}", result.ContextUsed)
	}
}
