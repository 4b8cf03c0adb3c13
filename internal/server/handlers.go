package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/a11ytools/alt-text-mcp/internal/alttext"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "generate_alt_text").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Malformed params and missing required arguments return -32602; an
// unregistered tool name returns -32000. Faults inside a known tool's
// handler are reported inside the result payload (success:false), never as
// a JSON-RPC error.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	if len(req.Params) == 0 {
		return s.errorResponse(req.ID, -32602, "Invalid params", "missing params")
	}

	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}
	if params.Name == "" {
		return s.errorResponse(req.ID, -32602, "Invalid params", "missing tool name")
	}

	tool, ok := s.findTool(params.Name)
	if !ok {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", fmt.Sprintf("unknown tool: %s", params.Name))
	}

	args := map[string]interface{}{}
	if len(params.Arguments) > 0 {
		if err := json.Unmarshal(params.Arguments, &args); err != nil {
			return s.errorResponse(req.ID, -32602, "Invalid params", "arguments must be an object")
		}
	}
	if missing := missingRequired(tool.InputSchema, args); len(missing) > 0 {
		return s.errorResponse(req.ID, -32602, "Invalid params",
			fmt.Sprintf("missing required arguments: %s", strings.Join(missing, ", ")))
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "generate_alt_text":
		return s.handleGenerateAltText(ctx, args)
	case "analyze_image_context":
		return s.handleAnalyzeImageContext(ctx, args)
	case "validate_alt_text_quality":
		return s.handleValidateAltTextQuality(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Tool Handlers ===

type generateAltTextArgs struct {
	ImageData string          `json:"image_data"`
	Context   json.RawMessage `json:"context"`
}

func (s *Server) handleGenerateAltText(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a generateAltTextArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.generator.GenerateAltText(ctx, a.ImageData, a.Context), nil
}

type analyzeImageContextArgs struct {
	ImageData  string          `json:"image_data"`
	CurrentAlt string          `json:"current_alt"`
	Context    json.RawMessage `json:"context"`
}

func (s *Server) handleAnalyzeImageContext(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a analyzeImageContextArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.generator.AnalyzeImageContext(ctx, a.ImageData, a.CurrentAlt), nil
}

type validateAltTextQualityArgs struct {
	AltText   string          `json:"alt_text"`
	ImageData string          `json:"image_data"`
	Context   json.RawMessage `json:"context"`
}

func (s *Server) handleValidateAltTextQuality(args json.RawMessage) (interface{}, error) {
	var a validateAltTextQualityArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	// image_data is required by the schema but scoring is text-only.
	return alttext.ValidateAltTextQuality(a.AltText), nil
}
