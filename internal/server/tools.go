package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools in declaration order.
// The slice is built once at server construction and never mutated.
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "generate_alt_text",
			Description: "Generate descriptive alt text options for images using Computer Vision",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_data": map[string]interface{}{
						"type":        "string",
						"description": "Base64 encoded image data or image URL",
					},
					"context": map[string]interface{}{
						"type":        "object",
						"description": "Page context information",
						"properties": map[string]interface{}{
							"page_title":       map[string]interface{}{"type": "string"},
							"surrounding_text": map[string]interface{}{"type": "string"},
							"image_filename":   map[string]interface{}{"type": "string"},
							"page_topic":       map[string]interface{}{"type": "string"},
							"element_role":     map[string]interface{}{"type": "string"},
						},
					},
				},
				"required": []string{"image_data"},
			},
		},
		{
			Name:        "analyze_image_context",
			Description: "Analyze image for accessibility context and recommendations",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_data": map[string]interface{}{
						"type": "string",
					},
					"current_alt": map[string]interface{}{
						"type":        "string",
						"description": "Existing alt text if any",
					},
					"context": map[string]interface{}{
						"type": "object",
					},
				},
				"required": []string{"image_data"},
			},
		},
		{
			Name:        "validate_alt_text_quality",
			Description: "Validate and score existing alt text quality",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"alt_text": map[string]interface{}{
						"type": "string",
					},
					"image_data": map[string]interface{}{
						"type": "string",
					},
					"context": map[string]interface{}{
						"type": "object",
					},
				},
				"required": []string{"alt_text", "image_data"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": s.tools,
		},
	}
}

// findTool looks up a registered tool by name.
func (s *Server) findTool(name string) (*Tool, bool) {
	for i := range s.tools {
		if s.tools[i].Name == name {
			return &s.tools[i], true
		}
	}
	return nil, false
}

// missingRequired returns the names of required schema fields absent from
// args, in schema declaration order. Only presence is checked; types are
// left to the individual handlers.
func missingRequired(schema map[string]interface{}, args map[string]interface{}) []string {
	required, ok := schema["required"].([]string)
	if !ok {
		return nil
	}

	var missing []string
	for _, field := range required {
		if _, present := args[field]; !present {
			missing = append(missing, field)
		}
	}
	return missing
}
