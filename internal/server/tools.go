package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func intProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

func pathProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Thumbnails
		{
			Name:        "thumbnail_create",
			Description: "Convert an HDR image (.hdr Radiance or .exr OpenEXR) into an 8-bit thumbnail. Pixels are tone mapped with a Reinhard curve, resized to the requested width keeping the aspect ratio, and saved in the format given by the output extension.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"input":  pathProp("Absolute path to the .hdr or .exr file"),
					"output": pathProp("Output path (.jpg, .png, ...). Defaults to <dir>/<stem>.jpg next to the input"),
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Thumbnail width in pixels. Default 350",
						"default":     350,
					},
				},
				"required": []string{"input"},
			},
		},
		{
			Name:        "thumbnail_preview",
			Description: "Return an existing LDR image (for example a generated thumbnail) as base64-encoded PNG, optionally scaled down to a width.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProp("Absolute path to the image file"),
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Optional maximum width. 0 keeps the original size",
						"default":     0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_info",
			Description: "Get the dimensions, format, file size and average colour of an LDR image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProp("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},

		// Screenshots
		{
			Name:        "screenshot_capture",
			Description: "Capture a rectangle of the virtual desktop. The monitor with the largest overlap is chosen and the rectangle is clamped to it before capture.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"output": pathProp("Absolute output path (.png, .jpg, ...)"),
					"x":      intProp("Left edge in virtual-desktop pixels (may be negative)"),
					"y":      intProp("Top edge in virtual-desktop pixels (may be negative)"),
					"width":  intProp("Requested width in pixels"),
					"height": intProp("Requested height in pixels"),
					"resize_width": map[string]interface{}{
						"type":        "integer",
						"description": "Optional width to resize the capture to, keeping the aspect ratio. 0 keeps the captured size",
						"default":     0,
					},
				},
				"required": []string{"output", "x", "y", "width", "height"},
			},
		},
		{
			Name:        "capture_region_resolve",
			Description: "Report which monitor would serve a capture rectangle and the clamped, monitor-relative region, without capturing. Uses the attached monitors unless a monitor list is given.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x":      intProp("Left edge in virtual-desktop pixels"),
					"y":      intProp("Top edge in virtual-desktop pixels"),
					"width":  intProp("Requested width in pixels"),
					"height": intProp("Requested height in pixels"),
					"monitors": map[string]interface{}{
						"type":        "array",
						"description": "Optional monitor layout to resolve against instead of the attached displays",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"id":     intProp("Monitor identifier"),
								"x":      intProp("Origin X"),
								"y":      intProp("Origin Y"),
								"width":  intProp("Width in pixels"),
								"height": intProp("Height in pixels"),
							},
						},
					},
				},
				"required": []string{"x", "y", "width", "height"},
			},
		},
		{
			Name:        "monitors_list",
			Description: "List the attached monitors with their origin and size in virtual-desktop pixels.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Pixel transforms
		{
			Name:        "gamma_correct",
			Description: "Apply a gamma lookup table to an LDR image file in place. The correction is one-shot: applying it twice brightens the image twice.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProp("Absolute path to the image file"),
					"inverse_gamma": map[string]interface{}{
						"type":        "number",
						"description": "Exponent applied to normalised values. Default 1/2.2 (sRGB encode)",
						"default":     1.0 / 2.2,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "tone_map",
			Description: "Map one linear radiance value to an 8-bit value with the Reinhard curve: round(255 * v*e / (1 + v*e)).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"value": map[string]interface{}{
						"type":        "number",
						"description": "Linear radiance value",
					},
					"exposure": map[string]interface{}{
						"type":        "number",
						"description": "Exposure multiplier. Default 4.0",
						"default":     4.0,
					},
				},
				"required": []string{"value"},
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
			"tools": GetToolDefinitions(),
		},
	}
}
