package server

import (
	"encoding/json"
	"testing"
)

func toolMap() map[string]Tool {
	m := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		m[tool.Name] = tool
	}
	return m
}

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"thumbnail_create",
		"thumbnail_preview",
		"image_info",
		"screenshot_capture",
		"capture_region_resolve",
		"monitors_list",
		"gamma_correct",
		"tone_map",
	}

	m := toolMap()
	if len(m) != len(tools) {
		t.Errorf("duplicate tool names: %d tools, %d unique", len(tools), len(m))
	}
	for _, name := range expectedTools {
		if _, ok := m[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Dispatch(t *testing.T) {
	s, _ := newTestServer(t)

	// Every advertised tool must be known to executeTool; an empty argument
	// set may fail validation but must not be reported as unknown.
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			_, err := s.executeTool(tool.Name, json.RawMessage(`{}`))
			if err != nil && err.Error() == "unknown tool: "+tool.Name {
				t.Errorf("tool %s is advertised but not dispatched", tool.Name)
			}
		})
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema == nil {
				t.Fatal("Tool InputSchema is nil")
			}
			if schemaType := tool.InputSchema["type"]; schemaType != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", schemaType)
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema properties should be a map")
			}

			// Every required parameter must be described.
			required, _ := tool.InputSchema["required"].([]string)
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required parameter %q has no property", r)
				}
			}
		})
	}
}

func TestToolDefinitions_Required(t *testing.T) {
	tests := map[string][]string{
		"thumbnail_create":       {"input"},
		"thumbnail_preview":      {"path"},
		"image_info":             {"path"},
		"screenshot_capture":     {"output", "x", "y", "width", "height"},
		"capture_region_resolve": {"x", "y", "width", "height"},
		"gamma_correct":          {"path"},
		"tone_map":               {"value"},
	}

	m := toolMap()
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			required, ok := m[name].InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}
			if len(required) != len(want) {
				t.Fatalf("required: got %v, want %v", required, want)
			}
			for i := range want {
				if required[i] != want[i] {
					t.Errorf("required[%d]: got %s, want %s", i, required[i], want[i])
				}
			}
		})
	}
}

func TestToolDefinitions_OptionalDefaults(t *testing.T) {
	toolDefaults := map[string]map[string]interface{}{
		"thumbnail_create":   {"width": 350},
		"thumbnail_preview":  {"width": 0},
		"screenshot_capture": {"resize_width": 0},
		"gamma_correct":      {"inverse_gamma": 1.0 / 2.2},
		"tone_map":           {"exposure": 4.0},
	}

	m := toolMap()
	for toolName, expectedDefaults := range toolDefaults {
		tool, ok := m[toolName]
		if !ok {
			t.Errorf("Tool %s not found", toolName)
			continue
		}

		props, ok := tool.InputSchema["properties"].(map[string]interface{})
		if !ok {
			t.Errorf("Tool %s: properties should be a map", toolName)
			continue
		}

		for param, want := range expectedDefaults {
			prop, ok := props[param].(map[string]interface{})
			if !ok {
				t.Errorf("Tool %s: property %s not found", toolName, param)
				continue
			}
			if got := prop["default"]; got != want {
				t.Errorf("Tool %s: %s default = %v (%T), want %v (%T)", toolName, param, got, got, want, want)
			}
		}
	}
}

func TestTool_JSONSerialization(t *testing.T) {
	tool := toolMap()["tone_map"]

	data, err := json.Marshal(tool)
	if err != nil {
		t.Fatalf("Failed to marshal tool: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal tool: %v", err)
	}

	if decoded["name"] != "tone_map" {
		t.Errorf("name: got %v", decoded["name"])
	}
	if _, ok := decoded["inputSchema"]; !ok {
		t.Error("JSON should use inputSchema key")
	}
}
