package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/thumbshot/internal/imaging"
	"github.com/ironsheep/thumbshot/internal/region"
	"github.com/ironsheep/thumbshot/internal/tonemap"
)

// errCaptureUnavailable is returned by screen tools when the server was
// started without a capture backend.
var errCaptureUnavailable = errors.New("screen capture is not available")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "thumbnail_create").
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
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.Warn().Err(err).Str("tool", params.Name).Msg("tool failed")
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Thumbnails
	case "thumbnail_create":
		return s.handleThumbnailCreate(args)
	case "thumbnail_preview":
		return s.handleThumbnailPreview(args)
	case "image_info":
		return s.handleImageInfo(args)

	// Screenshots
	case "screenshot_capture":
		return s.handleScreenshotCapture(args)
	case "capture_region_resolve":
		return s.handleCaptureRegionResolve(args)
	case "monitors_list":
		return s.handleMonitorsList(args)

	// Pixel transforms
	case "gamma_correct":
		return s.handleGammaCorrect(args)
	case "tone_map":
		return s.handleToneMap(args)

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
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Thumbnail Handlers ===

type thumbnailCreateArgs struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Width  int    `json:"width"`
}

func (s *Server) handleThumbnailCreate(args json.RawMessage) (interface{}, error) {
	var a thumbnailCreateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Input == "" {
		return nil, fmt.Errorf("input is required")
	}
	if a.Width == 0 {
		a.Width = s.cfg.ThumbnailWidth
	}

	res, err := s.converter.Convert(a.Input, a.Output, a.Width)
	if err != nil {
		return nil, err
	}
	s.cache.Evict(res.Output)
	return res, nil
}

type pathArgs struct {
	Path string `json:"path"`
}

type thumbnailPreviewArgs struct {
	Path  string `json:"path"`
	Width int    `json:"width"`
}

func (s *Server) handleThumbnailPreview(args json.RawMessage) (interface{}, error) {
	var a thumbnailPreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Preview(s.resizer, img, a.Width)
}

type imageInfoResult struct {
	*imaging.ImageInfo
	AverageColor imaging.ColorResult `json:"average_color"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	info, err := imaging.LoadImageInfo(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imageInfoResult{ImageInfo: info, AverageColor: imaging.AverageColor(img)}, nil
}

// === Screenshot Handlers ===

type screenshotCaptureArgs struct {
	Output      string `json:"output"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ResizeWidth int    `json:"resize_width"`
}

func (s *Server) handleScreenshotCapture(args json.RawMessage) (interface{}, error) {
	var a screenshotCaptureArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if s.capturer == nil {
		return nil, errCaptureUnavailable
	}

	req := region.Rect{X: a.X, Y: a.Y, Width: a.Width, Height: a.Height}
	res, err := s.capturer.Capture(req, a.Output, a.ResizeWidth)
	if err != nil {
		return nil, err
	}
	s.cache.Evict(res.Output)
	return res, nil
}

type captureRegionResolveArgs struct {
	X        int              `json:"x"`
	Y        int              `json:"y"`
	Width    int              `json:"width"`
	Height   int              `json:"height"`
	Monitors []region.Monitor `json:"monitors"`
}

type resolveResult struct {
	region.Resolved
	Absolute region.Rect `json:"absolute"`
}

func (s *Server) handleCaptureRegionResolve(args json.RawMessage) (interface{}, error) {
	var a captureRegionResolveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	req := region.Rect{X: a.X, Y: a.Y, Width: a.Width, Height: a.Height}

	var res region.Resolved
	var err error
	switch {
	case len(a.Monitors) > 0:
		res, err = region.Resolve(req, a.Monitors)
	case s.capturer != nil:
		res, _, err = s.capturer.Resolve(req)
	default:
		return nil, errCaptureUnavailable
	}
	if err != nil {
		return nil, err
	}
	return resolveResult{Resolved: res, Absolute: res.Absolute()}, nil
}

func (s *Server) handleMonitorsList(_ json.RawMessage) (interface{}, error) {
	if s.capturer == nil {
		return nil, errCaptureUnavailable
	}
	monitors, err := s.capturer.Monitors()
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"count":    len(monitors),
		"monitors": monitors,
	}, nil
}

// === Pixel Transform Handlers ===

type gammaCorrectArgs struct {
	Path         string   `json:"path"`
	InverseGamma *float64 `json:"inverse_gamma"`
}

func (s *Server) handleGammaCorrect(args json.RawMessage) (interface{}, error) {
	var a gammaCorrectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	inv := s.cfg.InverseGamma
	if a.InverseGamma != nil {
		inv = *a.InverseGamma
	}

	res, err := s.gamma.CorrectFile(a.Path, inv)
	if err != nil {
		return nil, err
	}
	s.cache.Evict(a.Path)
	return res, nil
}

type toneMapArgs struct {
	Value    *float64 `json:"value"`
	Exposure *float64 `json:"exposure"`
}

type toneMapResult struct {
	Value    float64 `json:"value"`
	Exposure float64 `json:"exposure"`
	LDR      uint8   `json:"ldr"`
}

func (s *Server) handleToneMap(args json.RawMessage) (interface{}, error) {
	var a toneMapArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Value == nil {
		return nil, fmt.Errorf("value is required")
	}

	cfg := tonemap.Config{Exposure: s.cfg.Exposure}
	if a.Exposure != nil {
		cfg.Exposure = *a.Exposure
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return toneMapResult{
		Value:    *a.Value,
		Exposure: cfg.Exposure,
		LDR:      cfg.Map(float32(*a.Value)),
	}, nil
}
