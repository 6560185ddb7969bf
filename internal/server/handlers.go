package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"

	"github.com/anthonynsimon/bild/transform"

	"github.com/ironsheep/image-transform/internal/codec"
	"github.com/ironsheep/image-transform/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_brighten").
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
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	out, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return result(req.ID, map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": mustMarshalJSON(out),
			},
		},
	})
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Converts selector strings into typed engine values
//  3. Reads or writes the image store
//  4. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Store Operations
	case "image_load":
		return s.handleImageLoad(args)
	case "image_save":
		return s.handleImageSave(args)
	case "image_info":
		return s.handleImageInfo(args)
	case "image_list":
		return s.handleImageList(args)
	case "image_sample_pixel":
		return s.handleImageSamplePixel(args)
	case "image_preview":
		return s.handleImagePreview(args)
	case "image_histogram":
		return s.handleImageHistogram(args)

	// Transform Operations
	case "image_flip":
		return s.handleImageFlip(args)
	case "image_brighten":
		return s.handleImageBrighten(args)
	case "image_greyscale":
		return s.handleImageGreyscale(args)
	case "image_filter":
		return s.handleImageFilter(args)
	case "image_color_transform":
		return s.handleImageColorTransform(args)
	case "image_downscale":
		return s.handleImageDownscale(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse builds a failed reply. An empty data string is left out.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{Code: code, Message: message}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{JSONRPC: jsonrpcVersion, ID: id, Error: e}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// ImageInfo describes a stored image.
type ImageInfo struct {
	Name     string `json:"name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	MaxValue int    `json:"max_value"`
}

func (s *Server) lookup(name string) (*imaging.Image, error) {
	img, ok := s.proc.Store().Get(name)
	if !ok {
		return nil, fmt.Errorf("image %q: %w", name, imaging.ErrNotFound)
	}
	return img, nil
}

func infoOf(name string, img *imaging.Image) *ImageInfo {
	return &ImageInfo{Name: name, Width: img.Width(), Height: img.Height(), MaxValue: img.MaxValue()}
}

// === Store Operation Handlers ===

type imageFileArgs struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageFileArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Name == "" {
		return nil, fmt.Errorf("image_load: name is required: %w", imaging.ErrInvalidArgument)
	}
	img, err := codec.Load(a.Path)
	if err != nil {
		return nil, err
	}
	s.proc.Store().Put(a.Name, img)
	return infoOf(a.Name, img), nil
}

func (s *Server) handleImageSave(args json.RawMessage) (interface{}, error) {
	var a imageFileArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.lookup(a.Name)
	if err != nil {
		return nil, err
	}
	if err := codec.Save(a.Path, img); err != nil {
		return nil, err
	}
	return map[string]interface{}{"name": a.Name, "path": a.Path}, nil
}

type imageNameArgs struct {
	Name string `json:"name"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imageNameArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.lookup(a.Name)
	if err != nil {
		return nil, err
	}
	return infoOf(a.Name, img), nil
}

func (s *Server) handleImageList(_ json.RawMessage) (interface{}, error) {
	return map[string]interface{}{"names": s.proc.Store().Names()}, nil
}

type imageSamplePixelArgs struct {
	Name string `json:"name"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
}

func (s *Server) handleImageSamplePixel(args json.RawMessage) (interface{}, error) {
	var a imageSamplePixelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.lookup(a.Name)
	if err != nil {
		return nil, err
	}
	return imaging.SamplePixel(img, a.Row, a.Col)
}

// PreviewResult contains a stored image encoded as base64 PNG.
type PreviewResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// HistogramResult carries the channel counts of a stored image and the most
// frequent value of each channel.
type HistogramResult struct {
	Name   string `json:"name"`
	Pixels int    `json:"pixels"`
	*imaging.HistogramCounts
	Peaks map[string]int `json:"peaks"`
}

type imageHistogramArgs struct {
	Name string `json:"name"`
}

func (s *Server) handleImageHistogram(args json.RawMessage) (interface{}, error) {
	var a imageHistogramArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.lookup(a.Name)
	if err != nil {
		return nil, err
	}
	h, err := imaging.Histogram(img)
	if err != nil {
		return nil, err
	}

	peaks := make(map[string]int, 4)
	for channel, counts := range map[string][]int{
		"red": h.Red, "green": h.Green, "blue": h.Blue, "intensity": h.Intensity,
	} {
		peaks[channel], _ = imaging.Peak(counts)
	}
	return &HistogramResult{
		Name:            a.Name,
		Pixels:          img.Width() * img.Height(),
		HistogramCounts: h,
		Peaks:           peaks,
	}, nil
}

// maxPreviewSide bounds the width and height of an enlarged preview.
const maxPreviewSide = 4096

type imagePreviewArgs struct {
	Name  string  `json:"name"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleImagePreview(args json.RawMessage) (interface{}, error) {
	var a imagePreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	if a.Scale < 0 {
		return nil, fmt.Errorf("image_preview: scale %v must be positive: %w", a.Scale, imaging.ErrInvalidArgument)
	}
	img, err := s.lookup(a.Name)
	if err != nil {
		return nil, err
	}

	var preview image.Image = img.ToNRGBA()
	if a.Scale != 1.0 {
		fw := float64(img.Width()) * a.Scale
		fh := float64(img.Height()) * a.Scale
		if a.Scale > 1 && (fw > maxPreviewSide || fh > maxPreviewSide) {
			return nil, fmt.Errorf("image_preview: scale %v gives %.0fx%.0f, limit is %d per side: %w",
				a.Scale, fw, fh, maxPreviewSide, imaging.ErrInvalidArgument)
		}
		w := max(1, int(fw))
		h := max(1, int(fh))
		preview = transform.Resize(preview, w, h, transform.Linear)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, preview); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return &PreviewResult{
		Width:       preview.Bounds().Dx(),
		Height:      preview.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// === Transform Operation Handlers ===

type transformArgs struct {
	Source string `json:"source"`
	Dest   string `json:"dest"`
	Mask   string `json:"mask,omitempty"`
}

// runTransform runs op and reports the stored result.
func (s *Server) runTransform(op imaging.Operation, a transformArgs) (interface{}, error) {
	img, err := s.proc.Run(imaging.Request{Op: op, Source: a.Source, Dest: a.Dest, Mask: a.Mask})
	if err != nil {
		return nil, err
	}
	return infoOf(a.Dest, img), nil
}

func (s *Server) handleImageFlip(args json.RawMessage) (interface{}, error) {
	var a struct {
		transformArgs
		Direction string `json:"direction"`
	}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	kind, err := imaging.ParseFlipKind(a.Direction)
	if err != nil {
		return nil, err
	}
	return s.runTransform(imaging.Flip{Kind: kind}, a.transformArgs)
}

func (s *Server) handleImageBrighten(args json.RawMessage) (interface{}, error) {
	var a struct {
		transformArgs
		Strength int `json:"strength"`
	}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.runTransform(imaging.Brighten{Strength: a.Strength}, a.transformArgs)
}

func (s *Server) handleImageGreyscale(args json.RawMessage) (interface{}, error) {
	var a struct {
		transformArgs
		Component string `json:"component"`
	}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	kind, err := imaging.ParseGreyscaleKind(a.Component)
	if err != nil {
		return nil, err
	}
	return s.runTransform(imaging.Greyscale{Kind: kind}, a.transformArgs)
}

func (s *Server) handleImageFilter(args json.RawMessage) (interface{}, error) {
	var a struct {
		transformArgs
		Filter string `json:"filter"`
	}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	kind, err := imaging.ParseFilterKind(a.Filter)
	if err != nil {
		return nil, err
	}
	return s.runTransform(imaging.Filter{Kind: kind}, a.transformArgs)
}

func (s *Server) handleImageColorTransform(args json.RawMessage) (interface{}, error) {
	var a struct {
		transformArgs
		Transform string `json:"transform"`
	}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	kind, err := imaging.ParseColorTransformKind(a.Transform)
	if err != nil {
		return nil, err
	}
	return s.runTransform(imaging.ColorTransform{Kind: kind}, a.transformArgs)
}

func (s *Server) handleImageDownscale(args json.RawMessage) (interface{}, error) {
	var a struct {
		transformArgs
		WidthFactor  float64 `json:"width_factor"`
		HeightFactor float64 `json:"height_factor"`
	}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.runTransform(imaging.Downscale{WidthFactor: a.WidthFactor, HeightFactor: a.HeightFactor}, a.transformArgs)
}
