package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// stringProp, integerProp and numberProp build JSON schema properties.
func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

func integerProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "description": description}
}

func numberProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "number", "description": description}
}

func enumProp(description string, values ...string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "enum": values, "description": description}
}

// transformSchema builds the schema shared by the transform tools: a source
// name, a destination name, optional mask and any tool-specific properties.
func transformSchema(maskable bool, extra map[string]interface{}, required ...string) map[string]interface{} {
	props := map[string]interface{}{
		"source": stringProp("Name of the stored source image"),
		"dest":   stringProp("Name to store the result under (replaces any image already stored there)"),
	}
	if maskable {
		props["mask"] = stringProp("Optional name of a stored mask image of the same size. Pixels whose mask red channel is below 200 are transformed; the rest are copied unchanged.")
	}
	for k, v := range extra {
		props[k] = v
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   append([]string{"source", "dest"}, required...),
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Store Operations
		{
			Name:        "image_load",
			Description: "Load an image file (PPM, PNG, JPEG, GIF, BMP, TIFF or WebP) and store it under a name.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": stringProp("Absolute path to the image file"),
					"name": stringProp("Name to store the image under"),
				},
				"required": []string{"path", "name"},
			},
		},
		{
			Name:        "image_save",
			Description: "Write a stored image to a file. The format follows the file extension (.ppm, .png, .jpg, .gif, .bmp, .tif).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": stringProp("Absolute path of the file to write"),
					"name": stringProp("Name of the stored image"),
				},
				"required": []string{"path", "name"},
			},
		},
		{
			Name:        "image_info",
			Description: "Get the width, height and max channel value of a stored image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": stringProp("Name of the stored image"),
				},
				"required": []string{"name"},
			},
		},
		{
			Name:        "image_list",
			Description: "List the names of all stored images.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "image_sample_pixel",
			Description: "Get the exact channel values of a pixel in a stored image, with hex and HSL forms.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": stringProp("Name of the stored image"),
					"row":  integerProp("Row (0-based, from top)"),
					"col":  integerProp("Column (0-based, from left)"),
				},
				"required": []string{"name", "row", "col"},
			},
		},
		{
			Name:        "image_histogram",
			Description: "Count the red, green, blue and intensity values of a stored image. Each channel has one bin per value from 0 to the max value; intensity is (R+G+B)/3.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": stringProp("Name of the stored image"),
				},
				"required": []string{"name"},
			},
		},
		{
			Name:        "image_preview",
			Description: "Render a stored image as base64-encoded PNG, optionally resized, so the result of a transform can be inspected.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": stringProp("Name of the stored image"),
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor for the preview. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"name"},
			},
		},

		// Transform Operations
		{
			Name:        "image_flip",
			Description: "Mirror a stored image horizontally (reverse columns) or vertically (reverse rows).",
			InputSchema: transformSchema(false, map[string]interface{}{
				"direction": enumProp("Flip axis", "horizontal", "vertical"),
			}, "direction"),
		},
		{
			Name:        "image_brighten",
			Description: "Add a signed strength to every channel. Channels saturate at 0 and at the image max value.",
			InputSchema: transformSchema(true, map[string]interface{}{
				"strength": integerProp("Amount to add; negative values darken"),
			}, "strength"),
		},
		{
			Name:        "image_greyscale",
			Description: "Replace every pixel with one derived value: a single channel, the max (value), the mean (intensity) or the luma.",
			InputSchema: transformSchema(true, map[string]interface{}{
				"component": enumProp("Value to replicate", "red", "green", "blue", "value", "intensity", "luma"),
			}, "component"),
		},
		{
			Name:        "image_filter",
			Description: "Blur (3x3 kernel) or sharpen (5x5 kernel) a stored image.",
			InputSchema: transformSchema(true, map[string]interface{}{
				"filter": enumProp("Kernel to apply", "blur", "sharpen"),
			}, "filter"),
		},
		{
			Name:        "image_color_transform",
			Description: "Apply the greyscale (luma) or sepia colour matrix to a stored image.",
			InputSchema: transformSchema(true, map[string]interface{}{
				"transform": enumProp("Colour matrix", "greyscale", "sepia"),
			}, "transform"),
		},
		{
			Name:        "image_downscale",
			Description: "Shrink a stored image by width and height factors in (0, 1] using bilinear interpolation.",
			InputSchema: transformSchema(false, map[string]interface{}{
				"width_factor":  numberProp("Width scale factor, 0 < f <= 1"),
				"height_factor": numberProp("Height scale factor, 0 < f <= 1"),
			}, "width_factor", "height_factor"),
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return result(req.ID, map[string]interface{}{
		"tools": GetToolDefinitions(),
	})
}
