package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ironsheep/image-transform/internal/imaging"
)

const (
	jsonrpcVersion  = "2.0"
	protocolVersion = "2024-11-05"
	serverName      = "image-transform"

	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeToolFailed     = -32000

	// maxRequestBytes bounds a single request line. image_load arguments
	// are paths, so requests stay small.
	maxRequestBytes = 1024 * 1024
)

// Version is reported to clients in serverInfo. The binary overwrites it
// with its own build version.
var Version = "dev"

// Server exposes the operation catalogue as MCP tools. Every tool call runs
// against one image store through an imaging.Processor.
type Server struct {
	proc   *imaging.Processor
	logger *slog.Logger
}

// MCPRequest is one line read from the client. ID is nil for
// notifications, which never get a reply.
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse is one line written back. Exactly one of Result and Error is
// set.
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError carries a protocol failure or a failed tool call. For tool
// failures Data holds the engine error text, e.g. "image not found".
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New returns a server over a fresh, empty image store.
func New() *Server {
	return NewWithStore(imaging.NewStore(), nil)
}

// NewWithStore returns a server whose tools read and write store. A nil
// logger uses slog.Default().
func NewWithStore(store *imaging.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		proc:   imaging.NewProcessor(store),
		logger: logger,
	}
}

// Run serves the process's stdin and stdout.
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve answers one JSON-RPC message per line of in until in ends. Blank
// lines are ignored. A line that is not JSON gets a parse error with a
// null id and the loop carries on.
func (s *Server) Serve(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRequestBytes)
	enc := json.NewEncoder(out)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var resp *MCPResponse
		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Warn("unreadable request", "error", err)
			resp = s.errorResponse(nil, codeParseError, "Parse error", err.Error())
		} else {
			resp = s.handleRequest(&req)
		}
		if resp == nil {
			continue
		}
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("write response to %q: %w", req.Method, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	return nil
}

func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	s.logger.Debug("request", "method", req.Method, "id", req.ID)

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return result(req.ID, map[string]interface{}{})
	}

	if req.ID == nil && strings.HasPrefix(req.Method, "notifications/") {
		return nil
	}
	return s.errorResponse(req.ID, codeMethodNotFound, "Method not found: "+req.Method, "")
}

func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return result(req.ID, map[string]interface{}{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":    serverName,
			"version": Version,
		},
	})
}

// result wraps a successful reply.
func result(id, v interface{}) *MCPResponse {
	return &MCPResponse{JSONRPC: jsonrpcVersion, ID: id, Result: v}
}
