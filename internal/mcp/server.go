package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"shelfpace/internal/analytics"
	"shelfpace/internal/library"
)

// JSONRPCRequest represents a standard MCP/JSON-RPC request.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCResponse represents a standard MCP/JSON-RPC response.
type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// Server exposes the analytics engine as MCP tools over Stdio.
type Server struct {
	provider *library.Provider
	tuning   analytics.Tuning

	// now is injected so the engine's reference instant is controlled by
	// the server, never read ad hoc inside the analytics code.
	now func() time.Time
}

// NewServer creates a new MCP server over a hydrated library provider.
func NewServer(provider *library.Provider, tuning analytics.Tuning) *Server {
	return &Server{
		provider: provider,
		tuning:   tuning,
		now:      time.Now,
	}
}

// session builds a fresh analytics session anchored at the current instant.
// Sessions are request-scoped: every tool call re-derives its views so a
// snapshot logged mid-conversation shows up in the next call.
func (s *Server) session() *analytics.Session {
	return analytics.NewSession(s.provider.Log(), s.tuning, s.now().UTC())
}

// Serve starts the JSON-RPC loop over Stdio.
func (s *Server) Serve() error {
	reader := bufio.NewReader(os.Stdin)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		var req JSONRPCRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Error().Err(err).Msg("Failed to unmarshal request")
			continue
		}

		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req JSONRPCRequest) {
	var result interface{}
	var errRes interface{}

	switch req.Method {
	case "initialize":
		result = map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities":    map[string]interface{}{},
			"serverInfo": map[string]interface{}{
				"name":    "shelfpace",
				"version": "0.1.0",
			},
		}
	case "tools/list":
		result = s.listTools()
	case "tools/call":
		result, errRes = s.callTool(req.Params)
	default:
		errRes = map[string]interface{}{
			"code":    -32601,
			"message": fmt.Sprintf("Method %s not found", req.Method),
		}
	}

	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
		Error:   errRes,
	}

	out, _ := json.Marshal(resp)
	fmt.Fprintf(os.Stdout, "%s\n", out)
}

func (s *Server) callTool(params json.RawMessage) (interface{}, interface{}) {
	var call struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	}
	if err := json.Unmarshal(params, &call); err != nil {
		return nil, map[string]interface{}{"code": -32602, "message": "Invalid params"}
	}

	var data interface{}
	var err error

	switch call.Name {
	case "list_deadlines":
		data, err = s.handleListDeadlines()
	case "get_deadline_status":
		data, err = s.handleDeadlineStatus(asString(call.Arguments["item_id"]))
	case "get_reading_heatmap":
		data, err = s.handleHeatmap()
	case "get_streaks":
		data, err = s.handleStreaks()
	case "get_format_velocity":
		data, err = s.handleFormatVelocity()
	case "get_progress_chart":
		data, err = s.handleProgressChart(asString(call.Arguments["item_id"]), asString(call.Arguments["unit_mode"]))
	case "log_progress":
		data, err = s.handleLogProgress(call.Arguments)
	default:
		return nil, map[string]interface{}{"code": -32601, "message": "Tool not found"}
	}

	if err != nil {
		return nil, map[string]interface{}{"code": -32000, "message": err.Error()}
	}

	return map[string]interface{}{
		"content": []interface{}{
			map[string]interface{}{
				"type": "text",
				"text": s.formatResult(data),
			},
		},
	}, nil
}

func (s *Server) formatResult(data interface{}) string {
	out, _ := json.MarshalIndent(data, "", "  ")
	return string(out)
}
