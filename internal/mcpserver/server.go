// Package mcpserver exposes worksheet generation as Model Context Protocol
// tools served over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/phrazzld/mathsheet/internal/config"
	"github.com/phrazzld/mathsheet/internal/domain"
	"github.com/phrazzld/mathsheet/internal/redact"
	"github.com/phrazzld/mathsheet/internal/service"
)

// ServerName is the name reported to MCP clients.
const ServerName = "mathsheet"

// Output formats of the generate_worksheet tool.
const (
	FormatLatex = "latex"
	FormatJSON  = "json"
)

// Server wraps an MCP server whose tools generate worksheets.
type Server struct {
	server           *server.MCPServer
	worksheetService service.WorksheetService
	defaults         config.WorksheetConfig
	logger           *slog.Logger
}

// New creates a Server and registers its tools. defaults fill in arguments a
// tool call leaves out.
func New(worksheetService service.WorksheetService, defaults config.WorksheetConfig, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		server:           server.NewMCPServer(ServerName, version),
		worksheetService: worksheetService,
		defaults:         defaults,
		logger:           logger.With("component", "mcp_server"),
	}
	s.registerTools()

	return s
}

// MCPServer returns the underlying MCP server
func (s *Server) MCPServer() *server.MCPServer {
	return s.server
}

// ServeStdio serves the tools over stdin and stdout until the input closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.server)
}

func (s *Server) registerTools() {
	pingTool := mcp.NewTool("ping",
		mcp.WithDescription("Check that the worksheet server is reachable"),
	)
	s.server.AddTool(pingTool, s.Ping)

	generateTool := mcp.NewTool("generate_worksheet",
		mcp.WithDescription("Generate a 5x4 arithmetic worksheet and return its LaTeX document"),
		mcp.WithNumber("digits",
			mcp.Description(fmt.Sprintf("Maximum digits per operand, %d to %d (default %d)",
				domain.MinDigits, domain.MaxDigits, s.defaults.Digits)),
		),
		mcp.WithArray("operations",
			mcp.Description("Operation names or symbols, e.g. plus, minus, times, divide, +, -"),
		),
		mcp.WithBoolean("limit_multiplication",
			mcp.Description("Keep multiplication operands within the 0-12 times tables"),
		),
		mcp.WithString("seed",
			mcp.Description("Seed for a reproducible worksheet; omit or 0 for a random one"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: latex (default) or json"),
		),
	)
	s.server.AddTool(generateTool, s.GenerateWorksheet)
}

// newErrorResult creates a tool result that represents an error
func newErrorResult(format string, args ...interface{}) *mcp.CallToolResult {
	result := mcp.NewToolResultText(fmt.Sprintf("Error: "+format, args...))
	result.IsError = true
	return result
}

// Ping handles the ping tool
func (s *Server) Ping(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logger.DebugContext(ctx, "received ping request")
	return mcp.NewToolResultText("pong"), nil
}

// GenerateWorksheet handles the generate_worksheet tool
func (s *Server) GenerateWorksheet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments

	req, format, err := s.parseArguments(args)
	if err != nil {
		return newErrorResult("%v", err), nil
	}

	ws, err := s.worksheetService.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return newErrorResult("%v", err), nil
		}
		s.logger.ErrorContext(ctx, "worksheet generation failed", "error", redact.Error(err))
		return newErrorResult("worksheet generation failed"), nil
	}

	if format == FormatJSON {
		data, err := json.Marshal(ws)
		if err != nil {
			return newErrorResult("failed to serialize worksheet: %v", err), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}

	doc, err := s.worksheetService.Document(ctx, ws)
	if err != nil {
		s.logger.ErrorContext(ctx, "worksheet rendering failed", "error", redact.Error(err))
		return newErrorResult("worksheet rendering failed"), nil
	}

	result := mcp.NewToolResultText(doc)
	result.Content = append(result.Content, mcp.NewTextContent("seed: "+strconv.FormatUint(ws.Seed, 10)))
	return result, nil
}

func (s *Server) parseArguments(args map[string]interface{}) (service.Request, string, error) {
	req := service.RequestFromConfig(s.defaults)
	format := FormatLatex

	if v, ok := args["digits"]; ok && v != nil {
		f, ok := v.(float64)
		if !ok || f != math.Trunc(f) {
			return req, "", fmt.Errorf("digits must be a whole number")
		}
		req.Digits = int(f)
	}

	if v, ok := args["operations"]; ok && v != nil {
		items, ok := v.([]interface{})
		if !ok {
			return req, "", fmt.Errorf("operations must be an array of strings")
		}
		ops := make([]string, 0, len(items))
		for _, item := range items {
			op, ok := item.(string)
			if !ok || op == "" {
				return req, "", fmt.Errorf("operations must be an array of strings")
			}
			ops = append(ops, op)
		}
		req.Operations = ops
	}

	if v, ok := args["limit_multiplication"]; ok && v != nil {
		b, ok := v.(bool)
		if !ok {
			return req, "", fmt.Errorf("limit_multiplication must be a boolean")
		}
		req.LimitMultiplication = b
	}

	if v, ok := args["seed"]; ok && v != nil {
		seed, err := parseSeed(v)
		if err != nil {
			return req, "", err
		}
		req.Seed = seed
	}

	if v, ok := args["format"]; ok && v != nil {
		f, _ := v.(string)
		switch f {
		case FormatLatex, FormatJSON:
			format = f
		default:
			return req, "", fmt.Errorf("format must be %q or %q", FormatLatex, FormatJSON)
		}
	}

	return req, format, nil
}

// parseSeed accepts a seed as a string or as a JSON number. Strings carry the
// full uint64 range; numbers above 2^53 lose precision in JSON.
func parseSeed(v interface{}) (uint64, error) {
	switch seed := v.(type) {
	case string:
		if seed == "" {
			return 0, nil
		}
		n, err := strconv.ParseUint(seed, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("seed must be a non-negative integer")
		}
		return n, nil
	case float64:
		if seed < 0 || seed != math.Trunc(seed) || seed >= math.MaxUint64 {
			return 0, fmt.Errorf("seed must be a non-negative integer")
		}
		return uint64(seed), nil
	default:
		return 0, fmt.Errorf("seed must be a non-negative integer")
	}
}
