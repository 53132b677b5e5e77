// Package mcp exposes the engine as a Model Context Protocol server.
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/synthmc/pkg/domain"
	"github.com/aretw0/synthmc/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// StagesURI is the resource holding the default stage listing.
const StagesURI = "synthmc://stages"

// PlanResponse lists the stages a run would execute.
type PlanResponse struct {
	Stages []domain.Stage `json:"stages" jsonschema_description:"Selected stages with every step flagged included or excluded"`
}

// SynthesizeResponse carries the run report and, on failure, the error.
type SynthesizeResponse struct {
	Report *domain.Report `json:"report,omitempty" jsonschema_description:"Evidence of the run"`
	Error  string         `json:"error,omitempty" jsonschema_description:"Why the run stopped, if it failed"`
}

// Engine defines what the MCP server needs from the synthesis engine.
type Engine interface {
	ports.Engine
	Describe(w io.Writer, tokens []string) error
}

// Server wraps the Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, version string) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("synthmc-mcp", strings.TrimSpace(version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx ends.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func argsOption() mcp.ToolOption {
	return mcp.WithArray("args",
		mcp.Description(`synth_mc option tokens, e.g. ["-top", "cpu", "-run", "coarse:fine"]`),
		mcp.WithStringItems(),
	)
}

func (s *Server) registerTools() {
	// TOOL: describe_pipeline
	s.mcpServer.AddTool(mcp.NewTool("describe_pipeline",
		mcp.WithDescription("List every stage and step of the synth_mc script for the given options. Nothing is executed."),
		argsOption(),
	), s.handleDescribe)

	// TOOL: plan_pipeline
	s.mcpServer.AddTool(mcp.NewTool("plan_pipeline",
		mcp.WithDescription("Resolve the options and -run range and return the stages a run would execute."),
		argsOption(),
		mcp.WithOutputSchema[PlanResponse](),
	), mcp.NewStructuredToolHandler(s.handlePlan))

	// TOOL: synthesize
	s.mcpServer.AddTool(mcp.NewTool("synthesize",
		mcp.WithDescription("Run the synth_mc script against the design held by the host."),
		argsOption(),
		mcp.WithOutputSchema[SynthesizeResponse](),
	), mcp.NewStructuredToolHandler(s.handleSynthesize))
}

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var buf bytes.Buffer
	if err := s.engine.Describe(&buf, tokens(request.GetArguments())); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("describe failed: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func (s *Server) handlePlan(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (PlanResponse, error) {
	stages, err := s.engine.Plan(tokens(args))
	if err != nil {
		return PlanResponse{}, fmt.Errorf("plan failed: %w", err)
	}
	return PlanResponse{Stages: stages}, nil
}

func (s *Server) handleSynthesize(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SynthesizeResponse, error) {
	report, err := s.engine.Synthesize(ctx, tokens(args))
	if err != nil {
		slog.Error("MCP Synthesize: run failed", "error", err)
		if report == nil {
			return SynthesizeResponse{}, fmt.Errorf("synthesize failed: %w", err)
		}
		return SynthesizeResponse{Report: report, Error: err.Error()}, nil
	}
	return SynthesizeResponse{Report: report}, nil
}

// tokens extracts the "args" array. Non-string items are ignored.
func tokens(args map[string]interface{}) []string {
	raw, _ := args["args"].([]interface{})
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func (s *Server) registerResources() {
	// EXPOSE: synthmc://stages
	s.mcpServer.AddResource(mcp.NewResource(StagesURI, "synth_mc stages",
		mcp.WithMIMEType("application/json"),
	), s.readStages)
}

func (s *Server) readStages(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	stages, err := s.engine.Inspect(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect stages: %w", err)
	}
	jsonBytes, _ := json.Marshal(stages)

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      StagesURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
