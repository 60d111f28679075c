// Package mcp exposes a palette as an MCP server so agent tooling can
// inspect and edit it over JSON-RPC.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/ramp"
	"github.com/aretw0/ramp/pkg/domain"
	"github.com/aretw0/ramp/pkg/schema"
)

// Engine defines the palette surface the MCP server drives.
type Engine interface {
	Apply(ctx context.Context, op domain.Operation) (domain.Summary, error)
	Undo(ctx context.Context) error
	Redo(ctx context.Context) error
	Describe() domain.Describe
	Entries(pat domain.Pattern) ([]domain.Entry, error)
	Document() (*schema.Document, error)
}

// Server wraps a palette and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("ramp-mcp", strings.TrimSpace(ramp.Version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

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

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: apply_operation
	applyTool := mcp.NewTool("apply_operation",
		mcp.WithDescription("Apply a palette operation: insert-color, insert-ramp or remove. Addresses are page:line:column triples."),
		mcp.WithString("kind", mcp.Required(), mcp.Description("Operation kind: insert-color, insert-ramp or remove")),
		mcp.WithString("at", mcp.Required(), mcp.Description("Target address, e.g. 0:0:0")),
		mcp.WithString("color", mcp.Description("Hex color #RRGGBB (insert-color)")),
		mcp.WithString("from", mcp.Description("First ramp endpoint address (insert-ramp)")),
		mcp.WithString("to", mcp.Description("Second ramp endpoint address (insert-ramp)")),
		mcp.WithNumber("count", mcp.Description("Number of ramp steps (insert-ramp)")),
		mcp.WithString("space", mcp.Description("Blend space: rgb, linear-rgb, hsv or lab (insert-ramp)")),
		mcp.WithBoolean("overwrite", mcp.Description("Replace occupied addresses on insert")),
		mcp.WithBoolean("force", mcp.Description("Cascade removal to dependents (remove)")),
	)
	s.mcpServer.AddTool(applyTool, s.handleApply)

	// TOOL: query_palette
	queryTool := mcp.NewTool("query_palette",
		mcp.WithDescription("List evaluated palette entries. The match pattern is page:line:column where any component may be *."),
		mcp.WithString("match", mcp.Description("Address pattern, default *:*:*")),
	)
	s.mcpServer.AddTool(queryTool, s.handleQuery)

	// TOOL: describe_palette
	s.mcpServer.AddTool(mcp.NewTool("describe_palette",
		mcp.WithDescription("Get palette metadata: policy, wrap, element count and history depth."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, _ := json.Marshal(s.engine.Describe())
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: undo
	s.mcpServer.AddTool(mcp.NewTool("undo",
		mcp.WithDescription("Revert the most recently applied operation."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := s.engine.Undo(ctx); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("undo failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(s.engine.Describe())
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: redo
	s.mcpServer.AddTool(mcp.NewTool("redo",
		mcp.WithDescription("Reapply the most recently undone operation."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := s.engine.Redo(ctx); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("redo failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(s.engine.Describe())
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: export_palette
	s.mcpServer.AddTool(mcp.NewTool("export_palette",
		mcp.WithDescription("Export the palette as a YAML document."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		doc, err := s.engine.Document()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("export failed: %v", err)), nil
		}
		var sb strings.Builder
		if err := schema.EncodeYAML(&sb, doc); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("export failed: %v", err)), nil
		}
		return mcp.NewToolResultText(sb.String()), nil
	})
}

func (s *Server) handleApply(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	op := domain.Operation{
		Kind:      domain.OperationKind(request.GetString("kind", "")),
		Overwrite: request.GetBool("overwrite", false),
		Force:     request.GetBool("force", false),
		Count:     request.GetInt("count", 0),
		Space:     domain.BlendSpace(request.GetString("space", "")),
	}

	var err error
	if op.At, err = domain.ParseAddress(request.GetString("at", "")); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid at: %v", err)), nil
	}
	if hex := request.GetString("color", ""); hex != "" {
		if op.Color, err = domain.ParseHex(hex); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid color: %v", err)), nil
		}
	}
	if raw, ok := args["from"].(string); ok && raw != "" {
		if op.From, err = domain.ParseAddress(raw); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid from: %v", err)), nil
		}
	}
	if raw, ok := args["to"].(string); ok && raw != "" {
		if op.To, err = domain.ParseAddress(raw); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid to: %v", err)), nil
		}
	}

	summary, err := s.engine.Apply(ctx, op)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("apply failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(summary)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pat := domain.PatternAll()
	if m := request.GetString("match", ""); m != "" {
		var err error
		if pat, err = domain.ParsePattern(m); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid match: %v", err)), nil
		}
	}

	entries, err := s.engine.Entries(pat)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", err)), nil
	}
	if entries == nil {
		entries = []domain.Entry{}
	}
	jsonBytes, _ := json.Marshal(entries)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
