// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes Ansuz search tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/ansuz/internal/index"
	"github.com/starford/ansuz/internal/search"
)

// Server wraps the MCP server with Ansuz search tools. The MCP transport is
// stdio and serves exactly one local user, fixed at construction time.
type Server struct {
	mcp     *server.MCPServer
	svc     *search.Service
	history index.HistoryReader
	userID  string
}

// New creates a new MCP server with all search tools registered.
func New(svc *search.Service, history index.HistoryReader, userID string) *Server {
	s := &Server{svc: svc, history: history, userID: userID}

	s.mcp = server.NewMCPServer(
		"Ansuz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_notes",
		mcp.WithDescription("Keyword search through the user's notes. Returns ranked results "+
			"with snippets and highlighted content."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
		mcp.WithNumber("limit", mcp.Description("Max results per page (1-50, default 20)")),
		mcp.WithNumber("offset", mcp.Description("Page offset")),
		mcp.WithString("tags", mcp.Description("Comma-separated tags; results must carry all of them")),
	), s.searchNotes)

	s.mcp.AddTool(mcp.NewTool("search_history",
		mcp.WithDescription("List the user's recent searches, most recently used first."),
		mcp.WithNumber("limit", mcp.Description("Max history rows (default 50)")),
	), s.searchHistory)

	s.mcp.AddTool(mcp.NewTool("search_suggestions",
		mcp.WithDescription("Suggest past queries starting with a prefix, most used first."),
		mcp.WithString("prefix", mcp.Required(), mcp.Description("Query prefix to complete")),
		mcp.WithNumber("limit", mcp.Description("Max suggestions (default 10)")),
	), s.searchSuggestions)

	return s
}

// Serve runs the MCP protocol over the given streams until the input is
// exhausted or the context is cancelled.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sreq := search.Request{
		Query:               query,
		Type:                search.QueryTypeKeyword,
		Limit:               req.GetInt("limit", 0),
		Offset:              req.GetInt("offset", 0),
		IncludeSnippets:     true,
		IncludeHighlighting: true,
		UserID:              s.userID,
	}
	if tags := req.GetString("tags", ""); tags != "" {
		sreq.Filters = &search.Filters{Tags: splitTags(tags)}
	}

	resp, err := s.svc.Search(ctx, sreq)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(resp, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) searchHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := s.history.ListHistory(ctx, s.userID, req.GetInt("limit", 0))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if items == nil {
		items = []search.HistoryItem{}
	}
	out, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) searchSuggestions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prefix, err := req.RequireString("prefix")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	suggestions, err := s.history.Suggest(ctx, s.userID, search.Sanitize(prefix), req.GetInt("limit", 0))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(strings.Join(suggestions, "\n")), nil
}

func splitTags(raw string) []string {
	var out []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
