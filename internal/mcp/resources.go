package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	uriPortfolio = "portfolio://current"
	uriSchemas   = "portfolio://schemas"
)

func (s *Server) registerResources() {
	// ── portfolio://current ────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		uriPortfolio,
		"Current Portfolio",
		mcp.WithResourceDescription("The live portfolio document"),
		mcp.WithMIMEType("application/json"),
	), s.handlePortfolioResource)

	// ── portfolio://schemas ────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		uriSchemas,
		"Section Schemas",
		mcp.WithResourceDescription("Editable fields of every section type"),
		mcp.WithMIMEType("application/json"),
	), s.handleSchemasResource)
}

func (s *Server) handlePortfolioResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(uriPortfolio, s.store.Portfolio())
}

func (s *Server) handleSchemasResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(uriSchemas, s.store.Schemas().All())
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
