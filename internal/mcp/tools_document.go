package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"portfolio/internal/domain"
)

func (s *Server) registerDocumentTools() {
	// ── get_portfolio ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_portfolio",
		mcp.WithDescription("Return the whole portfolio document as JSON"),
	), s.handleGetPortfolio)

	// ── get_value ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_value",
		mcp.WithDescription("Read the value at a dot or slash separated path, e.g. sections.0.data.title.en or theme/primaryColor"),
		mcp.WithString("path", mcp.Description("Path into the document (empty for the whole document)")),
	), s.handleGetValue)

	// ── set_value ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("set_value",
		mcp.WithDescription("Assign a JSON value at a path. Missing intermediate objects are created. Undoable."),
		mcp.WithString("path", mcp.Description("Path into the document"), mcp.Required()),
		mcp.WithString("value", mcp.Description(`JSON-encoded value, e.g. "\"light\"", "true" or "{\"en\":\"Hi\"}"`), mcp.Required()),
	), s.handleSetValue)

	// ── patch_portfolio ────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("patch_portfolio",
		mcp.WithDescription("Shallow-merge top-level fields (name, theme, enabledLocales, defaultLocale, sections) into the document. Undoable."),
		mcp.WithString("patch", mcp.Description(`JSON object, e.g. {"name":"Jane","theme":{"primaryColor":"#0ea5e9","mode":"light"}}`), mcp.Required()),
	), s.handlePatchPortfolio)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleGetPortfolio(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.store.Portfolio())
}

func (s *Server) handleGetValue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")
	v, ok := s.store.GetValue(path)
	if !ok {
		return nil, fmt.Errorf("nothing at path %q", path)
	}
	return jsonResult(v)
}

func (s *Server) handleSetValue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	var value any
	if err := jsonArg(req, "value", &value); err != nil {
		return nil, err
	}
	return s.changeResult("set_value", s.store.SetValue(path, value))
}

func (s *Server) handlePatchPortfolio(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var patch domain.PortfolioPatch
	if err := jsonArg(req, "patch", &patch); err != nil {
		return nil, err
	}
	if patch.DefaultLocale != nil {
		if _, err := domain.ParseLocale(string(*patch.DefaultLocale)); err != nil {
			return nil, err
		}
	}
	if patch.EnabledLocales != nil {
		for _, l := range *patch.EnabledLocales {
			if _, err := domain.ParseLocale(string(l)); err != nil {
				return nil, err
			}
		}
	}
	return s.changeResult("patch_portfolio", s.store.Patch(patch))
}
