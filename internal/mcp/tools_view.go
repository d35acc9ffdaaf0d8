package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"portfolio/internal/domain"
)

// selectionView is the shell state an agent sees: which section the
// inspector shows, in which locale, at which preview width.
type selectionView struct {
	SectionID string            `json:"sectionId"`
	Locale    domain.Locale     `json:"locale"`
	Device    domain.DeviceView `json:"device"`
}

func (s *Server) registerViewTools() {
	s.mcp.AddTool(mcp.NewTool("set_view",
		mcp.WithDescription("Change the preview device and/or the active locale. With no arguments, reports the current selection."),
		mcp.WithString("device", mcp.Description("Preview width"), mcp.Enum("desktop", "tablet", "mobile")),
		mcp.WithString("locale", mcp.Description("Active content locale"), mcp.Enum("en", "ua", "ru", "pl")),
	), s.handleSetView)
}

func (s *Server) handleSetView(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var (
		device domain.DeviceView
		locale domain.Locale
		err    error
	)
	if raw := req.GetString("device", ""); raw != "" {
		if device, err = domain.ParseDeviceView(raw); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	if raw := req.GetString("locale", ""); raw != "" {
		if locale, err = domain.ParseLocale(raw); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	s.mu.Lock()
	if device != "" {
		s.activeDevice = device
	}
	if locale != "" {
		s.activeLocale = locale
	}
	view := selectionView{SectionID: s.activeSectionID, Locale: s.activeLocale, Device: s.activeDevice}
	s.mu.Unlock()

	return jsonResult(view)
}
