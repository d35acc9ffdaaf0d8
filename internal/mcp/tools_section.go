package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"portfolio/internal/domain"
)

func (s *Server) registerSectionTools() {
	// ── add_section ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_section",
		mcp.WithDescription("Append a new section with the schema's default content. Undoable."),
		mcp.WithString("type",
			mcp.Description("Section type: hero, about, skills, projects, contact"),
			mcp.Required(),
		),
		mcp.WithString("id", mcp.Description("Section ID (optional, generated if omitted)")),
		mcp.WithString("data", mcp.Description("JSON object merged over the default content (optional)")),
	), s.handleAddSection)

	// ── update_section ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("update_section",
		mcp.WithDescription("Shallow-merge keys into a section's data. Localized fields are objects with en, ua, ru, pl keys. Undoable."),
		mcp.WithString("sectionId", mcp.Description("Section ID"), mcp.Required()),
		mcp.WithString("data", mcp.Description(`JSON object, e.g. {"layout":"stacked"}`), mcp.Required()),
	), s.handleUpdateSection)

	// ── remove_section (destructive) ───────────────────
	s.mcp.AddTool(mcp.NewTool("remove_section",
		mcp.WithDescription("Remove a section and release its uploaded images. Undo restores the section."),
		mcp.WithString("sectionId", mcp.Description("Section ID to remove"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleRemoveSection)

	// ── reorder_sections ───────────────────────────────
	s.mcp.AddTool(mcp.NewTool("reorder_sections",
		mcp.WithDescription("Move the section at index start so it lands at index end of the list without it (drag-and-drop semantics). Undoable."),
		mcp.WithNumber("start", mcp.Description("Current index of the section"), mcp.Required()),
		mcp.WithNumber("end", mcp.Description("Target index"), mcp.Required()),
	), s.handleReorderSections)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleAddSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	typ, err := domain.ParseSectionType(req.GetString("type", ""))
	if err != nil {
		return nil, err
	}
	sec, err := s.store.Schemas().NewSection(typ)
	if err != nil {
		return nil, fmt.Errorf("new section: %w", err)
	}
	if id := req.GetString("id", ""); id != "" {
		sec.ID = id
	}
	if req.GetString("data", "") != "" {
		var data map[string]any
		if err := jsonArg(req, "data", &data); err != nil {
			return nil, err
		}
		for k, v := range data {
			sec.Data[k] = v
		}
	}
	if !s.store.AddSection(sec) {
		return nil, fmt.Errorf("section %s was not added (duplicate id?)", sec.ID)
	}
	_, locale := s.Selection()
	s.selectSection(sec.ID, locale)
	return jsonResult(sec)
}

func (s *Server) handleUpdateSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("sectionId", "")
	if id == "" {
		return nil, fmt.Errorf("sectionId is required")
	}
	var data map[string]any
	if err := jsonArg(req, "data", &data); err != nil {
		return nil, err
	}
	if _, ok := s.store.Section(id); !ok {
		return nil, fmt.Errorf("section %s not found", id)
	}
	return s.changeResult("update_section", s.store.UpdateSection(id, data))
}

func (s *Server) handleRemoveSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("sectionId", "")
	if id == "" {
		return nil, fmt.Errorf("sectionId is required")
	}
	removed := s.store.RemoveSection(id)
	if removed {
		s.mu.Lock()
		if s.activeSectionID == id {
			s.activeSectionID = ""
		}
		s.mu.Unlock()
	}
	return s.changeResult("remove_section", removed)
}

func (s *Server) handleReorderSections(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, err := intArg(req, "start")
	if err != nil {
		return nil, err
	}
	end, err := intArg(req, "end")
	if err != nil {
		return nil, err
	}
	return s.changeResult("reorder_sections", s.store.ReorderSections(start, end))
}
