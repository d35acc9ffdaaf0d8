package mcpserver

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cast"

	"portfolio/internal/editor"
)

func (s *Server) registerEditorTools() {
	// ── list_schemas ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_schemas",
		mcp.WithDescription("List the editable fields of every section type"),
	), s.handleListSchemas)

	// ── inspect_section ────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("inspect_section",
		mcp.WithDescription("Open a section in the inspector: returns each field's value in the locale and its validation message. Selects the section for later calls."),
		mcp.WithString("sectionId", mcp.Description("Section ID (optional, defaults to the selected section)")),
		mcp.WithString("locale", mcp.Description("Locale: en, ua, ru, pl (optional, defaults to the active locale)")),
	), s.handleInspectSection)

	// ── edit_field ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("edit_field",
		mcp.WithDescription("Edit one schema field of a section. Text fields are written in the given locale only. Undoable."),
		mcp.WithString("key", mcp.Description("Field key from the schema"), mcp.Required()),
		mcp.WithString("sectionId", mcp.Description("Section ID (optional, defaults to the selected section)")),
		mcp.WithString("locale", mcp.Description("Locale for text fields (optional)")),
		mcp.WithString("action",
			mcp.Description("set (default), add_chip, remove_chip, set_alt, remove_image"),
			mcp.Enum("set", "add_chip", "remove_chip", "set_alt", "remove_image"),
		),
		mcp.WithString("value", mcp.Description(`JSON-encoded value: a string for text/select/add_chip/set_alt, a boolean for switches, a string array for chips, an index for remove_chip`)),
	), s.handleEditField)

	// ── upload_image ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("upload_image",
		mcp.WithDescription("Replace an image field with uploaded bytes. The previous upload is released; alt text is kept."),
		mcp.WithString("key", mcp.Description("Image field key, e.g. avatar"), mcp.Required()),
		mcp.WithString("sectionId", mcp.Description("Section ID (optional, defaults to the selected section)")),
		mcp.WithString("base64", mcp.Description("Image bytes, base64 encoded")),
		mcp.WithString("file", mcp.Description("Path of a local image file (alternative to base64)")),
	), s.handleUploadImage)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleListSchemas(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.store.Schemas().All())
}

func (s *Server) handleInspectSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := s.resolveSectionID(req)
	if err != nil {
		return nil, err
	}
	locale, err := s.resolveLocale(req)
	if err != nil {
		return nil, err
	}
	form, err := s.editor.Form(id, locale)
	if err != nil {
		return nil, err
	}
	s.selectSection(id, locale)
	return jsonResult(formResult(form))
}

func (s *Server) handleEditField(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := s.resolveSectionID(req)
	if err != nil {
		return nil, err
	}
	locale, err := s.resolveLocale(req)
	if err != nil {
		return nil, err
	}
	key := req.GetString("key", "")
	if key == "" {
		return nil, fmt.Errorf("key is required")
	}

	var value any
	if req.GetString("value", "") != "" {
		if err := jsonArg(req, "value", &value); err != nil {
			return nil, err
		}
	}

	switch action := req.GetString("action", "set"); action {
	case "set":
		err = s.editor.SetField(id, key, locale, value)
	case "add_chip":
		_, err = s.editor.AddChip(id, key, cast.ToString(value))
	case "remove_chip":
		var index int
		if index, err = cast.ToIntE(value); err == nil {
			_, err = s.editor.RemoveChip(id, key, index)
		}
	case "set_alt":
		err = s.editor.SetImageAlt(id, key, cast.ToString(value))
	case "remove_image":
		_, err = s.editor.RemoveImage(id, key)
	default:
		err = fmt.Errorf("unknown action %q", action)
	}
	if err != nil {
		return nil, fmt.Errorf("edit %s: %w", key, err)
	}

	form, err := s.editor.Form(id, locale)
	if err != nil {
		return nil, err
	}
	return jsonResult(formResult(form))
}

func (s *Server) handleUploadImage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := s.resolveSectionID(req)
	if err != nil {
		return nil, err
	}
	key := req.GetString("key", "")
	if key == "" {
		return nil, fmt.Errorf("key is required")
	}

	var data []byte
	switch b64, file := req.GetString("base64", ""), req.GetString("file", ""); {
	case b64 != "":
		if data, err = base64.StdEncoding.DecodeString(b64); err != nil {
			return nil, fmt.Errorf("base64: %w", err)
		}
	case file != "":
		if data, err = os.ReadFile(file); err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
	default:
		return nil, fmt.Errorf("base64 or file is required")
	}

	img, err := s.editor.ReplaceImage(id, key, data)
	if errors.Is(err, editor.ErrNotImage) {
		// shown to the user as-is
		return mcp.NewToolResultError(editor.ErrNotImage.Error()), nil
	}
	if err != nil {
		return nil, err
	}
	return jsonResult(img)
}

// formView is the wire shape of an inspector form.
type formView struct {
	editor.Form
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

func formResult(f editor.Form) formView {
	return formView{Form: f, Valid: f.Valid(), Errors: f.Errors()}
}
