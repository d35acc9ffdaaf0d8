package mcpserver

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"portfolio/internal/blob"
	"portfolio/internal/domain"
	"portfolio/internal/editor"
	"portfolio/internal/export"
	"portfolio/internal/schema"
	"portfolio/internal/service"
)

// Server is the MCP server for the portfolio builder.
// It exposes the document store, history, editor and export as tools and
// resources so an agent can drive the builder the way the UI shell would.
type Server struct {
	mcp *server.MCPServer

	store    *service.PortfolioService
	editor   *editor.Editor
	exporter *export.Exporter
	images   *blob.Registry
	jobs     *service.JobGuard
	logger   *zap.Logger

	exportDir string

	// Shell selection, defaulted from the loaded document.
	mu              sync.Mutex
	activeSectionID string
	activeLocale    domain.Locale
	activeDevice    domain.DeviceView
}

// Deps holds all dependencies passed from the App layer to the MCP server.
type Deps struct {
	Store     *service.PortfolioService
	Editor    *editor.Editor
	Exporter  *export.Exporter
	Images    *blob.Registry
	Jobs      *service.JobGuard
	Logger    *zap.Logger
	ExportDir string
	Locale    domain.Locale // locale forms open in when none is given
	Version   string
}

// New creates and configures a new MCP server with all tools and resources.
func New(deps Deps) *Server {
	s := &Server{
		store:        deps.Store,
		editor:       deps.Editor,
		exporter:     deps.Exporter,
		images:       deps.Images,
		jobs:         deps.Jobs,
		logger:       deps.Logger,
		exportDir:    deps.ExportDir,
		activeLocale: deps.Locale,
		activeDevice: domain.DeviceDesktop,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.jobs == nil {
		s.jobs = &service.JobGuard{}
	}
	if s.exportDir == "" {
		s.exportDir = "."
	}
	if s.activeLocale == "" {
		s.activeLocale = domain.LocaleEN
	}
	version := deps.Version
	if version == "" {
		version = "dev"
	}

	s.mcp = server.NewMCPServer(
		"portfolio-mcp",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
	)

	s.registerDocumentTools()
	s.registerSectionTools()
	s.registerHistoryTools()
	s.registerEditorTools()
	s.registerExportTools()
	s.registerViewTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	s.logger.Info("starting stdio server")
	return server.ServeStdio(s.mcp)
}

// ResetSelection selects the first section and the document's default
// locale, the shell state right after a document is loaded.
func (s *Server) ResetSelection() {
	p := s.store.Portfolio()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeSectionID = ""
	if len(p.Sections) > 0 {
		s.activeSectionID = p.Sections[0].ID
	}
	if p.DefaultLocale != "" {
		s.activeLocale = p.DefaultLocale
	}
}

// Selection returns the active section id and locale.
func (s *Server) Selection() (string, domain.Locale) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeSectionID, s.activeLocale
}

// Device returns the preview width selected in the shell.
func (s *Server) Device() domain.DeviceView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeDevice
}

// ── Helpers ────────────────────────────────────────────────

// resolveSectionID returns the sectionId from tool args or falls back to the
// active section.
func (s *Server) resolveSectionID(req mcp.CallToolRequest) (string, error) {
	if id := req.GetString("sectionId", ""); id != "" {
		return id, nil
	}
	if id, _ := s.Selection(); id != "" {
		return id, nil
	}
	return "", fmt.Errorf("no sectionId provided and no section selected (use inspect_section first)")
}

// resolveLocale returns the locale from tool args or the active locale.
func (s *Server) resolveLocale(req mcp.CallToolRequest) (domain.Locale, error) {
	if raw := req.GetString("locale", ""); raw != "" {
		return domain.ParseLocale(raw)
	}
	_, l := s.Selection()
	return l, nil
}

func (s *Server) selectSection(id string, locale domain.Locale) {
	s.mu.Lock()
	s.activeSectionID = id
	s.activeLocale = locale
	s.mu.Unlock()
}

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

// changeResult reports whether a store mutation took effect along with the
// history state the shell needs to enable its undo/redo buttons.
func (s *Server) changeResult(op string, changed bool) (*mcp.CallToolResult, error) {
	return jsonResult(struct {
		Op      string                `json:"op"`
		Changed bool                  `json:"changed"`
		History service.HistoryStatus `json:"history"`
	}{op, changed, s.store.HistoryStatus()})
}

func boolPtr(v bool) *bool { return &v }
