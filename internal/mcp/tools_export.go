package mcpserver

import (
	"bytes"
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"portfolio/internal/export"
)

func (s *Server) registerExportTools() {
	s.mcp.AddTool(mcp.NewTool("export_html",
		mcp.WithDescription("Export the portfolio as a standalone HTML page in its default locale"),
		mcp.WithBoolean("write", mcp.Description("Write the file into the export directory instead of returning the HTML (default true)")),
	), s.handleExportHTML)
}

func (s *Server) handleExportHTML(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p := s.store.Portfolio()

	if !req.GetBool("write", true) {
		var buf bytes.Buffer
		if err := s.exporter.Render(&buf, p); err != nil {
			return nil, err
		}
		return textResult(buf.String()), nil
	}

	job := "export:" + export.FileName(p)
	if !s.jobs.TryLock(job) {
		return nil, fmt.Errorf("export of %s already running", export.FileName(p))
	}
	defer s.jobs.Unlock(job)

	path, err := s.exporter.WriteFile(s.exportDir, p)
	if err != nil {
		return nil, err
	}
	s.logger.Info("exported", zap.String("path", path))
	return textResult(fmt.Sprintf("Exported to %s", path)), nil
}
