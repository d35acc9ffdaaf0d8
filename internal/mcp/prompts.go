package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("build_portfolio",
		mcp.WithPromptDescription("Guide through assembling a portfolio page from section blocks"),
		mcp.WithArgument("owner",
			mcp.ArgumentDescription("Name of the person the portfolio is for"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("role",
			mcp.ArgumentDescription("What they do, e.g. backend engineer"),
		),
	), s.handleBuildPortfolioPrompt)

	s.mcp.AddPrompt(mcp.NewPrompt("translate_portfolio",
		mcp.WithPromptDescription("Fill in every text field for one locale"),
		mcp.WithArgument("locale",
			mcp.ArgumentDescription("Target locale: en, ua, ru, pl"),
			mcp.RequiredArgument(),
		),
	), s.handleTranslatePrompt)
}

func (s *Server) handleBuildPortfolioPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	owner := req.Params.Arguments["owner"]
	role := req.Params.Arguments["role"]
	if role == "" {
		role = "professional"
	}
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Build a portfolio for %s", owner),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Build a portfolio page for %s, a %s. Follow these steps:

1. Use patch_portfolio to set the name to "%s" and pick a theme
2. Use list_schemas to see which fields each section type has
3. Add sections in this order with add_section: hero, about, skills, projects, contact
4. For each section, call inspect_section and fill every required field with edit_field
5. Use reorder_sections if the order needs adjusting
6. Finish with export_html

If something goes wrong, use undo. Required fields must be filled in the default locale.`, owner, role, owner),
				},
			},
		},
	}, nil
}

func (s *Server) handleTranslatePrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	locale := req.Params.Arguments["locale"]
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Translate the portfolio into %s", locale),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Translate the portfolio into locale "%s". Follow these steps:

1. Read portfolio://current and make sure "%s" is in enabledLocales (use patch_portfolio if not)
2. For each section, call inspect_section with locale "%s"
3. For every text or textarea field, call edit_field with locale "%s" and the translated text
4. Repeat inspect_section until the form reports valid

Leave the other locales untouched.`, locale, locale, locale, locale),
				},
			},
		},
	}, nil
}
