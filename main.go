package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	portfolioApp "portfolio/internal/app"
	"portfolio/internal/config"
	"portfolio/internal/domain"
	"portfolio/internal/logging"
)

var version = "dev"

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Headless portfolio builder",
	Long: `portfolio assembles a one-page portfolio site out of section blocks
(hero, about, skills, projects, contact), edits them through schema-driven
forms with undo/redo, and exports a standalone HTML page.

Run "portfolio mcp" to drive the builder from an MCP client.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		logger, err = logging.New(cfg.Logging, verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the builder as an MCP server on stdin/stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		return portfolioApp.ServeMCP(portfolioApp.New(cfg, logger), version)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the seed document as a standalone HTML page",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		a := portfolioApp.New(cfg, logger)
		if err := a.Startup(cmd.Context()); err != nil {
			return err
		}
		defer a.Shutdown(context.Background())

		path, err := a.Export(out)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Report required fields left empty in the seed document",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("locale")
		var locale domain.Locale
		if raw != "" {
			l, err := domain.ParseLocale(raw)
			if err != nil {
				return err
			}
			locale = l
		}

		a := portfolioApp.New(cfg, logger)
		if err := a.Startup(cmd.Context()); err != nil {
			return err
		}
		defer a.Shutdown(context.Background())

		reports, err := a.Validate(locale)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if len(reports) == 0 {
			fmt.Fprintln(w, "ok")
			return nil
		}
		for _, r := range reports {
			keys := make([]string, 0, len(r.Errors))
			for k := range r.Errors {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(w, "%s (%s) %s: %s\n", r.SectionID, r.Type, k, r.Errors[k])
			}
		}
		return fmt.Errorf("%d section(s) have errors", len(reports))
	},
}

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "Print the editable fields of every section type as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := portfolioApp.New(cfg, logger)
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(a.Schemas().All())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	exportCmd.Flags().String("out", "", "Output directory (defaults to export.dir)")
	validateCmd.Flags().String("locale", "", "Locale to validate (defaults to every enabled locale)")

	rootCmd.AddCommand(mcpCmd, exportCmd, validateCmd, schemasCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
