// Package cli implements the convertd command line interface.
package cli

import (
	"github.com/spf13/cobra"

	configfile "github.com/fileforge/convertd/internal/adapters/driven/config/file"
	"github.com/fileforge/convertd/internal/adapters/driven/fetch"
	sftppublish "github.com/fileforge/convertd/internal/adapters/driven/publish/sftp"
	"github.com/fileforge/convertd/internal/converters/docxpdf"
	"github.com/fileforge/convertd/internal/converters/imageconv"
	"github.com/fileforge/convertd/internal/converters/markpdf"
	"github.com/fileforge/convertd/internal/converters/pdfdocx"
	"github.com/fileforge/convertd/internal/converters/sheetcsv"
	"github.com/fileforge/convertd/internal/core/domain"
	"github.com/fileforge/convertd/internal/core/ports/driven"
	"github.com/fileforge/convertd/internal/core/ports/driving"
	"github.com/fileforge/convertd/internal/core/services"
	"github.com/fileforge/convertd/internal/logger"
	"github.com/fileforge/convertd/internal/resolver"
)

// version is the CLI version, overridable at build time.
var version = "0.1.0"

var (
	verbose    bool
	configPath string
)

// Services wired by initApp and shared by the subcommands.
var (
	appConfig      configfile.Config
	convertService driving.ConvertService
	pathResolver   *resolver.Resolver
)

var rootCmd = &cobra.Command{
	Use:   "convertd",
	Short: "Document conversion toolkit and MCP server",
	Long: `convertd converts documents between office, markup, and image formats
and exposes the conversions as MCP tools for AI assistants.`,
	PersistentPreRunE: initApp,
	SilenceUsage:      true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.convertd/config.toml)")
}

// initApp loads configuration and wires the conversion service. It runs
// before every subcommand.
func initApp(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	path := configPath
	if path == "" {
		if p, err := configfile.DefaultPath(); err == nil {
			path = p
		}
	}
	cfg, err := configfile.Load(path)
	if err != nil {
		return err
	}
	appConfig = cfg

	table := services.NewTable()
	table.RegisterPair(domain.FormatDOCX, domain.FormatPDF, docxpdf.New())
	table.RegisterPair(domain.FormatPDF, domain.FormatDOCX, pdfdocx.New())
	markdown := markpdf.NewMarkdown()
	table.RegisterPair(domain.FormatMarkdown, domain.FormatPDF, markdown)
	table.RegisterPair(domain.FormatMD, domain.FormatPDF, markdown)
	table.RegisterPair(domain.FormatHTML, domain.FormatPDF, markpdf.NewHTML())
	sheet := sheetcsv.New()
	table.RegisterPair(domain.FormatXLSX, domain.FormatCSV, sheet)
	table.RegisterPair(domain.FormatXLS, domain.FormatCSV, sheet)
	table.RegisterImage(imageconv.New())

	var publisher driven.Publisher
	if cfg.Publish.Enabled() {
		publisher = sftppublish.New(sftppublish.Config{
			Host:      cfg.Publish.Host,
			Port:      cfg.Publish.Port,
			User:      cfg.Publish.User,
			Password:  cfg.Publish.Password,
			RemoteDir: cfg.Publish.RemoteDir,
		})
	}

	convertService = services.NewConversionService(
		table,
		fetch.New(),
		publisher,
		cfg.Output.Dir,
		cfg.Output.BaseURL,
	)
	pathResolver = resolver.New()
	return nil
}
