// Package cli implements the docent command line interface. It is a
// driving adapter: commands load configuration, wire the core services
// and hand control to the HTTP server, the TUI, or the MCP server.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/docent-ai/docent/internal/config"
	"github.com/docent-ai/docent/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfgFile string
	verbose bool

	// cfg is loaded once before any command runs.
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "docent",
	Short: "Conversational agent over your documents",
	Long: `Docent indexes uploaded documents into a vector store and answers
questions about them through a tool-calling agent. The agent can also
book interview appointments on request.

Start the HTTP API with "docent serve", chat interactively with
"docent chat", or ingest files directly with "docent ingest".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		logger.SetVerbose(verbose)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.docent/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
