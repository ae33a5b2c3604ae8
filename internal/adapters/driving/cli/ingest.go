package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docent-ai/docent/internal/chunkers"
	"github.com/docent-ai/docent/internal/core/domain"
	"github.com/docent-ai/docent/internal/core/ports/driving"
)

// ingestionService can be preset by tests; runIngest wires it from
// configuration when unset.
var ingestionService driving.IngestionService

var ingestStrategy string

var ingestCmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Index documents from the filesystem",
	Long: `Extract, chunk and index the given documents synchronously.

Supported formats: PDF and plain text (txt, md). Each file is recorded
with the chunking strategy and embedding model used.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestStrategy, "strategy", "s", string(domain.StrategyRecursive), "chunking strategy (recursive|semantic)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	strategy, err := chunkers.ParseStrategy(ingestStrategy)
	if err != nil {
		return err
	}

	service := ingestionService
	if service == nil {
		app, err := buildApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer app.Close()
		service = app.ingestion
	}

	var failed int
	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			cmd.PrintErrf("  %s: %v\n", path, err)
			failed++
			continue
		}

		raw := domain.RawDocument{
			FileName:  filepath.Base(path),
			MediaType: mediaTypeFor(path),
			Content:   content,
		}
		if err := service.Ingest(cmd.Context(), raw, strategy); err != nil {
			cmd.PrintErrf("  %s: %v\n", path, err)
			failed++
			continue
		}
		cmd.Printf("  %s: indexed (%s)\n", path, strategy)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

// mediaTypeFor guesses the media type from the file extension.
// Unknown extensions map to plain text and fail extraction later if
// the content does not decode.
func mediaTypeFor(path string) domain.MediaType {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return domain.MediaTypePDF
	}
	return domain.MediaTypePlainText
}
