package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/readlingo/pdfbridge/internal/extract"
	"github.com/readlingo/pdfbridge/internal/pipeline"
)

// Flag variables.
var (
	flagCacheDir    string
	flagMaxSegments int
	flagNoCache     bool
	flagSentences   bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <pdf>",
	Short: "Extract segmented text from a PDF and print the result as JSON",
	Long: `Extract reads a PDF file, segments its text content, and prints the
result envelope as a single JSON document on stdout. Pre-flight failures
(missing file, uncreatable cache directory) are printed as {"error": ...}
envelopes so the calling process always receives parseable output.

Examples:
  pdfbridge extract document.pdf
  pdfbridge extract document.pdf --sentences --max-segments 50
  pdfbridge extract document.pdf --no-cache`,
	Args: cobra.ExactArgs(1),
	Run:  runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&flagCacheDir, "cache-dir", "./uploads/cache", "Directory for cached extraction results")
	extractCmd.Flags().IntVar(&flagMaxSegments, "max-segments", 50, "Maximum segments per batch")
	extractCmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Disable the extraction cache")
	extractCmd.Flags().BoolVar(&flagSentences, "sentences", false, "Split segments into sentences and add batch info")
}

func runExtract(cmd *cobra.Command, args []string) {
	// Logs go to stderr so stdout stays machine-readable.
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	extractToJSON(&extract.Extractor{Fallback: true, Log: log}, args[0], os.Stdout, log)
}

// extractToJSON runs the pipeline for path and writes exactly one JSON
// envelope to w. Pre-flight failures and panics inside the parsing engines
// are reported as {"error": ...} envelopes so the output is always
// parseable.
func extractToJSON(ex pipeline.Extractor, path string, w io.Writer, log *slog.Logger) {
	enc := json.NewEncoder(w)

	defer func() {
		if r := recover(); r != nil {
			enc.Encode(map[string]string{"error": fmt.Sprintf("PDF processing failed: %v", r)})
		}
	}()

	if _, err := os.Stat(path); err != nil {
		enc.Encode(map[string]string{"error": fmt.Sprintf("File not found: %s", path)})
		return
	}

	proc, err := pipeline.NewProcessor(
		ex,
		pipeline.Options{
			CacheDir:            flagCacheDir,
			UseCache:            !flagNoCache,
			MaxSegmentsPerBatch: flagMaxSegments,
		},
		log,
	)
	if err != nil {
		enc.Encode(map[string]string{"error": fmt.Sprintf("Failed to create cache directory: %s", err)})
		return
	}

	if flagSentences {
		enc.Encode(proc.ExtractBatched(path, flagMaxSegments, !flagNoCache))
		return
	}
	enc.Encode(proc.Extract(path, !flagNoCache))
}
