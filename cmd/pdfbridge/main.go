// pdfbridge extracts segmented text from PDF files and serves it as JSON,
// either on stdout for a parent process to capture or over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pdfbridge",
	Short: "pdfbridge — extract segmented text from PDF files",
	Long: `pdfbridge extracts text from PDF documents and segments it into
addressable units with position metadata, suitable for display,
translation, or indexing.

Usage:
  pdfbridge extract <pdf> [flags]
  pdfbridge serve`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
