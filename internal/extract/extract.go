// Package extract reads raw structured content out of PDF files: blocks of
// lines of spans, annotated with page index and bounding box. It tries the
// tabula layout engine first, then falls back to row-based extraction with
// ledongthuc/pdf if enabled.
package extract

import (
	"log/slog"

	"github.com/readlingo/pdfbridge/internal/segment"
)

// BlockKind tags a block as text or non-text content.
type BlockKind int

const (
	BlockText BlockKind = iota
	BlockImage
)

// Block is a raw content unit from one page. Bounding boxes use a top-left
// origin with y increasing downward, so sorting by BBox[1] ascending
// approximates top-to-bottom reading order.
type Block struct {
	Page  int // 0-based page index
	Kind  BlockKind
	BBox  segment.BBox
	Lines [][]string // lines of span texts, in order
}

// Extraction is the raw output of reading one document.
type Extraction struct {
	Blocks    []Block
	PageCount int
	Method    string // which engine produced the blocks
}

// Extractor reads blocks from PDF files.
type Extractor struct {
	// Fallback enables row-based extraction with ledongthuc/pdf when the
	// tabula engine cannot open or read the file.
	Fallback bool
	Log      *slog.Logger
}

// Extract reads blocks for pages [startPage, endPage], both 0-based.
// endPage == -1 or past the last page means the last page. The underlying
// document handle is closed before Extract returns, on every path.
func (e *Extractor) Extract(path string, startPage, endPage int) (Extraction, error) {
	ext, err := extractTabula(path, startPage, endPage)
	if err != nil && e.Fallback {
		if e.Log != nil {
			e.Log.Warn("tabula extraction failed, trying fallback", "file", path, "error", err)
		}
		return extractRows(path, startPage, endPage)
	}
	return ext, err
}

// clampRange resolves the requested page range against the document's page
// count. An empty document yields start > end, so range loops do not run.
func clampRange(startPage, endPage, pageCount int) (int, int) {
	if startPage < 0 {
		startPage = 0
	}
	if endPage < 0 || endPage >= pageCount {
		endPage = pageCount - 1
	}
	return startPage, endPage
}
