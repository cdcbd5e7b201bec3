package extract

import (
	"fmt"
	"math"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/readlingo/pdfbridge/internal/segment"
)

const methodFallback = "ledongthuc/pdf"

// extractRows is the fallback path: each text row reported by ledongthuc/pdf
// becomes a single-line block. Row coordinates are converted to the same
// top-left-origin space the tabula path produces.
func extractRows(path string, startPage, endPage int) (Extraction, error) {
	f, r, err := pdflib.Open(path)
	if err != nil {
		return Extraction{}, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	pageCount := r.NumPage()
	startPage, endPage = clampRange(startPage, endPage, pageCount)

	var blocks []Block
	for i := startPage; i <= endPage; i++ {
		page := r.Page(i + 1) // ledongthuc pages are 1-indexed
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return Extraction{}, fmt.Errorf("page %d: %w", i+1, err)
		}
		height := pageHeight(page)
		for _, row := range rows {
			if blk, ok := rowBlock(row, i, height); ok {
				blocks = append(blocks, blk)
			}
		}
	}

	return Extraction{Blocks: blocks, PageCount: pageCount, Method: methodFallback}, nil
}

// rowBlock builds a one-line block from a text row. Returns ok=false for rows
// with no content.
func rowBlock(row *pdflib.Row, pageIndex int, pageHeight float64) (Block, bool) {
	if len(row.Content) == 0 {
		return Block{}, false
	}

	spans := make([]string, 0, len(row.Content))
	minX := math.MaxFloat64
	maxX := -math.MaxFloat64
	var baseline, fontSize float64
	for _, t := range row.Content {
		spans = append(spans, t.S)
		if t.X < minX {
			minX = t.X
		}
		if t.X+t.W > maxX {
			maxX = t.X + t.W
		}
		baseline = t.Y
		if t.FontSize > fontSize {
			fontSize = t.FontSize
		}
	}

	top := pageHeight - (baseline + fontSize)
	if top < 0 {
		top = 0
	}
	return Block{
		Page:  pageIndex,
		Kind:  BlockText,
		BBox:  segment.BBox{minX, top, maxX, pageHeight - baseline},
		Lines: [][]string{spans},
	}, true
}

// pageHeight reads the MediaBox height, walking up the page tree for
// inherited values.
func pageHeight(p pdflib.Page) float64 {
	for v := p.V; !v.IsNull(); v = v.Key("Parent") {
		if mb := v.Key("MediaBox"); !mb.IsNull() && mb.Len() == 4 {
			return mb.Index(3).Float64() - mb.Index(1).Float64()
		}
	}
	return defaultPageHeight
}
