package extract

import (
	"fmt"

	"github.com/tsawler/tabula/layout"
	"github.com/tsawler/tabula/model"
	"github.com/tsawler/tabula/reader"

	"github.com/readlingo/pdfbridge/internal/segment"
)

const methodTabula = "tabula"

// defaultPageHeight is used when a page reports no usable height (US Letter).
const defaultPageHeight = 792.0

func extractTabula(path string, startPage, endPage int) (Extraction, error) {
	r, err := reader.Open(path)
	if err != nil {
		return Extraction{}, fmt.Errorf("open pdf: %w", err)
	}
	defer r.Close()

	pageCount, err := r.PageCount()
	if err != nil {
		return Extraction{}, fmt.Errorf("page count: %w", err)
	}
	startPage, endPage = clampRange(startPage, endPage, pageCount)

	detector := layout.NewBlockDetector()

	var blocks []Block
	for i := startPage; i <= endPage; i++ {
		page, err := r.GetPage(i)
		if err != nil {
			return Extraction{}, fmt.Errorf("page %d: %w", i+1, err)
		}
		fragments, err := r.ExtractTextFragments(page)
		if err != nil {
			return Extraction{}, fmt.Errorf("page %d: %w", i+1, err)
		}

		width, _ := page.Width()
		height, _ := page.Height()
		if height <= 0 {
			height = defaultPageHeight
		}

		pl := detector.Detect(fragments, width, height)
		for _, b := range pl.Blocks {
			blocks = append(blocks, Block{
				Page:  i,
				Kind:  BlockText,
				BBox:  bboxTopLeft(b.BBox, height),
				Lines: blockLines(b),
			})
		}
	}

	return Extraction{Blocks: blocks, PageCount: pageCount, Method: methodTabula}, nil
}

// bboxTopLeft converts a tabula box (bottom-left origin, x/y/width/height) to
// x0,y0,x1,y1 with the origin at the top-left of the page.
func bboxTopLeft(b model.BBox, pageHeight float64) segment.BBox {
	return segment.BBox{
		b.X,
		pageHeight - (b.Y + b.Height),
		b.X + b.Width,
		pageHeight - b.Y,
	}
}

// blockLines flattens a detected block into lines of span texts.
func blockLines(b layout.Block) [][]string {
	lines := make([][]string, 0, len(b.Lines))
	for _, line := range b.Lines {
		spans := make([]string, 0, len(line))
		for _, frag := range line {
			spans = append(spans, frag.Text)
		}
		lines = append(lines, spans)
	}
	return lines
}
