// Package segmenter turns raw page blocks into clean, ordered, stably-numbered
// text segments, optionally refines them into sentences, and partitions them
// into batches for progressive delivery.
package segmenter

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/readlingo/pdfbridge/internal/extract"
	"github.com/readlingo/pdfbridge/internal/segment"
)

// pageNumberPattern matches text that is entirely decimal digits, the usual
// shape of a bare page number.
var pageNumberPattern = regexp.MustCompile(`^\p{Nd}+$`)

// minSegmentRunes drops very short blocks, which are almost always headers,
// footers, or stray marks rather than content.
const minSegmentRunes = 5

// Segments converts raw blocks into ordered block-level segments. Pages are
// processed in ascending order; within a page, blocks are sorted by their top
// y-coordinate. That is the sole ordering heuristic: it approximates reading
// order for single-column layouts and may misorder multi-column text.
func Segments(blocks []extract.Block) []segment.Segment {
	byPage := make(map[int][]extract.Block)
	for _, b := range blocks {
		byPage[b.Page] = append(byPage[b.Page], b)
	}
	pages := make([]int, 0, len(byPage))
	for p := range byPage {
		pages = append(pages, p)
	}
	sort.Ints(pages)

	segments := []segment.Segment{}
	id := 0
	for _, p := range pages {
		pageBlocks := byPage[p]
		sort.SliceStable(pageBlocks, func(i, j int) bool {
			return pageBlocks[i].BBox[1] < pageBlocks[j].BBox[1]
		})

		for _, b := range pageBlocks {
			if b.Kind != extract.BlockText {
				continue
			}
			text := blockText(b)
			if text == "" {
				continue
			}
			if pageNumberPattern.MatchString(text) || utf8.RuneCountInString(text) < minSegmentRunes {
				continue
			}
			segments = append(segments, segment.Segment{
				ID:       id,
				Source:   text,
				Page:     p + 1, // 1-indexed for display
				BBox:     b.BBox,
				Position: b.BBox.Position(),
			})
			id++
		}
	}
	return segments
}

// blockText flattens a block: spans join with no separator (a known limitation
// when the source PDF lacks explicit spacing), lines join with a single space,
// and blank lines are dropped.
func blockText(b extract.Block) string {
	lines := make([]string, 0, len(b.Lines))
	for _, spans := range b.Lines {
		line := strings.Join(spans, "")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, " "))
}
