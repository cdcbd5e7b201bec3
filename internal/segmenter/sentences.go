package segmenter

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/readlingo/pdfbridge/internal/segment"
)

// sentenceBoundary matches a sentence-ending punctuation mark, whitespace,
// then an uppercase Latin letter or a Hangul syllable. The whitespace class
// is spelled out because RE2's \s covers only ASCII whitespace, while
// PDF-extracted text routinely carries NBSP and ideographic spaces; the class
// covers the full Unicode whitespace set (separators, NEL, the ASCII
// information separators). The character classes are kept exactly as-is for
// compatibility with existing consumers: the heuristic is biased toward
// Latin/Korean text and is blind to other scripts, abbreviations, and
// decimal points.
var sentenceBoundary = regexp.MustCompile(`[.!?][\t\n\v\f\r\x{1C}-\x{1F}\x{85}\p{Z}]+[A-Z\x{AC00}-\x{D7A3}]`)

// SplitSentences refines block-level segments into sentence-level segments.
// IDs are reassigned globally from 0 across all emitted segments; each
// sentence carries the id its parent segment had before renumbering. Segments
// that produce no sentences are kept as-is, renumbered.
func SplitSentences(segments []segment.Segment) []segment.Segment {
	out := []segment.Segment{}
	id := 0
	for _, seg := range segments {
		sentences := splitAtBoundaries(seg.Source)
		if len(sentences) == 0 {
			seg.ID = id
			out = append(out, seg)
			id++
			continue
		}

		parentID := seg.ID
		for _, s := range sentences {
			sentence := seg
			sentence.ID = id
			sentence.Source = s
			pid := parentID
			sentence.OriginalSegmentID = &pid
			out = append(out, sentence)
			id++
		}
	}
	return out
}

// splitAtBoundaries splits text at sentence boundaries. The punctuation mark
// stays with the left piece, the matched letter starts the right piece, and
// the separating whitespace is dropped. Pieces are trimmed; empty pieces are
// discarded.
func splitAtBoundaries(text string) []string {
	var pieces []string
	start := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(text, -1) {
		punctEnd := loc[0] + 1 // the mark is a single byte
		_, letterSize := utf8.DecodeLastRuneInString(text[loc[0]:loc[1]])
		if piece := strings.TrimSpace(text[start:punctEnd]); piece != "" {
			pieces = append(pieces, piece)
		}
		start = loc[1] - letterSize
	}
	if tail := strings.TrimSpace(text[start:]); tail != "" {
		pieces = append(pieces, tail)
	}
	return pieces
}
