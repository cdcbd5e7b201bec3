package segmenter

import (
	"reflect"
	"testing"

	"github.com/readlingo/pdfbridge/internal/segment"
)

func blockSegment(id int, source string) segment.Segment {
	bbox := segment.BBox{10, 20, 210, 60}
	return segment.Segment{
		ID:       id,
		Source:   source,
		Page:     1,
		BBox:     bbox,
		Position: bbox.Position(),
	}
}

func sources(segs []segment.Segment) []string {
	out := make([]string, len(segs))
	for i, s := range segs {
		out[i] = s.Source
	}
	return out
}

func TestSplitAtBoundaries(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "two sentences",
			text: "This is a test. It has two sentences.",
			want: []string{"This is a test.", "It has two sentences."},
		},
		{
			name: "question and exclamation marks",
			text: "Is it done? Yes! Completely done.",
			want: []string{"Is it done?", "Yes!", "Completely done."},
		},
		{
			name: "hangul sentence start",
			text: "첫 번째 문장입니다. 두 번째 문장입니다.",
			want: []string{"첫 번째 문장입니다.", "두 번째 문장입니다."},
		},
		{
			name: "lowercase continuation is not a boundary",
			text: "See www.example.com. the site has details.",
			want: []string{"See www.example.com. the site has details."},
		},
		{
			name: "decimal point is not a boundary",
			text: "The value is 3.14 exactly.",
			want: []string{"The value is 3.14 exactly."},
		},
		{
			name: "no trailing punctuation",
			text: "One sentence. Another without a period",
			want: []string{"One sentence.", "Another without a period"},
		},
		{
			name: "multiple spaces at boundary",
			text: "First one.   Second one.",
			want: []string{"First one.", "Second one."},
		},
		{
			name: "non-breaking space at boundary",
			text: "One sentence. Two here.",
			want: []string{"One sentence.", "Two here."},
		},
		{
			name: "ideographic space at boundary",
			text: "First one.　Second one.",
			want: []string{"First one.", "Second one."},
		},
		{
			name: "vertical tab at boundary",
			text: "One sentence.\vTwo here.",
			want: []string{"One sentence.", "Two here."},
		},
		{
			name: "next line at boundary",
			text: "One sentence.Two here.",
			want: []string{"One sentence.", "Two here."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitAtBoundaries(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSplitSentences_RenumbersGlobally(t *testing.T) {
	segs := []segment.Segment{
		blockSegment(0, "First block. It continues here."),
		blockSegment(1, "Second block stays whole"),
		blockSegment(2, "Third block. Also split. Three times."),
	}

	out := SplitSentences(segs)

	want := []string{
		"First block.", "It continues here.",
		"Second block stays whole",
		"Third block.", "Also split.", "Three times.",
	}
	if got := sources(out); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
	for i, s := range out {
		if s.ID != i {
			t.Errorf("segment %d: expected id %d, got %d", i, i, s.ID)
		}
	}
}

func TestSplitSentences_ParentReference(t *testing.T) {
	segs := []segment.Segment{
		blockSegment(0, "Alpha one. Alpha two."),
		blockSegment(1, "Beta one. Beta two."),
	}

	out := SplitSentences(segs)
	if len(out) != 4 {
		t.Fatalf("expected 4 segments, got %d", len(out))
	}

	wantParents := []int{0, 0, 1, 1}
	for i, s := range out {
		if s.OriginalSegmentID == nil {
			t.Fatalf("segment %d: missing original_segment_id", i)
		}
		if *s.OriginalSegmentID != wantParents[i] {
			t.Errorf("segment %d: expected parent %d, got %d", i, wantParents[i], *s.OriginalSegmentID)
		}
	}
}

func TestSplitSentences_CopiesParentFields(t *testing.T) {
	parent := blockSegment(0, "One here. Two here.")
	out := SplitSentences([]segment.Segment{parent})
	if len(out) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(out))
	}
	for i, s := range out {
		if s.Page != parent.Page {
			t.Errorf("segment %d: expected page %d, got %d", i, parent.Page, s.Page)
		}
		if s.BBox != parent.BBox {
			t.Errorf("segment %d: expected bbox %v, got %v", i, parent.BBox, s.BBox)
		}
		if s.Position != parent.Position {
			t.Errorf("segment %d: expected position %+v, got %+v", i, parent.Position, s.Position)
		}
	}
}

func TestSplitSentences_UnsplitSegmentKeepsNoParentRef(t *testing.T) {
	// A segment with no boundaries is renumbered but carries no back-reference.
	segs := []segment.Segment{
		blockSegment(3, "Splittable. Right here."),
		blockSegment(7, "no boundaries in this one"),
	}
	out := SplitSentences(segs)
	if len(out) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(out))
	}
	last := out[2]
	if last.ID != 2 {
		t.Errorf("expected renumbered id 2, got %d", last.ID)
	}
	if last.OriginalSegmentID != nil {
		t.Errorf("expected no original_segment_id, got %d", *last.OriginalSegmentID)
	}
}

func TestSplitSentences_ContentPreserved(t *testing.T) {
	text := "Sentence one is long enough. Sentence two follows it! Does three ask? Yes."
	out := SplitSentences([]segment.Segment{blockSegment(0, text)})

	var total int
	for _, s := range out {
		total += len(s.Source)
	}
	// Boundary whitespace is dropped; every other character survives.
	stripped := len(text) - (len(out)-1)*1
	if total != stripped {
		t.Errorf("expected %d characters across sentences, got %d", stripped, total)
	}
}

func TestSplitSentences_EmptyInput(t *testing.T) {
	out := SplitSentences(nil)
	if out == nil || len(out) != 0 {
		t.Fatalf("expected non-nil empty slice, got %v", out)
	}
}
