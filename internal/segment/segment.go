// Package segment defines the output data model of the extraction pipeline:
// segments, batch descriptors, and the result envelopes exchanged with callers
// and persisted in the cache.
package segment

// BBox is a bounding box as x0, y0, x1, y1 in page coordinates with the origin
// at the top-left corner, y increasing downward.
type BBox [4]float64

// Position is the {x, y, width, height} form of a bounding box.
type Position struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Position derives the positional form of the box.
func (b BBox) Position() Position {
	return Position{
		X:      b[0],
		Y:      b[1],
		Width:  b[2] - b[0],
		Height: b[3] - b[1],
	}
}

// Segment is one addressable unit of extracted text. IDs are contiguous
// integers starting at 0 within a single result, assigned in final output
// order, and reassigned whenever the segment list is regenerated.
type Segment struct {
	ID       int      `json:"id"`
	Source   string   `json:"source"`
	Page     int      `json:"page"` // 1-indexed
	BBox     BBox     `json:"bbox"`
	Position Position `json:"position"`

	// OriginalSegmentID is set only on sentence-level segments and refers to
	// the id the parent block-level segment had before sentence splitting.
	OriginalSegmentID *int `json:"original_segment_id,omitempty"`
}

// Batch describes a contiguous slice of the segment list by id range.
type Batch struct {
	BatchID        int `json:"batchId"`
	StartSegmentID int `json:"startSegmentId"`
	EndSegmentID   int `json:"endSegmentId"`
	SegmentCount   int `json:"segmentCount"`
}

// Metadata carries file and processing information alongside the segments.
type Metadata struct {
	FileName         string `json:"fileName"`
	PageCount        int    `json:"pageCount"`
	ProcessingTimeMs int64  `json:"processingTimeMs"`
	ExtractionMethod string `json:"extractionMethod"`
	FromCache        bool   `json:"fromCache,omitempty"`
	TotalSegments    int    `json:"totalSegments,omitempty"`
	BatchCount       int    `json:"batchCount,omitempty"`
}

// Result is the plain extraction envelope. It is also the form persisted in
// the cache. A non-empty Error means extraction failed; Metadata is still
// populated as far as processing got.
type Result struct {
	Segments []Segment `json:"segments"`
	Metadata Metadata  `json:"metadata"`
	Error    string    `json:"error,omitempty"`
}

// BatchedResult is the envelope of a batched, sentence-split extraction.
// Batches and InitialSegments are always present, empty when there is nothing
// to deliver.
type BatchedResult struct {
	Result
	Batches         []Batch   `json:"batches"`
	InitialSegments []Segment `json:"initialSegments"`
}
