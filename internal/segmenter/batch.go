package segmenter

import (
	"github.com/readlingo/pdfbridge/internal/segment"
)

// MakeBatches partitions segments into consecutive chunks of at most
// maxPerBatch, in order, and returns the batch descriptors along with the
// segments covered by the first descriptor's id range (the subset delivered
// eagerly to the caller). Descriptor id ranges assume segment ids are
// contiguous and start at 0, which holds immediately after (re)numbering.
func MakeBatches(segments []segment.Segment, maxPerBatch int) ([]segment.Batch, []segment.Segment) {
	batches := []segment.Batch{}
	initial := []segment.Segment{}
	if maxPerBatch <= 0 {
		return batches, initial
	}

	for i := 0; i < len(segments); i += maxPerBatch {
		end := i + maxPerBatch
		if end > len(segments) {
			end = len(segments)
		}
		chunk := segments[i:end]
		batches = append(batches, segment.Batch{
			BatchID:        len(batches),
			StartSegmentID: chunk[0].ID,
			EndSegmentID:   chunk[len(chunk)-1].ID,
			SegmentCount:   len(chunk),
		})
	}

	if len(batches) > 0 {
		first := batches[0]
		initial = append(initial, segments[first.StartSegmentID:first.EndSegmentID+1]...)
	}
	return batches, initial
}
