// Package pipeline composes extraction, segmentation, sentence splitting,
// batching, and caching into the two caller-facing operations.
package pipeline

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/readlingo/pdfbridge/internal/cache"
	"github.com/readlingo/pdfbridge/internal/extract"
	"github.com/readlingo/pdfbridge/internal/segment"
	"github.com/readlingo/pdfbridge/internal/segmenter"
)

// Extractor yields raw page blocks for a document. endPage == -1 means the
// last page.
type Extractor interface {
	Extract(path string, startPage, endPage int) (extract.Extraction, error)
}

// Options configure a Processor.
type Options struct {
	// CacheDir is where extraction results are persisted. Empty disables
	// caching entirely.
	CacheDir string
	// UseCache enables the content-hash cache.
	UseCache bool
	// MaxSegmentsPerBatch is the default batch size for batched extraction.
	MaxSegmentsPerBatch int
}

// DefaultMaxSegmentsPerBatch is the batch size used when none is configured.
const DefaultMaxSegmentsPerBatch = 50

// Processor runs the extraction pipeline. Each call fully owns its document
// handle and cache interactions; there is no shared in-memory state across
// calls, so a Processor is safe for concurrent use. Concurrent extractions of
// the same file may race on the cache write, last writer wins.
type Processor struct {
	extractor   Extractor
	cache       *cache.Cache
	maxPerBatch int
	log         *slog.Logger
}

// NewProcessor builds a Processor. The cache directory is created up front
// when caching is enabled; failure to create it is the only constructor
// error.
func NewProcessor(ex Extractor, opts Options, log *slog.Logger) (*Processor, error) {
	p := &Processor{
		extractor:   ex,
		maxPerBatch: opts.MaxSegmentsPerBatch,
		log:         log,
	}
	if p.maxPerBatch <= 0 {
		p.maxPerBatch = DefaultMaxSegmentsPerBatch
	}
	if opts.UseCache && opts.CacheDir != "" {
		c, err := cache.New(opts.CacheDir, log)
		if err != nil {
			return nil, err
		}
		p.cache = c
	}
	return p, nil
}

// Extract runs the block-level pipeline: cache lookup, page extraction over
// the whole document, block segmentation, cache store. Extraction failures
// are converted into the envelope's error field; elapsed time is reported
// either way.
func (p *Processor) Extract(path string, useCache bool) segment.Result {
	res := segment.Result{
		Segments: []segment.Segment{},
		Metadata: segment.Metadata{FileName: filepath.Base(path)},
	}

	var fileHash string
	if useCache && p.cache != nil {
		h, err := cache.FileHash(path)
		if err != nil {
			p.log.Warn("content hash failed", "file", path, "error", err)
		} else {
			fileHash = h
			if cached, ok := p.cache.Load(fileHash); ok {
				return *cached
			}
		}
	}

	start := time.Now()
	ext, err := p.extractor.Extract(path, 0, -1)
	if err != nil {
		res.Error = err.Error()
		res.Metadata.ProcessingTimeMs = time.Since(start).Milliseconds()
		return res
	}

	res.Metadata.PageCount = ext.PageCount
	res.Metadata.ExtractionMethod = ext.Method
	res.Segments = segmenter.Segments(ext.Blocks)
	res.Metadata.ProcessingTimeMs = time.Since(start).Milliseconds()

	if fileHash != "" {
		p.cache.Store(fileHash, &res)
	}
	return res
}

// ExtractBatched runs Extract (including its independent cache check), then
// refines the segments into sentences and partitions them into batches. Only
// the block-level envelope is ever cached; the sentence split and batching
// are recomputed from it on every call.
func (p *Processor) ExtractBatched(path string, maxPerBatch int, useCache bool) segment.BatchedResult {
	if maxPerBatch <= 0 {
		maxPerBatch = p.maxPerBatch
	}

	res := segment.BatchedResult{
		Result:          p.Extract(path, useCache),
		Batches:         []segment.Batch{},
		InitialSegments: []segment.Segment{},
	}
	if res.Error != "" {
		return res
	}

	res.Segments = segmenter.SplitSentences(res.Segments)
	res.Batches, res.InitialSegments = segmenter.MakeBatches(res.Segments, maxPerBatch)
	res.Metadata.TotalSegments = len(res.Segments)
	res.Metadata.BatchCount = len(res.Batches)
	return res
}
