// Package cache persists extraction results on disk, keyed by a content hash
// of the source file, so byte-identical inputs skip re-extraction.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/readlingo/pdfbridge/internal/segment"
)

// hashChunkSize is the read buffer size while hashing file content.
const hashChunkSize = 4096

// Cache stores one serialized Result per distinct content hash. Entries are
// never evicted; the directory grows with the number of distinct inputs.
type Cache struct {
	dir string
	log *slog.Logger
}

// New returns a cache rooted at dir, creating the directory if needed.
func New(dir string, log *slog.Logger) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &Cache{dir: dir, log: log}, nil
}

// FileHash streams the file in fixed-size chunks and returns the hex digest
// of its content. Byte-identical files hash the same regardless of path or
// name; collision resistance only matters for change detection here.
func FileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, hashChunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Load returns the envelope stored under hash with fromCache set, or ok=false
// on a miss. Unreadable or unparseable entries are logged and treated as
// misses.
func (c *Cache) Load(hash string) (*segment.Result, bool) {
	data, err := os.ReadFile(c.entryPath(hash))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.log.Warn("cache read failed", "hash", hash, "error", err)
		}
		return nil, false
	}

	var res segment.Result
	if err := json.Unmarshal(data, &res); err != nil {
		c.log.Warn("discarding unparseable cache entry", "hash", hash, "error", err)
		return nil, false
	}
	res.Metadata.FromCache = true
	return &res, true
}

// Store writes the envelope under hash. Best effort: failures are logged and
// never fail the extraction that produced the result.
func (c *Cache) Store(hash string, res *segment.Result) {
	data, err := json.Marshal(res)
	if err != nil {
		c.log.Warn("cache encode failed", "hash", hash, "error", err)
		return
	}
	if err := os.WriteFile(c.entryPath(hash), data, 0o644); err != nil {
		c.log.Warn("cache write failed", "hash", hash, "error", err)
	}
}

func (c *Cache) entryPath(hash string) string {
	return filepath.Join(c.dir, hash+".cached")
}
