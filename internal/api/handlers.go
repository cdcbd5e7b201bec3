package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// handleExtract accepts a multipart PDF upload, runs it through the pipeline,
// and returns the result envelope. Form options: "sentences" (bool) selects
// batched sentence-level extraction, "max_segments" overrides the batch size,
// "no_cache" (bool) bypasses the extraction cache.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	// Spool the upload to disk; the pipeline hashes and opens it by path.
	tmpPath, err := s.spoolUpload(file, filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer os.Remove(tmpPath)

	sentences := r.FormValue("sentences") == "true"
	useCache := s.cfg.UseCache && r.FormValue("no_cache") != "true"

	maxSegments := 0
	if v := r.FormValue("max_segments"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxSegments = n
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if sentences || (s.cfg.SplitSentences && r.FormValue("sentences") == "") {
		res := s.processor.ExtractBatched(tmpPath, maxSegments, useCache)
		res.Metadata.FileName = filename
		json.NewEncoder(w).Encode(res)
		return
	}
	res := s.processor.Extract(tmpPath, useCache)
	res.Metadata.FileName = filename
	json.NewEncoder(w).Encode(res)
}

// spoolUpload writes the uploaded file into the upload directory and returns
// its path. The caller removes the file when done.
func (s *Server) spoolUpload(file io.Reader, filename string) (string, error) {
	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}
	tmp, err := os.CreateTemp(s.cfg.UploadDir, "upload-*-"+filename)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	tmpPath := tmp.Name()

	_, err = io.Copy(tmp, io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("write upload file: %w", err)
	}

	info, err := os.Stat(tmpPath)
	if err == nil && info.Size() > s.cfg.MaxUploadBytes {
		os.Remove(tmpPath)
		return "", fmt.Errorf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes)
	}
	return tmpPath, nil
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
