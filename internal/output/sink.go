// Package output serializes record groups to their file formats and records
// what was written. Writers are deliberately thin; the interesting logic
// (ordering, partitioning) happens upstream and is passed in already
// decided.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
)

// WrittenFile describes one produced output file for the manifest.
type WrittenFile struct {
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	Records int    `json:"records"`
}

// FileName appends the extension, plus ".gz" when compression is on.
func FileName(base, ext string, compress bool) string {
	if compress {
		return base + ext + ".gz"
	}
	return base + ext
}

// NumberedName names the idx-th of total greedy-split files: unsuffixed for
// a single file, "_1", "_2", ... otherwise. idx is zero-based.
func NumberedName(base, ext string, idx, total int, compress bool) string {
	if total <= 1 {
		return FileName(base, ext, compress)
	}
	return FileName(fmt.Sprintf("%s_%d", base, idx+1), ext, compress)
}

type sink struct {
	f  *os.File
	gz *gzip.Writer
	w  io.Writer
}

// NewSink opens path for writing, creating parent directories and layering
// gzip when compress is set. Existing files are truncated: every run fully
// overwrites prior output.
func NewSink(path string, compress bool) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	s := &sink{f: f, w: f}
	if compress {
		s.gz = gzip.NewWriter(f)
		s.w = s.gz
	}
	return s, nil
}

func (s *sink) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

func (s *sink) Close() error {
	if s.gz != nil {
		if err := s.gz.Close(); err != nil {
			s.f.Close()
			return err
		}
	}
	return s.f.Close()
}

// writeFile writes content to dir/name through a sink and returns the
// manifest entry.
func writeFile(dir, name string, content []byte, compress bool, kind string, records int) (WrittenFile, error) {
	w, err := NewSink(filepath.Join(dir, name), compress)
	if err != nil {
		return WrittenFile{}, err
	}
	if _, err := w.Write(content); err != nil {
		w.Close()
		return WrittenFile{}, err
	}
	if err := w.Close(); err != nil {
		return WrittenFile{}, err
	}
	return WrittenFile{Path: name, Kind: kind, Records: records}, nil
}
