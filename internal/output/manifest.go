package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Manifest describes one complete build: what files were produced, with
// record counts, under a single build id and timestamp. Regenerated fully
// on every run, never merged with a previous manifest.
type Manifest struct {
	BuildID    string        `json:"build_id"`
	BuildDate  string        `json:"build_date"`
	Files      []WrittenFile `json:"files"`
	TotalFiles int           `json:"total_files"`
}

// WriteManifest overwrites dir/manifest.json. The timestamp is injected by
// the caller so tests can pin it; it is rendered in UTC ISO-8601.
func WriteManifest(dir string, files []WrittenFile, buildID string, now time.Time) (string, error) {
	if files == nil {
		files = []WrittenFile{}
	}
	m := Manifest{
		BuildID:    buildID,
		BuildDate:  now.UTC().Format(time.RFC3339),
		Files:      files,
		TotalFiles: len(files),
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", err
	}
	data = append(data, '\n')

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, "manifest.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
