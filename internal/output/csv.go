package output

import (
	"bytes"
	"encoding/csv"

	"ccx/internal/split"
)

// renderCSV serializes a header and rows to RFC 4180 CSV bytes. encoding/csv
// double-quotes and escapes the JSON-bearing fields as needed.
func renderCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteCSV writes one CSV file named base+ext under dir.
func WriteCSV(dir, base string, compress bool, kind string, header []string, rows [][]string) (WrittenFile, error) {
	content, err := renderCSV(header, rows)
	if err != nil {
		return WrittenFile{}, err
	}
	return writeFile(dir, FileName(base, ".csv", compress), content, compress, kind, len(rows))
}

// WriteBandedCSV writes rows as a single CSV when the uncompressed
// rendering fits within maxBytes, or as up to three fixed alphabetical band
// files otherwise. names[i] keys the band for rows[i]; rows must already be
// in canonical name order. Bands that receive no rows produce no file.
func WriteBandedCSV(dir, base string, compress bool, kind string, header []string, rows [][]string, names []string, maxBytes int) ([]WrittenFile, error) {
	full, err := renderCSV(header, rows)
	if err != nil {
		return nil, err
	}
	if maxBytes <= 0 || len(full) <= maxBytes {
		wf, err := writeFile(dir, FileName(base, ".csv", compress), full, compress, kind, len(rows))
		if err != nil {
			return nil, err
		}
		return []WrittenFile{wf}, nil
	}

	banded := make(map[string][][]string, len(split.BandLabels))
	for i, row := range rows {
		label := split.Band(names[i])
		banded[label] = append(banded[label], row)
	}

	var written []WrittenFile
	for _, label := range split.BandLabels {
		bandRows := banded[label]
		if len(bandRows) == 0 {
			continue
		}
		content, err := renderCSV(header, bandRows)
		if err != nil {
			return nil, err
		}
		name := FileName(base+"_"+label, ".csv", compress)
		wf, err := writeFile(dir, name, content, compress, kind, len(bandRows))
		if err != nil {
			return nil, err
		}
		written = append(written, wf)
	}
	return written, nil
}
