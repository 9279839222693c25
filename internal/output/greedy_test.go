package output

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ccx/internal/split"
)

func readFileMaybeGz(t *testing.T, path string) string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		require.NoError(t, err)
		defer gz.Close()
		r = gz
	}
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

func TestWriteGreedy_SingleFileUnsuffixed(t *testing.T) {
	dir := t.TempDir()
	units := []Unit{
		{Name: "a", Text: "alpha\n"},
		{Name: "b", Text: "beta\n"},
	}

	files, oversize, err := WriteGreedy(dir, "combos", ".jsonl", false, "combos_jsonl", units, split.Budget{})
	require.NoError(t, err)
	assert.Empty(t, oversize)

	require.Len(t, files, 1)
	assert.Equal(t, "combos.jsonl", files[0].Path)
	assert.Equal(t, 2, files[0].Records)
	assert.Equal(t, "alpha\nbeta\n", readFileMaybeGz(t, filepath.Join(dir, "combos.jsonl")))
}

func TestWriteGreedy_NumberedWhenSplit(t *testing.T) {
	dir := t.TempDir()
	units := []Unit{
		{Name: "a", Text: "alpha\n"},
		{Name: "b", Text: "beta\n"},
		{Name: "c", Text: "gamma\n"},
	}

	files, oversize, err := WriteGreedy(dir, "combos", ".jsonl", false, "combos_jsonl", units, split.Budget{MaxBytes: 7})
	require.NoError(t, err)
	assert.Empty(t, oversize)

	require.Len(t, files, 3)
	assert.Equal(t, "combos_1.jsonl", files[0].Path)
	assert.Equal(t, "combos_2.jsonl", files[1].Path)
	assert.Equal(t, "combos_3.jsonl", files[2].Path)

	// Concatenating the parts reproduces the input in order.
	var all strings.Builder
	for _, wf := range files {
		all.WriteString(readFileMaybeGz(t, filepath.Join(dir, wf.Path)))
	}
	assert.Equal(t, "alpha\nbeta\ngamma\n", all.String())
}

func TestWriteGreedy_OversizeUnitReported(t *testing.T) {
	dir := t.TempDir()
	units := []Unit{
		{Name: "small", Text: "ok\n"},
		{Name: "huge", Text: strings.Repeat("x", 100) + "\n"},
	}

	files, oversize, err := WriteGreedy(dir, "combos", ".md", false, "combos_markdown", units, split.Budget{MaxBytes: 50})
	require.NoError(t, err)

	assert.Equal(t, []string{"huge"}, oversize)
	// The oversize unit is still written, alone in its own file.
	require.Len(t, files, 2)
	total := 0
	for _, wf := range files {
		total += wf.Records
	}
	assert.Equal(t, 2, total)
}

func TestWriteGreedy_CompressedRoundTrip(t *testing.T) {
	dir := t.TempDir()
	units := []Unit{{Name: "a", Text: "alpha\n"}}

	files, _, err := WriteGreedy(dir, "combos", ".jsonl", true, "combos_jsonl", units, split.Budget{})
	require.NoError(t, err)

	require.Len(t, files, 1)
	assert.Equal(t, "combos.jsonl.gz", files[0].Path)
	assert.Equal(t, "alpha\n", readFileMaybeGz(t, filepath.Join(dir, "combos.jsonl.gz")))
}

func TestNumberedName(t *testing.T) {
	assert.Equal(t, "cards.md", NumberedName("cards", ".md", 0, 1, false))
	assert.Equal(t, "cards_1.md", NumberedName("cards", ".md", 0, 2, false))
	assert.Equal(t, "cards_2.md.gz", NumberedName("cards", ".md", 1, 2, true))
}
