// Package fetch downloads bulk datasets over HTTP with a local file cache.
// Boundary collaborator: the pipeline proper only ever sees an io.Reader.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/gzip"

	"ccx/internal/pipeline"
)

// Client downloads bulk datasets. A zero UserAgent is replaced with the
// tool's identifier; Scryfall rejects anonymous clients.
type Client struct {
	HTTP      *http.Client
	UserAgent string
	Log       *slog.Logger
}

// New returns a client with a generous timeout sized for bulk documents.
func New(log *slog.Logger) *Client {
	return &Client{
		HTTP:      &http.Client{Timeout: 10 * time.Minute},
		UserAgent: "ccx/1.0",
		Log:       log,
	}
}

// BulkEntry is one entry of the Scryfall bulk-data index.
type BulkEntry struct {
	Type        string `json:"type"`
	DownloadURI string `json:"download_uri"`
}

// BulkDownloadURL fetches the bulk-data index and resolves the download URI
// for the given bulk dataset type.
func (c *Client) BulkDownloadURL(ctx context.Context, indexURL, bulkType string) (string, error) {
	resp, err := c.get(ctx, indexURL)
	if err != nil {
		return "", pipeline.NewTransportError(bulkType, "fetch bulk index", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", pipeline.NewTransportError(bulkType, fmt.Sprintf("bulk index returned %s", resp.Status), nil)
	}

	var index struct {
		Data []BulkEntry `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&index); err != nil {
		return "", pipeline.NewTransportError(bulkType, "decode bulk index", err)
	}
	for _, entry := range index.Data {
		if entry.Type == bulkType {
			return entry.DownloadURI, nil
		}
	}
	return "", pipeline.NewTransportError(bulkType, fmt.Sprintf("no bulk data of type %q", bulkType), nil)
}

// Download streams url into dest, creating parent directories. The write
// goes through a temp file renamed into place so an aborted run never
// leaves a truncated cache entry.
func (c *Client) Download(ctx context.Context, url, dest string) error {
	resp, err := c.get(ctx, url)
	if err != nil {
		return pipeline.NewTransportError("", "download", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return pipeline.NewTransportError("", fmt.Sprintf("download returned %s", resp.Status), nil)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return pipeline.NewTransportError("", "create cache dir", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return pipeline.NewTransportError("", "create temp file", err)
	}
	n, err := io.Copy(tmp, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return pipeline.NewTransportError("", "write download", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return pipeline.NewTransportError("", "finalize download", err)
	}
	c.Log.Info("downloaded", "url", url, "size", humanize.Bytes(uint64(n)), "dest", dest)
	return nil
}

// Cached resolves src to a local file. A src naming an existing local file
// is returned as-is. Otherwise src is treated as a URL cached at cachePath:
// a cached copy is revalidated with a conditional HEAD (If-Modified-Since);
// 304 reuses the cache, any other non-200 logs a warning and reuses the
// cache rather than failing the run.
func (c *Client) Cached(ctx context.Context, src, cachePath string, force bool) (string, error) {
	if fi, err := os.Stat(src); err == nil && !fi.IsDir() {
		c.Log.Info("using local file", "path", src)
		return src, nil
	}

	if fi, err := os.Stat(cachePath); err == nil && !force {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, src, nil)
		if err != nil {
			return "", pipeline.NewTransportError("", "build revalidation request", err)
		}
		req.Header.Set("If-Modified-Since", fi.ModTime().UTC().Format(http.TimeFormat))
		req.Header.Set("User-Agent", c.UserAgent)

		resp, err := c.HTTP.Do(req)
		if err == nil {
			resp.Body.Close()
			switch resp.StatusCode {
			case http.StatusNotModified:
				c.Log.Info("cached file is up to date", "path", cachePath)
				return cachePath, nil
			case http.StatusOK:
				// Upstream changed; fall through to download.
			default:
				c.Log.Warn("revalidation failed, using cached file", "status", resp.Status, "path", cachePath)
				return cachePath, nil
			}
		} else {
			c.Log.Warn("revalidation request failed, using cached file", "error", err, "path", cachePath)
			return cachePath, nil
		}
	}

	if err := c.Download(ctx, src, cachePath); err != nil {
		return "", err
	}
	return cachePath, nil
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")
	return c.HTTP.Do(req)
}

// Open opens a cached dataset file for reading, transparently decoding
// ".gz" sources.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &gzipFile{f: f, gz: gz}, nil
}

type gzipFile struct {
	f  *os.File
	gz *gzip.Reader
}

func (g *gzipFile) Read(p []byte) (int, error) { return g.gz.Read(p) }

func (g *gzipFile) Close() error {
	if err := g.gz.Close(); err != nil {
		g.f.Close()
		return err
	}
	return g.f.Close()
}
