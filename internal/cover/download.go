package cover

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pfrederiksen/track-assets/internal/logger"
)

// ChunkSize is the number of bytes copied per write
const ChunkSize = 1024

// Opener streams the body of a URL. *scraper.Fetcher implements it.
type Opener interface {
	Open(ctx context.Context, url string) (io.ReadCloser, error)
}

// Downloader saves images into a directory
type Downloader struct {
	opener     Opener
	defaultExt string
	metrics    *logger.Metrics
}

// NewDownloader creates a Downloader. An empty defaultExt falls back to DefaultExt.
func NewDownloader(opener Opener, defaultExt string) *Downloader {
	if defaultExt == "" {
		defaultExt = DefaultExt
	}
	return &Downloader{
		opener:     opener,
		defaultExt: defaultExt,
		metrics:    logger.DefaultMetrics(),
	}
}

// WithMetrics records download timings in m instead of the default tracker
func (d *Downloader) WithMetrics(m *logger.Metrics) *Downloader {
	d.metrics = m
	return d
}

// Download fetches imageURL and writes it to <dir>/<name><ext>, returning the
// written path. On failure no partial file is left behind.
func (d *Downloader) Download(ctx context.Context, imageURL, dir, name string) (string, error) {
	start := time.Now()
	defer func() {
		d.metrics.RecordTiming("image.download", time.Since(start))
	}()

	body, err := d.opener.Open(ctx, imageURL)
	if err != nil {
		return "", err
	}
	defer body.Close()

	path := filepath.Join(dir, name+Extension(imageURL, d.defaultExt))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating image file: %w", err)
	}

	if err := copyChunks(f, body); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("writing image: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("closing image file: %w", err)
	}

	return path, nil
}

// copyChunks copies src to dst in ChunkSize writes
func copyChunks(dst io.Writer, src io.Reader) error {
	buf := make([]byte, ChunkSize)
	for {
		n, err := io.ReadFull(src, buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
