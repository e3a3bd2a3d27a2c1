// SPDX-License-Identifier: MPL-2.0

package download

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"modget-cli/internal/registry"

	"github.com/charmbracelet/log"
)

// DefaultConcurrency is the worker pool size used when none is configured.
const DefaultConcurrency = 4

type (
	// Fetcher is the transport surface the downloader needs: a streaming
	// byte fetch by URL. *registry.Client satisfies it.
	Fetcher interface {
		Download(ctx context.Context, url string) (io.ReadCloser, error)
	}

	// Request names one file to download.
	Request struct {
		// ProjectID identifies which resolved project the file belongs to.
		ProjectID string
		// Filename is the name the file is written under in the destination.
		Filename string
		// URL is the remote location of the file bytes.
		URL string
	}

	// Result pairs a request with its outcome. Err is nil on success.
	Result struct {
		Request
		Err error
	}

	// Downloader transfers files to a destination directory.
	Downloader struct {
		fetcher     Fetcher
		concurrency int
		logger      *log.Logger
	}

	// Option configures a Downloader during construction.
	Option func(*Downloader)
)

// WithConcurrency bounds the number of parallel transfers in DownloadAll.
// Values below 1 fall back to DefaultConcurrency.
func WithConcurrency(n int) Option {
	return func(d *Downloader) {
		if n >= 1 {
			d.concurrency = n
		}
	}
}

// WithLogger overrides the downloader's logger.
func WithLogger(l *log.Logger) Option {
	return func(d *Downloader) {
		d.logger = l
	}
}

// New creates a Downloader backed by the given fetcher.
func New(fetcher Fetcher, opts ...Option) *Downloader {
	d := &Downloader{
		fetcher:     fetcher,
		concurrency: DefaultConcurrency,
		logger:      log.NewWithOptions(os.Stderr, log.Options{Prefix: "download"}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// PrimaryFile selects the installable artifact from a version's file list:
// the entry marked primary, or the first entry when none is marked. The
// false return means the list is empty and there is nothing to install.
func PrimaryFile(files []registry.File) (registry.File, bool) {
	for _, f := range files {
		if f.Primary {
			return f, true
		}
	}
	if len(files) > 0 {
		return files[0], true
	}
	return registry.File{}, false
}

// Download transfers a single file into destDir, overwriting any existing
// file of the same name.
func (d *Downloader) Download(ctx context.Context, req Request, destDir string) error {
	d.logger.Info("downloading", "file", req.Filename)

	body, err := d.fetcher.Download(ctx, req.URL)
	if err != nil {
		return err
	}
	defer body.Close()

	dest := filepath.Join(destDir, req.Filename)

	// Stream to a temp file in the same directory so the final rename is
	// atomic and a failed transfer never corrupts an existing file.
	tmp, err := os.CreateTemp(destDir, req.Filename+".tmp*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", req.Filename, err)
	}

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", req.Filename, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing %s: %w", req.Filename, err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("finalizing %s: %w", req.Filename, err)
	}

	d.logger.Info("downloaded", "file", req.Filename, "dest", dest)
	return nil
}

// DownloadAll transfers every requested file into destDir on a bounded
// worker pool. Results are returned in request order; a failed transfer is
// recorded in its Result and does not affect sibling downloads. Context
// cancellation fails the remaining transfers with the context error.
func (d *Downloader) DownloadAll(ctx context.Context, reqs []Request, destDir string) []Result {
	results := make([]Result, len(reqs))

	sem := make(chan struct{}, d.concurrency)
	var wg sync.WaitGroup

	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req Request) {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				results[i] = Result{Request: req, Err: err}
				return
			}

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[i] = Result{Request: req, Err: ctx.Err()}
				return
			}

			err := d.Download(ctx, req, destDir)
			if err != nil {
				d.logger.Warn("download failed", "file", req.Filename, "err", err)
			}
			results[i] = Result{Request: req, Err: err}
		}(i, req)
	}

	wg.Wait()
	return results
}
