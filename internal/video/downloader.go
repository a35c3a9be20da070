package video

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/theplug/theplug/internal/models"
	"github.com/theplug/theplug/internal/storage"
)

// Runner executes the underlying extractor. Kept as an interface so the
// strategy ladder is testable without yt-dlp on the PATH.
type Runner interface {
	Fetch(ctx context.Context, url, dest string, strategy Strategy) error
	Probe(ctx context.Context, url string) ([]byte, error)
}

// Downloader turns a remote URL into a single local artifact, walking the
// strategy ladder sequentially until one attempt produces a non-empty file
// within the size ceiling.
type Downloader struct {
	store      storage.Storage
	runner     Runner
	strategies []Strategy
	maxSize    int64
	sleep      func(time.Duration)
}

func NewDownloader(store storage.Storage, maxSize int64, cloud bool) *Downloader {
	return &Downloader{
		store:      store,
		runner:     ytdlpRunner{},
		strategies: DefaultStrategies(cloud),
		maxSize:    maxSize,
		sleep:      time.Sleep,
	}
}

// NewDownloaderWithRunner swaps the extractor for a custom Runner. Tests use
// it to exercise the full request path without yt-dlp installed.
func NewDownloaderWithRunner(store storage.Storage, runner Runner, maxSize int64, cloud bool) *Downloader {
	d := NewDownloader(store, maxSize, cloud)
	d.runner = runner
	d.sleep = func(time.Duration) {}
	return d
}

// Download fetches url into a fresh artifact and returns its storage name.
// Attempts are sequential and blocking; between failed attempts the partial
// file is removed and the downloader waits an increasing delay. A file over
// the ceiling is deleted and surfaced as ErrTooLarge without further
// attempts.
func (d *Downloader) Download(ctx context.Context, url string) (string, error) {
	if !IsValidSource(url) {
		return "", models.ErrInvalidSource
	}

	name := d.store.NewName(".mp4")
	dest := d.store.FullPath(name)

	var lastErr error
	for i, strategy := range d.strategies {
		err := d.attempt(ctx, url, dest, strategy)
		if err == nil {
			return name, nil
		}
		if errors.Is(err, models.ErrTooLarge) {
			return "", err
		}

		lastErr = err
		os.Remove(dest)

		if i < len(d.strategies)-1 {
			d.sleep(retryDelay(i + 1))
		}
	}

	return "", fmt.Errorf("%w: %v", models.ErrDownloadFailed, lastErr)
}

func (d *Downloader) attempt(ctx context.Context, url, dest string, strategy Strategy) error {
	if err := d.runner.Fetch(ctx, url, dest, strategy); err != nil {
		return fmt.Errorf("strategy %s: %w", strategy.Name, err)
	}

	fi, err := os.Stat(dest)
	if err != nil {
		return fmt.Errorf("strategy %s: downloaded file missing: %w", strategy.Name, err)
	}
	if fi.Size() == 0 {
		return fmt.Errorf("strategy %s: downloaded file is empty", strategy.Name)
	}
	if d.maxSize > 0 && fi.Size() > d.maxSize {
		os.Remove(dest)
		return fmt.Errorf("%w: %d bytes over the %d byte ceiling", models.ErrTooLarge, fi.Size(), d.maxSize)
	}

	return nil
}
