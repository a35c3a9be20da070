package video

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/theplug/theplug/internal/models"
)

type probeResult struct {
	Title       string  `json:"title"`
	Duration    float64 `json:"duration"`
	Uploader    string  `json:"uploader"`
	Description string  `json:"description"`
	Thumbnail   string  `json:"thumbnail"`
}

// Probe fetches metadata for a remote video without downloading it, for
// the preview card shown before the user commits to a download.
func (d *Downloader) Probe(ctx context.Context, url string) (*models.VideoInfo, error) {
	if !IsValidSource(url) {
		return nil, models.ErrInvalidSource
	}

	out, err := d.runner.Probe(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("extracting video info: %w", err)
	}

	var result probeResult
	if err := json.Unmarshal(out, &result); err != nil {
		return nil, fmt.Errorf("parsing video info: %w", err)
	}

	info := &models.VideoInfo{
		Title:       result.Title,
		Duration:    int(result.Duration),
		Uploader:    result.Uploader,
		Description: result.Description,
		Thumbnail:   result.Thumbnail,
	}
	if info.Title == "" {
		info.Title = "Unknown"
	}
	if info.Uploader == "" {
		info.Uploader = "Unknown"
	}
	return info, nil
}
