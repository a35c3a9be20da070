package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// VideoInfo is the metadata preview extracted for a remote video before
// or alongside the download.
type VideoInfo struct {
	Title       string
	Duration    int
	Uploader    string
	Description string
	Thumbnail   string
}

// DurationLabel renders the duration as m:ss for templates.
func (v *VideoInfo) DurationLabel() string {
	if v.Duration <= 0 {
		return ""
	}
	return fmt.Sprintf("%d:%02d", v.Duration/60, v.Duration%60)
}

// Video records one successful acquisition, from upload or URL.
type Video struct {
	ID         string
	SessionID  string
	Source     string // "upload" or "url"
	SourceRef  string // original filename or the submitted URL
	Filename   string
	Size       int64
	AcquiredAt time.Time
}

func NewVideo(sessionID, source, sourceRef, filename string, size int64) *Video {
	return &Video{
		ID:         uuid.New().String(),
		SessionID:  sessionID,
		Source:     source,
		SourceRef:  sourceRef,
		Filename:   filename,
		Size:       size,
		AcquiredAt: time.Now(),
	}
}
