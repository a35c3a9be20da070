package models

import (
	"time"

	"github.com/google/uuid"
)

type Page string

const (
	PageUpload Page = "upload"
	PageChat   Page = "chat"
)

type InputMethod string

const (
	MethodUpload InputMethod = "upload"
	MethodURL    InputMethod = "url"
)

// QA is one answered question in a session's chat history.
type QA struct {
	Question string
	Answer   string
	AskedAt  time.Time
}

// Session holds the per-browser state for one user. A session caches at
// most one video artifact at a time; staging a new source replaces the
// previous file.
type Session struct {
	ID          string
	Page        Page
	InputMethod InputMethod

	// Artifact is the storage name of the cached video file, empty when
	// nothing is staged.
	Artifact   string
	SourceURL  string
	SourceFile string
	Info       *VideoInfo

	History   []QA
	CreatedAt time.Time
}

func NewSession() *Session {
	return &Session{
		ID:        uuid.New().String(),
		Page:      PageUpload,
		CreatedAt: time.Now(),
	}
}
