package storage

import (
	"io"
	"mime/multipart"
)

type FileInfo struct {
	Filename    string
	ContentType string
	Size        int64
}

// Storage keeps the cached video artifacts. Names are unique per
// acquisition so concurrent sessions never collide on a path.
type Storage interface {
	SaveFile(file multipart.File, info FileInfo) (string, error)
	NewName(ext string) string
	FullPath(name string) string
	Size(name string) (int64, error)
	OpenFile(name string) (io.ReadSeekCloser, error)
	DeleteFile(name string) error
}
