package models

import "errors"

var (
	ErrInvalidSource     = errors.New("url does not match a supported video platform")
	ErrTooLarge          = errors.New("video exceeds the size limit")
	ErrDownloadFailed    = errors.New("all download attempts failed")
	ErrProcessingTimeout = errors.New("video processing did not finish in time")
)
