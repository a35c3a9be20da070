package database

import (
	"fmt"

	"github.com/theplug/theplug/internal/models"
)

type VideoRepository struct {
	db *DB
}

func NewVideoRepository(db *DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) InsertVideo(video *models.Video) error {
	query := `
		INSERT INTO videos (id, session_id, source, source_ref, filename, size, acquired_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.conn.Exec(query,
		video.ID,
		video.SessionID,
		video.Source,
		video.SourceRef,
		video.Filename,
		video.Size,
		video.AcquiredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert video: %w", err)
	}
	return nil
}

func (r *VideoRepository) ListBySession(sessionID string) ([]models.Video, error) {
	query := `
		SELECT id, session_id, source, source_ref, filename, size, acquired_at
		FROM videos
		WHERE session_id = ?
		ORDER BY acquired_at DESC`

	rows, err := r.db.conn.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	var videos []models.Video
	for rows.Next() {
		var v models.Video
		if err := rows.Scan(&v.ID, &v.SessionID, &v.Source, &v.SourceRef, &v.Filename, &v.Size, &v.AcquiredAt); err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

func (r *VideoRepository) Count() (int, error) {
	var count int
	if err := r.db.conn.QueryRow("SELECT COUNT(*) FROM videos").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count videos: %w", err)
	}
	return count, nil
}
