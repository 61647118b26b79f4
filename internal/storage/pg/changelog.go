package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/fboard-dev/fboard/internal/domain"
	internal_errors "github.com/fboard-dev/fboard/internal/errors"
)

func (s *Storage) SaveChangelogEntry(e domain.ChangelogEntry) error {
	_, err := s.db.Exec(`
        INSERT INTO changelog_entries(id, board_id, title, content, published_at, created_at)
        VALUES($1, $2, $3, $4, $5, $6)`,
		e.Id, e.BoardId, e.Title, e.Content, e.PublishedAt, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert changelog entry: %w", err)
	}
	return nil
}

func (s *Storage) ChangelogEntry(id domain.ChangelogId) (domain.ChangelogEntry, error) {
	var e domain.ChangelogEntry
	var content sql.NullString
	err := s.db.QueryRow(`
        SELECT id, board_id, title, content, published_at, created_at
        FROM changelog_entries WHERE id = $1`, id,
	).Scan(&e.Id, &e.BoardId, &e.Title, &content, &e.PublishedAt, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ChangelogEntry{}, &internal_errors.ErrorWithStatusCode{Message: "Changelog entry not found", StatusCode: http.StatusNotFound}
		}
		return domain.ChangelogEntry{}, fmt.Errorf("failed to query changelog entry: %w", err)
	}
	e.Content = content.String
	return e, nil
}

func (s *Storage) ChangelogByBoard(boardId domain.BoardId) ([]domain.ChangelogEntry, error) {
	rows, err := s.db.Query(`
        SELECT id, board_id, title, content, published_at, created_at
        FROM changelog_entries WHERE board_id = $1 ORDER BY published_at DESC`, boardId)
	if err != nil {
		return nil, fmt.Errorf("failed to query changelog: %w", err)
	}
	defer rows.Close()

	var entries []domain.ChangelogEntry
	for rows.Next() {
		var e domain.ChangelogEntry
		var content sql.NullString
		if err := rows.Scan(&e.Id, &e.BoardId, &e.Title, &content, &e.PublishedAt, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan changelog entry: %w", err)
		}
		e.Content = content.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Storage) UpdateChangelogEntry(id domain.ChangelogId, title, content string) error {
	result, err := s.db.Exec(
		"UPDATE changelog_entries SET title = $1, content = $2 WHERE id = $3",
		title, content, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update changelog entry: %w", err)
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for changelog update: %w", err)
	}
	if updated == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: "Changelog entry not found", StatusCode: http.StatusNotFound}
	}
	return nil
}

func (s *Storage) DeleteChangelogEntry(id domain.ChangelogId) error {
	result, err := s.db.Exec("DELETE FROM changelog_entries WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete changelog entry: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for changelog deletion: %w", err)
	}
	if deleted == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: "Changelog entry not found", StatusCode: http.StatusNotFound}
	}
	return nil
}
