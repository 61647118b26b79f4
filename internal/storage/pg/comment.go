package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/fboard-dev/fboard/internal/domain"
	internal_errors "github.com/fboard-dev/fboard/internal/errors"
)

func (s *Storage) SaveComment(c domain.Comment) error {
	_, err := s.db.Exec(`
        INSERT INTO comments(id, post_id, author_email, content, created_at)
        VALUES($1, $2, $3, $4, $5)`,
		c.Id, c.PostId, c.AuthorEmail, c.Content, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

func (s *Storage) Comment(id domain.CommentId) (domain.Comment, error) {
	var c domain.Comment
	err := s.db.QueryRow(`
        SELECT id, post_id, author_email, content, created_at
        FROM comments WHERE id = $1`, id,
	).Scan(&c.Id, &c.PostId, &c.AuthorEmail, &c.Content, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Comment{}, &internal_errors.ErrorWithStatusCode{Message: "Comment not found", StatusCode: http.StatusNotFound}
		}
		return domain.Comment{}, fmt.Errorf("failed to query comment: %w", err)
	}
	return c, nil
}

func (s *Storage) CommentsByPost(postId domain.PostId) ([]domain.Comment, error) {
	rows, err := s.db.Query(`
        SELECT id, post_id, author_email, content, created_at
        FROM comments WHERE post_id = $1 ORDER BY created_at`, postId)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.Id, &c.PostId, &c.AuthorEmail, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (s *Storage) DeleteComment(id domain.CommentId) error {
	result, err := s.db.Exec("DELETE FROM comments WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for comment deletion: %w", err)
	}
	if deleted == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: "Comment not found", StatusCode: http.StatusNotFound}
	}
	return nil
}
