package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fboard-dev/fboard/internal/domain"
	internal_errors "github.com/fboard-dev/fboard/internal/errors"
)

func (s *Storage) SavePost(p domain.Post) error {
	_, err := s.db.Exec(`
        INSERT INTO posts(id, board_id, title, description, status, author_email, created_at)
        VALUES($1, $2, $3, $4, $5, $6, $7)`,
		p.Id, p.BoardId, p.Title, p.Description, p.Status, p.AuthorEmail, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

func (s *Storage) Post(id domain.PostId) (domain.Post, error) {
	var p domain.Post
	var description sql.NullString
	err := s.db.QueryRow(`
        SELECT id, board_id, title, description, status, vote_count, author_email, created_at
        FROM posts WHERE id = $1`, id,
	).Scan(&p.Id, &p.BoardId, &p.Title, &description, &p.Status, &p.VoteCount, &p.AuthorEmail, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, &internal_errors.ErrorWithStatusCode{Message: "Post not found", StatusCode: http.StatusNotFound}
		}
		return domain.Post{}, fmt.Errorf("failed to query post: %w", err)
	}
	p.Description = description.String
	return p, nil
}

// PostsByBoard returns a board's posts with comment counts, most-voted first.
func (s *Storage) PostsByBoard(boardId domain.BoardId) ([]domain.Post, error) {
	rows, err := s.db.Query(`
        SELECT p.id, p.board_id, p.title, p.description, p.status, p.vote_count,
               p.author_email, p.created_at, COUNT(c.id) AS comment_count
        FROM posts p
        LEFT JOIN comments c ON c.post_id = p.id
        WHERE p.board_id = $1
        GROUP BY p.id
        ORDER BY p.vote_count DESC, p.created_at DESC`, boardId)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		var description sql.NullString
		if err := rows.Scan(&p.Id, &p.BoardId, &p.Title, &description, &p.Status, &p.VoteCount, &p.AuthorEmail, &p.CreatedAt, &p.CommentCount); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		p.Description = description.String
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (s *Storage) UpdatePostStatus(id domain.PostId, status domain.PostStatus) error {
	result, err := s.db.Exec("UPDATE posts SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return fmt.Errorf("failed to update post status: %w", err)
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for status update: %w", err)
	}
	if updated == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: "Post not found", StatusCode: http.StatusNotFound}
	}
	return nil
}

// DeletePost removes a post and its votes and comments, children first.
func (s *Storage) DeletePost(id domain.PostId) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM votes WHERE post_id = $1", id); err != nil {
			return fmt.Errorf("failed to delete votes: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM comments WHERE post_id = $1", id); err != nil {
			return fmt.Errorf("failed to delete comments: %w", err)
		}
		result, err := tx.Exec("DELETE FROM posts WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete post: %w", err)
		}
		deleted, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check affected rows for post deletion: %w", err)
		}
		if deleted == 0 {
			return &internal_errors.ErrorWithStatusCode{Message: "Post not found", StatusCode: http.StatusNotFound}
		}
		return nil
	})
}
