package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lib/pq"

	"github.com/fboard-dev/fboard/internal/domain"
	internal_errors "github.com/fboard-dev/fboard/internal/errors"
)

const uniqueViolation = "23505"

const boardColumns = "id, owner_id, name, slug, claim_token, expires_at, created_at"

func scanBoard(row *sql.Row) (domain.Board, error) {
	var b domain.Board
	var ownerId sql.NullString
	var claimToken sql.NullString
	var expiresAt sql.NullTime
	err := row.Scan(&b.Id, &ownerId, &b.Name, &b.Slug, &claimToken, &expiresAt, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Board{}, &internal_errors.ErrorWithStatusCode{Message: "Board not found", StatusCode: http.StatusNotFound}
		}
		return domain.Board{}, fmt.Errorf("failed to query board: %w", err)
	}
	if ownerId.Valid {
		b.OwnerId = &ownerId.String
	}
	if claimToken.Valid {
		b.ClaimToken = claimToken.String
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		b.ExpiresAt = &t
	}
	return b, nil
}

// SaveBoard inserts a freshly created board. A slug collision surfaces as a
// 409 so the caller can regenerate and retry.
func (s *Storage) SaveBoard(b domain.Board) error {
	_, err := s.db.Exec(`
        INSERT INTO boards(id, name, slug, claim_token, expires_at, created_at)
        VALUES($1, $2, $3, $4, $5, $6)`,
		b.Id, b.Name, b.Slug, b.ClaimToken, b.ExpiresAt, b.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return &internal_errors.ErrorWithStatusCode{Message: "Board slug already taken", StatusCode: http.StatusConflict}
		}
		return fmt.Errorf("failed to insert board: %w", err)
	}
	return nil
}

// Board fetches a board by slug, including the stored claim token and owner
// reference needed for authorization decisions.
func (s *Storage) Board(slug domain.BoardSlug) (domain.Board, error) {
	row := s.db.QueryRow("SELECT "+boardColumns+" FROM boards WHERE slug = $1", slug)
	return scanBoard(row)
}

func (s *Storage) BoardById(id domain.BoardId) (domain.Board, error) {
	row := s.db.QueryRow("SELECT "+boardColumns+" FROM boards WHERE id = $1", id)
	return scanBoard(row)
}

func (s *Storage) BoardsByOwner(accountId domain.AccountId) ([]domain.Board, error) {
	rows, err := s.db.Query(`
        SELECT id, owner_id, name, slug, expires_at, created_at
        FROM boards WHERE owner_id = $1 ORDER BY created_at DESC`, accountId)
	if err != nil {
		return nil, fmt.Errorf("failed to query boards by owner: %w", err)
	}
	defer rows.Close()

	var boards []domain.Board
	for rows.Next() {
		var b domain.Board
		var ownerId sql.NullString
		var expiresAt sql.NullTime
		if err := rows.Scan(&b.Id, &ownerId, &b.Name, &b.Slug, &expiresAt, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan board: %w", err)
		}
		if ownerId.Valid {
			b.OwnerId = &ownerId.String
		}
		if expiresAt.Valid {
			t := expiresAt.Time
			b.ExpiresAt = &t
		}
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

func (s *Storage) UpdateBoardName(id domain.BoardId, name domain.BoardName) error {
	result, err := s.db.Exec("UPDATE boards SET name = $1 WHERE id = $2", name, id)
	if err != nil {
		return fmt.Errorf("failed to update board name: %w", err)
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for board update: %w", err)
	}
	if updated == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: "Board not found", StatusCode: http.StatusNotFound}
	}
	return nil
}

// ClaimBoard performs the compare-and-set claim transition: the owner
// reference is written only if still empty, the expiry is cleared and the
// stored claim token retired in the same statement. Returns false when a
// concurrent claim won.
func (s *Storage) ClaimBoard(id domain.BoardId, accountId domain.AccountId) (bool, error) {
	result, err := s.db.Exec(`
        UPDATE boards
        SET owner_id = $2, expires_at = NULL, claim_token = NULL
        WHERE id = $1 AND owner_id IS NULL`,
		id, accountId,
	)
	if err != nil {
		return false, fmt.Errorf("failed to claim board: %w", err)
	}
	claimed, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check affected rows for claim: %w", err)
	}
	return claimed == 1, nil
}

// DeleteBoard removes a board and all of its children. Deletion order is
// children before parent: changelog entries, votes, comments, posts, board.
func (s *Storage) DeleteBoard(id domain.BoardId) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM changelog_entries WHERE board_id = $1", id); err != nil {
			return fmt.Errorf("failed to delete changelog entries: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM votes USING posts WHERE votes.post_id = posts.id AND posts.board_id = $1", id); err != nil {
			return fmt.Errorf("failed to delete votes: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM comments USING posts WHERE comments.post_id = posts.id AND posts.board_id = $1", id); err != nil {
			return fmt.Errorf("failed to delete comments: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM posts WHERE board_id = $1", id); err != nil {
			return fmt.Errorf("failed to delete posts: %w", err)
		}
		result, err := tx.Exec("DELETE FROM boards WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete board: %w", err)
		}
		deleted, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check affected rows for board deletion: %w", err)
		}
		if deleted == 0 {
			return &internal_errors.ErrorWithStatusCode{Message: "Board not found", StatusCode: http.StatusNotFound}
		}
		return nil
	})
}
