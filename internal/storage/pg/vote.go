package pg

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/lib/pq"

	"github.com/fboard-dev/fboard/internal/domain"
	internal_errors "github.com/fboard-dev/fboard/internal/errors"
)

// SaveVote inserts one vote for the (post, email) pair. A duplicate pair is
// reported as a 409 so the service can fold the concurrent double-submission
// race into a no-op success.
func (s *Storage) SaveVote(postId domain.PostId, voterEmail domain.Email) error {
	_, err := s.db.Exec(
		"INSERT INTO votes(post_id, voter_email) VALUES($1, $2)",
		postId, voterEmail,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return &internal_errors.ErrorWithStatusCode{Message: "Already voted", StatusCode: http.StatusConflict}
		}
		return fmt.Errorf("failed to insert vote: %w", err)
	}
	return nil
}

// DeleteVote removes the vote for the (post, email) pair. Deleting an absent
// vote is not an error: retract is idempotent.
func (s *Storage) DeleteVote(postId domain.PostId, voterEmail domain.Email) error {
	_, err := s.db.Exec(
		"DELETE FROM votes WHERE post_id = $1 AND voter_email = $2",
		postId, voterEmail,
	)
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}
	return nil
}

// HasVoted reports whether the pair already has a vote row.
func (s *Storage) HasVoted(postId domain.PostId, voterEmail domain.Email) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM votes WHERE post_id = $1 AND voter_email = $2)",
		postId, voterEmail,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query vote: %w", err)
	}
	return exists, nil
}
