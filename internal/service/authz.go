package service

import (
	"strings"

	"github.com/fboard-dev/fboard/internal/domain"
)

// IsBoardOwner is the dual-mode ownership check. A caller owns a board if it
// presents the board's bearer secret, or if its authenticated account is the
// board's owner reference. Both comparisons require non-empty operands on
// both sides: a board whose secret was retired by claiming never matches the
// secret path, and an unclaimed board never matches the account path.
//
// Pure decision function over an already-loaded board; callers resolve
// not-found separately before asking.
func IsBoardOwner(board domain.Board, presentedSecret string, presentedAccount domain.AccountId) bool {
	if presentedSecret != "" && board.ClaimToken != "" && presentedSecret == board.ClaimToken {
		return true
	}
	if presentedAccount != "" && board.OwnerId != nil && *board.OwnerId == presentedAccount {
		return true
	}
	return false
}

// CanDeleteComment allows board owners (either mode) and the comment's own
// author. The author match is a case-insensitive string comparison against a
// locally-cached email with no proof of control: a deliberately weak trust
// tier, distinct from one-time-code verification, accepted because a deleted
// comment is the only thing at stake.
func CanDeleteComment(comment domain.Comment, board domain.Board, presentedSecret string, presentedAccount domain.AccountId, presentedEmail domain.Email) bool {
	if IsBoardOwner(board, presentedSecret, presentedAccount) {
		return true
	}
	return presentedEmail != "" && strings.EqualFold(comment.AuthorEmail, presentedEmail)
}
