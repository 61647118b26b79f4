package service

import (
	"net/http"

	"github.com/fboard-dev/fboard/internal/domain"
	"github.com/fboard-dev/fboard/internal/errors"
)

// to mock service in tests
type VoteService interface {
	Cast(postId domain.PostId, email domain.Email) error
	Retract(postId domain.PostId, email domain.Email) error
	HasVoted(postId domain.PostId, email domain.Email) (bool, error)
}

type VoteStorage interface {
	Post(id domain.PostId) (domain.Post, error)
	SaveVote(postId domain.PostId, email domain.Email) error
	DeleteVote(postId domain.PostId, email domain.Email) error
	HasVoted(postId domain.PostId, email domain.Email) (bool, error)
}

type Vote struct {
	storage  VoteStorage
	verified VerificationService
}

func NewVote(storage VoteStorage, verified VerificationService) *Vote {
	return &Vote{storage: storage, verified: verified}
}

var errEmailNotVerified = &errors.ErrorWithStatusCode{Message: "Email not verified", StatusCode: http.StatusForbidden}

// Cast records one vote per email per post. A duplicate cast is absorbed:
// the uniqueness violation from storage means the desired end state already
// holds, so the caller sees success either way.
func (v *Vote) Cast(postId domain.PostId, email domain.Email) error {
	email, err := v.requireVerified(email)
	if err != nil {
		return err
	}
	if _, err := v.storage.Post(postId); err != nil {
		return err
	}

	err = v.storage.SaveVote(postId, email)
	if err != nil && !errors.IsConflict(err) {
		return err
	}
	return nil
}

// Retract removes a vote if present. Retracting a vote that was never cast
// is not an error.
func (v *Vote) Retract(postId domain.PostId, email domain.Email) error {
	email, err := v.requireVerified(email)
	if err != nil {
		return err
	}
	if _, err := v.storage.Post(postId); err != nil {
		return err
	}
	return v.storage.DeleteVote(postId, email)
}

// HasVoted is a read used to render the vote toggle; it does not require a
// live verification.
func (v *Vote) HasVoted(postId domain.PostId, email domain.Email) (bool, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return false, nil
	}
	return v.storage.HasVoted(postId, email)
}

// requireVerified gates vote writes on a live verification record for the
// normalized email. Session holders passed their email through the same
// verification at sign-in, so one rule covers both.
func (v *Vote) requireVerified(email domain.Email) (domain.Email, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return "", errEmailNotVerified
	}
	ok, err := v.verified.Verified(email)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errEmailNotVerified
	}
	return email, nil
}
