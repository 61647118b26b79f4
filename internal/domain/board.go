package domain

import "time"

// Board is a feedback space. Exactly one of OwnerId/ExpiresAt is set after
// creation: unowned boards expire, claimed boards never do.
type Board struct {
	Id        BoardId
	Name      BoardName
	Slug      BoardSlug
	OwnerId   *AccountId
	ExpiresAt *time.Time
	CreatedAt time.Time

	// ClaimToken is loaded only for authorization decisions and the claim
	// transition. It must never appear in API responses except the one
	// returned at creation time.
	ClaimToken string
}

// Claimed reports whether the board is bound to an account.
func (b *Board) Claimed() bool {
	return b.OwnerId != nil
}

// to iterate thru layers: handler -> service -> storage
type BoardCreationData struct {
	Name BoardName
}
