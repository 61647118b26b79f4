package domain

import "time"

// Account is a fully authenticated user, created on first passwordless
// sign-in. Accounts exist only to own claimed boards.
type Account struct {
	Id        AccountId
	Email     Email
	CreatedAt time.Time
}

// VerifiedEmail is the trust anchor for anonymous voters and commenters:
// proof that this email completed one-time-code verification within the
// trust window. The window does not slide; one tick past ExpiresAt the
// record is treated as absent.
type VerifiedEmail struct {
	Email      Email
	VerifiedAt time.Time
	ExpiresAt  time.Time
}

// Valid reports whether the record still vouches for the email at instant now.
func (v *VerifiedEmail) Valid(now time.Time) bool {
	return v.ExpiresAt.After(now)
}

// LoginCode is a pending one-time code issued by the built-in code provider.
// Only the bcrypt hash of the code is stored.
type LoginCode struct {
	Email    Email
	CodeHash string
	Expires  time.Time
}
