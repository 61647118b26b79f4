package service

import (
	"net/http"
	"regexp"
	"time"

	"github.com/fboard-dev/fboard/internal/domain"
	"github.com/fboard-dev/fboard/internal/errors"
	"github.com/fboard-dev/fboard/internal/logger"
	"github.com/fboard-dev/fboard/internal/otp"
)

// to mock service in tests
type VerificationService interface {
	SendCode(email domain.Email) error
	CheckCode(email domain.Email, code string) (domain.VerifiedEmail, error)
	Verified(email domain.Email) (bool, error)
}

type VerificationStorage interface {
	UpsertVerifiedEmail(v domain.VerifiedEmail) error
	VerifiedEmail(email domain.Email) (domain.VerifiedEmail, error)
}

type EmailValidator interface {
	IsCorrect(email domain.Email) error
}

type Verification struct {
	storage  VerificationStorage
	provider otp.Provider
	email    EmailValidator
	window   time.Duration // trust window granted per successful verification
}

func NewVerification(storage VerificationStorage, provider otp.Provider, email EmailValidator, window time.Duration) *Verification {
	return &Verification{storage: storage, provider: provider, email: email, window: window}
}

var codeShape = regexp.MustCompile(`^\d{6}$`)

// SendCode asks the provider to deliver a one-time code. Provider throttling
// is passed through as a distinct outcome so callers can say "slow down"
// instead of a generic failure.
func (v *Verification) SendCode(email domain.Email) error {
	email = domain.NormalizeEmail(email)
	if err := v.email.IsCorrect(email); err != nil {
		return err
	}

	err := v.provider.SendCode(email)
	switch err {
	case nil:
		return nil
	case otp.ErrRateLimited:
		return &errors.ErrorWithStatusCode{Message: "Too many requests. Please wait a moment before trying again.", StatusCode: http.StatusTooManyRequests}
	default:
		logger.Log.Error("failed to send verification code", "error", err)
		return &errors.ErrorWithStatusCode{Message: "Failed to send verification code. Please try again.", StatusCode: http.StatusInternalServerError}
	}
}

// CheckCode verifies a code and, on success, opens the trust window: the
// normalized email is recorded as verified until now plus the window. The
// record upsert failing after a provider-confirmed code is deliberately
// non-fatal (the code WAS valid), but it silently degrades future vote and
// comment authorization for the email, so it is logged at error level.
//
// Verification never creates a session: it proves inbox control, nothing
// more.
func (v *Verification) CheckCode(email domain.Email, code string) (domain.VerifiedEmail, error) {
	email = domain.NormalizeEmail(email)
	if err := v.email.IsCorrect(email); err != nil {
		return domain.VerifiedEmail{}, err
	}
	// Reject malformed codes before the provider round trip
	if !codeShape.MatchString(code) {
		return domain.VerifiedEmail{}, &errors.ErrorWithStatusCode{Message: "Invalid code format. Please enter the 6-digit code.", StatusCode: http.StatusBadRequest}
	}

	switch err := v.provider.VerifyCode(email, code); err {
	case nil:
	case otp.ErrCodeExpired:
		return domain.VerifiedEmail{}, &errors.ErrorWithStatusCode{Message: "Code has expired. Please request a new one.", StatusCode: http.StatusBadRequest}
	case otp.ErrCodeInvalid:
		return domain.VerifiedEmail{}, &errors.ErrorWithStatusCode{Message: "Invalid code. Please check and try again.", StatusCode: http.StatusBadRequest}
	default:
		logger.Log.Error("code verification failed", "error", err)
		return domain.VerifiedEmail{}, &errors.ErrorWithStatusCode{Message: "Verification failed. Please try again.", StatusCode: http.StatusInternalServerError}
	}

	now := time.Now().UTC()
	record := domain.VerifiedEmail{Email: email, VerifiedAt: now, ExpiresAt: now.Add(v.window)}
	if err := v.storage.UpsertVerifiedEmail(record); err != nil {
		logger.Log.Error("code confirmed but verification record not persisted; votes and comments for this email will be rejected until re-verification", "error", err)
	}
	return record, nil
}

// Verified reports whether the email currently holds a live verification
// record. An expired record is indistinguishable from an absent one.
func (v *Verification) Verified(email domain.Email) (bool, error) {
	record, err := v.storage.VerifiedEmail(domain.NormalizeEmail(email))
	if err != nil {
		if errors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return record.Valid(time.Now()), nil
}
