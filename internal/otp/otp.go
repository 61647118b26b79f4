// Package otp issues and checks the 6-digit one-time codes that back both
// voter email verification and passwordless account sign-in. Generation,
// hashing and expiry all live behind the Provider interface so a hosted
// auth service can be swapped in without touching the services above.
package otp

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/fboard-dev/fboard/internal/domain"
	internal_errors "github.com/fboard-dev/fboard/internal/errors"
	"github.com/fboard-dev/fboard/internal/logger"
	"github.com/fboard-dev/fboard/internal/utils"
)

// CodeLen is fixed by the wire contract: clients reject anything that is not
// exactly six ASCII digits before calling the API.
const CodeLen = 6

var (
	// ErrRateLimited means a previously issued code is still live.
	ErrRateLimited = errors.New("code recently sent")
	// ErrCodeExpired means the pending code's lifetime has passed.
	ErrCodeExpired = errors.New("code expired")
	// ErrCodeInvalid means the presented code does not match the pending one.
	ErrCodeInvalid = errors.New("code invalid")
)

type Provider interface {
	// SendCode delivers a fresh one-time code to email. Returns
	// ErrRateLimited while an unexpired code is pending.
	SendCode(email domain.Email) error
	// VerifyCode checks code against the pending one for email and consumes
	// it on success. Returns ErrCodeExpired or ErrCodeInvalid on mismatch.
	VerifyCode(email domain.Email, code string) error
}

type Storage interface {
	SaveLoginCode(code domain.LoginCode) error
	LoginCode(email domain.Email) (domain.LoginCode, error)
	DeleteLoginCode(email domain.Email) error
}

type Sender interface {
	Send(recipientEmail, subject, body string) error
}

// Mailer is the built-in Provider: codes are bcrypt-hashed into storage and
// delivered over SMTP.
type Mailer struct {
	storage Storage
	email   Sender
	ttl     time.Duration
}

func NewMailer(storage Storage, email Sender, ttl time.Duration) *Mailer {
	return &Mailer{storage: storage, email: email, ttl: ttl}
}

func (m *Mailer) SendCode(email domain.Email) error {
	pending, err := m.storage.LoginCode(email)
	if err != nil && !internal_errors.IsNotFound(err) {
		return err
	}
	if err == nil { // a code is already pending, check expiration
		if pending.Expires.Before(time.Now()) {
			if err := m.storage.DeleteLoginCode(email); err != nil {
				return err
			}
		} else {
			return ErrRateLimited
		}
	}

	code := utils.GenerateLoginCode(CodeLen)
	codeHash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash login code", "error", err)
		return err
	}

	err = m.storage.SaveLoginCode(domain.LoginCode{
		Email:    email,
		CodeHash: string(codeHash),
		Expires:  time.Now().UTC().Add(m.ttl),
	})
	if err != nil {
		return err
	}

	body := fmt.Sprintf(`
		Hello,

		Your verification code is below

		%s

		If you did not request this, please ignore this email.
	`, code)

	return m.email.Send(email, "Your verification code", body)
}

func (m *Mailer) VerifyCode(email domain.Email, code string) error {
	pending, err := m.storage.LoginCode(email)
	if err != nil {
		if internal_errors.IsNotFound(err) {
			return ErrCodeInvalid
		}
		return err
	}
	if pending.Expires.Before(time.Now()) {
		return ErrCodeExpired
	}
	if err := bcrypt.CompareHashAndPassword([]byte(pending.CodeHash), []byte(code)); err != nil {
		return ErrCodeInvalid
	}
	if err := m.storage.DeleteLoginCode(email); err != nil { // codes are single-use
		logger.Log.Error("failed to delete consumed login code", "error", err)
	}
	return nil
}
