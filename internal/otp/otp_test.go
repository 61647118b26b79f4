package otp

import (
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fboard-dev/fboard/internal/domain"
	internal_errors "github.com/fboard-dev/fboard/internal/errors"
)

// --- Mocks ---

type memStorage struct {
	codes map[domain.Email]domain.LoginCode
}

func newMemStorage() *memStorage {
	return &memStorage{codes: make(map[domain.Email]domain.LoginCode)}
}

func (m *memStorage) SaveLoginCode(code domain.LoginCode) error {
	m.codes[code.Email] = code
	return nil
}

func (m *memStorage) LoginCode(email domain.Email) (domain.LoginCode, error) {
	code, ok := m.codes[email]
	if !ok {
		return domain.LoginCode{}, &internal_errors.ErrorWithStatusCode{Message: "Login code not found", StatusCode: http.StatusNotFound}
	}
	return code, nil
}

func (m *memStorage) DeleteLoginCode(email domain.Email) error {
	delete(m.codes, email)
	return nil
}

type capturingSender struct {
	lastRecipient string
	lastBody      string
	sendErr       error
}

func (c *capturingSender) Send(recipientEmail, subject, body string) error {
	c.lastRecipient = recipientEmail
	c.lastBody = body
	return c.sendErr
}

var codeInBody = regexp.MustCompile(`\d{6}`)

func TestMailerSendCode(t *testing.T) {
	t.Run("stores hash, mails plaintext", func(t *testing.T) {
		storage := newMemStorage()
		sender := &capturingSender{}
		m := NewMailer(storage, sender, 10*time.Minute)

		require.NoError(t, m.SendCode("user@example.com"))

		code := codeInBody.FindString(sender.lastBody)
		require.NotEmpty(t, code)

		stored := storage.codes["user@example.com"]
		assert.NotEqual(t, code, stored.CodeHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.CodeHash), []byte(code)))
		assert.WithinDuration(t, time.Now().UTC().Add(10*time.Minute), stored.Expires, time.Minute)
	})

	t.Run("pending code throttles resend", func(t *testing.T) {
		storage := newMemStorage()
		m := NewMailer(storage, &capturingSender{}, 10*time.Minute)

		require.NoError(t, m.SendCode("user@example.com"))
		assert.ErrorIs(t, m.SendCode("user@example.com"), ErrRateLimited)
	})

	t.Run("expired pending code is replaced", func(t *testing.T) {
		storage := newMemStorage()
		storage.codes["user@example.com"] = domain.LoginCode{
			Email:   "user@example.com",
			Expires: time.Now().Add(-time.Minute),
		}
		m := NewMailer(storage, &capturingSender{}, 10*time.Minute)

		require.NoError(t, m.SendCode("user@example.com"))
		assert.True(t, storage.codes["user@example.com"].Expires.After(time.Now()))
	})
}

func TestMailerVerifyCode(t *testing.T) {
	setup := func(t *testing.T) (*Mailer, *memStorage, string) {
		t.Helper()
		storage := newMemStorage()
		sender := &capturingSender{}
		m := NewMailer(storage, sender, 10*time.Minute)
		require.NoError(t, m.SendCode("user@example.com"))
		return m, storage, codeInBody.FindString(sender.lastBody)
	}

	t.Run("correct code consumes it", func(t *testing.T) {
		m, storage, code := setup(t)

		require.NoError(t, m.VerifyCode("user@example.com", code))

		// single-use: second attempt fails
		assert.Empty(t, storage.codes)
		assert.ErrorIs(t, m.VerifyCode("user@example.com", code), ErrCodeInvalid)
	})

	t.Run("wrong code", func(t *testing.T) {
		m, storage, code := setup(t)

		wrong := "000000"
		if wrong == code {
			wrong = "000001"
		}
		assert.ErrorIs(t, m.VerifyCode("user@example.com", wrong), ErrCodeInvalid)
		// failed attempt does not consume the pending code
		assert.NotEmpty(t, storage.codes)
	})

	t.Run("expired code", func(t *testing.T) {
		m, storage, code := setup(t)

		pending := storage.codes["user@example.com"]
		pending.Expires = time.Now().Add(-time.Second)
		storage.codes["user@example.com"] = pending

		assert.ErrorIs(t, m.VerifyCode("user@example.com", code), ErrCodeExpired)
	})

	t.Run("no pending code", func(t *testing.T) {
		m := NewMailer(newMemStorage(), &capturingSender{}, 10*time.Minute)
		assert.ErrorIs(t, m.VerifyCode("other@example.com", "123456"), ErrCodeInvalid)
	})
}
