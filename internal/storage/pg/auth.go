package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/fboard-dev/fboard/internal/domain"
	internal_errors "github.com/fboard-dev/fboard/internal/errors"
)

// SaveAccount inserts an account on first sign-in, or returns the existing
// account's id when the email is already registered.
func (s *Storage) SaveAccount(a domain.Account) (domain.AccountId, error) {
	var id domain.AccountId
	err := s.db.QueryRow(`
        INSERT INTO accounts(id, email, created_at)
        VALUES($1, $2, $3)
        ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
        RETURNING id`,
		a.Id, a.Email, a.CreatedAt,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to upsert account: %w", err)
	}
	return id, nil
}

func (s *Storage) Account(email domain.Email) (domain.Account, error) {
	var a domain.Account
	err := s.db.QueryRow(
		"SELECT id, email, created_at FROM accounts WHERE email = $1", email,
	).Scan(&a.Id, &a.Email, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, &internal_errors.ErrorWithStatusCode{Message: "Account not found", StatusCode: http.StatusNotFound}
		}
		return domain.Account{}, fmt.Errorf("failed to query account: %w", err)
	}
	return a, nil
}

// SaveLoginCode stores a pending one-time code, replacing any previous code
// for the email.
func (s *Storage) SaveLoginCode(code domain.LoginCode) error {
	_, err := s.db.Exec(`
        INSERT INTO login_codes(email, code_hash, expires_at)
        VALUES($1, $2, $3)
        ON CONFLICT (email) DO UPDATE SET code_hash = EXCLUDED.code_hash, expires_at = EXCLUDED.expires_at`,
		code.Email, code.CodeHash, code.Expires,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert login code: %w", err)
	}
	return nil
}

func (s *Storage) LoginCode(email domain.Email) (domain.LoginCode, error) {
	var code domain.LoginCode
	err := s.db.QueryRow(`
        SELECT email, code_hash, (expires_at at time zone 'utc')
        FROM login_codes WHERE email = $1`, email,
	).Scan(&code.Email, &code.CodeHash, &code.Expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.LoginCode{}, &internal_errors.ErrorWithStatusCode{Message: "Login code not found", StatusCode: http.StatusNotFound}
		}
		return domain.LoginCode{}, fmt.Errorf("failed to query login code: %w", err)
	}
	return code, nil
}

func (s *Storage) DeleteLoginCode(email domain.Email) error {
	if _, err := s.db.Exec("DELETE FROM login_codes WHERE email = $1", email); err != nil {
		return fmt.Errorf("failed to delete login code: %w", err)
	}
	return nil
}

// UpsertVerifiedEmail records a completed verification, keyed by email. The
// record is overwritten, not appended: the trust window restarts.
func (s *Storage) UpsertVerifiedEmail(v domain.VerifiedEmail) error {
	_, err := s.db.Exec(`
        INSERT INTO verified_emails(email, verified_at, expires_at)
        VALUES($1, $2, $3)
        ON CONFLICT (email) DO UPDATE SET verified_at = EXCLUDED.verified_at, expires_at = EXCLUDED.expires_at`,
		v.Email, v.VerifiedAt, v.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert verified email: %w", err)
	}
	return nil
}

func (s *Storage) VerifiedEmail(email domain.Email) (domain.VerifiedEmail, error) {
	var v domain.VerifiedEmail
	err := s.db.QueryRow(`
        SELECT email, (verified_at at time zone 'utc'), (expires_at at time zone 'utc')
        FROM verified_emails WHERE email = $1`, email,
	).Scan(&v.Email, &v.VerifiedAt, &v.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.VerifiedEmail{}, &internal_errors.ErrorWithStatusCode{Message: "Email not verified", StatusCode: http.StatusNotFound}
		}
		return domain.VerifiedEmail{}, fmt.Errorf("failed to query verified email: %w", err)
	}
	return v, nil
}
