package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/fboard-dev/fboard/internal/domain"
	"github.com/fboard-dev/fboard/internal/jwt"
)

// to mock service in tests
type AccountService interface {
	SendLoginCode(email domain.Email) error
	Login(email domain.Email, code string) (string, domain.Account, error)
}

type AccountStorage interface {
	SaveAccount(a domain.Account) (domain.AccountId, error)
}

// Account implements passwordless sign-in on top of the same one-time-code
// machinery the anonymous verification flow uses. A successful login both
// mints a session and opens the email's verification window, so a signed-in
// user can vote and comment without a second code.
type Account struct {
	storage      AccountStorage
	verification VerificationService
	jwt          jwt.JwtService
}

func NewAccount(storage AccountStorage, verification VerificationService, jwt jwt.JwtService) *Account {
	return &Account{storage: storage, verification: verification, jwt: jwt}
}

func (a *Account) SendLoginCode(email domain.Email) error {
	return a.verification.SendCode(email)
}

// Login checks the code, upserts the account (first sign-in creates it) and
// returns a signed session token.
func (a *Account) Login(email domain.Email, code string) (string, domain.Account, error) {
	record, err := a.verification.CheckCode(email, code)
	if err != nil {
		return "", domain.Account{}, err
	}

	account := domain.Account{
		Id:        uuid.NewString(),
		Email:     record.Email,
		CreatedAt: time.Now().UTC(),
	}
	id, err := a.storage.SaveAccount(account)
	if err != nil {
		return "", domain.Account{}, err
	}
	account.Id = id

	token, err := a.jwt.NewToken(account)
	if err != nil {
		return "", domain.Account{}, err
	}
	return token, account, nil
}
