package usecase

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	walog "go.mau.fi/whatsmeow/util/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/vega9999/HydroHero/internal/domain"
)

const minPasswordLength = 6

// AuthUsecase links a chat user to a HydroHero account or a guest identity.
// It never returns an error: failures become an AuthResult the user can read.
type AuthUsecase struct {
	accounts   domain.AccountRepository
	identities domain.IdentityRepository
	cost       int
	log        walog.Logger
}

func NewAuthUsecase(accounts domain.AccountRepository, identities domain.IdentityRepository, log walog.Logger) *AuthUsecase {
	if log == nil {
		log = walog.Noop
	}
	return &AuthUsecase{accounts: accounts, identities: identities, cost: bcrypt.DefaultCost, log: log}
}

// WithHashCost lowers the bcrypt cost, for tests.
func (uc *AuthUsecase) WithHashCost(cost int) *AuthUsecase {
	uc.cost = cost
	return uc
}

func (uc *AuthUsecase) Register(ctx context.Context, userID, email, password, displayName string) domain.AuthResult {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return failed("Please use a valid email address.")
	}
	if len(password) < minPasswordLength {
		return failed("Password must be at least 6 characters.")
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName, _, _ = strings.Cut(email, "@")
	}

	existing, err := uc.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		uc.log.Errorf("Register lookup failed: %v", err)
		return failed("Registration failed, please try again later.")
	}
	if existing != nil {
		return failed("An account with this email already exists.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
	if err != nil {
		uc.log.Errorf("Password hashing failed: %v", err)
		return failed("Registration failed, please try again later.")
	}

	account := &domain.Account{Email: email, DisplayName: displayName, PasswordHash: string(hash)}
	if err := uc.accounts.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, domain.ErrAccountExists) {
			return failed("An account with this email already exists.")
		}
		uc.log.Errorf("Create account failed: %v", err)
		return failed("Registration failed, please try again later.")
	}

	return uc.bind(ctx, userID, account.DisplayName)
}

func (uc *AuthUsecase) Login(ctx context.Context, userID, email, password string) domain.AuthResult {
	account, err := uc.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		uc.log.Errorf("Login lookup failed: %v", err)
		return failed("Login failed, please try again later.")
	}
	if account == nil {
		return failed(domain.ErrInvalidCredentials.Error())
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return failed(domain.ErrInvalidCredentials.Error())
	}
	return uc.bind(ctx, userID, account.DisplayName)
}

func (uc *AuthUsecase) Guest(ctx context.Context, userID string) domain.AuthResult {
	return uc.bind(ctx, userID, domain.GuestName)
}

func (uc *AuthUsecase) bind(ctx context.Context, userID, name string) domain.AuthResult {
	if err := uc.identities.SetDisplayName(ctx, userID, name); err != nil {
		uc.log.Errorf("Save display name failed: %v", err)
		return failed("Login failed, please try again later.")
	}
	return domain.AuthResult{DisplayName: name, Success: true}
}

func failed(msg string) domain.AuthResult {
	return domain.AuthResult{Success: false, Error: msg}
}
