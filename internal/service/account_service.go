package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"accountd/internal/domain"
	"accountd/internal/repository"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	// It deliberately does not distinguish an unknown email from a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccountExists is returned when registering with an email that is already taken.
	ErrAccountExists = errors.New("account already exists")
	// ErrAccountNotFound is returned when the referenced account no longer exists.
	ErrAccountNotFound = errors.New("account not found")
)

// AccountService describes account lifecycle operations.
type AccountService interface {
	Register(ctx context.Context, in RegistrationInput) (*domain.Account, error)
	Authenticate(ctx context.Context, in LoginInput) (*domain.Account, error)
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	SetProfileImage(ctx context.Context, id, imageURL string) (*domain.Account, error)
}

type accountService struct {
	accounts repository.AccountRepository
}

func NewAccountService(accounts repository.AccountRepository) AccountService {
	return &accountService{accounts: accounts}
}

func (s *accountService) Register(ctx context.Context, in RegistrationInput) (*domain.Account, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)

	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	// Fast path only: the unique index on email is the source of truth for
	// concurrent registrations racing past this check.
	if _, err := s.accounts.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrAccountExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &domain.Account{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrAccountExists
		}
		return nil, err
	}

	return sanitizeAccount(account), nil
}

func (s *accountService) Authenticate(ctx context.Context, in LoginInput) (*domain.Account, error) {
	in.Email = strings.TrimSpace(in.Email)

	if err := validateLogin(in); err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return sanitizeAccount(account), nil
}

func (s *accountService) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return sanitizeAccount(account), nil
}

func (s *accountService) SetProfileImage(ctx context.Context, id, imageURL string) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	account.ProfileImage = &imageURL
	account.DateUpdated = &now

	if err := s.accounts.Update(ctx, account); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	return sanitizeAccount(account), nil
}

// sanitizeAccount returns a copy safe to hand past the service boundary.
// The password hash never leaves this package.
func sanitizeAccount(account *domain.Account) *domain.Account {
	if account == nil {
		return nil
	}
	return &domain.Account{
		ID:           account.ID,
		FirstName:    account.FirstName,
		LastName:     account.LastName,
		Email:        account.Email,
		Role:         account.Role,
		ProfileImage: account.ProfileImage,
		DateCreated:  account.DateCreated,
		DateUpdated:  account.DateUpdated,
	}
}
