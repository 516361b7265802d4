package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"accountd/internal/domain"
	"accountd/internal/repository"
)

const createAccountsTable = `
CREATE TABLE IF NOT EXISTS accounts (
	id TEXT PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	email TEXT NOT NULL COLLATE NOCASE UNIQUE,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'USER',
	profile_image TEXT,
	date_created DATETIME NOT NULL,
	date_updated DATETIME
);
`

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) repository.AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createAccountsTable); err != nil {
		return fmt.Errorf("create accounts table: %w", err)
	}
	return nil
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	if account.Role == "" {
		account.Role = domain.RoleUser
	}
	account.DateCreated = time.Now().UTC()
	account.DateUpdated = nil

	_, err := r.db.ExecContext(ctx, `
INSERT INTO accounts (id, first_name, last_name, email, password_hash, role, profile_image, date_created, date_updated)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		account.ID,
		account.FirstName,
		account.LastName,
		account.Email,
		account.PasswordHash,
		string(account.Role),
		account.ProfileImage,
		account.DateCreated,
		account.DateUpdated,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return fmt.Errorf("insert account: %w", repository.ErrDuplicateEmail)
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, first_name, last_name, email, password_hash, role, profile_image, date_created, date_updated
FROM accounts
WHERE email = ?`,
		email,
	)
	return scanAccount(row)
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, first_name, last_name, email, password_hash, role, profile_image, date_created, date_updated
FROM accounts
WHERE id = ?`,
		id,
	)
	return scanAccount(row)
}

func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE accounts
SET first_name = ?, last_name = ?, email = ?, password_hash = ?, role = ?, profile_image = ?, date_updated = ?
WHERE id = ?`,
		account.FirstName,
		account.LastName,
		account.Email,
		account.PasswordHash,
		string(account.Role),
		account.ProfileImage,
		account.DateUpdated,
		account.ID,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return fmt.Errorf("update account: %w", repository.ErrDuplicateEmail)
		}
		return fmt.Errorf("update account: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update account rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanAccount(row interface {
	Scan(dest ...any) error
}) (*domain.Account, error) {
	var (
		account      domain.Account
		role         string
		profileImage sql.NullString
		dateUpdated  sql.NullTime
	)
	if err := row.Scan(
		&account.ID,
		&account.FirstName,
		&account.LastName,
		&account.Email,
		&account.PasswordHash,
		&role,
		&profileImage,
		&account.DateCreated,
		&dateUpdated,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}

	account.Role = domain.Role(role)
	if profileImage.Valid {
		account.ProfileImage = &profileImage.String
	}
	if dateUpdated.Valid {
		t := dateUpdated.Time
		account.DateUpdated = &t
	}
	return &account, nil
}
