package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/coursedesk/courseapi/internal/models"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

type UserService struct {
	db DB
}

func NewUserService(db DB) *UserService {
	return &UserService{db: db}
}

// Create inserts a new user. The password must already be hashed by the
// caller; the store never sees plaintext.
func (s *UserService) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	if verr := validateUserParams(params); verr != nil {
		return nil, verr
	}

	var exists bool
	err := s.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE email_address = $1)", params.EmailAddress).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking email existence: %w", err)
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	user := &models.User{}
	err = s.db.QueryRow(ctx,
		`INSERT INTO users (first_name, last_name, email_address, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, first_name, last_name, email_address, password_hash, created_at, updated_at`,
		params.FirstName, params.LastName, params.EmailAddress, params.PasswordHash,
	).Scan(&user.ID, &user.FirstName, &user.LastName, &user.EmailAddress, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRow(ctx,
		`SELECT id, first_name, last_name, email_address, password_hash, created_at, updated_at
		 FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.FirstName, &user.LastName, &user.EmailAddress, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by id: %w", err)
	}

	return user, nil
}

// GetByEmail looks up a user by exact, case-sensitive email match.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRow(ctx,
		`SELECT id, first_name, last_name, email_address, password_hash, created_at, updated_at
		 FROM users WHERE email_address = $1`,
		email,
	).Scan(&user.ID, &user.FirstName, &user.LastName, &user.EmailAddress, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}

	return user, nil
}

func validateUserParams(params models.CreateUserParams) *ValidationError {
	var msgs []string
	if strings.TrimSpace(params.FirstName) == "" {
		msgs = append(msgs, "First name is required")
	}
	if strings.TrimSpace(params.LastName) == "" {
		msgs = append(msgs, "Last name is required")
	}
	if strings.TrimSpace(params.EmailAddress) == "" {
		msgs = append(msgs, "Email address is required")
	}
	if strings.TrimSpace(params.PasswordHash) == "" {
		msgs = append(msgs, "Password is required")
	}
	if len(msgs) > 0 {
		return &ValidationError{Errors: msgs}
	}
	return nil
}
