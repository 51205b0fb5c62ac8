package services

import (
	"context"

	"github.com/coursedesk/courseapi/internal/models"
)

// UserServiceInterface defines the contract for user store operations.
type UserServiceInterface interface {
	Create(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// CourseServiceInterface defines the contract for course store operations.
type CourseServiceInterface interface {
	List(ctx context.Context) ([]*models.Course, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, params models.CreateCourseParams) (*models.Course, error)
	Update(ctx context.Context, id int64, params models.UpdateCourseParams) error
	Delete(ctx context.Context, id int64) error
}

// AuthServiceInterface defines the contract for credential operations.
type AuthServiceInterface interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hash, password string) bool
}

// EmailCheckerInterface defines the contract for the plausibility check.
type EmailCheckerInterface interface {
	Check(ctx context.Context, email string) error
}
