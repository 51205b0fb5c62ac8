package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/coursedesk/courseapi/internal/models"
)

func TestUserService_Create_MissingFields(t *testing.T) {
	db := &fakeDB{}
	svc := NewUserService(db)

	_, err := svc.Create(context.Background(), models.CreateUserParams{})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	want := []string{
		"First name is required",
		"Last name is required",
		"Email address is required",
		"Password is required",
	}
	if !reflect.DeepEqual(verr.Errors, want) {
		t.Errorf("expected %v, got %v", want, verr.Errors)
	}
	if db.queryRowCalls != 0 {
		t.Error("expected no database access for an invalid record")
	}
}

func TestUserService_Create_PartialMissingFields(t *testing.T) {
	db := &fakeDB{}
	svc := NewUserService(db)

	_, err := svc.Create(context.Background(), models.CreateUserParams{
		FirstName:    "Joe",
		EmailAddress: "joe@example.com",
	})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	want := []string{"Last name is required", "Password is required"}
	if !reflect.DeepEqual(verr.Errors, want) {
		t.Errorf("expected %v, got %v", want, verr.Errors)
	}
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	db := &fakeDB{
		queryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			return fakeRow{scanFunc: func(dest ...any) error {
				*(dest[0].(*bool)) = true
				return nil
			}}
		},
	}
	svc := NewUserService(db)

	_, err := svc.Create(context.Background(), models.CreateUserParams{
		FirstName:    "Joe",
		LastName:     "Smith",
		EmailAddress: "joe@example.com",
		PasswordHash: "$2a$12$hash",
	})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestUserService_GetByEmail_NotFound(t *testing.T) {
	db := &fakeDB{
		queryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			return fakeRow{scanFunc: func(dest ...any) error {
				return pgx.ErrNoRows
			}}
		},
	}
	svc := NewUserService(db)

	_, err := svc.GetByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_GetByID_Error(t *testing.T) {
	db := &fakeDB{
		queryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			return fakeRow{scanFunc: func(dest ...any) error {
				return errors.New("connection reset")
			}}
		},
	}
	svc := NewUserService(db)

	_, err := svc.GetByID(context.Background(), 1)
	if err == nil || errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected a wrapped database error, got %v", err)
	}
}
