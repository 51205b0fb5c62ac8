package handlers

import (
	"context"

	"github.com/coursedesk/courseapi/internal/models"
)

type mockUserService struct {
	CreateFunc     func(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByIDFunc    func(ctx context.Context, id int64) (*models.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*models.User, error)
}

func (m *mockUserService) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockUserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

type mockCourseService struct {
	ListFunc    func(ctx context.Context) ([]*models.Course, error)
	GetByIDFunc func(ctx context.Context, id int64) (*models.Course, error)
	CreateFunc  func(ctx context.Context, params models.CreateCourseParams) (*models.Course, error)
	UpdateFunc  func(ctx context.Context, id int64, params models.UpdateCourseParams) error
	DeleteFunc  func(ctx context.Context, id int64) error

	UpdateCalls int
	DeleteCalls int
}

func (m *mockCourseService) List(ctx context.Context) ([]*models.Course, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockCourseService) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockCourseService) Create(ctx context.Context, params models.CreateCourseParams) (*models.Course, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockCourseService) Update(ctx context.Context, id int64, params models.UpdateCourseParams) error {
	m.UpdateCalls++
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil
}

func (m *mockCourseService) Delete(ctx context.Context, id int64) error {
	m.DeleteCalls++
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type mockAuthService struct {
	HashPasswordFunc   func(password string) (string, error)
	VerifyPasswordFunc func(hash, password string) bool
}

func (m *mockAuthService) HashPassword(password string) (string, error) {
	if m.HashPasswordFunc != nil {
		return m.HashPasswordFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockAuthService) VerifyPassword(hash, password string) bool {
	if m.VerifyPasswordFunc != nil {
		return m.VerifyPasswordFunc(hash, password)
	}
	return hash == "hashed_"+password
}

type mockEmailChecker struct {
	CheckFunc func(ctx context.Context, email string) error
}

func (m *mockEmailChecker) Check(ctx context.Context, email string) error {
	if m.CheckFunc != nil {
		return m.CheckFunc(ctx, email)
	}
	return nil
}
