package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/coursedesk/courseapi/internal/models"
)

var ErrCourseNotFound = errors.New("course not found")

const courseColumns = "id, user_id, title, description, estimated_time, materials_needed, created_at, updated_at"

type CourseService struct {
	db DB
}

func NewCourseService(db DB) *CourseService {
	return &CourseService{db: db}
}

func (s *CourseService) List(ctx context.Context) ([]*models.Course, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+courseColumns+` FROM courses ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course := &models.Course{}
		if err := scanCourse(rows, course); err != nil {
			return nil, fmt.Errorf("scanning course: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}

	return courses, nil
}

func (s *CourseService) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	course := &models.Course{}
	err := scanCourse(s.db.QueryRow(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = $1`,
		id,
	), course)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting course: %w", err)
	}

	return course, nil
}

func (s *CourseService) Create(ctx context.Context, params models.CreateCourseParams) (*models.Course, error) {
	if verr := validateCourseFields(params.Title, params.Description); verr != nil {
		return nil, verr
	}

	course := &models.Course{}
	err := scanCourse(s.db.QueryRow(ctx,
		`INSERT INTO courses (user_id, title, description, estimated_time, materials_needed)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+courseColumns,
		params.UserID, params.Title, params.Description, params.EstimatedTime, params.MaterialsNeeded,
	), course)
	if err != nil {
		if verr := constraintViolation(err); verr != nil {
			return nil, verr
		}
		return nil, fmt.Errorf("creating course: %w", err)
	}

	return course, nil
}

// Update changes the three mutable columns. Estimated time and materials
// are left untouched.
func (s *CourseService) Update(ctx context.Context, id int64, params models.UpdateCourseParams) error {
	if verr := validateCourseFields(params.Title, params.Description); verr != nil {
		return verr
	}

	result, err := s.db.Exec(ctx,
		`UPDATE courses SET user_id = $1, title = $2, description = $3, updated_at = now()
		 WHERE id = $4`,
		params.UserID, params.Title, params.Description, id,
	)
	if err != nil {
		if verr := constraintViolation(err); verr != nil {
			return verr
		}
		return fmt.Errorf("updating course: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrCourseNotFound
	}

	return nil
}

func (s *CourseService) Delete(ctx context.Context, id int64) error {
	result, err := s.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting course: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrCourseNotFound
	}

	return nil
}

func scanCourse(row Row, course *models.Course) error {
	return row.Scan(
		&course.ID, &course.UserID, &course.Title, &course.Description,
		&course.EstimatedTime, &course.MaterialsNeeded, &course.CreatedAt, &course.UpdatedAt,
	)
}

func validateCourseFields(title, description string) *ValidationError {
	var msgs []string
	if strings.TrimSpace(title) == "" {
		msgs = append(msgs, "Title is required")
	}
	if strings.TrimSpace(description) == "" {
		msgs = append(msgs, "Description is required")
	}
	if len(msgs) > 0 {
		return &ValidationError{Errors: msgs}
	}
	return nil
}

// constraintViolation maps a foreign key failure on user_id to a
// field-level validation error so handlers answer 400, not 500.
func constraintViolation(err error) *ValidationError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
		return &ValidationError{Errors: []string{`Please provide a valid value for "userId"`}}
	}
	return nil
}
