package models

import "time"

// Course belongs to exactly one owning user. Only the owner may update
// or delete it; reads are public.
type Course struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	EstimatedTime   *string   `json:"estimatedTime"`
	MaterialsNeeded *string   `json:"materialsNeeded"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}

type CreateCourseParams struct {
	UserID          int64
	Title           string
	Description     string
	EstimatedTime   *string
	MaterialsNeeded *string
}

// UpdateCourseParams covers the three mutable columns. Estimated time
// and materials are immutable after creation.
type UpdateCourseParams struct {
	UserID      int64
	Title       string
	Description string
}
