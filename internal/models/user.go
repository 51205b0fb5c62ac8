package models

import "time"

// User is an account that can authenticate and own courses. The password
// is persisted only as a bcrypt hash and is never serialized.
type User struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	EmailAddress string    `json:"emailAddress"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

type CreateUserParams struct {
	FirstName    string
	LastName     string
	EmailAddress string
	PasswordHash string
}
