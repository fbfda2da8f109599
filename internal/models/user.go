package models

import "time"

type User struct {
	ID        string
	Email     string
	Password  string
	FirstName *string
	LastName  *string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
