package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a registered user in the domain layer
// The user's account shares the user's ID
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// Validate ensures the user adheres to domain rules
func (u *User) Validate() error {
	if u.Email == "" {
		return errors.New("user email cannot be empty")
	}
	if !strings.Contains(u.Email, "@") {
		return errors.New("user email must contain @")
	}
	if u.Name == "" {
		return errors.New("user name cannot be empty")
	}
	if u.PasswordHash == "" {
		return errors.New("user password hash cannot be empty")
	}
	return nil
}
