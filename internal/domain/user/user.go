package user

import (
	"time"

	"library-service/internal/rbac"
)

type User struct {
	ID            int64
	Email         string
	PasswordHash  string
	FirstName     string
	LastName      string
	Phone         *string
	Role          rbac.Role
	LibraryID     *int64
	LastConnected *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type CreateUserInput struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        *string
	Role         rbac.Role
	LibraryID    *int64
}

// Profile is the public view of a user. It never carries the password hash.
type Profile struct {
	ID            int64      `json:"id"`
	Email         string     `json:"email"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Phone         *string    `json:"phone,omitempty"`
	Role          rbac.Role  `json:"role"`
	LibraryID     *int64     `json:"libraryId,omitempty"`
	LastConnected *time.Time `json:"lastConnected,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func (u *User) Profile() Profile {
	return Profile{
		ID:            u.ID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Phone:         u.Phone,
		Role:          u.Role,
		LibraryID:     u.LibraryID,
		LastConnected: u.LastConnected,
		CreatedAt:     u.CreatedAt,
	}
}
