package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserRole separates the two marketplace sides.
type UserRole string

const (
	RoleApplicant UserRole = "applicant"
	RoleRecruiter UserRole = "recruiter"
)

// User is the slice of the user profile this service reads. Profile
// management owns the rest of the schema.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      UserRole  `json:"role"`
	Gender    string    `json:"gender"`
	CreatedAt time.Time `json:"created_at"`
}
