package models

import "time"

// Account roles. New registrations always start as RolePending; the only
// runtime transitions are approve (pending -> user) and reject (delete).
// Admins come from seed configuration, never from a transition.
const (
	RolePending = "pending"
	RoleUser    = "user"
	RoleAdmin   = "admin"
)

// Account represents a registrant or member of the alumni network.
type Account struct {
	ID             string     `json:"id"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"` // Never expose this to the client
	Role           string     `json:"role"`
	SchoolID       *string    `json:"schoolId,omitempty"`
	SchoolName     string     `json:"schoolName,omitempty"` // Denormalized for listings
	GraduationYear *int       `json:"graduationYear,omitempty"`
	Degree         string     `json:"degree,omitempty"`
	Position       string     `json:"position,omitempty"`
	Company        string     `json:"company,omitempty"`
	Bio            string     `json:"bio,omitempty"`
	Website        string     `json:"website,omitempty"`
	PhotoURL       string     `json:"photoUrl,omitempty"`
	IsPublic       bool       `json:"isPublic"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	LastLogin      *time.Time `json:"lastLogin,omitempty"` // Nil until first successful login
}
