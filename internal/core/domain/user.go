package domain

import (
	"fmt"
	"regexp"
	"time"
)

// Role is the kind of actor a user account belongs to. It never changes after
// registration.
type Role string

const (
	RolePatient    Role = "patient"
	RoleDoctor     Role = "doctor"
	RolePharmacist Role = "pharmacist"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RolePharmacist:
		return true
	}
	return false
}

// IdentifierLength is the exact length of a user identifier.
const IdentifierLength = 16

var identifierPattern = regexp.MustCompile(fmt.Sprintf(`^[A-Z0-9]{%d}$`, IdentifierLength))

// IsIdentifier reports whether s has the shape of a user identifier:
// 16 characters drawn from A-Z and 0-9.
func IsIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

// User models a registered patient, doctor or pharmacist.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Age          *int      `json:"age,omitempty"`
	Gender       string    `json:"gender,omitempty"`
	Address      string    `json:"address,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Identifier   string    `json:"identifier"`
	CreatedAt    time.Time `json:"created_at"`
}
