package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the closed set of account roles. Authorization checks switch
// over it exhaustively instead of querying ad-hoc boolean flags.
type Role string

const (
	RoleClient  Role = "CLIENT"
	RoleManager Role = "MANAGER"
	RoleAdmin   Role = "ADMIN"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleManager, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email         string             `bson:"email" json:"email" validate:"required,email"`
	Password      string             `bson:"password" json:"-"`
	FullName      string             `bson:"full_name" json:"fullName" validate:"required,max=100"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	DriverLicense string             `bson:"driver_license,omitempty" json:"driverLicense,omitempty"`
	Role          Role               `bson:"role" json:"role"`
	Approved      bool               `bson:"approved" json:"approved"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}

// AuthUser is the token-facing projection of an account.
type AuthUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     Role   `json:"role"`
	Approved bool   `json:"approved"`
}
