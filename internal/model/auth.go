package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the account type
type Role string

const (
	RoleStudent            Role = "student"
	RoleHealthProfessional Role = "health_professional"
	RoleAdmin              Role = "admin"
	RoleSuperAdmin         Role = "super_admin"
)

// IsStaff is true for roles that may read other students' results
func (r Role) IsStaff() bool {
	return r == RoleHealthProfessional || r == RoleAdmin || r == RoleSuperAdmin
}

// User is an account in the users collection
type User struct {
	ID                 string    `json:"id" bson:"_id"`
	RegistrationNumber string    `json:"registration_number,omitempty" bson:"registration_number,omitempty"`
	Email              string    `json:"email" bson:"email"`
	FullName           string    `json:"full_name" bson:"full_name"`
	Role               Role      `json:"role" bson:"role"`
	PasswordHash       string    `json:"-" bson:"password_hash,omitempty"`
	CreatedAt          time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" bson:"updated_at"`
}

// UserClaims are JWT claims for a signed-in user
type UserClaims struct {
	UserID string `json:"uid"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

// LoginRequest signs in a student (registration number) or staff member (email + password)
type LoginRequest struct {
	RegistrationNumber string `json:"registration_number,omitempty"`
	Email              string `json:"email,omitempty"`
	Password           string `json:"password,omitempty"`
}

// SignUpRequest registers a new student
type SignUpRequest struct {
	RegistrationNumber string `json:"registration_number"`
	Email              string `json:"email"`
	FullName           string `json:"full_name"`
}

// LoginResponse is returned after successful login or sign-up
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}
