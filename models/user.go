package models

import (
	"time"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleCustomer  UserRole = "customer"
	RoleEmployee  UserRole = "employee"
	RoleSuperuser UserRole = "superuser"
)

// StaffRoles may mutate orders and the cocktail catalog.
var StaffRoles = []UserRole{RoleEmployee, RoleSuperuser}

func (r UserRole) Valid() bool {
	switch r {
	case RoleCustomer, RoleEmployee, RoleSuperuser:
		return true
	}
	return false
}

func (r UserRole) IsStaff() bool {
	return r == RoleEmployee || r == RoleSuperuser
}

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	FirstName    string    `json:"first_name" gorm:"size:50;not null"`
	LastName     string    `json:"last_name" gorm:"size:50;not null"`
	Identifier   *string   `json:"identifier" gorm:"size:50;uniqueIndex"`
	Email        *string   `json:"email" gorm:"size:100;uniqueIndex"`
	GoogleID     *string   `json:"-" gorm:"size:255;uniqueIndex"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role" gorm:"size:20;not null;default:'customer'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Handle returns the login identifier, or "" for accounts created
// through an external provider.
func (u User) Handle() string {
	if u.Identifier == nil {
		return ""
	}
	return *u.Identifier
}

func (u User) EmailAddress() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}
