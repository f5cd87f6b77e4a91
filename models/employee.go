package models

import (
	"time"
)

const EmployeeTable = "employees"

// Role hierarchy for permission checks. admin and corrections_supervisor sit
// at the same level.
const (
	RoleEmployee   = "employee"
	RoleManager    = "manager"
	RoleAdmin      = "admin"
	RoleSupervisor = "corrections_supervisor"
)

var RoleRank = map[string]int{
	RoleEmployee:   1,
	RoleManager:    2,
	RoleAdmin:      3,
	RoleSupervisor: 3,
}

const (
	RankEmployee = 1
	RankManager  = 2
	RankAdmin    = 3
)

func ValidRole(r string) bool {
	_, ok := RoleRank[r]
	return ok
}

type Employee struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id"`
	Username  string `gorm:"uniqueIndex;size:255;not null" json:"username"`
	FirstName string `gorm:"size:100" json:"firstName"`
	LastName  string `gorm:"size:100" json:"lastName"`
	Position  string `gorm:"size:100" json:"position,omitempty"`
	Email     string `gorm:"size:255" json:"email,omitempty"`
	Phone     string `gorm:"size:50" json:"phone,omitempty"`

	PasswordHash           string    `gorm:"size:255;not null" json:"-"`
	Role                   string    `gorm:"size:50;not null;default:'employee'" json:"role"`
	IsApproved             bool      `gorm:"not null;default:false" json:"isApproved"`
	PasswordChangeRequired bool      `gorm:"not null;default:false" json:"passwordChangeRequired"`
	PasswordChangedAt      time.Time `json:"-"`

	LastLoginAt *time.Time `gorm:"index" json:"lastLoginAt,omitempty"`
	LastSeenAt  *time.Time `gorm:"index" json:"lastSeenAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Employee) TableName() string { return EmployeeTable }

// Rank returns the permission level for the employee's role; unknown roles
// rank below employee.
func (e *Employee) Rank() int { return RoleRank[e.Role] }

func (e *Employee) FullName() string {
	switch {
	case e.FirstName == "" && e.LastName == "":
		return e.Username
	case e.LastName == "":
		return e.FirstName
	case e.FirstName == "":
		return e.LastName
	}
	return e.FirstName + " " + e.LastName
}
