package models

import "time"

const PasswordHistoryTable = "password_history"

// PasswordHistoryLimit is how many previous hashes are kept per employee;
// new passwords must not match any of them.
const PasswordHistoryLimit = 10

type PasswordHistory struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EmployeeID string    `gorm:"type:uuid;index;not null" json:"employeeId"`
	Hash       string    `gorm:"size:255;not null" json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (PasswordHistory) TableName() string { return PasswordHistoryTable }
