package models

import "time"

const AuditLogTable = "audit_logs"

// Audit actions recorded across the app. Kept as plain strings in the table
// so new actions never need a migration.
const (
	AuditLogin          = "login"
	AuditLoginFailed    = "login_failed"
	AuditLogout         = "logout"
	AuditRegister       = "register"
	AuditApprove        = "employee_approved"
	AuditRoleChange     = "role_changed"
	AuditEmployeeDelete = "employee_deleted"
	AuditPasswordChange = "password_changed"
	AuditPasswordReset  = "password_reset"
	AuditBackupCreate   = "backup_created"
	AuditBackupRestore  = "backup_restored"
	AuditReportExport   = "report_exported"
)

// AuditLog records who did what. ActorUsername is denormalized so entries
// survive employee deletion.
type AuditLog struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ActorID       string    `gorm:"type:uuid;index" json:"actorId"`
	ActorUsername string    `gorm:"size:255" json:"actorUsername"`
	Action        string    `gorm:"size:64;not null;index" json:"action"`
	Detail        string    `gorm:"size:512" json:"detail,omitempty"`
	CreatedAt     time.Time `gorm:"index" json:"createdAt"`
}

func (AuditLog) TableName() string { return AuditLogTable }
