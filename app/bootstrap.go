package app

import (
	"context"

	"radiotrack/db"
	"radiotrack/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// BootstrapDefaultAdmin creates the initial supervisor account when the
// database holds no admin-rank employee. The account is approved but must
// change its password on first login.
func BootstrapDefaultAdmin(ctx context.Context, cfg Config, repo *db.Repo, log zerolog.Logger) {
	n, err := repo.CountAdmins(ctx)
	if err != nil {
		log.Error().Err(err).Msg("bootstrap: count admins")
		return
	}
	if n > 0 {
		return
	}

	hash, err := HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Error().Err(err).Msg("bootstrap: hash admin password")
		return
	}
	emp := &models.Employee{
		ID:                     uuid.NewString(),
		Username:               cfg.AdminUsername,
		FirstName:              "System",
		LastName:               "Administrator",
		Position:               "Corrections Supervisor",
		Role:                   models.RoleSupervisor,
		IsApproved:             true,
		PasswordHash:           hash,
		PasswordChangeRequired: true,
	}
	if err := repo.CreateEmployee(ctx, emp); err != nil {
		log.Error().Err(err).Msg("bootstrap: create default admin")
		return
	}
	_, _ = repo.RecordAudit(ctx, emp.ID, emp.Username, models.AuditRegister, "bootstrap default admin")

	log.Warn().Str("username", emp.Username).
		Msg("created default admin account, change its password after first login")
}
