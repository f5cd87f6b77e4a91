package controllers

import (
	"errors"
	"net/http"

	"radiotrack/app"
	"radiotrack/db"
	"radiotrack/models"

	"github.com/gin-gonic/gin"
)

type BackupController struct{ *Srv }

func NewBackupController(s *Srv) *BackupController { return &BackupController{Srv: s} }

// GET /api/admin/backups
func (bc *BackupController) ListBackups(c *gin.Context) {
	backups, err := bc.Backups.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	if backups == nil {
		backups = []db.BackupInfo{}
	}
	c.JSON(http.StatusOK, app.H{"backups": backups})
}

// POST /api/admin/backups
func (bc *BackupController) CreateBackup(c *gin.Context) {
	info, err := bc.Backups.Create(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	bc.audit(c, models.AuditBackupCreate, info.Name)
	c.JSON(http.StatusCreated, info)
}

// POST /api/admin/backups/:name/restore
func (bc *BackupController) RestoreBackup(c *gin.Context) {
	name := c.Param("name")
	if err := bc.Backups.Restore(c.Request.Context(), name); err != nil {
		switch {
		case errors.Is(err, db.ErrBadBackupName):
			c.JSON(http.StatusBadRequest, app.H{"error": "invalid backup file name"})
		case errors.Is(err, db.ErrBackupNotFound):
			c.JSON(http.StatusNotFound, app.H{"error": "backup not found"})
		default:
			c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		}
		return
	}
	bc.audit(c, models.AuditBackupRestore, name)
	bc.Log.Warn().Str("file", name).Msg("database restored by admin")

	c.JSON(http.StatusOK, app.H{"ok": true, "message": "database restored"})
}
