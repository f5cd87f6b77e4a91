package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"radiotrack/app"
	"radiotrack/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthController struct{ *Srv }

func NewAuthController(s *Srv) *AuthController { return &AuthController{Srv: s} }

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var in loginReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "username and password are required"})
		return
	}
	ctx := c.Request.Context()
	uname := strings.ToLower(strings.TrimSpace(in.Username))

	if remaining, err := ac.Throttle.Locked(ctx, uname); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": "login unavailable"})
		return
	} else if remaining > 0 {
		c.JSON(http.StatusLocked, app.H{"error": lockedMsg(remaining)})
		return
	}

	emp, err := ac.Repo.FindEmployeeByUsername(ctx, uname)
	if err != nil || !app.CheckPassword(emp.PasswordHash, in.Password) {
		// Unknown user and wrong password are reported identically.
		_, nowLocked, terr := ac.Throttle.RecordFailure(ctx, uname)
		if terr != nil {
			ac.Log.Error().Err(terr).Msg("record login failure")
		}
		id := ""
		if emp != nil {
			id = emp.ID
		}
		_, _ = ac.Repo.RecordAudit(ctx, id, uname, models.AuditLoginFailed, "invalid credentials")
		ac.Log.Warn().Str("username", uname).Str("ip", c.ClientIP()).Msg("failed login")
		if nowLocked {
			c.JSON(http.StatusLocked, app.H{"error": lockedMsg(ac.Cfg.LoginLockFor)})
			return
		}
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid username or password"})
		return
	}

	if !emp.IsApproved {
		c.JSON(http.StatusForbidden, app.H{"error": "account is pending admin approval"})
		return
	}

	if err := ac.Throttle.Reset(ctx, uname); err != nil {
		ac.Log.Error().Err(err).Msg("reset login throttle")
	}
	if err := ac.issueSession(ctx, c.Writer, emp.ID); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": "create session failed"})
		return
	}
	_, _ = ac.Repo.RecordAudit(ctx, emp.ID, emp.Username, models.AuditLogin, "")
	ac.Log.Info().Str("username", emp.Username).Msg("login")

	c.JSON(http.StatusOK, ac.profile(emp))
}

func lockedMsg(remaining time.Duration) string {
	mins := int(remaining.Minutes()) + 1
	return fmt.Sprintf("too many failed attempts, try again in %d minutes", mins)
}

type registerReq struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Position  string `json:"position"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// POST /api/auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var in registerReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if err := app.ValidatePassword(in.Password); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	uname := strings.ToLower(strings.TrimSpace(in.Username))
	if uname == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "username is required"})
		return
	}

	if _, err := ac.Repo.FindEmployeeByUsername(ctx, uname); err == nil {
		c.JSON(http.StatusConflict, app.H{"error": "username already taken"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}

	hash, err := app.HashPassword(in.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": "hash password failed"})
		return
	}
	emp := &models.Employee{
		ID:                uuid.NewString(),
		Username:          uname,
		FirstName:         strings.TrimSpace(in.FirstName),
		LastName:          strings.TrimSpace(in.LastName),
		Position:          strings.TrimSpace(in.Position),
		Email:             strings.TrimSpace(in.Email),
		Phone:             strings.TrimSpace(in.Phone),
		PasswordHash:      hash,
		Role:              models.RoleEmployee,
		IsApproved:        false,
		PasswordChangedAt: time.Now(),
	}
	if err := ac.Repo.CreateEmployee(ctx, emp); err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			c.JSON(http.StatusConflict, app.H{"error": "username already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	_, _ = ac.Repo.RecordAudit(ctx, emp.ID, emp.Username, models.AuditRegister, "self registration")
	ac.Log.Info().Str("username", emp.Username).Msg("registration submitted")

	c.JSON(http.StatusCreated, app.H{
		"ok":      true,
		"message": "registration submitted, awaiting admin approval",
	})
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *gin.Context) {
	if ck, err := c.Request.Cookie(app.AppSessionCookie); err == nil && ck.Value != "" {
		_ = ac.AppSess.Delete(c.Request.Context(), ck.Value)
	}
	ac.audit(c, models.AuditLogout, "")
	ac.clearAppCookie(c.Writer)
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// GET /api/auth/me
func (ac *AuthController) Me(c *gin.Context) {
	emp := app.CurrentEmployee(c)
	if emp == nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, ac.profile(emp))
}

type changePasswordReq struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// POST /api/auth/change-password
func (ac *AuthController) ChangePassword(c *gin.Context) {
	emp := app.CurrentEmployee(c)
	if emp == nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	var in changePasswordReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "current and new password are required"})
		return
	}
	ctx := c.Request.Context()

	if !app.CheckPassword(emp.PasswordHash, in.CurrentPassword) {
		c.JSON(http.StatusBadRequest, app.H{"error": "current password is incorrect"})
		return
	}
	if err := app.ValidatePassword(in.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	hashes, err := ac.Repo.HistoryHashes(ctx, emp.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	for _, h := range append(hashes, emp.PasswordHash) {
		if app.CheckPassword(h, in.NewPassword) {
			c.JSON(http.StatusBadRequest, app.H{"error": "password was used recently, choose a different one"})
			return
		}
	}

	hash, err := app.HashPassword(in.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": "hash password failed"})
		return
	}
	if err := ac.Repo.UpdatePassword(ctx, emp.ID, hash); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}

	// Old sessions die with the old password; the current client gets a new one.
	_ = ac.AppSess.RevokeAllForUser(ctx, emp.ID)
	if err := ac.issueSession(ctx, c.Writer, emp.ID); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": "create session failed"})
		return
	}
	ac.audit(c, models.AuditPasswordChange, "")
	ac.Log.Info().Str("username", emp.Username).Msg("password changed")

	c.JSON(http.StatusOK, app.H{"ok": true})
}
