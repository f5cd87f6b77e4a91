package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"radiotrack/app"
	"radiotrack/db"
	"radiotrack/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminEmployeeController serves the supervisor-only employee management
// surface. Every route sits behind RoleRequired(RankAdmin).
type AdminEmployeeController struct{ *Srv }

func NewAdminEmployeeController(s *Srv) *AdminEmployeeController {
	return &AdminEmployeeController{Srv: s}
}

// GET /api/admin/employees?q=&page=&size=
func (ec *AdminEmployeeController) ListEmployees(c *gin.Context) {
	q := c.Query("q")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	res, err := ec.Repo.ListEmployees(c.Request.Context(), q, page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"total": res.Total, "employees": res.Employees})
}

// GET /api/admin/employees/pending
func (ec *AdminEmployeeController) PendingEmployees(c *gin.Context) {
	emps, err := ec.Repo.PendingEmployees(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"employees": emps})
}

type createEmployeeReq struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Position  string `json:"position"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
}

// POST /api/admin/employees creates a pre-approved account that must change
// its password on first login.
func (ec *AdminEmployeeController) CreateEmployee(c *gin.Context) {
	var in createEmployeeReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if in.Role == "" {
		in.Role = models.RoleEmployee
	}
	if !models.ValidRole(in.Role) {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid role"})
		return
	}
	if err := app.ValidatePassword(in.Password); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	uname := strings.ToLower(strings.TrimSpace(in.Username))

	if _, err := ec.Repo.FindEmployeeByUsername(ctx, uname); err == nil {
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
		ID:                     uuid.NewString(),
		Username:               uname,
		FirstName:              strings.TrimSpace(in.FirstName),
		LastName:               strings.TrimSpace(in.LastName),
		Position:               strings.TrimSpace(in.Position),
		Email:                  strings.TrimSpace(in.Email),
		Phone:                  strings.TrimSpace(in.Phone),
		PasswordHash:           hash,
		Role:                   in.Role,
		IsApproved:             true,
		PasswordChangeRequired: true,
		PasswordChangedAt:      time.Now(),
	}
	if err := ec.Repo.CreateEmployee(ctx, emp); err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			c.JSON(http.StatusConflict, app.H{"error": "username already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	ec.audit(c, models.AuditRegister, "admin created "+emp.Username)

	c.JSON(http.StatusCreated, emp)
}

// POST /api/admin/employees/:id/approve
func (ec *AdminEmployeeController) Approve(c *gin.Context) {
	id := c.Param("id")
	target, err := ec.Repo.FindEmployeeByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, app.H{"error": "employee not found"})
		return
	}
	if err := ec.Repo.ApproveEmployee(c.Request.Context(), id); err != nil {
		if errors.Is(err, db.ErrAlreadyApproved) {
			c.JSON(http.StatusConflict, app.H{"error": "employee already approved"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	ec.audit(c, models.AuditApprove, "approved "+target.Username)
	ec.Log.Info().Str("username", target.Username).Msg("employee approved")

	c.JSON(http.StatusOK, app.H{"ok": true})
}

// PUT /api/admin/employees/:id/role
func (ec *AdminEmployeeController) SetRole(c *gin.Context) {
	id := c.Param("id")
	var in struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "role is required"})
		return
	}
	if !models.ValidRole(in.Role) {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid role"})
		return
	}
	ctx := c.Request.Context()

	target, err := ec.Repo.FindEmployeeByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, app.H{"error": "employee not found"})
		return
	}
	if target.Role == in.Role {
		c.JSON(http.StatusOK, app.H{"ok": true})
		return
	}

	// Demoting the last supervisor would lock everyone out of admin.
	if target.Rank() >= models.RankAdmin && models.RoleRank[in.Role] < models.RankAdmin {
		n, err := ec.Repo.CountAdmins(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
			return
		}
		if n <= 1 {
			c.JSON(http.StatusForbidden, app.H{"error": "cannot demote the last administrator"})
			return
		}
	}

	if err := ec.Repo.SetEmployeeRole(ctx, id, in.Role); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	// Sessions carry permissions, so a role change invalidates them.
	_ = ec.AppSess.RevokeAllForUser(ctx, id)
	ec.audit(c, models.AuditRoleChange, target.Username+" -> "+in.Role)

	c.JSON(http.StatusOK, app.H{"ok": true})
}

// DELETE /api/admin/employees/:id
func (ec *AdminEmployeeController) DeleteEmployee(c *gin.Context) {
	id := c.Param("id")
	actor := app.CurrentEmployee(c)
	if actor != nil && actor.ID == id {
		c.JSON(http.StatusBadRequest, app.H{"error": "cannot delete yourself"})
		return
	}
	ctx := c.Request.Context()

	target, err := ec.Repo.FindEmployeeByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, app.H{"error": "employee not found"})
		return
	}
	if target.Rank() >= models.RankAdmin {
		n, err := ec.Repo.CountAdmins(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
			return
		}
		if n <= 1 {
			c.JSON(http.StatusForbidden, app.H{"error": "cannot delete the last administrator"})
			return
		}
	}

	if _, err := ec.Repo.DeleteEmployee(ctx, id); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	_ = ec.AppSess.RevokeAllForUser(ctx, id)
	ec.audit(c, models.AuditEmployeeDelete, "deleted "+target.Username)
	ec.Log.Info().Str("username", target.Username).Msg("employee deleted")

	c.JSON(http.StatusOK, app.H{"ok": true})
}

// POST /api/admin/employees/:id/reset-password
func (ec *AdminEmployeeController) ResetPassword(c *gin.Context) {
	id := c.Param("id")
	var in struct {
		NewPassword string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "newPassword is required"})
		return
	}
	if err := app.ValidatePassword(in.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	target, err := ec.Repo.FindEmployeeByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, app.H{"error": "employee not found"})
		return
	}

	hash, err := app.HashPassword(in.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": "hash password failed"})
		return
	}
	if err := ec.Repo.UpdatePassword(ctx, id, hash); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	// An admin-set password is temporary until the employee picks their own.
	if err := ec.Repo.SetPasswordChangeRequired(ctx, id, true); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	_ = ec.AppSess.RevokeAllForUser(ctx, id)
	ec.audit(c, models.AuditPasswordReset, "reset password for "+target.Username)

	c.JSON(http.StatusOK, app.H{"ok": true})
}
