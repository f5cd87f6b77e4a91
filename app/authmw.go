package app

import (
	"net/http"

	"radiotrack/db"
	"radiotrack/models"
	"radiotrack/session"

	"github.com/gin-gonic/gin"
)

const AppSessionCookie = "mcc_session"

// Context keys set by AuthRequired.
const (
	CtxEmployee = "employee"
	CtxUserID   = "userID"
	CtxUsername = "username"
	CtxRole     = "role"
)

func AuthRequired(appSess *session.AppSessionStore, repo *db.Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck, err := c.Request.Cookie(AppSessionCookie)
		if err != nil || ck.Value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		as, err := appSess.Get(c.Request.Context(), ck.Value)
		if err != nil {
			clearSessionCookie(c)
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "invalid session"})
			return
		}

		emp, err := repo.FindEmployeeByID(c.Request.Context(), as.UserID)
		if err != nil {
			_ = appSess.Delete(c.Request.Context(), ck.Value)
			clearSessionCookie(c)
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		if !emp.IsApproved {
			_ = appSess.Delete(c.Request.Context(), ck.Value)
			clearSessionCookie(c)
			c.AbortWithStatusJSON(http.StatusForbidden, H{"error": "account is pending admin approval"})
			return
		}

		c.Set(CtxEmployee, emp)
		c.Set(CtxUserID, emp.ID)
		c.Set(CtxUsername, emp.Username)
		c.Set(CtxRole, emp.Role)
		c.Next()
	}
}

// RoleRequired gates a route group to roles of at least minRank. It assumes
// AuthRequired already ran on the group.
func RoleRequired(minRank int) gin.HandlerFunc {
	return func(c *gin.Context) {
		emp := CurrentEmployee(c)
		if emp == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		if emp.Rank() < minRank {
			c.AbortWithStatusJSON(http.StatusForbidden, H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// CurrentEmployee returns the employee AuthRequired stored on the context,
// or nil outside an authenticated route.
func CurrentEmployee(c *gin.Context) *models.Employee {
	v, ok := c.Get(CtxEmployee)
	if !ok {
		return nil
	}
	emp, _ := v.(*models.Employee)
	return emp
}

func clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AppSessionCookie, "", -1, "/", "", false, true)
}
