package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"radiotrack/app"
	"radiotrack/db"
	"radiotrack/models"
	"radiotrack/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Srv struct {
	Repo      *db.Repo
	AppSess   *session.AppSessionStore
	Throttle  *session.Throttle
	Backups   *db.BackupService
	Log       zerolog.Logger
	WebOrigin string
	Cfg       app.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo:      a.Repo,
		AppSess:   a.AppSessions(),
		Throttle:  a.LoginThrottle(),
		Backups:   a.Backups,
		Log:       a.Log,
		WebOrigin: a.Config.WebOrigin,
		Cfg:       a.Config,
	}
}

// --- helpers ---

func (s *Srv) setAppCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	secure := strings.HasPrefix(s.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   int(maxAge / time.Second),
	})
}

func (s *Srv) clearAppCookie(w http.ResponseWriter) {
	s.setAppCookie(w, "", -time.Second)
}

// issueSession records the login and hands the client a fresh session cookie.
func (s *Srv) issueSession(ctx context.Context, w http.ResponseWriter, employeeID string) error {
	_ = s.Repo.TouchEmployeeLogin(ctx, employeeID) // best effort
	id := uuid.NewString()
	if err := s.AppSess.Create(ctx, id, employeeID); err != nil {
		return err
	}
	s.setAppCookie(w, id, s.Cfg.SessionTTL)
	return nil
}

// audit writes a best-effort audit entry for the acting employee.
func (s *Srv) audit(c *gin.Context, action, detail string) {
	emp := app.CurrentEmployee(c)
	if emp == nil {
		return
	}
	if _, err := s.Repo.RecordAudit(c.Request.Context(), emp.ID, emp.Username, action, detail); err != nil {
		s.Log.Error().Err(err).Str("action", action).Msg("audit write failed")
	}
}

// profile is the JSON shape shared by login and /me responses.
func (s *Srv) profile(emp *models.Employee) app.H {
	expired := app.PasswordExpired(emp.PasswordChangedAt, time.Now())
	return app.H{
		"employee":               emp,
		"rank":                   emp.Rank(),
		"passwordChangeRequired": emp.PasswordChangeRequired || expired,
		"passwordExpired":        expired,
	}
}
