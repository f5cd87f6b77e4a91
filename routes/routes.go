package routes

import (
	"net/http"
	"time"

	"radiotrack/app"
	"radiotrack/controllers"
	"radiotrack/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.GetSrv(a)
	authCtl := controllers.NewAuthController(s)
	itemCtl := controllers.NewItemController(s)
	postCtl := controllers.NewPostController(s)
	empCtl := controllers.NewAdminEmployeeController(s)
	auditCtl := controllers.NewAuditController(s)
	backupCtl := controllers.NewBackupController(s)
	reportCtl := controllers.NewReportController(s)

	authMW := app.AuthRequired(a.AppSessions(), a.Repo)
	adminMW := app.RoleRequired(models.RankAdmin)
	seenMW := app.TouchLastSeen(a.Repo, a.RDB, 5*time.Minute)

	// ------------------------------
	// Public
	// ------------------------------
	r.GET("/healthz", func(c *app.Ctx) {
		c.JSON(http.StatusOK, app.H{"ok": true})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/api/auth")
	{
		auth.POST("/login", authCtl.Login)
		auth.POST("/register", authCtl.Register)
	}

	authed := auth.Group("", authMW, seenMW)
	{
		authed.GET("/me", authCtl.Me)
		authed.POST("/logout", authCtl.Logout)
		authed.POST("/change-password", authCtl.ChangePassword)
	}

	// ------------------------------
	// Inventory
	// ------------------------------
	items := r.Group("/api/items", authMW, seenMW)
	{
		items.GET("", itemCtl.ListItems)
		items.GET("/meta", itemCtl.Meta)
		items.GET("/alerts", itemCtl.Alerts)
		items.POST("", itemCtl.CreateItem)
		items.GET("/:id", itemCtl.GetItem)
		items.PUT("/:id", itemCtl.UpdateItem)
		// Only supervisors remove equipment from the inventory.
		items.DELETE("/:id", adminMW, itemCtl.DeleteItem)
	}

	// ------------------------------
	// Announcements
	// ------------------------------
	posts := r.Group("/api/posts", authMW, seenMW)
	{
		posts.GET("", postCtl.ListPosts)
		posts.POST("", postCtl.CreatePost)
		posts.DELETE("/:id", postCtl.DeletePost)
	}

	// ------------------------------
	// Exports
	// ------------------------------
	rep := r.Group("/api/reports", authMW, seenMW)
	{
		rep.GET("/inventory.pdf", reportCtl.InventoryPDF)
		rep.GET("/inventory.xlsx", reportCtl.InventoryExcel)
	}

	// ------------------------------
	// Admin
	// ------------------------------
	admin := r.Group("/api/admin", authMW, seenMW, adminMW)
	{
		admin.GET("/employees", empCtl.ListEmployees)
		admin.GET("/employees/pending", empCtl.PendingEmployees)
		admin.POST("/employees", empCtl.CreateEmployee)
		admin.POST("/employees/:id/approve", empCtl.Approve)
		admin.PUT("/employees/:id/role", empCtl.SetRole)
		admin.DELETE("/employees/:id", empCtl.DeleteEmployee)
		admin.POST("/employees/:id/reset-password", empCtl.ResetPassword)

		admin.GET("/audit", auditCtl.ListAudit)

		admin.GET("/backups", backupCtl.ListBackups)
		admin.POST("/backups", backupCtl.CreateBackup)
		admin.POST("/backups/:name/restore", backupCtl.RestoreBackup)

		admin.GET("/reports/health.pdf", reportCtl.HealthPDF)
	}
}
