// controllers/report_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"radiotrack/app"
	"radiotrack/db"
	"radiotrack/metrics"
	"radiotrack/models"
	"radiotrack/reports"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	*Srv
	builder *reports.Builder
}

func NewReportController(s *Srv) *ReportController {
	return &ReportController{Srv: s, builder: reports.NewBuilder(s.Log)}
}

// buildReport resolves the kind and filter query parameters against the
// current inventory. An unrecognized kind degrades to the complete report.
func (rc *ReportController) buildReport(c *gin.Context) (*reports.Report, bool) {
	rawKind := c.DefaultQuery("kind", "complete")
	kind, known := reports.ParseKind(rawKind)
	if !known {
		rc.Log.Warn().Str("kind", rawKind).Msg("unknown report kind requested, serving complete inventory")
	}

	items, err := rc.Repo.AllItems(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return nil, false
	}
	rep := rc.builder.Build(reports.Request{Kind: kind, Filter: c.Query("filter")}, items, models.Locations)
	return rep, true
}

// GET /api/reports/inventory.pdf?kind=&filter=
func (rc *ReportController) InventoryPDF(c *gin.Context) {
	rep, ok := rc.buildReport(c)
	if !ok {
		return
	}

	out, err := reports.RenderPDF(rep)
	if err != nil {
		rc.Log.Error().Err(err).Str("kind", rep.Kind.String()).Msg("pdf render failed, serving fallback document")
		metrics.IncReportFallback(rep.Kind.String())
		out = reports.FallbackPDF(rep.Title, time.Now())
	}
	metrics.IncReport(rep.Kind.String(), "pdf")
	rc.audit(c, models.AuditReportExport, "pdf "+rep.Kind.String())

	// The complete export keeps its historical filename.
	name := "MCCRadinventory.pdf"
	if rep.Kind == reports.KindComplete {
		name = "MCCinventory.pdf"
	}
	serveAttachment(c, name, "application/pdf", out)
}

// GET /api/reports/inventory.xlsx?kind=&filter=
func (rc *ReportController) InventoryExcel(c *gin.Context) {
	rep, ok := rc.buildReport(c)
	if !ok {
		return
	}

	out, err := reports.RenderExcel(rep)
	if err != nil {
		rc.Log.Error().Err(err).Str("kind", rep.Kind.String()).Msg("excel render failed")
		c.JSON(http.StatusInternalServerError, app.H{"error": "failed to generate excel export"})
		return
	}
	metrics.IncReport(rep.Kind.String(), "xlsx")
	rc.audit(c, models.AuditReportExport, "xlsx "+rep.Kind.String())

	serveAttachment(c, "MCCRadinventory.xlsx", xlsxContentType, out)
}

// GET /api/admin/reports/health.pdf
func (rc *ReportController) HealthPDF(c *gin.Context) {
	ctx := c.Request.Context()
	now := time.Now()

	hs := &reports.HealthStats{GeneratedAt: now, Environment: rc.Cfg.Env}

	itemCount, err := rc.Repo.CountItems(ctx)
	hs.DBReachable = err == nil
	if fi, serr := os.Stat(rc.Cfg.DBPath); serr == nil {
		hs.DBSizeBytes = fi.Size()
	}
	hs.LastBackup = "never"
	if ts, ok := rc.Backups.LastBackupAt(); ok {
		hs.LastBackup = ts.Format("2006-01-02 15:04:05")
	}

	empCount, _ := rc.Repo.CountEmployees(ctx)
	postCount, _ := rc.Repo.CountPosts(ctx)
	auditCount, _ := rc.Repo.CountAuditLogs(ctx)
	hs.TableCounts = []reports.TableCount{
		{Table: models.ItemTable, Rows: itemCount},
		{Table: models.EmployeeTable, Rows: empCount},
		{Table: models.PostTable, Rows: postCount},
		{Table: models.AuditLogTable, Rows: auditCount},
	}

	hs.ByCategory = nameCounts(rc.Repo.CountItemsBy(ctx, "category"))
	hs.ByLocation = nameCounts(rc.Repo.CountItemsBy(ctx, "location"))
	hs.ByCondition = nameCounts(rc.Repo.CountItemsBy(ctx, "condition"))

	hs.Admins, _ = rc.Repo.CountAdmins(ctx)
	pending, _ := rc.Repo.PendingEmployees(ctx)
	hs.PendingApprovals = int64(len(pending))
	hs.StalePasswords, _ = rc.Repo.CountStalePasswords(ctx, now.AddDate(0, 0, -app.PasswordExpiryDays))
	hs.FailedLogins24h, _ = rc.Repo.CountAuditSince(ctx, models.AuditLoginFailed, now.Add(-24*time.Hour))
	hs.Attention, _ = rc.Repo.ItemsNeedingAttention(ctx)

	out, err := reports.RenderHealthPDF(hs)
	if err != nil {
		rc.Log.Error().Err(err).Msg("health report render failed")
		c.JSON(http.StatusInternalServerError, app.H{"error": "failed to generate health report"})
		return
	}
	metrics.IncReport("health", "pdf")
	rc.audit(c, models.AuditReportExport, "health pdf")

	serveAttachment(c, "health_report_"+now.Format("20060102")+".pdf", "application/pdf", out)
}

func serveAttachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

func nameCounts(rows []db.GroupCount, err error) []reports.NameCount {
	if err != nil {
		return nil
	}
	out := make([]reports.NameCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, reports.NameCount{Name: r.Name, Count: r.Count})
	}
	return out
}
