package reports

import (
	"errors"
	"fmt"
	"time"

	"radiotrack/models"
)

// NameCount is one row of a grouped count (per category, location, ...).
type NameCount struct {
	Name  string
	Count int64
}

// TableCount is the row count of one database table.
type TableCount struct {
	Table string
	Rows  int64
}

// HealthStats is the snapshot the health report renders. Assembled by the
// caller from the repo and the backup service.
type HealthStats struct {
	GeneratedAt time.Time
	Environment string

	DBSizeBytes int64
	DBReachable bool
	LastBackup  string // human-readable, "never" when none exists

	TableCounts []TableCount

	ByCategory  []NameCount
	ByLocation  []NameCount
	ByCondition []NameCount

	Admins           int64
	PendingApprovals int64
	StalePasswords   int64 // older than the expiry policy
	FailedLogins24h  int64

	Attention []models.Item // condition Poor or "Need for order"
}

// RenderHealthPDF lays out the system health report. Same contract as
// RenderPDF: panics are recovered into the error return.
func RenderHealthPDF(hs *HealthStats) (out []byte, err error) {
	if hs == nil {
		return nil, errors.New("reports: nil health stats")
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("reports: render health report: %v", p)
		}
	}()

	d := newPDFDoc()
	d.textCentered(d.y, fontBold, 20, colText[0], colText[1], colText[2], "MCC Radio Database Health Report")
	d.y -= 20
	d.textCentered(d.y, fontRegular, 9, colMuted[0], colMuted[1], colMuted[2],
		"Generated on: "+hs.GeneratedAt.Format("January 2, 2006 at 15:04:05"))
	d.y -= 26

	subtitle(d, "System Overview")
	status := "Connected"
	if !hs.DBReachable {
		status = "Unreachable"
	}
	drawTable(d, []string{"Metric", "Value"}, []float64{contentW / 2, contentW / 2}, [][]string{
		{"Database Status", status},
		{"Database Size", fmt.Sprintf("%.1f KB", float64(hs.DBSizeBytes)/1024)},
		{"Last Backup", hs.LastBackup},
		{"Environment", hs.Environment},
	}, colAccentBlue)
	d.y -= 8

	subtitle(d, "Database Statistics")
	tableRows := make([][]string, 0, len(hs.TableCounts))
	for _, tc := range hs.TableCounts {
		tableRows = append(tableRows, []string{tc.Table, fmt.Sprintf("%d", tc.Rows)})
	}
	drawTable(d, []string{"Table Name", "Row Count"}, []float64{contentW / 2, contentW / 2}, tableRows, colAccentBlue)
	d.y -= 8

	subtitle(d, "Inventory Breakdown")
	renderCountTable(d, "Category", hs.ByCategory)
	renderCountTable(d, "Location", hs.ByLocation)
	renderCountTable(d, "Condition", hs.ByCondition)

	subtitle(d, "Security Analysis")
	drawTable(d, []string{"Check", "Value"}, []float64{contentW * 0.6, contentW * 0.4}, [][]string{
		{"Administrator accounts", fmt.Sprintf("%d", hs.Admins)},
		{"Registrations pending approval", fmt.Sprintf("%d", hs.PendingApprovals)},
		{"Passwords older than policy", fmt.Sprintf("%d", hs.StalePasswords)},
		{"Failed logins (last 24h)", fmt.Sprintf("%d", hs.FailedLogins24h)},
	}, colHeaderGray)
	d.y -= 8

	subtitle(d, "Attention Required")
	if len(hs.Attention) == 0 {
		d.y -= 14
		d.text(marginX, d.y, fontRegular, 9.5, colMuted[0], colMuted[1], colMuted[2],
			"No items currently need attention")
		d.y -= 4
	} else {
		rows := make([][]string, 0, len(hs.Attention))
		for _, it := range hs.Attention {
			rows = append(rows, []string{
				truncate(it.Name, groupNameMax),
				truncate(it.Location, groupCategoryMax),
				it.Condition,
				truncate(it.Notes, groupNotesMax),
			})
		}
		drawTable(d, []string{"Item Name", "Location", "Condition", "Notes"}, groupedWidths, rows, colHeaderBlue)
	}

	return d.bytes(), nil
}

func renderCountTable(d *pdfDoc, label string, counts []NameCount) {
	rows := make([][]string, 0, len(counts))
	for _, nc := range counts {
		rows = append(rows, []string{nc.Name, fmt.Sprintf("%d", nc.Count)})
	}
	drawTable(d, []string{label, "Count"}, []float64{contentW / 2, contentW / 2}, rows, colHeaderGray)
	d.y -= 8
}
