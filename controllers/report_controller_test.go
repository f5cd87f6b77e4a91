package controllers

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"radiotrack/app"
	"radiotrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func seedReportItems(t *testing.T, e *testEnv, ck *http.Cookie) {
	t.Helper()
	createItemViaAPI(t, e, ck, app.H{"name": "Motorola XTS 5000", "category": "Portable Radios", "location": "Control Center"})
	createItemViaAPI(t, e, ck, app.H{"name": "Bird 43 Wattmeter", "category": "Test Equipment", "location": "Maintenance Shop", "condition": models.ConditionPoor})
}

func TestInventoryPDFComplete(t *testing.T) {
	e := setupTestEnv(t)
	e.addEmployee(t, "jsmith", models.RoleEmployee, true)
	ck := e.login(t, "jsmith", testPassword)
	seedReportItems(t, e, ck)

	w := e.do(t, http.MethodGet, "/api/reports/inventory.pdf", nil, ck)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="MCCinventory.pdf"`)

	body := w.Body.Bytes()
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
	assert.True(t, bytes.HasSuffix(body, []byte("%%EOF")))
	assert.Contains(t, string(body), "MCC Radio Inventory")
}

func TestInventoryPDFFiltered(t *testing.T) {
	e := setupTestEnv(t)
	e.addEmployee(t, "jsmith", models.RoleEmployee, true)
	ck := e.login(t, "jsmith", testPassword)
	seedReportItems(t, e, ck)

	w := e.do(t, http.MethodGet, "/api/reports/inventory.pdf?kind=location&filter=Maintenance+Shop", nil, ck)
	require.Equal(t, http.StatusOK, w.Code)
	// Filtered exports use the shorter historical filename.
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="MCCRadinventory.pdf"`)
	assert.Contains(t, w.Body.String(), "Location Report: Maintenance Shop")
	assert.Contains(t, w.Body.String(), "Bird 43 Wattmeter")
}

func TestInventoryPDFUnknownKind(t *testing.T) {
	e := setupTestEnv(t)
	e.addEmployee(t, "jsmith", models.RoleEmployee, true)
	ck := e.login(t, "jsmith", testPassword)
	seedReportItems(t, e, ck)

	// Anything unrecognized degrades to the complete inventory.
	w := e.do(t, http.MethodGet, "/api/reports/inventory.pdf?kind=detailed", nil, ck)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="MCCinventory.pdf"`)
	assert.Contains(t, w.Body.String(), "MCC Radio Inventory")
}

func TestInventoryExcel(t *testing.T) {
	e := setupTestEnv(t)
	e.addEmployee(t, "jsmith", models.RoleEmployee, true)
	ck := e.login(t, "jsmith", testPassword)
	seedReportItems(t, e, ck)

	w := e.do(t, http.MethodGet, "/api/reports/inventory.xlsx", nil, ck)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="MCCRadinventory.xlsx"`)

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Inventory")
	require.NoError(t, err)
	assert.Len(t, rows, 4+2)
}

func TestReportExportAudited(t *testing.T) {
	e := setupTestEnv(t)
	e.addEmployee(t, "chief", models.RoleSupervisor, true)
	ck := e.login(t, "chief", testPassword)

	w := e.do(t, http.MethodGet, "/api/reports/inventory.pdf", nil, ck)
	require.Equal(t, http.StatusOK, w.Code)

	audit := e.do(t, http.MethodGet, "/api/admin/audit?action="+models.AuditReportExport, nil, ck)
	require.Equal(t, http.StatusOK, audit.Code)
	body := decodeBody(t, audit)
	assert.Equal(t, float64(1), body["total"])
}

func TestHealthPDF(t *testing.T) {
	e := setupTestEnv(t)
	e.addEmployee(t, "chief", models.RoleSupervisor, true)
	e.addEmployee(t, "waiting", models.RoleEmployee, false)
	ck := e.login(t, "chief", testPassword)
	seedReportItems(t, e, ck)

	w := e.do(t, http.MethodGet, "/api/admin/reports/health.pdf", nil, ck)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Disposition"), `attachment; filename="health_report_`))

	body := w.Body.String()
	assert.Contains(t, body, "MCC Radio Database Health Report")
	assert.Contains(t, body, "System Overview")
	assert.Contains(t, body, "Security Analysis")
	// The poor-condition wattmeter shows up under Attention Required.
	assert.Contains(t, body, "Bird 43 Wattmeter")
}

func TestHealthPDFSupervisorOnly(t *testing.T) {
	e := setupTestEnv(t)
	e.addEmployee(t, "jsmith", models.RoleEmployee, true)
	ck := e.login(t, "jsmith", testPassword)

	w := e.do(t, http.MethodGet, "/api/admin/reports/health.pdf", nil, ck)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
