package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"radiotrack/app"
	"radiotrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createItemViaAPI(t *testing.T, e *testEnv, ck *http.Cookie, body app.H) uint {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/items", body, ck)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	got := decodeBody(t, w)
	return uint(got["id"].(float64))
}

func TestItemsRequireAuth(t *testing.T) {
	e := setupTestEnv(t)

	w := e.do(t, http.MethodGet, "/api/items", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestItemMeta(t *testing.T) {
	e := setupTestEnv(t)
	e.addEmployee(t, "jsmith", models.RoleEmployee, true)
	ck := e.login(t, "jsmith", testPassword)

	w := e.do(t, http.MethodGet, "/api/items/meta", nil, ck)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Len(t, body["categories"], len(models.Categories))
	assert.Len(t, body["locations"], len(models.Locations))
	assert.Len(t, body["conditions"], len(models.Conditions))
}

func TestItemCreateAndGet(t *testing.T) {
	e := setupTestEnv(t)
	e.addEmployee(t, "jsmith", models.RoleEmployee, true)
	ck := e.login(t, "jsmith", testPassword)

	id := createItemViaAPI(t, e, ck, app.H{
		"name":     "  Motorola XTS 5000  ",
		"category": "Portable Radios",
		"location": "Control Center",
		"notes":    "VHF",
	})

	w := e.do(t, http.MethodGet, fmt.Sprintf("/api/items/%d", id), nil, ck)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBody(t, w)
	assert.Equal(t, "Motorola XTS 5000", got["name"])
	// Condition defaults when omitted.
	assert.Equal(t, models.ConditionGood, got["condition"])

	t.Run("NotFound", func(t *testing.T) {
		w := e.do(t, http.MethodGet, "/api/items/9999", nil, ck)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("InvalidID", func(t *testing.T) {
		w := e.do(t, http.MethodGet, "/api/items/abc", nil, ck)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestItemCreateValidation(t *testing.T) {
	e := setupTestEnv(t)
	e.addEmployee(t, "jsmith", models.RoleEmployee, true)
	ck := e.login(t, "jsmith", testPassword)

	cases := []struct {
		name string
		body app.H
	}{
		{"UnknownCategory", app.H{"name": "X", "category": "Drones", "location": "Control Center"}},
		{"UnknownLocation", app.H{"name": "X", "category": "Other", "location": "Area 51"}},
		{"UnknownCondition", app.H{"name": "X", "category": "Other", "location": "Control Center", "condition": "Broken"}},
		{"BlankName", app.H{"name": "   ", "category": "Other", "location": "Control Center"}},
		{"MissingFields", app.H{"name": "X"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := e.do(t, http.MethodPost, "/api/items", tc.body, ck)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestItemList(t *testing.T) {
	e := setupTestEnv(t)
	e.addEmployee(t, "jsmith", models.RoleEmployee, true)
	ck := e.login(t, "jsmith", testPassword)

	createItemViaAPI(t, e, ck, app.H{"name": "Radio A", "category": "Portable Radios", "location": "Tower 1", "condition": models.ConditionGood})
	createItemViaAPI(t, e, ck, app.H{"name": "Radio B", "category": "Portable Radios", "location": "Tower 2", "condition": models.ConditionPoor, "notes": "crackling audio"})
	createItemViaAPI(t, e, ck, app.H{"name": "Antenna C", "category": "Antennas", "location": "Tower 1"})

	t.Run("All", func(t *testing.T) {
		w := e.do(t, http.MethodGet, "/api/items", nil, ck)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(3), body["total"])
	})

	t.Run("FilterCategory", func(t *testing.T) {
		w := e.do(t, http.MethodGet, "/api/items?category=Antennas", nil, ck)
		body := decodeBody(t, w)
		assert.Equal(t, float64(1), body["total"])
	})

	t.Run("FilterLocation", func(t *testing.T) {
		w := e.do(t, http.MethodGet, "/api/items?location=Tower+1", nil, ck)
		body := decodeBody(t, w)
		assert.Equal(t, float64(2), body["total"])
	})

	t.Run("Search", func(t *testing.T) {
		w := e.do(t, http.MethodGet, "/api/items?q=crackling", nil, ck)
		body := decodeBody(t, w)
		assert.Equal(t, float64(1), body["total"])
	})

	t.Run("Paging", func(t *testing.T) {
		w := e.do(t, http.MethodGet, "/api/items?page=2&size=2", nil, ck)
		body := decodeBody(t, w)
		assert.Equal(t, float64(3), body["total"])
		assert.Len(t, body["items"], 1)
	})
}

func TestItemAlerts(t *testing.T) {
	e := setupTestEnv(t)
	e.addEmployee(t, "jsmith", models.RoleEmployee, true)
	ck := e.login(t, "jsmith", testPassword)

	createItemViaAPI(t, e, ck, app.H{"name": "Fine Radio", "category": "Portable Radios", "location": "Tower 1"})
	createItemViaAPI(t, e, ck, app.H{"name": "Dying Radio", "category": "Portable Radios", "location": "Tower 1", "condition": models.ConditionPoor})
	createItemViaAPI(t, e, ck, app.H{"name": "Empty Shelf", "category": "Batteries & Chargers", "location": "Storage Warehouse", "condition": models.ConditionReorder})

	w := e.do(t, http.MethodGet, "/api/items/alerts", nil, ck)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["items"], 2)
}

func TestItemUpdate(t *testing.T) {
	e := setupTestEnv(t)
	e.addEmployee(t, "jsmith", models.RoleEmployee, true)
	ck := e.login(t, "jsmith", testPassword)

	id := createItemViaAPI(t, e, ck, app.H{"name": "Mobile Unit", "category": "Mobile Radios", "location": "Transport Vehicles"})

	t.Run("PatchSingleField", func(t *testing.T) {
		w := e.do(t, http.MethodPut, fmt.Sprintf("/api/items/%d", id), app.H{"location": "Maintenance Shop"}, ck)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		got := decodeBody(t, w)
		assert.Equal(t, "Maintenance Shop", got["location"])
		assert.Equal(t, "Mobile Unit", got["name"])
	})

	t.Run("InvalidCondition", func(t *testing.T) {
		w := e.do(t, http.MethodPut, fmt.Sprintf("/api/items/%d", id), app.H{"condition": "Broken"}, ck)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("EmptyPatch", func(t *testing.T) {
		w := e.do(t, http.MethodPut, fmt.Sprintf("/api/items/%d", id), app.H{}, ck)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "no fields to update")
	})

	t.Run("Missing", func(t *testing.T) {
		w := e.do(t, http.MethodPut, "/api/items/9999", app.H{"location": "Tower 1"}, ck)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestItemDeleteRequiresSupervisor(t *testing.T) {
	e := setupTestEnv(t)
	e.addEmployee(t, "jsmith", models.RoleEmployee, true)
	e.addEmployee(t, "chief", models.RoleSupervisor, true)
	empCk := e.login(t, "jsmith", testPassword)
	adminCk := e.login(t, "chief", testPassword)

	id := createItemViaAPI(t, e, empCk, app.H{"name": "Old Radio", "category": "Portable Radios", "location": "Tower 1"})

	w := e.do(t, http.MethodDelete, fmt.Sprintf("/api/items/%d", id), nil, empCk)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(t, http.MethodDelete, fmt.Sprintf("/api/items/%d", id), nil, adminCk)
	assert.Equal(t, http.StatusOK, w.Code)

	w = e.do(t, http.MethodDelete, fmt.Sprintf("/api/items/%d", id), nil, adminCk)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
