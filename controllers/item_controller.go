package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"radiotrack/app"
	"radiotrack/db"
	"radiotrack/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ItemController struct{ *Srv }

func NewItemController(s *Srv) *ItemController { return &ItemController{Srv: s} }

// GET /api/items?q=&category=&location=&condition=&page=&size=
func (ic *ItemController) ListItems(c *gin.Context) {
	q := db.ItemsQuery{
		Category:  c.Query("category"),
		Location:  c.Query("location"),
		Condition: c.Query("condition"),
		Search:    c.Query("q"),
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.Size, _ = strconv.Atoi(c.DefaultQuery("size", "50"))

	res, err := ic.Repo.ListItems(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"total": res.Total, "items": res.Items})
}

// GET /api/items/meta supplies the dropdown enumerations.
func (ic *ItemController) Meta(c *gin.Context) {
	c.JSON(http.StatusOK, app.H{
		"categories": models.Categories,
		"locations":  models.Locations,
		"conditions": models.Conditions,
	})
}

// GET /api/items/alerts
func (ic *ItemController) Alerts(c *gin.Context) {
	items, err := ic.Repo.ItemsNeedingAttention(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"items": items})
}

// GET /api/items/:id
func (ic *ItemController) GetItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	it, err := ic.Repo.FindItemByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, app.H{"error": "item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, it)
}

type itemReq struct {
	Name      string `json:"name" binding:"required"`
	Category  string `json:"category" binding:"required"`
	Location  string `json:"location" binding:"required"`
	Condition string `json:"condition"`
	Notes     string `json:"notes"`
}

// POST /api/items
func (ic *ItemController) CreateItem(c *gin.Context) {
	var in itemReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if in.Condition == "" {
		in.Condition = models.ConditionGood
	}
	if msg := validateItemFields(in.Category, in.Location, in.Condition); msg != "" {
		c.JSON(http.StatusBadRequest, app.H{"error": msg})
		return
	}

	it := &models.Item{
		Name:      strings.TrimSpace(in.Name),
		Category:  in.Category,
		Location:  in.Location,
		Condition: in.Condition,
		Notes:     strings.TrimSpace(in.Notes),
	}
	if it.Name == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "name is required"})
		return
	}
	if err := ic.Repo.CreateItem(c.Request.Context(), it); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, it)
}

type itemPatchReq struct {
	Name      *string `json:"name"`
	Category  *string `json:"category"`
	Location  *string `json:"location"`
	Condition *string `json:"condition"`
	Notes     *string `json:"notes"`
}

// PUT /api/items/:id patches only the fields present in the body.
func (ic *ItemController) UpdateItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	var in itemPatchReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	fields := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, app.H{"error": "name cannot be empty"})
			return
		}
		fields["name"] = name
	}
	if in.Category != nil {
		if !models.ValidCategory(*in.Category) {
			c.JSON(http.StatusBadRequest, app.H{"error": "invalid category"})
			return
		}
		fields["category"] = *in.Category
	}
	if in.Location != nil {
		if !models.ValidLocation(*in.Location) {
			c.JSON(http.StatusBadRequest, app.H{"error": "invalid location"})
			return
		}
		fields["location"] = *in.Location
	}
	if in.Condition != nil {
		if !models.ValidCondition(*in.Condition) {
			c.JSON(http.StatusBadRequest, app.H{"error": "invalid condition"})
			return
		}
		fields["condition"] = *in.Condition
	}
	if in.Notes != nil {
		fields["notes"] = strings.TrimSpace(*in.Notes)
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, app.H{"error": "no fields to update"})
		return
	}

	it, err := ic.Repo.UpdateItem(c.Request.Context(), id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, app.H{"error": "item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, it)
}

// DELETE /api/items/:id, supervisor only (enforced on the route group).
func (ic *ItemController) DeleteItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	n, err := ic.Repo.DeleteItem(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	if n == 0 {
		c.JSON(http.StatusNotFound, app.H{"error": "item not found"})
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

func itemID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid item id"})
		return 0, false
	}
	return uint(id), true
}

func validateItemFields(category, location, condition string) string {
	switch {
	case !models.ValidCategory(category):
		return "invalid category"
	case !models.ValidLocation(location):
		return "invalid location"
	case !models.ValidCondition(condition):
		return "invalid condition"
	}
	return ""
}
