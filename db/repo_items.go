package db

import (
	"context"
	"fmt"
	"strings"

	"radiotrack/models"
)

// ItemsQuery narrows the paged inventory listing. Empty fields match
// everything; Search is a case-insensitive substring over name and notes.
type ItemsQuery struct {
	Category  string
	Location  string
	Condition string
	Search    string
	Page      int
	Size      int
}

type PagedItems struct {
	Total int64         `json:"total"`
	Items []models.Item `json:"items"`
}

func (r *Repo) ListItems(ctx context.Context, q ItemsQuery) (*PagedItems, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Size <= 0 || q.Size > 200 {
		q.Size = 50
	}
	offset := (q.Page - 1) * q.Size

	qry := r.DB.WithContext(ctx).Model(&models.Item{})
	if q.Category != "" {
		qry = qry.Where("category = ?", q.Category)
	}
	if q.Location != "" {
		qry = qry.Where("location = ?", q.Location)
	}
	if q.Condition != "" {
		qry = qry.Where("condition = ?", q.Condition)
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		pat := "%" + strings.ToLower(s) + "%"
		qry = qry.Where("LOWER(name) LIKE ? OR LOWER(notes) LIKE ?", pat, pat)
	}

	var total int64
	if err := qry.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []models.Item
	if err := qry.Order("created_at DESC, id DESC").
		Offset(offset).Limit(q.Size).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return &PagedItems{Total: total, Items: items}, nil
}

// AllItems returns the entire inventory ordered by name, for report builds.
func (r *Repo) AllItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	err := r.DB.WithContext(ctx).
		Order("name COLLATE NOCASE, id").
		Find(&items).Error
	return items, err
}

func (r *Repo) FindItemByID(ctx context.Context, id uint) (*models.Item, error) {
	var it models.Item
	if err := r.DB.WithContext(ctx).First(&it, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *Repo) CreateItem(ctx context.Context, it *models.Item) error {
	return r.DB.WithContext(ctx).Create(it).Error
}

// UpdateItem patches only the provided columns and reloads the row.
func (r *Repo) UpdateItem(ctx context.Context, id uint, fields map[string]any) (*models.Item, error) {
	res := r.DB.WithContext(ctx).Model(&models.Item{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	return r.FindItemByID(ctx, id)
}

func (r *Repo) DeleteItem(ctx context.Context, id uint) (int64, error) {
	res := r.DB.WithContext(ctx).Delete(&models.Item{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *Repo) CountItems(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Item{}).Count(&n).Error
	return n, err
}

type GroupCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

func (r *Repo) CountItemsBy(ctx context.Context, column string) ([]GroupCount, error) {
	switch column {
	case "category", "location", "condition":
	default:
		return nil, fmt.Errorf("count items: unsupported column %q", column)
	}
	var rows []GroupCount
	err := r.DB.WithContext(ctx).Model(&models.Item{}).
		Select(column + " AS name, COUNT(*) AS count").
		Group(column).
		Order("count DESC, name").
		Scan(&rows).Error
	return rows, err
}

// ItemsNeedingAttention lists stock in Poor condition or flagged for reorder.
func (r *Repo) ItemsNeedingAttention(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	err := r.DB.WithContext(ctx).
		Where("condition IN ?", []string{models.ConditionPoor, models.ConditionReorder}).
		Order("condition, name COLLATE NOCASE").
		Find(&items).Error
	return items, err
}
