package db

import (
	"context"
	"time"

	"radiotrack/models"
)

// PostRow is a post joined with its author for the announcements feed.
// Author fields are nullable because the employee may have been removed.
type PostRow struct {
	ID             uint      `json:"id"`
	AuthorID       string    `json:"authorId"`
	AuthorUsername *string   `json:"authorUsername,omitempty"`
	AuthorName     *string   `json:"authorName,omitempty"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (r *Repo) CreatePost(ctx context.Context, p *models.Post) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *Repo) ListPosts(ctx context.Context, limit int) ([]PostRow, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var rows []PostRow
	err := r.DB.WithContext(ctx).
		Table("posts p").
		Select(`
			p.id, p.author_id, p.content, p.created_at, p.updated_at,
			e.username AS author_username,
			e.first_name || ' ' || e.last_name AS author_name
		`).
		Joins("LEFT JOIN employees e ON e.id = p.author_id").
		Order("p.created_at DESC, p.id DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *Repo) FindPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var p models.Post
	if err := r.DB.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) DeletePost(ctx context.Context, id uint) (int64, error) {
	res := r.DB.WithContext(ctx).Delete(&models.Post{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *Repo) CountPosts(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Post{}).Count(&n).Error
	return n, err
}
