package db

import (
	"context"
	"fmt"
	"time"

	"radiotrack/models"
)

func (r *Repo) RecordAudit(ctx context.Context, actorID, actorUsername, action, detail string) (*models.AuditLog, error) {
	entry := &models.AuditLog{
		ActorID:       actorID,
		ActorUsername: actorUsername,
		Action:        action,
		Detail:        detail,
	}
	if err := r.DB.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, fmt.Errorf("insert audit log: %w", err)
	}
	return entry, nil
}

type PagedAudit struct {
	Total   int64             `json:"total"`
	Entries []models.AuditLog `json:"entries"`
}

func (r *Repo) ListAudit(ctx context.Context, action string, page, size int) (*PagedAudit, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 200 {
		size = 50
	}
	qry := r.DB.WithContext(ctx).Model(&models.AuditLog{})
	if action != "" {
		qry = qry.Where("action = ?", action)
	}
	var total int64
	if err := qry.Count(&total).Error; err != nil {
		return nil, err
	}
	var entries []models.AuditLog
	if err := qry.Order("created_at DESC, id DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return &PagedAudit{Total: total, Entries: entries}, nil
}

// CountAuditSince counts entries for one action inside a trailing window.
func (r *Repo) CountAuditSince(ctx context.Context, action string, since time.Time) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.AuditLog{}).
		Where("action = ? AND created_at >= ?", action, since).
		Count(&n).Error
	return n, err
}

func (r *Repo) CountAuditLogs(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.AuditLog{}).Count(&n).Error
	return n, err
}
