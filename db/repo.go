package db

import (
	"context"
	"strings"
	"time"

	"radiotrack/models"

	"gorm.io/gorm"
)

type Repo struct{ DB *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{DB: db} }

// Employees

func (r *Repo) CreateEmployee(ctx context.Context, e *models.Employee) error {
	e.Username = strings.ToLower(strings.TrimSpace(e.Username))
	return r.DB.WithContext(ctx).Create(e).Error
}

func (r *Repo) FindEmployeeByID(ctx context.Context, id string) (*models.Employee, error) {
	var e models.Employee
	if err := r.DB.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repo) FindEmployeeByUsername(ctx context.Context, username string) (*models.Employee, error) {
	var e models.Employee
	err := r.DB.WithContext(ctx).
		Where("LOWER(username) = ?", strings.ToLower(strings.TrimSpace(username))).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repo) TouchEmployeeLogin(ctx context.Context, id string) error {
	now := time.Now()
	return r.DB.WithContext(ctx).Model(&models.Employee{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_login_at": now,
			"last_seen_at":  now,
		}).Error
}

func (r *Repo) TouchEmployeeSeen(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Model(&models.Employee{}).
		Where("id = ?", id).
		Update("last_seen_at", time.Now()).Error
}

// List with pagination and a keyword over username and names.
type ListEmployeesResult struct {
	Employees []models.Employee `json:"employees"`
	Total     int64             `json:"total"`
}

func (r *Repo) ListEmployees(ctx context.Context, q string, page, size int) (ListEmployeesResult, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}

	tx := r.DB.WithContext(ctx).Model(&models.Employee{})
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(username) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", like, like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return ListEmployeesResult{}, err
	}

	var employees []models.Employee
	if err := tx.
		Order("last_name, first_name, username").
		Offset((page - 1) * size).
		Limit(size).
		Find(&employees).Error; err != nil {
		return ListEmployeesResult{}, err
	}
	return ListEmployeesResult{Employees: employees, Total: total}, nil
}

// UpdatePassword sets the new hash, clears the change-required flag and
// appends to the password history in one transaction, trimming the history
// to the retention limit.
func (r *Repo) UpdatePassword(ctx context.Context, employeeID, hash string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := tx.Model(&models.Employee{}).
			Where("id = ?", employeeID).
			Updates(map[string]interface{}{
				"password_hash":            hash,
				"password_change_required": false,
				"password_changed_at":      now,
			}).Error; err != nil {
			return err
		}

		if err := tx.Create(&models.PasswordHistory{EmployeeID: employeeID, Hash: hash}).Error; err != nil {
			return err
		}

		// Keep only the newest N history rows per employee.
		return tx.Exec(`
			DELETE FROM `+models.PasswordHistoryTable+`
			WHERE employee_id = ? AND id NOT IN (
				SELECT id FROM `+models.PasswordHistoryTable+`
				WHERE employee_id = ?
				ORDER BY id DESC LIMIT ?
			)`, employeeID, employeeID, models.PasswordHistoryLimit).Error
	})
}

// HistoryHashes returns the most recent password hashes for the employee,
// newest first, up to the retention limit.
func (r *Repo) HistoryHashes(ctx context.Context, employeeID string) ([]string, error) {
	var hashes []string
	err := r.DB.WithContext(ctx).Model(&models.PasswordHistory{}).
		Where("employee_id = ?", employeeID).
		Order("id DESC").
		Limit(models.PasswordHistoryLimit).
		Pluck("hash", &hashes).Error
	return hashes, err
}

func (r *Repo) SetPasswordChangeRequired(ctx context.Context, employeeID string, required bool) error {
	return r.DB.WithContext(ctx).Model(&models.Employee{}).
		Where("id = ?", employeeID).
		Update("password_change_required", required).Error
}

func (r *Repo) CountEmployees(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Employee{}).Count(&n).Error
	return n, err
}

// CountStalePasswords counts approved accounts whose password predates the
// cutoff. Accounts that never changed their password are counted too.
func (r *Repo) CountStalePasswords(ctx context.Context, cutoff time.Time) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Employee{}).
		Where("is_approved = ?", true).
		Where("password_changed_at < ?", cutoff).
		Count(&n).Error
	return n, err
}
