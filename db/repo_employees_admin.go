package db

import (
	"context"
	"errors"

	"radiotrack/models"
)

var ErrAlreadyApproved = errors.New("employee already approved or not found")

func (r *Repo) PendingEmployees(ctx context.Context) ([]models.Employee, error) {
	var emps []models.Employee
	err := r.DB.WithContext(ctx).
		Where("is_approved = ?", false).
		Order("created_at").
		Find(&emps).Error
	return emps, err
}

func (r *Repo) ApproveEmployee(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Model(&models.Employee{}).
		Where("id = ? AND is_approved = ?", id, false).
		Update("is_approved", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyApproved
	}
	return nil
}

func (r *Repo) SetEmployeeRole(ctx context.Context, id, role string) error {
	return r.DB.WithContext(ctx).Model(&models.Employee{}).
		Where("id = ?", id).
		Update("role", role).Error
}

// CountAdmins counts approved accounts holding admin-rank roles.
func (r *Repo) CountAdmins(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Employee{}).
		Where("role IN ? AND is_approved = ?",
			[]string{models.RoleAdmin, models.RoleSupervisor}, true).
		Count(&n).Error
	return n, err
}

func (r *Repo) DeleteEmployee(ctx context.Context, id string) (int64, error) {
	res := r.DB.WithContext(ctx).Delete(&models.Employee{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
