package database

import (
	"math"
	"strings"

	"go.uber.org/zap"

	"precon-tracker/internal/models"
)

// CreateAuditLog appends one entry to the audit trail. Best effort:
// a failed write is logged and swallowed so it can never fail the
// mutation that triggered it.
func CreateAuditLog(username, email, page, action string) {
	if DB == nil {
		return
	}
	entry := models.AuditLog{
		Username: username,
		Email:    email,
		Page:     page,
		Action:   action,
	}
	if err := DB.Create(&entry).Error; err != nil {
		zap.L().Warn("audit log write failed",
			zap.String("page", page), zap.String("action", action), zap.Error(err))
	}
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// ListAuditLogs returns one page of the trail, newest first. The search
// filter runs in the database, before pagination, so matches beyond the
// current page still count toward total.
func ListAuditLogs(page, limit int, search string) ([]models.AuditLog, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	q := DB.Model(&models.AuditLog{})
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(username) LIKE ? OR LOWER(email) LIKE ? OR LOWER(page) LIKE ? OR LOWER(action) LIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}

	var logs []models.AuditLog
	err := q.Order("created_at desc, id desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, Pagination{}, err
	}

	return logs, Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}
