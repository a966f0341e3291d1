package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"precon-tracker/internal/database"
	"precon-tracker/internal/middleware"
	"precon-tracker/internal/models"
)

// RefGuard names a table/column that may point at a reference row.
// Deletion is refused while any live row references it.
type RefGuard struct {
	Table  string
	Column string
	Label  string // what the conflict message calls the referencing rows
	Soft   bool   // table uses gorm soft deletes
}

// RefEntity describes one lookup-table family. All thirteen share the
// same list/create/update/delete behavior, so the handlers are written
// once against this descriptor.
type RefEntity struct {
	Slug  string // URL segment, e.g. "builders"
	Label string // singular, for messages and audit text
	Table string
	Page  string // audit page label
	// AdminDelete marks entities whose deletion is admin-exclusive
	// (statuses); the router maps it to the delete_status permission.
	AdminDelete bool
	Guards      []RefGuard
}

func (e RefEntity) countReferences(g RefGuard, id uint) (int64, error) {
	q := database.DB.Table(g.Table).Where(g.Column+" = ?", id)
	if g.Soft {
		q = q.Where("deleted_at IS NULL")
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

// List returns every row, name-ascending. A backend failure degrades to
// an empty list so dependent screens stay up.
func (e RefEntity) List(c *gin.Context) {
	var rows []models.Reference
	if err := database.DB.Table(e.Table).Order("name asc").Find(&rows).Error; err != nil {
		zap.L().Warn("list query failed", zap.String("table", e.Table), zap.Error(err))
		rows = []models.Reference{}
	}
	if rows == nil {
		rows = []models.Reference{}
	}
	c.JSON(http.StatusOK, rows)
}

type refRequest struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func (e RefEntity) Create(c *gin.Context) {
	var req refRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		jsonError(c, http.StatusBadRequest, "name is required")
		return
	}

	// exact-match duplicate check; the unique index on name catches
	// anything that races past this
	var count int64
	if err := database.DB.Table(e.Table).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		internalError(c, err)
		return
	}
	if count > 0 {
		jsonError(c, http.StatusConflict, fmt.Sprintf("%s %q already exists", e.Label, req.Name))
		return
	}

	row := models.Reference{Name: req.Name}
	if err := database.DB.Table(e.Table).Create(&row).Error; err != nil {
		internalError(c, err)
		return
	}

	if user, ok := middleware.CurrentUser(c); ok {
		database.CreateAuditLog(user.Name, user.Email, e.Page,
			fmt.Sprintf("Added %s: %q", e.Label, row.Name))
	}
	c.JSON(http.StatusCreated, row)
}

func (e RefEntity) Update(c *gin.Context) {
	var req refRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == 0 {
		jsonError(c, http.StatusBadRequest, "id is required")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		jsonError(c, http.StatusBadRequest, "name is required")
		return
	}

	var row models.Reference
	if err := database.DB.Table(e.Table).Where("id = ?", req.ID).First(&row).Error; err != nil {
		jsonError(c, http.StatusNotFound, fmt.Sprintf("%s not found", e.Label))
		return
	}

	// duplicate check excludes the row being renamed
	var count int64
	if err := database.DB.Table(e.Table).
		Where("name = ? AND id <> ?", req.Name, row.ID).
		Count(&count).Error; err != nil {
		internalError(c, err)
		return
	}
	if count > 0 {
		jsonError(c, http.StatusConflict, fmt.Sprintf("%s %q already exists", e.Label, req.Name))
		return
	}

	oldName := row.Name
	row.Name = req.Name
	if err := database.DB.Table(e.Table).Where("id = ?", row.ID).
		Updates(map[string]any{"name": row.Name, "updated_at": time.Now()}).Error; err != nil {
		internalError(c, err)
		return
	}

	if user, ok := middleware.CurrentUser(c); ok {
		database.CreateAuditLog(user.Name, user.Email, e.Page,
			fmt.Sprintf("Updated %s: %q to %q", e.Label, oldName, row.Name))
	}
	c.JSON(http.StatusOK, row)
}

func (e RefEntity) Delete(c *gin.Context) {
	id, ok := idFromQuery(c)
	if !ok {
		return
	}

	var row models.Reference
	if err := database.DB.Table(e.Table).Where("id = ?", id).First(&row).Error; err != nil {
		jsonError(c, http.StatusNotFound, fmt.Sprintf("%s not found", e.Label))
		return
	}

	for _, g := range e.Guards {
		n, err := e.countReferences(g, id)
		if err != nil {
			internalError(c, err)
			return
		}
		if n > 0 {
			jsonError(c, http.StatusConflict,
				fmt.Sprintf("cannot delete %s %q: referenced by %d %s(s)", e.Label, row.Name, n, g.Label))
			return
		}
	}

	if err := database.DB.Table(e.Table).Where("id = ?", id).Delete(&models.Reference{}).Error; err != nil {
		internalError(c, err)
		return
	}

	if user, ok := middleware.CurrentUser(c); ok {
		database.CreateAuditLog(user.Name, user.Email, e.Page,
			fmt.Sprintf("Deleted %s: %q", e.Label, row.Name))
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
