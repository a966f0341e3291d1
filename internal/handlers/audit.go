package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"precon-tracker/internal/database"
	"precon-tracker/internal/middleware"
	"precon-tracker/internal/models"
)

// ListAuditLogs serves GET /api/audit?page&limit&search. Newest first;
// the search filter is applied in the database before pagination.
func ListAuditLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	search := strings.TrimSpace(c.Query("search"))

	logs, pagination, err := database.ListAuditLogs(page, limit, search)
	if err != nil {
		internalError(c, err)
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}
	c.JSON(http.StatusOK, gin.H{
		"logs":       logs,
		"pagination": pagination,
	})
}

type auditRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Page     string `json:"page"`
	Action   string `json:"action"`
}

// RecordAuditLog serves POST /api/audit. Username and email default to
// the authenticated identity when the body leaves them blank.
func RecordAuditLog(c *gin.Context) {
	var req auditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Page = strings.TrimSpace(req.Page)
	req.Action = strings.TrimSpace(req.Action)
	if req.Page == "" || req.Action == "" {
		jsonError(c, http.StatusBadRequest, "page and action are required")
		return
	}

	user, _ := middleware.CurrentUser(c)
	if req.Username == "" {
		req.Username = user.Name
	}
	if req.Email == "" {
		req.Email = user.Email
	}

	entry := models.AuditLog{
		Username: req.Username,
		Email:    req.Email,
		Page:     req.Page,
		Action:   req.Action,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "audit log recorded"})
}
