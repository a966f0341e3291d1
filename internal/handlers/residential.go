package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"precon-tracker/internal/database"
	"precon-tracker/internal/middleware"
	"precon-tracker/internal/models"
)

const pageResidential = "Residential"

type residentialRequest struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`

	BuilderID        *uint `json:"builder_id"`
	StatusID         *uint `json:"status_id"`
	ProgressStatusID *uint `json:"progress_status_id"`
	SubcontractorID  *uint `json:"subcontractor_id"`
	SupervisorID     *uint `json:"supervisor_id"`

	StartDate *time.Time `json:"start_date"`
	DueDate   *time.Time `json:"due_date"`
	Notes     string     `json:"notes"`
}

func (r *residentialRequest) apply(p *models.ResidentialProject) {
	p.Name = strings.TrimSpace(r.Name)
	p.Address = strings.TrimSpace(r.Address)
	p.BuilderID = r.BuilderID
	p.StatusID = r.StatusID
	p.ProgressStatusID = r.ProgressStatusID
	p.SubcontractorID = r.SubcontractorID
	p.SupervisorID = r.SupervisorID
	p.StartDate = r.StartDate
	p.DueDate = r.DueDate
	p.Notes = strings.TrimSpace(r.Notes)
}

func ListResidentialProjects(c *gin.Context) {
	var projects []models.ResidentialProject
	err := database.DB.
		Preload("Builder").
		Preload("Status").
		Preload("ProgressStatus").
		Preload("Subcontractor").
		Preload("Supervisor").
		Order("name asc").
		Find(&projects).Error
	if err != nil {
		zap.L().Warn("residential list query failed", zap.Error(err))
		projects = []models.ResidentialProject{}
	}
	if projects == nil {
		projects = []models.ResidentialProject{}
	}
	c.JSON(http.StatusOK, projects)
}

func CreateResidentialProject(c *gin.Context) {
	var req residentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		jsonError(c, http.StatusBadRequest, "name is required")
		return
	}

	var project models.ResidentialProject
	req.apply(&project)

	if err := database.DB.Create(&project).Error; err != nil {
		internalError(c, err)
		return
	}

	if user, ok := middleware.CurrentUser(c); ok {
		database.CreateAuditLog(user.Name, user.Email, pageResidential,
			fmt.Sprintf("Added residential project: %q", project.Name))
	}
	c.JSON(http.StatusCreated, project)
}

func UpdateResidentialProject(c *gin.Context) {
	var req residentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == 0 {
		jsonError(c, http.StatusBadRequest, "id is required")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		jsonError(c, http.StatusBadRequest, "name is required")
		return
	}

	var project models.ResidentialProject
	if err := database.DB.First(&project, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			jsonError(c, http.StatusNotFound, "residential project not found")
			return
		}
		internalError(c, err)
		return
	}

	req.apply(&project)
	if err := database.DB.Save(&project).Error; err != nil {
		internalError(c, err)
		return
	}

	if user, ok := middleware.CurrentUser(c); ok {
		database.CreateAuditLog(user.Name, user.Email, pageResidential,
			fmt.Sprintf("Updated residential project: %q", project.Name))
	}
	c.JSON(http.StatusOK, project)
}

func DeleteResidentialProject(c *gin.Context) {
	id, ok := idFromQuery(c)
	if !ok {
		return
	}

	var project models.ResidentialProject
	if err := database.DB.First(&project, id).Error; err != nil {
		jsonError(c, http.StatusNotFound, "residential project not found")
		return
	}

	if err := database.DB.Delete(&project).Error; err != nil {
		internalError(c, err)
		return
	}

	if user, ok := middleware.CurrentUser(c); ok {
		database.CreateAuditLog(user.Name, user.Email, pageResidential,
			fmt.Sprintf("Deleted residential project: %q", project.Name))
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
