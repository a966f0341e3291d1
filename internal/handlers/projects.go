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

const pageProjects = "Projects"

type projectRequest struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`

	BuilderID      *uint `json:"builder_id"`
	EstimatorID    *uint `json:"estimator_id"`
	SupervisorID   *uint `json:"supervisor_id"`
	LocationID     *uint `json:"location_id"`
	StatusID       *uint `json:"status_id"`
	PriorityID     *uint `json:"priority_id"`
	ProjectTypeID  *uint `json:"project_type_id"`
	ProjectStyleID *uint `json:"project_style_id"`

	StartDate *time.Time `json:"start_date"`
	DueDate   *time.Time `json:"due_date"`

	SquareFootage int     `json:"square_footage"`
	ContractValue float64 `json:"contract_value"`
	Notes         string  `json:"notes"`
}

func (r *projectRequest) apply(p *models.Project) {
	p.Name = strings.TrimSpace(r.Name)
	p.Address = strings.TrimSpace(r.Address)
	p.BuilderID = r.BuilderID
	p.EstimatorID = r.EstimatorID
	p.SupervisorID = r.SupervisorID
	p.LocationID = r.LocationID
	p.StatusID = r.StatusID
	p.PriorityID = r.PriorityID
	p.ProjectTypeID = r.ProjectTypeID
	p.ProjectStyleID = r.ProjectStyleID
	p.StartDate = r.StartDate
	p.DueDate = r.DueDate
	p.SquareFootage = r.SquareFootage
	p.ContractValue = r.ContractValue
	p.Notes = strings.TrimSpace(r.Notes)
}

func ListProjects(c *gin.Context) {
	var projects []models.Project
	err := database.DB.
		Preload("Builder").
		Preload("Estimator").
		Preload("Supervisor").
		Preload("Location").
		Preload("Status").
		Preload("Priority").
		Preload("ProjectType").
		Preload("ProjectStyle").
		Order("name asc").
		Find(&projects).Error
	if err != nil {
		zap.L().Warn("project list query failed", zap.Error(err))
		projects = []models.Project{}
	}
	if projects == nil {
		projects = []models.Project{}
	}
	c.JSON(http.StatusOK, projects)
}

func CreateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		jsonError(c, http.StatusBadRequest, "name is required")
		return
	}

	var project models.Project
	req.apply(&project)

	if err := database.DB.Create(&project).Error; err != nil {
		internalError(c, err)
		return
	}

	if user, ok := middleware.CurrentUser(c); ok {
		database.CreateAuditLog(user.Name, user.Email, pageProjects,
			fmt.Sprintf("Added project: %q", project.Name))
	}
	c.JSON(http.StatusCreated, project)
}

func UpdateProject(c *gin.Context) {
	var req projectRequest
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

	var project models.Project
	if err := database.DB.First(&project, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			jsonError(c, http.StatusNotFound, "project not found")
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
		database.CreateAuditLog(user.Name, user.Email, pageProjects,
			fmt.Sprintf("Updated project: %q", project.Name))
	}
	c.JSON(http.StatusOK, project)
}

func DeleteProject(c *gin.Context) {
	id, ok := idFromQuery(c)
	if !ok {
		return
	}

	var project models.Project
	if err := database.DB.First(&project, id).Error; err != nil {
		jsonError(c, http.StatusNotFound, "project not found")
		return
	}

	// children go with the parent; their existence is meaningless
	// without it
	if err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Contact{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.NoteEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Drawing{}).Error; err != nil {
			return err
		}
		return tx.Delete(&project).Error
	}); err != nil {
		internalError(c, err)
		return
	}

	if user, ok := middleware.CurrentUser(c); ok {
		database.CreateAuditLog(user.Name, user.Email, pageProjects,
			fmt.Sprintf("Deleted project: %q", project.Name))
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
