package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"precon-tracker/internal/database"
	"precon-tracker/internal/middleware"
	"precon-tracker/internal/models"
)

// parentProject loads the project a child route is nested under,
// answering 404 when it does not exist.
func parentProject(c *gin.Context) (models.Project, bool) {
	id, ok := idFromParam(c, "id")
	if !ok {
		return models.Project{}, false
	}
	var project models.Project
	if err := database.DB.First(&project, id).Error; err != nil {
		jsonError(c, http.StatusNotFound, "project not found")
		return models.Project{}, false
	}
	return project, true
}

//
// CONTACTS
//

type contactRequest struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

func ListContacts(c *gin.Context) {
	project, ok := parentProject(c)
	if !ok {
		return
	}

	var contacts []models.Contact
	if err := database.DB.Where("project_id = ?", project.ID).Order("name asc").Find(&contacts).Error; err != nil {
		zap.L().Warn("contact list query failed", zap.Error(err))
		contacts = []models.Contact{}
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	c.JSON(http.StatusOK, contacts)
}

func CreateContact(c *gin.Context) {
	project, ok := parentProject(c)
	if !ok {
		return
	}

	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		jsonError(c, http.StatusBadRequest, "name is required")
		return
	}

	var count int64
	if err := database.DB.Model(&models.Contact{}).
		Where("project_id = ?", project.ID).
		Count(&count).Error; err != nil {
		internalError(c, err)
		return
	}
	if count >= models.MaxContactsPerProject {
		jsonError(c, http.StatusConflict,
			fmt.Sprintf("project already has the maximum of %d contacts", models.MaxContactsPerProject))
		return
	}

	contact := models.Contact{
		ProjectID: project.ID,
		Name:      req.Name,
		Title:     strings.TrimSpace(req.Title),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
	}
	if err := database.DB.Create(&contact).Error; err != nil {
		internalError(c, err)
		return
	}

	if user, ok := middleware.CurrentUser(c); ok {
		database.CreateAuditLog(user.Name, user.Email, pageProjects,
			fmt.Sprintf("Added contact %q to project %q", contact.Name, project.Name))
	}
	c.JSON(http.StatusCreated, contact)
}

func UpdateContact(c *gin.Context) {
	project, ok := parentProject(c)
	if !ok {
		return
	}

	var req contactRequest
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

	var contact models.Contact
	if err := database.DB.Where("id = ? AND project_id = ?", req.ID, project.ID).First(&contact).Error; err != nil {
		jsonError(c, http.StatusNotFound, "contact not found")
		return
	}

	contact.Name = req.Name
	contact.Title = strings.TrimSpace(req.Title)
	contact.Phone = strings.TrimSpace(req.Phone)
	contact.Email = strings.TrimSpace(req.Email)
	if err := database.DB.Save(&contact).Error; err != nil {
		internalError(c, err)
		return
	}

	if user, ok := middleware.CurrentUser(c); ok {
		database.CreateAuditLog(user.Name, user.Email, pageProjects,
			fmt.Sprintf("Updated contact %q on project %q", contact.Name, project.Name))
	}
	c.JSON(http.StatusOK, contact)
}

func DeleteContact(c *gin.Context) {
	project, ok := parentProject(c)
	if !ok {
		return
	}
	id, ok := idFromQuery(c)
	if !ok {
		return
	}

	var contact models.Contact
	if err := database.DB.Where("id = ? AND project_id = ?", id, project.ID).First(&contact).Error; err != nil {
		jsonError(c, http.StatusNotFound, "contact not found")
		return
	}
	if err := database.DB.Delete(&contact).Error; err != nil {
		internalError(c, err)
		return
	}

	if user, ok := middleware.CurrentUser(c); ok {
		database.CreateAuditLog(user.Name, user.Email, pageProjects,
			fmt.Sprintf("Deleted contact %q from project %q", contact.Name, project.Name))
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

//
// NOTES
//

type noteRequest struct {
	ID      uint   `json:"id"`
	Content string `json:"content"`
}

func ListNotes(c *gin.Context) {
	project, ok := parentProject(c)
	if !ok {
		return
	}

	var notes []models.NoteEntry
	if err := database.DB.Where("project_id = ?", project.ID).Order("created_at desc").Find(&notes).Error; err != nil {
		zap.L().Warn("note list query failed", zap.Error(err))
		notes = []models.NoteEntry{}
	}
	if notes == nil {
		notes = []models.NoteEntry{}
	}
	c.JSON(http.StatusOK, notes)
}

func CreateNote(c *gin.Context) {
	project, ok := parentProject(c)
	if !ok {
		return
	}

	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		jsonError(c, http.StatusBadRequest, "content is required")
		return
	}

	user, _ := middleware.CurrentUser(c)
	note := models.NoteEntry{
		ProjectID: project.ID,
		Content:   req.Content,
		Author:    user.Name,
	}
	if err := database.DB.Create(&note).Error; err != nil {
		internalError(c, err)
		return
	}

	if user.ID != 0 {
		database.CreateAuditLog(user.Name, user.Email, pageProjects,
			fmt.Sprintf("Added note to project %q", project.Name))
	}
	c.JSON(http.StatusCreated, note)
}

func UpdateNote(c *gin.Context) {
	project, ok := parentProject(c)
	if !ok {
		return
	}

	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == 0 {
		jsonError(c, http.StatusBadRequest, "id is required")
		return
	}
	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		jsonError(c, http.StatusBadRequest, "content is required")
		return
	}

	var note models.NoteEntry
	if err := database.DB.Where("id = ? AND project_id = ?", req.ID, project.ID).First(&note).Error; err != nil {
		jsonError(c, http.StatusNotFound, "note not found")
		return
	}

	note.Content = req.Content
	if err := database.DB.Save(&note).Error; err != nil {
		internalError(c, err)
		return
	}

	if user, ok := middleware.CurrentUser(c); ok {
		database.CreateAuditLog(user.Name, user.Email, pageProjects,
			fmt.Sprintf("Updated note on project %q", project.Name))
	}
	c.JSON(http.StatusOK, note)
}

func DeleteNote(c *gin.Context) {
	project, ok := parentProject(c)
	if !ok {
		return
	}
	id, ok := idFromQuery(c)
	if !ok {
		return
	}

	var note models.NoteEntry
	if err := database.DB.Where("id = ? AND project_id = ?", id, project.ID).First(&note).Error; err != nil {
		jsonError(c, http.StatusNotFound, "note not found")
		return
	}
	if err := database.DB.Delete(&note).Error; err != nil {
		internalError(c, err)
		return
	}

	if user, ok := middleware.CurrentUser(c); ok {
		database.CreateAuditLog(user.Name, user.Email, pageProjects,
			fmt.Sprintf("Deleted note from project %q", project.Name))
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

//
// DRAWINGS
//

type drawingRequest struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Revision string `json:"revision"`
}

func ListDrawings(c *gin.Context) {
	project, ok := parentProject(c)
	if !ok {
		return
	}

	var drawings []models.Drawing
	if err := database.DB.Where("project_id = ?", project.ID).Order("title asc").Find(&drawings).Error; err != nil {
		zap.L().Warn("drawing list query failed", zap.Error(err))
		drawings = []models.Drawing{}
	}
	if drawings == nil {
		drawings = []models.Drawing{}
	}
	c.JSON(http.StatusOK, drawings)
}

func CreateDrawing(c *gin.Context) {
	project, ok := parentProject(c)
	if !ok {
		return
	}

	var req drawingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		jsonError(c, http.StatusBadRequest, "title is required")
		return
	}

	drawing := models.Drawing{
		ProjectID: project.ID,
		Title:     req.Title,
		URL:       strings.TrimSpace(req.URL),
		Revision:  strings.TrimSpace(req.Revision),
	}
	if err := database.DB.Create(&drawing).Error; err != nil {
		internalError(c, err)
		return
	}

	if user, ok := middleware.CurrentUser(c); ok {
		database.CreateAuditLog(user.Name, user.Email, pageProjects,
			fmt.Sprintf("Added drawing %q to project %q", drawing.Title, project.Name))
	}
	c.JSON(http.StatusCreated, drawing)
}

func UpdateDrawing(c *gin.Context) {
	project, ok := parentProject(c)
	if !ok {
		return
	}

	var req drawingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == 0 {
		jsonError(c, http.StatusBadRequest, "id is required")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		jsonError(c, http.StatusBadRequest, "title is required")
		return
	}

	var drawing models.Drawing
	if err := database.DB.Where("id = ? AND project_id = ?", req.ID, project.ID).First(&drawing).Error; err != nil {
		jsonError(c, http.StatusNotFound, "drawing not found")
		return
	}

	drawing.Title = req.Title
	drawing.URL = strings.TrimSpace(req.URL)
	drawing.Revision = strings.TrimSpace(req.Revision)
	if err := database.DB.Save(&drawing).Error; err != nil {
		internalError(c, err)
		return
	}

	if user, ok := middleware.CurrentUser(c); ok {
		database.CreateAuditLog(user.Name, user.Email, pageProjects,
			fmt.Sprintf("Updated drawing %q on project %q", drawing.Title, project.Name))
	}
	c.JSON(http.StatusOK, drawing)
}

func DeleteDrawing(c *gin.Context) {
	project, ok := parentProject(c)
	if !ok {
		return
	}
	id, ok := idFromQuery(c)
	if !ok {
		return
	}

	var drawing models.Drawing
	if err := database.DB.Where("id = ? AND project_id = ?", id, project.ID).First(&drawing).Error; err != nil {
		jsonError(c, http.StatusNotFound, "drawing not found")
		return
	}
	if err := database.DB.Delete(&drawing).Error; err != nil {
		internalError(c, err)
		return
	}

	if user, ok := middleware.CurrentUser(c); ok {
		database.CreateAuditLog(user.Name, user.Email, pageProjects,
			fmt.Sprintf("Deleted drawing %q from project %q", drawing.Title, project.Name))
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
