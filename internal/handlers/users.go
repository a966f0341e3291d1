package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"precon-tracker/internal/database"
	"precon-tracker/internal/middleware"
	"precon-tracker/internal/models"
)

const pageAdmin = "Admin"

type positionAssignment struct {
	PositionID uint `json:"position_id"`
	IsPrimary  bool `json:"is_primary"`
}

type userRequest struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Active   *bool  `json:"active"`

	EstimatorID  *uint `json:"estimator_id"`
	SupervisorID *uint `json:"supervisor_id"`

	Positions []positionAssignment `json:"positions"`
}

func validatePositions(assignments []positionAssignment) error {
	primaries := 0
	seen := map[uint]bool{}
	for _, a := range assignments {
		if a.PositionID == 0 {
			return errors.New("position_id is required")
		}
		if seen[a.PositionID] {
			return errors.New("duplicate position assignment")
		}
		seen[a.PositionID] = true
		if a.IsPrimary {
			primaries++
		}
	}
	if primaries > 1 {
		return errors.New("only one position may be primary")
	}
	return nil
}

func replacePositions(tx *gorm.DB, userID uint, assignments []positionAssignment) error {
	if err := tx.Where("user_id = ?", userID).Delete(&models.UserPosition{}).Error; err != nil {
		return err
	}
	for _, a := range assignments {
		var count int64
		if err := tx.Model(&models.Position{}).Where("id = ?", a.PositionID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("position %d not found", a.PositionID)
		}
		up := models.UserPosition{
			UserID:     userID,
			PositionID: a.PositionID,
			IsPrimary:  a.IsPrimary,
		}
		if err := tx.Create(&up).Error; err != nil {
			return err
		}
	}
	return nil
}

func ListUsers(c *gin.Context) {
	var users []models.User
	err := database.DB.
		Preload("Positions").
		Preload("Positions.Position").
		Order("email asc").
		Find(&users).Error
	if err != nil {
		zap.L().Warn("user list query failed", zap.Error(err))
		users = []models.User{}
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, users)
}

func CreateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" {
		jsonError(c, http.StatusBadRequest, "email is required")
		return
	}
	if len(req.Password) < 8 {
		jsonError(c, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}
	if !models.ValidRole(req.Role) {
		jsonError(c, http.StatusBadRequest, "invalid role")
		return
	}
	if err := validatePositions(req.Positions); err != nil {
		jsonError(c, http.StatusBadRequest, err.Error())
		return
	}

	var count int64
	if err := database.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		internalError(c, err)
		return
	}
	if count > 0 {
		jsonError(c, http.StatusConflict, "a user with that email already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		internalError(c, err)
		return
	}

	user := models.User{
		Email:        req.Email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: string(hash),
		Role:         models.UserRole(req.Role),
		Active:       true,
		EstimatorID:  req.EstimatorID,
		SupervisorID: req.SupervisorID,
	}

	if err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return replacePositions(tx, user.ID, req.Positions)
	}); err != nil {
		internalError(c, err)
		return
	}

	if actor, ok := middleware.CurrentUser(c); ok {
		database.CreateAuditLog(actor.Name, actor.Email, pageAdmin,
			fmt.Sprintf("Added user: %q with role %s", user.Email, user.Role))
	}
	c.JSON(http.StatusCreated, gin.H{"id": user.ID})
}

// UpdateUser edits role, links, positions and the active flag. There is
// no delete route: accounts are deactivated, never removed, so the
// audit trail keeps a valid actor behind every entry.
func UpdateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == 0 {
		jsonError(c, http.StatusBadRequest, "id is required")
		return
	}
	if req.Role != "" && !models.ValidRole(req.Role) {
		jsonError(c, http.StatusBadRequest, "invalid role")
		return
	}
	if err := validatePositions(req.Positions); err != nil {
		jsonError(c, http.StatusBadRequest, err.Error())
		return
	}

	var user models.User
	if err := database.DB.First(&user, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			jsonError(c, http.StatusNotFound, "user not found")
			return
		}
		internalError(c, err)
		return
	}

	if req.Email != "" {
		email := strings.TrimSpace(strings.ToLower(req.Email))
		var count int64
		if err := database.DB.Model(&models.User{}).
			Where("email = ? AND id <> ?", email, user.ID).
			Count(&count).Error; err != nil {
			internalError(c, err)
			return
		}
		if count > 0 {
			jsonError(c, http.StatusConflict, "a user with that email already exists")
			return
		}
		user.Email = email
	}
	if req.Name != "" {
		user.Name = strings.TrimSpace(req.Name)
	}
	if req.Role != "" {
		user.Role = models.UserRole(req.Role)
	}
	if req.Password != "" {
		if len(req.Password) < 8 {
			jsonError(c, http.StatusBadRequest, "password must be at least 8 characters")
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			internalError(c, err)
			return
		}
		user.PasswordHash = string(hash)
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	if req.EstimatorID != nil {
		user.EstimatorID = req.EstimatorID
	}
	if req.SupervisorID != nil {
		user.SupervisorID = req.SupervisorID
	}

	if err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		// a request without a positions array leaves assignments alone
		if req.Positions == nil {
			return nil
		}
		return replacePositions(tx, user.ID, req.Positions)
	}); err != nil {
		internalError(c, err)
		return
	}

	if actor, ok := middleware.CurrentUser(c); ok {
		database.CreateAuditLog(actor.Name, actor.Email, pageAdmin,
			fmt.Sprintf("Updated user: %q", user.Email))
	}

	if err := database.DB.
		Preload("Positions").
		Preload("Positions.Position").
		First(&user, user.ID).Error; err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
