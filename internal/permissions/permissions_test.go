package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"precon-tracker/internal/models"
)

var allActions = []Action{
	ViewProjects,
	ViewAnalytics,
	EditProjects,
	DeleteProjects,
	AccessAdmin,
	AccessDataManagement,
	DeleteData,
	DeleteStatus,
}

// admin-only capabilities are exempt from the monotonicity check
var adminOnly = map[Action]bool{
	AccessAdmin:  true,
	DeleteStatus: true,
}

func TestHas_EmptyRoleAlwaysFalse(t *testing.T) {
	for _, a := range allActions {
		assert.False(t, Has("", a), "empty role must be denied %s", a)
	}
}

func TestHas_UnknownRoleAlwaysFalse(t *testing.T) {
	for _, a := range allActions {
		assert.False(t, Has(models.UserRole("superuser"), a))
	}
}

func TestHas_UnknownActionFalse(t *testing.T) {
	for _, role := range []models.UserRole{models.RoleViewer, models.RoleManager, models.RoleAdmin} {
		assert.False(t, Has(role, Action("launch_missiles")))
		assert.False(t, Has(role, Action("")))
	}
}

func TestHas_PrivilegeMonotonicity(t *testing.T) {
	for _, a := range allActions {
		if adminOnly[a] {
			continue
		}
		if Has(models.RoleViewer, a) {
			assert.True(t, Has(models.RoleManager, a), "manager must inherit viewer action %s", a)
		}
		if Has(models.RoleManager, a) {
			assert.True(t, Has(models.RoleAdmin, a), "admin must inherit manager action %s", a)
		}
	}
}

func TestHas_AdminExclusiveActions(t *testing.T) {
	assert.False(t, Has(models.RoleViewer, AccessAdmin))
	assert.False(t, Has(models.RoleManager, AccessAdmin))
	assert.True(t, Has(models.RoleAdmin, AccessAdmin))

	assert.False(t, Has(models.RoleViewer, DeleteStatus))
	assert.False(t, Has(models.RoleManager, DeleteStatus))
	assert.True(t, Has(models.RoleAdmin, DeleteStatus))
}

func TestHas_ViewerIsReadOnly(t *testing.T) {
	assert.True(t, CanViewProjects(models.RoleViewer))
	assert.True(t, CanViewAnalytics(models.RoleViewer))
	assert.False(t, CanEditProjects(models.RoleViewer))
	assert.False(t, CanDeleteProjects(models.RoleViewer))
	assert.False(t, CanAccessDataManagement(models.RoleViewer))
	assert.False(t, CanDeleteData(models.RoleViewer))
}

func TestHas_ManagerCapabilities(t *testing.T) {
	assert.True(t, CanEditProjects(models.RoleManager))
	assert.True(t, CanDeleteProjects(models.RoleManager))
	assert.True(t, CanAccessDataManagement(models.RoleManager))
	assert.True(t, CanDeleteData(models.RoleManager))
	assert.False(t, CanAccessAdmin(models.RoleManager))
	assert.False(t, CanDeleteStatus(models.RoleManager))
}
