package permissions

import "precon-tracker/internal/models"

// Action is a closed enumeration of everything the permission matrix
// knows about. Using a dedicated type instead of raw strings means an
// unknown action is a compile error at the call site; the zero value
// still fails closed at runtime.
type Action string

const (
	ViewProjects         Action = "view_projects"
	ViewAnalytics        Action = "view_analytics"
	EditProjects         Action = "edit_projects"
	DeleteProjects       Action = "delete_projects"
	AccessAdmin          Action = "access_admin"
	AccessDataManagement Action = "access_data_management"
	DeleteData           Action = "delete_data"
	DeleteStatus         Action = "delete_status"
)

// matrix maps each role to the set of actions it is allowed to perform.
// Admin is a strict superset of manager, which is a strict superset of
// viewer; AccessAdmin and DeleteStatus are intentionally admin-only.
var matrix = map[models.UserRole]map[Action]bool{
	models.RoleViewer: {
		ViewProjects:  true,
		ViewAnalytics: true,
	},
	models.RoleManager: {
		ViewProjects:         true,
		ViewAnalytics:        true,
		EditProjects:         true,
		DeleteProjects:       true,
		AccessDataManagement: true,
		DeleteData:           true,
	},
	models.RoleAdmin: {
		ViewProjects:         true,
		ViewAnalytics:        true,
		EditProjects:         true,
		DeleteProjects:       true,
		AccessAdmin:          true,
		AccessDataManagement: true,
		DeleteData:           true,
		DeleteStatus:         true,
	},
}

// Has reports whether role may perform action. It never panics: an
// unknown role, an empty role, or an unknown action all return false.
func Has(role models.UserRole, action Action) bool {
	actions, ok := matrix[role]
	if !ok {
		return false
	}
	return actions[action]
}

func CanViewProjects(role models.UserRole) bool  { return Has(role, ViewProjects) }
func CanViewAnalytics(role models.UserRole) bool { return Has(role, ViewAnalytics) }
func CanEditProjects(role models.UserRole) bool  { return Has(role, EditProjects) }
func CanDeleteProjects(role models.UserRole) bool {
	return Has(role, DeleteProjects)
}
func CanAccessAdmin(role models.UserRole) bool { return Has(role, AccessAdmin) }
func CanAccessDataManagement(role models.UserRole) bool {
	return Has(role, AccessDataManagement)
}
func CanDeleteData(role models.UserRole) bool   { return Has(role, DeleteData) }
func CanDeleteStatus(role models.UserRole) bool { return Has(role, DeleteStatus) }
