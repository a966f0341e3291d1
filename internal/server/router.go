package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"precon-tracker/internal/auth"
	"precon-tracker/internal/config"
	"precon-tracker/internal/handlers"
	"precon-tracker/internal/middleware"
	"precon-tracker/internal/permissions"
)

// SessionBackend is everything the router needs from the session store.
type SessionBackend interface {
	handlers.SessionStore
	middleware.SessionChecker
}

const (
	pageDataManagement = "Data Management"
	pageResidential    = "Residential"
	pageAdmin          = "Admin"
)

// referenceEntities describes every lookup-table family the dashboard
// manages. Guards list the tables that must be empty of references
// before a row may be deleted.
func referenceEntities() []handlers.RefEntity {
	projGuard := func(column string) handlers.RefGuard {
		return handlers.RefGuard{Table: "projects", Column: column, Label: "project", Soft: true}
	}
	resGuard := func(column string) handlers.RefGuard {
		return handlers.RefGuard{Table: "residential_projects", Column: column, Label: "residential project", Soft: true}
	}

	return []handlers.RefEntity{
		{Slug: "builders", Label: "builder", Table: "builders", Page: pageDataManagement,
			Guards: []handlers.RefGuard{projGuard("builder_id")}},
		{Slug: "estimators", Label: "estimator", Table: "estimators", Page: pageDataManagement,
			Guards: []handlers.RefGuard{projGuard("estimator_id")}},
		{Slug: "supervisors", Label: "supervisor", Table: "supervisors", Page: pageDataManagement,
			Guards: []handlers.RefGuard{projGuard("supervisor_id"), resGuard("supervisor_id")}},
		{Slug: "locations", Label: "location", Table: "locations", Page: pageDataManagement,
			Guards: []handlers.RefGuard{projGuard("location_id")}},
		{Slug: "statuses", Label: "status", Table: "statuses", Page: pageDataManagement,
			AdminDelete: true,
			Guards:      []handlers.RefGuard{projGuard("status_id")}},
		{Slug: "priorities", Label: "priority", Table: "priorities", Page: pageDataManagement,
			Guards: []handlers.RefGuard{projGuard("priority_id")}},
		{Slug: "project-types", Label: "project type", Table: "project_types", Page: pageDataManagement,
			Guards: []handlers.RefGuard{projGuard("project_type_id")}},
		{Slug: "project-styles", Label: "project style", Table: "project_styles", Page: pageDataManagement,
			Guards: []handlers.RefGuard{projGuard("project_style_id")}},
		{Slug: "residential-builders", Label: "residential builder", Table: "residential_builders", Page: pageResidential,
			Guards: []handlers.RefGuard{resGuard("builder_id")}},
		{Slug: "residential-statuses", Label: "residential status", Table: "residential_statuses", Page: pageResidential,
			AdminDelete: true,
			Guards:      []handlers.RefGuard{resGuard("status_id")}},
		{Slug: "progress-statuses", Label: "progress status", Table: "progress_statuses", Page: pageResidential,
			Guards: []handlers.RefGuard{resGuard("progress_status_id")}},
		{Slug: "subcontractors", Label: "subcontractor", Table: "subcontractors", Page: pageResidential,
			Guards: []handlers.RefGuard{resGuard("subcontractor_id")}},
		{Slug: "positions", Label: "position", Table: "positions", Page: pageAdmin,
			Guards: []handlers.RefGuard{{Table: "user_positions", Column: "position_id", Label: "user"}}},
	}
}

func NewRouter(cfg *config.Config, sessions SessionBackend) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authHandler := handlers.NewAuthHandler(tokens, sessions)

	r.POST("/api/auth/login", authHandler.Login)

	api := r.Group("/api")
	api.Use(middleware.RequireAuth(tokens, sessions))

	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/me", authHandler.Me)

	// PROJECTS
	api.GET("/projects",
		middleware.RequirePermission(permissions.ViewProjects),
		handlers.ListProjects,
	)
	api.POST("/projects",
		middleware.RequirePermission(permissions.EditProjects),
		handlers.CreateProject,
	)
	api.PUT("/projects",
		middleware.RequirePermission(permissions.EditProjects),
		handlers.UpdateProject,
	)
	api.DELETE("/projects/delete",
		middleware.RequirePermission(permissions.DeleteProjects),
		handlers.DeleteProject,
	)

	// PROJECT CHILDREN: contacts, notes, drawings
	view := middleware.RequirePermission(permissions.ViewProjects)
	edit := middleware.RequirePermission(permissions.EditProjects)
	del := middleware.RequirePermission(permissions.DeleteProjects)

	api.GET("/projects/:id/contacts", view, handlers.ListContacts)
	api.POST("/projects/:id/contacts", edit, handlers.CreateContact)
	api.PUT("/projects/:id/contacts", edit, handlers.UpdateContact)
	api.DELETE("/projects/:id/contacts/delete", del, handlers.DeleteContact)

	api.GET("/projects/:id/notes", view, handlers.ListNotes)
	api.POST("/projects/:id/notes", edit, handlers.CreateNote)
	api.PUT("/projects/:id/notes", edit, handlers.UpdateNote)
	api.DELETE("/projects/:id/notes/delete", del, handlers.DeleteNote)

	api.GET("/projects/:id/drawings", view, handlers.ListDrawings)
	api.POST("/projects/:id/drawings", edit, handlers.CreateDrawing)
	api.PUT("/projects/:id/drawings", edit, handlers.UpdateDrawing)
	api.DELETE("/projects/:id/drawings/delete", del, handlers.DeleteDrawing)

	// RESIDENTIAL PROJECTS
	api.GET("/residential-projects", view, handlers.ListResidentialProjects)
	api.POST("/residential-projects", edit, handlers.CreateResidentialProject)
	api.PUT("/residential-projects", edit, handlers.UpdateResidentialProject)
	api.DELETE("/residential-projects/delete", del, handlers.DeleteResidentialProject)

	// REFERENCE ENTITIES
	for _, e := range referenceEntities() {
		mutate := middleware.RequirePermission(permissions.AccessDataManagement)
		remove := middleware.RequirePermission(permissions.DeleteData)
		if e.Slug == "positions" {
			// positions are managed from the admin screen
			mutate = middleware.RequirePermission(permissions.AccessAdmin)
			remove = middleware.RequirePermission(permissions.AccessAdmin)
		} else if e.AdminDelete {
			remove = middleware.RequirePermission(permissions.DeleteStatus)
		}

		api.GET("/"+e.Slug, view, e.List)
		api.POST("/"+e.Slug, mutate, e.Create)
		api.PUT("/"+e.Slug, mutate, e.Update)
		api.DELETE("/"+e.Slug+"/delete", remove, e.Delete)
	}

	// USERS (admin screen)
	adminOnly := middleware.RequirePermission(permissions.AccessAdmin)
	api.GET("/users", adminOnly, handlers.ListUsers)
	api.POST("/users", adminOnly, handlers.CreateUser)
	api.PUT("/users", adminOnly, handlers.UpdateUser)

	// AUDIT TRAIL
	api.GET("/audit",
		middleware.RequirePermission(permissions.AccessDataManagement),
		handlers.ListAuditLogs,
	)
	api.POST("/audit", handlers.RecordAuditLog)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
