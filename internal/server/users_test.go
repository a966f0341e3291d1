package server_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"precon-tracker/internal/database"
	"precon-tracker/internal/models"
)

func createPosition(t *testing.T, r *gin.Engine, token, name string) models.Reference {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/positions", token, gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var pos models.Reference
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pos))
	return pos
}

func TestUsers_CreateWithPositions(t *testing.T) {
	r := setupRouter(t)
	createUser(t, "admin@test.local", models.RoleAdmin)
	token := login(t, r, "admin@test.local")

	est := createPosition(t, r, token, "Estimator I")
	sup := createPosition(t, r, token, "Supervisor")

	w := doJSON(t, r, http.MethodPost, "/api/users", token, gin.H{
		"email":    "new@test.local",
		"name":     "New Hire",
		"password": "Secret123",
		"role":     "viewer",
		"positions": []gin.H{
			{"position_id": est.ID, "is_primary": true},
			{"position_id": sup.ID},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var user models.User
	require.NoError(t, database.DB.Preload("Positions").Where("email = ?", "new@test.local").First(&user).Error)
	assert.Equal(t, models.RoleViewer, user.Role)
	assert.True(t, user.Active)
	require.Len(t, user.Positions, 2)

	primaries := 0
	for _, p := range user.Positions {
		if p.IsPrimary {
			primaries++
		}
	}
	assert.Equal(t, 1, primaries)
}

func TestUsers_CreateValidation(t *testing.T) {
	r := setupRouter(t)
	createUser(t, "admin@test.local", models.RoleAdmin)
	token := login(t, r, "admin@test.local")

	// missing email
	w := doJSON(t, r, http.MethodPost, "/api/users", token, gin.H{
		"password": "Secret123", "role": "viewer",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// short password
	w = doJSON(t, r, http.MethodPost, "/api/users", token, gin.H{
		"email": "x@test.local", "password": "short", "role": "viewer",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown role
	w = doJSON(t, r, http.MethodPost, "/api/users", token, gin.H{
		"email": "x@test.local", "password": "Secret123", "role": "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// two primary positions
	w = doJSON(t, r, http.MethodPost, "/api/users", token, gin.H{
		"email": "x@test.local", "password": "Secret123", "role": "viewer",
		"positions": []gin.H{
			{"position_id": 1, "is_primary": true},
			{"position_id": 2, "is_primary": true},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUsers_DuplicateEmail(t *testing.T) {
	r := setupRouter(t)
	createUser(t, "admin@test.local", models.RoleAdmin)
	createUser(t, "taken@test.local", models.RoleViewer)
	token := login(t, r, "admin@test.local")

	w := doJSON(t, r, http.MethodPost, "/api/users", token, gin.H{
		"email": "taken@test.local", "password": "Secret123", "role": "viewer",
	})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
}

func TestUsers_DeactivateLocksOut(t *testing.T) {
	r := setupRouter(t)
	createUser(t, "admin@test.local", models.RoleAdmin)
	target := createUser(t, "mgr@test.local", models.RoleManager)
	adminToken := login(t, r, "admin@test.local")
	mgrToken := login(t, r, "mgr@test.local")

	// the manager works until deactivated
	w := doJSON(t, r, http.MethodGet, "/api/projects", mgrToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/users", adminToken, gin.H{
		"id": target.ID, "active": false,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// existing token stops working immediately
	w = doJSON(t, r, http.MethodGet, "/api/projects", mgrToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUsers_UpdateRole(t *testing.T) {
	r := setupRouter(t)
	createUser(t, "admin@test.local", models.RoleAdmin)
	target := createUser(t, "viewer@test.local", models.RoleViewer)
	token := login(t, r, "admin@test.local")

	w := doJSON(t, r, http.MethodPut, "/api/users", token, gin.H{
		"id": target.ID, "role": "manager",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// the promoted user can now mutate reference data
	viewerToken := login(t, r, "viewer@test.local")
	w = doJSON(t, r, http.MethodPost, "/api/builders", viewerToken, gin.H{"name": "Acme"})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestUsers_UpdateMissing(t *testing.T) {
	r := setupRouter(t)
	createUser(t, "admin@test.local", models.RoleAdmin)
	token := login(t, r, "admin@test.local")

	w := doJSON(t, r, http.MethodPut, "/api/users", token, gin.H{
		"id": 999, "role": "manager",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
