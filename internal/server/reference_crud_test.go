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

func TestReference_CreateListUpdateDelete(t *testing.T) {
	r := setupRouter(t)
	createUser(t, "mgr@test.local", models.RoleManager)
	token := login(t, r, "mgr@test.local")

	w := doJSON(t, r, http.MethodPost, "/api/builders", token, gin.H{"name": "Acme"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Reference
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.ID)
	assert.Equal(t, "Acme", created.Name)

	w = doJSON(t, r, http.MethodGet, "/api/builders", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []models.Reference
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)

	w = doJSON(t, r, http.MethodPut, "/api/builders", token, gin.H{"id": created.ID, "name": "Acme Builders"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodDelete, "/api/builders/delete?id=1", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/builders", token, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Empty(t, listed)
}

func TestReference_DuplicateNameRejected(t *testing.T) {
	r := setupRouter(t)
	createUser(t, "mgr@test.local", models.RoleManager)
	token := login(t, r, "mgr@test.local")

	w := doJSON(t, r, http.MethodPost, "/api/builders", token, gin.H{"name": "Acme"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/builders", token, gin.H{"name": "Acme"})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// the duplicate check is case-sensitive exact match
	w = doJSON(t, r, http.MethodPost, "/api/builders", token, gin.H{"name": "acme"})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var listed []models.Reference
	w = doJSON(t, r, http.MethodGet, "/api/builders", token, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	count := 0
	for _, b := range listed {
		if b.Name == "Acme" {
			count++
		}
	}
	assert.Equal(t, 1, count, "exactly one Acme after a duplicate attempt")
}

func TestReference_UpdateDuplicateExcludesSelf(t *testing.T) {
	r := setupRouter(t)
	createUser(t, "mgr@test.local", models.RoleManager)
	token := login(t, r, "mgr@test.local")

	w := doJSON(t, r, http.MethodPost, "/api/locations", token, gin.H{"name": "Downtown"})
	require.Equal(t, http.StatusCreated, w.Code)
	var downtown models.Reference
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &downtown))

	w = doJSON(t, r, http.MethodPost, "/api/locations", token, gin.H{"name": "Uptown"})
	require.Equal(t, http.StatusCreated, w.Code)
	var uptown models.Reference
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &uptown))

	// renaming a row to its own name is not a conflict
	w = doJSON(t, r, http.MethodPut, "/api/locations", token, gin.H{"id": downtown.ID, "name": "Downtown"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// renaming onto another row's name is
	w = doJSON(t, r, http.MethodPut, "/api/locations", token, gin.H{"id": uptown.ID, "name": "Downtown"})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
}

func TestReference_GuardedDelete(t *testing.T) {
	r := setupRouter(t)
	createUser(t, "mgr@test.local", models.RoleManager)
	token := login(t, r, "mgr@test.local")

	w := doJSON(t, r, http.MethodPost, "/api/builders", token, gin.H{"name": "Acme"})
	require.Equal(t, http.StatusCreated, w.Code)
	var builder models.Reference
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &builder))

	w = doJSON(t, r, http.MethodPost, "/api/projects", token, gin.H{
		"name":       "Main St Office",
		"builder_id": builder.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var project models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &project))

	// blocked while the project references it
	w = doJSON(t, r, http.MethodDelete, "/api/builders/delete?id=1", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	var listed []models.Reference
	w = doJSON(t, r, http.MethodGet, "/api/builders", token, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1, "builder must survive a refused delete")

	// delete the project, then the builder goes
	w = doJSON(t, r, http.MethodDelete, "/api/projects/delete?id=1", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodDelete, "/api/builders/delete?id=1", token, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestReference_DeleteMissingRow(t *testing.T) {
	r := setupRouter(t)
	createUser(t, "mgr@test.local", models.RoleManager)
	token := login(t, r, "mgr@test.local")

	w := doJSON(t, r, http.MethodDelete, "/api/estimators/delete?id=999", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatus_DeleteIsAdminOnly(t *testing.T) {
	r := setupRouter(t)
	createUser(t, "mgr@test.local", models.RoleManager)
	createUser(t, "admin@test.local", models.RoleAdmin)
	mgrToken := login(t, r, "mgr@test.local")
	adminToken := login(t, r, "admin@test.local")

	w := doJSON(t, r, http.MethodPost, "/api/statuses", mgrToken, gin.H{"name": "Archived"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var status models.Reference
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))

	// managers can create statuses but not delete them
	w = doJSON(t, r, http.MethodDelete, "/api/statuses/delete?id=1", mgrToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/statuses/delete?id=1", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestPositions_AdminManaged(t *testing.T) {
	r := setupRouter(t)
	createUser(t, "mgr@test.local", models.RoleManager)
	createUser(t, "admin@test.local", models.RoleAdmin)

	w := doJSON(t, r, http.MethodPost, "/api/positions", login(t, r, "mgr@test.local"), gin.H{"name": "Estimator I"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/positions", login(t, r, "admin@test.local"), gin.H{"name": "Estimator I"})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestReference_MutationWritesAudit(t *testing.T) {
	r := setupRouter(t)
	createUser(t, "mgr@test.local", models.RoleManager)
	token := login(t, r, "mgr@test.local")

	w := doJSON(t, r, http.MethodPost, "/api/builders", token, gin.H{"name": "Acme"})
	require.Equal(t, http.StatusCreated, w.Code)

	var entries []models.AuditLog
	require.NoError(t, database.DB.Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, "Data Management", entries[0].Page)
	assert.Equal(t, `Added builder: "Acme"`, entries[0].Action)
	assert.Equal(t, "mgr@test.local", entries[0].Email)
}
