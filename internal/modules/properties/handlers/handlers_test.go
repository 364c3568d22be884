package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/martinbibb-cmd/Hail-Mary-sub002/internal/modules/properties"
	"github.com/martinbibb-cmd/Hail-Mary-sub002/pkg/logger"
)

func setupRouter(t *testing.T) chi.Router {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE property_models (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			zones TEXT NOT NULL DEFAULT '[]',
			floor_area_m2 REAL,
			age_band TEXT,
			construction_notes TEXT,
			created_at INTEGER NOT NULL
		)
	`)
	require.NoError(t, err)

	handler := NewHandler(properties.NewRepository(db, logger.Disabled()), logger.Disabled())
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func TestPropertyLifecycle(t *testing.T) {
	router := setupRouter(t)

	body := `{
		"name": "Victorian semi",
		"zones": [{"name": "ground floor", "heat_loss_w_per_k": 180}],
		"age_band": "pre-1919"
	}`

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/properties/", bytes.NewBufferString(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created properties.PropertyModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Victorian semi", created.Name)

	// Get it back
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/properties/"+created.ID, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got properties.PropertyModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created.ID, got.ID)
	require.Len(t, got.Zones, 1)
	assert.InDelta(t, 180.0, got.Zones[0].HeatLossWPerK, 0.001)

	// List includes it
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/properties/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var list []properties.PropertyModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	// Delete, then Get is a 404
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("DELETE", "/properties/"+created.ID, nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/properties/"+created.ID, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreate_Validation(t *testing.T) {
	router := setupRouter(t)

	// Missing name
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/properties/", bytes.NewBufferString(`{"zones": []}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Malformed body
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/properties/", bytes.NewBufferString("{not json")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestList_EmptyIsArray(t *testing.T) {
	router := setupRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/properties/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
