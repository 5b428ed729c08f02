package patient

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediflow/clinic-api/internal/model"
	patientService "github.com/mediflow/clinic-api/internal/service/patient"
	"github.com/mediflow/clinic-api/internal/store"
	"github.com/mediflow/clinic-api/pkg/httputil"
	"github.com/mediflow/clinic-api/pkg/logger"
)

func newTestRouter(seed []model.Patient) *gin.Engine {
	gin.SetMode(gin.TestMode)
	backend := store.New[model.Patient, model.PatientPatch]("patient", seed, store.Options{})
	svc := patientService.NewService(backend, logger.NewLogger(nil))

	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, httputil.Response) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp httputil.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestPatientCRUDFlow(t *testing.T) {
	r := newTestRouter(nil)

	// Create
	w, resp := doRequest(t, r, http.MethodPost, "/api/v1/patients", map[string]any{
		"first_name":    "Jane",
		"last_name":     "Doe",
		"date_of_birth": "1990-04-12",
		"email":         "jane.doe@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, resp.Success)
	created := resp.Data.(map[string]any)
	assert.Equal(t, float64(1), created["Id"])

	// Get
	w, resp = doRequest(t, r, http.MethodGet, "/api/v1/patients/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := resp.Data.(map[string]any)
	assert.Equal(t, "Jane", got["first_name"])

	// Patch one field, the rest survives
	w, resp = doRequest(t, r, http.MethodPatch, "/api/v1/patients/1", map[string]any{
		"phone": "555-0100",
	})
	require.Equal(t, http.StatusOK, w.Code)
	patched := resp.Data.(map[string]any)
	assert.Equal(t, "555-0100", patched["phone"])
	assert.Equal(t, "Jane", patched["first_name"])

	// Delete returns the removed entity
	w, resp = doRequest(t, r, http.MethodDelete, "/api/v1/patients/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	removed := resp.Data.(map[string]any)
	assert.Equal(t, "Jane", removed["first_name"])

	// Gone now
	w, _ = doRequest(t, r, http.MethodGet, "/api/v1/patients/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPatientRejectsBadID(t *testing.T) {
	r := newTestRouter(nil)
	w, resp := doRequest(t, r, http.MethodGet, "/api/v1/patients/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "invalid record ID", resp.Error.Message)
}

func TestListPatientsSearch(t *testing.T) {
	r := newTestRouter([]model.Patient{
		{ID: 1, FirstName: "Jane", LastName: "Doe"},
		{ID: 2, FirstName: "Ravi", LastName: "Patel"},
	})

	w, resp := doRequest(t, r, http.MethodGet, "/api/v1/patients?search=patel", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := resp.Data.([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Ravi", items[0].(map[string]any)["first_name"])
}
