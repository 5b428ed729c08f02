package calendar

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediflow/clinic-api/internal/model"
	appointmentService "github.com/mediflow/clinic-api/internal/service/appointment"
	"github.com/mediflow/clinic-api/internal/store"
	"github.com/mediflow/clinic-api/pkg/logger"
)

func newTestRouter(seed []model.Appointment) *gin.Engine {
	gin.SetMode(gin.TestMode)
	backend := store.New[model.Appointment, model.AppointmentPatch]("appointment", seed, store.Options{})
	svc := appointmentService.NewService(backend, logger.NewLogger(nil))

	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func get(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestMonthGridEndpoint(t *testing.T) {
	r := newTestRouter([]model.Appointment{
		{ID: 1, Date: "2024-06-10", PatientName: "Jane Doe"},
		{ID: 2, Date: "2024-06-10", PatientName: "Ravi Patel"},
		{ID: 3, Date: "2024-06-24", PatientName: "Li Wei"},
	})

	w, resp := get(t, r, "/api/v1/calendar/month?month=2024-06")
	require.Equal(t, http.StatusOK, w.Code)

	data := resp["data"].(map[string]any)
	assert.Equal(t, "2024-06", data["month"])
	cells := data["cells"].([]any)
	require.Len(t, cells, 30)

	tenth := cells[9].(map[string]any)
	assert.Equal(t, float64(2), tenth["count"])
	assert.Equal(t, "2024-06-10", tenth["date"])
}

func TestMonthGridRejectsBadMonth(t *testing.T) {
	r := newTestRouter(nil)
	w, resp := get(t, r, "/api/v1/calendar/month?month=June")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestDayEndpoint(t *testing.T) {
	r := newTestRouter([]model.Appointment{
		{ID: 1, Date: "2024-06-10"},
		{ID: 2, Date: "2024-06-11"},
	})

	w, resp := get(t, r, "/api/v1/calendar/day?date=2024-06-10")
	require.Equal(t, http.StatusOK, w.Code)

	data := resp["data"].(map[string]any)
	appointments := data["appointments"].([]any)
	require.Len(t, appointments, 1)
	assert.Equal(t, float64(1), appointments[0].(map[string]any)["Id"])
}
