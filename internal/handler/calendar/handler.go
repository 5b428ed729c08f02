package calendar

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mediflow/clinic-api/internal/calendar"
	"github.com/mediflow/clinic-api/internal/model"
	appointmentService "github.com/mediflow/clinic-api/internal/service/appointment"
	"github.com/mediflow/clinic-api/pkg/errors"
	"github.com/mediflow/clinic-api/pkg/httputil"
)

const monthLayout = "2006-01"

type Handler struct {
	service appointmentService.AppointmentServicer
}

func NewHandler(service appointmentService.AppointmentServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	cal := r.Group("/calendar")
	{
		cal.GET("/month", h.MonthGrid)
		cal.GET("/day", h.Day)
	}
}

type monthResponse struct {
	Month    string          `json:"month"`
	Cells    []calendar.Cell `json:"cells"`
	Degraded bool            `json:"degraded,omitempty"`
}

// MonthGrid buckets the appointment snapshot into the monthly grid.
// The month query parameter defaults to the current month.
func (h *Handler) MonthGrid(c *gin.Context) {
	ref := time.Now()
	if raw := c.Query("month"); raw != "" {
		parsed, err := time.Parse(monthLayout, raw)
		if err != nil {
			httputil.RespondWithError(c, errors.Validation("invalid month, expected YYYY-MM", err))
			return
		}
		ref = parsed
	}

	snap, err := h.service.ListAppointments(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSnapshot(c, monthResponse{
		Month: ref.Format(monthLayout),
		Cells: calendar.MonthGrid(snap.Items, ref),
	}, snap.Degraded)
}

// Day returns the selected-day view. The date query parameter defaults
// to today.
func (h *Handler) Day(c *gin.Context) {
	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(model.DateLayout, raw)
		if err != nil {
			httputil.RespondWithError(c, errors.Validation("invalid date, expected YYYY-MM-DD", err))
			return
		}
		day = parsed
	}

	snap, err := h.service.ListAppointments(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSnapshot(c, calendar.Day(snap.Items, day), snap.Degraded)
}
