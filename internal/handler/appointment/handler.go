package appointment

import (
	"github.com/gin-gonic/gin"

	"github.com/mediflow/clinic-api/internal/handler"
	"github.com/mediflow/clinic-api/internal/model"
	appointmentService "github.com/mediflow/clinic-api/internal/service/appointment"
	"github.com/mediflow/clinic-api/pkg/errors"
	"github.com/mediflow/clinic-api/pkg/httputil"
)

type Handler struct {
	service appointmentService.AppointmentServicer
}

func NewHandler(service appointmentService.AppointmentServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.POST("", h.CreateAppointment)
		appointments.PATCH("/:id", h.UpdateAppointment)
		appointments.DELETE("/:id", h.DeleteAppointment)
	}
}

func (h *Handler) ListAppointments(c *gin.Context) {
	snap, err := h.service.ListAppointments(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSnapshot(c, snap.Items, snap.Degraded)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := handler.ParseID(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	appt, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appt)
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.Appointment
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}
	created, err := h.service.CreateAppointment(c.Request.Context(), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, created)
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, err := handler.ParseID(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	var patch model.AppointmentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}
	updated, err := h.service.UpdateAppointment(c.Request.Context(), id, patch)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, updated)
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	id, err := handler.ParseID(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	removed, err := h.service.DeleteAppointment(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, removed)
}
