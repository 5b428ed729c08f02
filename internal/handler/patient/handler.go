package patient

import (
	"github.com/gin-gonic/gin"

	"github.com/mediflow/clinic-api/internal/handler"
	"github.com/mediflow/clinic-api/internal/model"
	patientService "github.com/mediflow/clinic-api/internal/service/patient"
	"github.com/mediflow/clinic-api/pkg/errors"
	"github.com/mediflow/clinic-api/pkg/httputil"
)

type Handler struct {
	service patientService.PatientServicer
}

func NewHandler(service patientService.PatientServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.GET("", h.ListPatients)
		patients.GET("/:id", h.GetPatient)
		patients.POST("", h.CreatePatient)
		patients.PATCH("/:id", h.UpdatePatient)
		patients.DELETE("/:id", h.DeletePatient)
	}
}

func (h *Handler) ListPatients(c *gin.Context) {
	snap, err := h.service.ListPatients(c.Request.Context(), c.Query("search"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSnapshot(c, snap.Items, snap.Degraded)
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, err := handler.ParseID(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	patient, err := h.service.GetPatient(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, patient)
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req model.Patient
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}
	created, err := h.service.CreatePatient(c.Request.Context(), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, created)
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	id, err := handler.ParseID(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	var patch model.PatientPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}
	updated, err := h.service.UpdatePatient(c.Request.Context(), id, patch)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, updated)
}

func (h *Handler) DeletePatient(c *gin.Context) {
	id, err := handler.ParseID(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	removed, err := h.service.DeletePatient(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, removed)
}
