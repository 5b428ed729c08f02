package record

import (
	"github.com/gin-gonic/gin"

	"github.com/mediflow/clinic-api/internal/handler"
	"github.com/mediflow/clinic-api/internal/model"
	recordService "github.com/mediflow/clinic-api/internal/service/record"
	"github.com/mediflow/clinic-api/pkg/errors"
	"github.com/mediflow/clinic-api/pkg/httputil"
)

type Handler struct {
	service recordService.RecordServicer
}

func NewHandler(service recordService.RecordServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	records := r.Group("/records")
	{
		records.GET("", h.ListRecords)
		records.GET("/:id", h.GetRecord)
		records.POST("", h.CreateRecord)
		records.PATCH("/:id", h.UpdateRecord)
		records.DELETE("/:id", h.DeleteRecord)
	}
}

func (h *Handler) ListRecords(c *gin.Context) {
	snap, err := h.service.ListRecords(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSnapshot(c, snap.Items, snap.Degraded)
}

func (h *Handler) GetRecord(c *gin.Context) {
	id, err := handler.ParseID(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	rec, err := h.service.GetRecord(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rec)
}

func (h *Handler) CreateRecord(c *gin.Context) {
	var req model.MedicalRecord
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}
	created, err := h.service.CreateRecord(c.Request.Context(), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, created)
}

func (h *Handler) UpdateRecord(c *gin.Context) {
	id, err := handler.ParseID(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	var patch model.MedicalRecordPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error(), err))
		return
	}
	updated, err := h.service.UpdateRecord(c.Request.Context(), id, patch)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, updated)
}

func (h *Handler) DeleteRecord(c *gin.Context) {
	id, err := handler.ParseID(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	removed, err := h.service.DeleteRecord(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, removed)
}
