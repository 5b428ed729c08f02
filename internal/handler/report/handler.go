package report

import (
	"github.com/gin-gonic/gin"

	reportService "github.com/mediflow/clinic-api/internal/service/report"
	"github.com/mediflow/clinic-api/pkg/httputil"
)

type Handler struct {
	service reportService.ReportServicer
}

func NewHandler(service reportService.ReportServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	reports := r.Group("/reports")
	{
		reports.GET("/summary", h.Summary)
		reports.GET("/overview", h.Overview)
	}
}

func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, summary)
}

func (h *Handler) Overview(c *gin.Context) {
	overview, err := h.service.Overview(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, overview)
}
