package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Sizer reports how many records a store currently holds. Readiness
// only requires the seeded stores to exist, there is no database to
// ping.
type Sizer interface {
	Len() int
}

type Handler struct {
	stores map[string]Sizer
}

func NewHandler(stores map[string]Sizer) *Handler {
	return &Handler{stores: stores}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	health := r.Group("/health")
	{
		health.GET("/live", h.LivenessCheck)
		health.GET("/ready", h.ReadinessCheck)
	}
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

func (h *Handler) ReadinessCheck(c *gin.Context) {
	sizes := gin.H{}
	for kind, s := range h.stores {
		sizes[kind] = s.Len()
	}
	c.JSON(http.StatusOK, gin.H{"status": "UP", "records": sizes})
}
