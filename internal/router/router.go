package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/mediflow/clinic-api/internal/middleware"
)

// Handler is anything that can mount its routes on a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimitEnabled  bool
	RequestsPerSecond float64
	Burst             int
	MetricsEnabled    bool
	MetricsPath       string
	CORS              middleware.CORSConfig
}

type Router struct {
	engine   *gin.Engine
	cfg      Config
	handlers []Handler
	healthH  Handler
	metrics  *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

func NewRouter(cfg Config, healthH Handler, handlers ...Handler) *Router {
	return &Router{
		engine:   gin.New(),
		cfg:      cfg,
		handlers: handlers,
		healthH:  healthH,
		metrics:  newRouterMetrics(),
	}
}

func newRouterMetrics() *routerMetrics {
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"method", "path", "status"}),
		requestTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
	}
}

// Setup wires middleware and mounts every handler under /api/v1.
func (r *Router) Setup() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger())
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.cfg.CORS))
	if r.cfg.RateLimitEnabled {
		r.engine.Use(middleware.RateLimit(rate.Limit(r.cfg.RequestsPerSecond), r.cfg.Burst))
	}
	r.engine.Use(r.observe)

	if r.cfg.MetricsEnabled {
		path := r.cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.engine.GET(path, gin.WrapH(promhttp.Handler()))
	}

	r.healthH.RegisterRoutes(r.engine.Group(""))

	api := r.engine.Group("/api/v1")
	for _, h := range r.handlers {
		h.RegisterRoutes(api)
	}
}

func (r *Router) observe(c *gin.Context) {
	start := time.Now()
	c.Next()

	path := c.FullPath()
	if path == "" {
		path = "unmatched"
	}
	status := strconv.Itoa(c.Writer.Status())
	r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
