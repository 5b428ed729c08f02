// Package remote translates record store operations onto the table
// backend's batched request/response conventions. Reads degrade to
// empty results on failure, writes normalize the backend's per-record
// success flags into the store contract.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/mediflow/clinic-api/pkg/circuitbreaker"
	"github.com/mediflow/clinic-api/pkg/logger"
	"github.com/mediflow/clinic-api/pkg/metrics"
)

// Params is the request shape every backend operation takes: a field
// projection for reads, identifier lists for deletes, record payloads
// for writes.
type Params struct {
	Fields    []Field          `json:"fields,omitempty"`
	RecordIDs []int            `json:"RecordIds,omitempty"`
	Records   []map[string]any `json:"records,omitempty"`
}

// Field declares one projected column, optionally through a reference.
type Field struct {
	Field          FieldName `json:"field"`
	ReferenceField *Field    `json:"referenceField,omitempty"`
}

type FieldName struct {
	Name string `json:"Name"`
}

// Col builds a plain field projection entry.
func Col(name string) Field {
	return Field{Field: FieldName{Name: name}}
}

// Ref builds a reference field projection resolved through the
// referenced row's Name column.
func Ref(name string) Field {
	return Field{Field: FieldName{Name: name}, ReferenceField: &Field{Field: FieldName{Name: "Name"}}}
}

// Envelope is the backend's response shape. Single reads carry Data,
// batch writes carry per-record Results.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Results []Result        `json:"results"`
}

type Result struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type Config struct {
	BaseURL   string
	ProjectID string
	PublicKey string
	Timeout   time.Duration
	CacheTTL  time.Duration
}

// Client is the low-level wire client shared by the per-table
// adapters. Fetches are cached for a short TTL and invalidated by any
// write to the same table; all calls go through a circuit breaker.
type Client struct {
	cfg     Config
	http    *http.Client
	breaker *circuitbreaker.CircuitBreaker
	cache   *gocache.Cache
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewClient(cfg Config, log *logger.Logger, m *metrics.Metrics) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 30 * time.Second
	}
	if log == nil {
		log = logger.NewLogger(nil)
	}
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		breaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{Name: "remote"}),
		cache:   gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		log:     log.WithComponent("remote"),
		metrics: m,
	}
}

// FetchRecords reads the full table with the given projection.
func (c *Client) FetchRecords(ctx context.Context, table string, params Params) (*Envelope, error) {
	key := "fetch:" + table
	if cached, ok := c.cache.Get(key); ok {
		c.countCache(table, true)
		return cached.(*Envelope), nil
	}
	c.countCache(table, false)

	env, err := c.call(ctx, table, "fetch", fmt.Sprintf("%s/api/tables/%s/fetch", c.cfg.BaseURL, table), params)
	if err != nil {
		return nil, err
	}
	if env.Success {
		c.cache.Set(key, env, gocache.DefaultExpiration)
	}
	return env, nil
}

// GetRecordByID reads a single record with the given projection.
func (c *Client) GetRecordByID(ctx context.Context, table string, id int, params Params) (*Envelope, error) {
	return c.call(ctx, table, "get", fmt.Sprintf("%s/api/tables/%s/records/%d", c.cfg.BaseURL, table, id), params)
}

// CreateRecord issues a batch create.
func (c *Client) CreateRecord(ctx context.Context, table string, params Params) (*Envelope, error) {
	c.invalidate(table)
	return c.call(ctx, table, "create", fmt.Sprintf("%s/api/tables/%s/create", c.cfg.BaseURL, table), params)
}

// UpdateRecord issues a batch update.
func (c *Client) UpdateRecord(ctx context.Context, table string, params Params) (*Envelope, error) {
	c.invalidate(table)
	return c.call(ctx, table, "update", fmt.Sprintf("%s/api/tables/%s/update", c.cfg.BaseURL, table), params)
}

// DeleteRecord issues a batch delete by identifier list.
func (c *Client) DeleteRecord(ctx context.Context, table string, params Params) (*Envelope, error) {
	c.invalidate(table)
	return c.call(ctx, table, "delete", fmt.Sprintf("%s/api/tables/%s/delete", c.cfg.BaseURL, table), params)
}

func (c *Client) call(ctx context.Context, table, op, url string, params Params) (*Envelope, error) {
	start := time.Now()
	var env Envelope

	err := c.breaker.Execute(func() error {
		body, err := json.Marshal(params)
		if err != nil {
			return fmt.Errorf("failed to encode params: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Project-Id", c.cfg.ProjectID)
		req.Header.Set("X-Public-Key", c.cfg.PublicKey)

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	})

	c.observe(table, op, start, err == nil && env.Success)
	if err != nil {
		return nil, err
	}
	return &env, nil
}

func (c *Client) invalidate(table string) {
	c.cache.Delete("fetch:" + table)
}

func (c *Client) observe(table, op string, start time.Time, ok bool) {
	if c.metrics == nil {
		return
	}
	status := "ok"
	if !ok {
		status = "error"
	}
	c.metrics.RemoteRequests.WithLabelValues(table, op, status).Inc()
	c.metrics.RemoteLatency.WithLabelValues(table, op).Observe(time.Since(start).Seconds())
}

func (c *Client) countCache(table string, hit bool) {
	if c.metrics == nil {
		return
	}
	if hit {
		c.metrics.CacheHits.WithLabelValues(table).Inc()
	} else {
		c.metrics.CacheMisses.WithLabelValues(table).Inc()
	}
}

func (c *Client) countDegraded(table string) {
	if c.metrics != nil {
		c.metrics.RemoteDegraded.WithLabelValues(table).Inc()
	}
}

// splitResults partitions batch results into successes and failures.
// Failures are diagnostic only: callers log them and return the first
// success, they never surface the failed subset as a structured error.
func splitResults(results []Result) (ok, failed []Result) {
	for _, r := range results {
		if r.Success {
			ok = append(ok, r)
		} else {
			failed = append(failed, r)
		}
	}
	return ok, failed
}
