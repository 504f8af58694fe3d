package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	processTimeHeader = "X-Process-Time"
	apiVersionHeader  = "X-API-Version"
)

// RequestStats counts served requests for the /api/stats endpoint.
type RequestStats struct {
	mu        sync.Mutex
	startedAt time.Time
	total     int64
	byStatus  map[int]int64
	byRoute   map[string]int64
}

type StatsSnapshot struct {
	UptimeSeconds int64            `json:"uptime_seconds"`
	TotalRequests int64            `json:"total_requests"`
	ByStatus      map[string]int64 `json:"by_status"`
	ByRoute       map[string]int64 `json:"by_route"`
}

func NewRequestStats() *RequestStats {
	return &RequestStats{
		startedAt: time.Now(),
		byStatus:  make(map[int]int64),
		byRoute:   make(map[string]int64),
	}
}

// Middleware sets X-Process-Time and X-API-Version and records the request.
func (s *RequestStats) Middleware(apiVersion string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header(apiVersionHeader, apiVersion)
		c.Writer = &timedWriter{ResponseWriter: c.Writer, start: time.Now()}

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		s.record(c.Request.Method+" "+route, c.Writer.Status())
	}
}

func (s *RequestStats) record(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total++
	s.byStatus[status]++
	s.byRoute[route]++
}

func (s *RequestStats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := StatsSnapshot{
		UptimeSeconds: int64(time.Since(s.startedAt).Seconds()),
		TotalRequests: s.total,
		ByStatus:      make(map[string]int64, len(s.byStatus)),
		ByRoute:       make(map[string]int64, len(s.byRoute)),
	}
	for code, n := range s.byStatus {
		snap.ByStatus[strconv.Itoa(code)] = n
	}
	for route, n := range s.byRoute {
		snap.ByRoute[route] = n
	}
	return snap
}

// timedWriter stamps X-Process-Time just before the headers go out.
type timedWriter struct {
	gin.ResponseWriter
	start   time.Time
	stamped bool
}

func (w *timedWriter) stamp() {
	if w.stamped || w.ResponseWriter.Written() {
		return
	}
	w.stamped = true
	w.Header().Set(processTimeHeader, strconv.FormatFloat(time.Since(w.start).Seconds(), 'f', 6, 64))
}

func (w *timedWriter) WriteHeader(code int) {
	w.stamp()
	w.ResponseWriter.WriteHeader(code)
}

func (w *timedWriter) WriteHeaderNow() {
	w.stamp()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *timedWriter) Write(data []byte) (int, error) {
	w.stamp()
	return w.ResponseWriter.Write(data)
}

func (w *timedWriter) WriteString(s string) (int, error) {
	w.stamp()
	return w.ResponseWriter.WriteString(s)
}
