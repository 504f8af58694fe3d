package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequestStats_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stats := NewRequestStats()

	router := gin.New()
	router.Use(stats.Middleware("1.2.3"))
	router.GET("/events/:id", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"id": c.Param("id")}) })

	for _, path := range []string{"/events/a", "/events/b", "/missing"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, "1.2.3", w.Header().Get("X-API-Version"))
		if path != "/missing" {
			assert.NotEmpty(t, w.Header().Get("X-Process-Time"))
		}
	}

	snap := stats.Snapshot()
	assert.Equal(t, int64(3), snap.TotalRequests)
	assert.Equal(t, int64(2), snap.ByRoute["GET /events/:id"])
	assert.Equal(t, int64(1), snap.ByRoute["GET unmatched"])
	assert.Equal(t, int64(2), snap.ByStatus["200"])
	assert.Equal(t, int64(1), snap.ByStatus["404"])
}
