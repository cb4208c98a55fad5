package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"motogear-backend/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func limitedRouter(r rate.Limit, burst int) *gin.Engine {
	router := gin.New()
	router.POST("/login", middleware.RateLimit(r, burst), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return router
}

func doLogin(r *gin.Engine, remoteAddr string) int {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitExhaustsBurst(t *testing.T) {
	// Refill slow enough that the burst is all a single test sees.
	r := limitedRouter(rate.Every(time.Hour), 2)

	assert.Equal(t, http.StatusOK, doLogin(r, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, doLogin(r, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, doLogin(r, "10.0.0.1:1234"))
}

func TestRateLimitPerIP(t *testing.T) {
	r := limitedRouter(rate.Every(time.Hour), 1)

	assert.Equal(t, http.StatusOK, doLogin(r, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, doLogin(r, "10.0.0.1:1234"))

	// A different client keeps its own bucket.
	assert.Equal(t, http.StatusOK, doLogin(r, "10.0.0.2:1234"))
}
