package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupCORSRouter(origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS(origins))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return r
}

func TestCORS(t *testing.T) {
	t.Run("AllowedOriginEchoed", func(t *testing.T) {
		r := setupCORSRouter([]string{"http://localhost:3000"})

		req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("UnknownOriginGetsNoHeader", func(t *testing.T) {
		r := setupCORSRouter([]string{"http://localhost:3000"})

		req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "http://evil.example.com")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("WildcardAllowsAny", func(t *testing.T) {
		r := setupCORSRouter([]string{"*"})

		req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "http://anything.example.com")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("PreflightShortCircuits", func(t *testing.T) {
		r := setupCORSRouter([]string{"http://localhost:3000"})

		req, _ := http.NewRequest(http.MethodOptions, "/ping", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
