package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCreateCORSMiddleware(t *testing.T) {
	logger := discardLogger()

	assert.Nil(t, createCORSMiddleware(false, "http://localhost:5173", logger))
	assert.Nil(t, createCORSMiddleware(true, "", logger))
	assert.Nil(t, createCORSMiddleware(true, " , ", logger))
	assert.NotNil(t, createCORSMiddleware(true, "http://localhost:5173", logger))
}

func TestParseOrigins(t *testing.T) {
	assert.Nil(t, parseOrigins(""))
	assert.Equal(t,
		[]string{"http://localhost:5173", "https://attendance.example.edu"},
		parseOrigins(" http://localhost:5173 , https://attendance.example.edu,"))
}

func TestCORSIntegration_PreflightRequestHandled(t *testing.T) {
	router := gin.New()
	router.Use(createCORSMiddleware(true, "http://localhost:5173", discardLogger()))
	router.POST("/api/validate-qr", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"valid": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/validate-qr", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestCORSIntegration_UnknownOriginGetsNoHeaders(t *testing.T) {
	router := gin.New()
	router.Use(createCORSMiddleware(true, "http://localhost:5173", discardLogger()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	router.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
