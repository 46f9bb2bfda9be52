package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupBodyRouter(limit int64) (*gin.Engine, *bool) {
	gin.SetMode(gin.TestMode)

	handlerRan := false
	router := gin.New()
	router.POST("/submit", BodySizeLimiter(limit), func(c *gin.Context) {
		handlerRan = true
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router, &handlerRan
}

func TestBodySizeLimiterRejectsOversizedBody(t *testing.T) {
	router, handlerRan := setupBodyRouter(10)

	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(strings.Repeat("x", 100)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected status %d, got %d", http.StatusRequestEntityTooLarge, w.Code)
	}

	if *handlerRan {
		t.Error("handler ran despite the body exceeding the limit")
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not a single JSON document: %v", err)
	}

	if body["error"] != "Request body size exceeds limit" {
		t.Errorf("unexpected error message %q", body["error"])
	}
}

func TestBodySizeLimiterAllowsSmallBody(t *testing.T) {
	router, handlerRan := setupBodyRouter(1024)

	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(`{"a":1}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	if !*handlerRan {
		t.Error("handler did not run for a body within the limit")
	}
}
