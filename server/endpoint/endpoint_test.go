package endpoint

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/transcriptor/component"
)

func serve(h gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", h)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/", http.NoBody))
	return rr
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		components []component.Health
		wantCode   int
		wantStatus string
	}{
		{"no checker components", nil, http.StatusOK, "healthy"},
		{"all healthy", []component.Health{{Name: "engine", Status: component.StatusHealthy}}, http.StatusOK, "healthy"},
		{"degraded", []component.Health{
			{Name: "engine", Status: component.StatusHealthy},
			{Name: "telemetry", Status: component.StatusDegraded},
		}, http.StatusOK, "degraded"},
		{"unhealthy", []component.Health{{Name: "engine", Status: component.StatusUnhealthy}}, http.StatusServiceUnavailable, "unhealthy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(Health("transcriptor", func(context.Context) []component.Health { return tt.components }))
			if rr.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rr.Code)
			}
			var body map[string]any
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body["status"] != tt.wantStatus {
				t.Errorf("expected status %q, got %v", tt.wantStatus, body["status"])
			}
		})
	}
}

func TestHealthNilChecker(t *testing.T) {
	if rr := serve(Health("transcriptor", nil)); rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestInfo(t *testing.T) {
	rr := serve(Info("transcriptor"))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["service"] != "transcriptor" || body["version"] == nil || body["uptime"] == nil {
		t.Errorf("unexpected info body %v", body)
	}
}
