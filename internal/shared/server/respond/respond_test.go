package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrorBodies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/plain", func(c *gin.Context) { Error(c, http.StatusBadRequest, "file is required", "") })
	router.GET("/detail", func(c *gin.Context) { Error(c, http.StatusInternalServerError, "Internal error", "boom") })
	router.GET("/raw", func(c *gin.Context) {
		ErrorWithRaw(c, http.StatusBadGateway, "LLM output did not match schema", "basics: required", "")
	})

	tests := []struct {
		path   string
		status int
		want   map[string]any
	}{
		{path: "/plain", status: http.StatusBadRequest, want: map[string]any{"error": "file is required"}},
		{path: "/detail", status: http.StatusInternalServerError, want: map[string]any{"error": "Internal error", "detail": "boom"}},
		{path: "/raw", status: http.StatusBadGateway, want: map[string]any{"error": "LLM output did not match schema", "detail": "basics: required", "raw": ""}},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if w.Code != tt.status {
			t.Fatalf("%s: expected %d, got %d", tt.path, tt.status, w.Code)
		}
		var got map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("%s: decode: %v", tt.path, err)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("%s: unexpected keys %v", tt.path, got)
		}
		for k, v := range tt.want {
			if got[k] != v {
				t.Fatalf("%s: %s = %v, want %v", tt.path, k, got[k], v)
			}
		}
	}
}
