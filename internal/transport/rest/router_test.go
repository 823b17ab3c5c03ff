package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"mindwell/internal/model"
	"mindwell/internal/service"
)

type noRevocations struct{}

func (noRevocations) Revoke(context.Context, string, time.Duration) error { return nil }
func (noRevocations) IsRevoked(context.Context, string) (bool, error)     { return false, nil }

const testSecret = "router-secret"

func bearer(t *testing.T, role model.Role) string {
	t.Helper()
	claims := &model.UserClaims{
		UserID: "u-" + string(role),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + s
}

func testRouter(origins string) http.Handler {
	return NewRouter(&Container{
		AuthService: service.NewAuthService(nil, noRevocations{}, testSecret, time.Hour, nil),
		CORSOrigins: origins,
	})
}

func TestRouteGuards(t *testing.T) {
	r := testRouter("*")

	tests := []struct {
		name   string
		method string
		path   string
		role   model.Role
		want   int
	}{
		{"reports need a token", http.MethodGet, "/v1/reports/risk-distribution", "", http.StatusUnauthorized},
		{"reports are staff only", http.MethodGet, "/v1/reports/critical-cases", model.RoleStudent, http.StatusForbidden},
		{"trends are staff only", http.MethodGet, "/v1/reports/risk-trends", model.RoleStudent, http.StatusForbidden},
		{"draft is student only", http.MethodGet, "/v1/assessments/draft", model.RoleAdmin, http.StatusForbidden},
		{"submit is student only", http.MethodPost, "/v1/assessments", model.RoleHealthProfessional, http.StatusForbidden},
		{"history needs a token", http.MethodGet, "/v1/assessments", "", http.StatusUnauthorized},
		{"logout needs a token", http.MethodPost, "/v1/auth/logout", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.role != "" {
				req.Header.Set("Authorization", bearer(t, tt.role))
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestHealthAndSwagger(t *testing.T) {
	r := testRouter("*")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("swagger status = %d", rec.Code)
	}
	var doc struct {
		Info  map[string]string          `json:"info"`
		Paths map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("swagger doc is not JSON: %v", err)
	}
	if doc.Info["title"] != "MindWell API" {
		t.Errorf("title = %q", doc.Info["title"])
	}
	if _, ok := doc.Paths["/v1/assessments"]; !ok {
		t.Error("assessments path missing from doc")
	}
}

func TestCORS(t *testing.T) {
	r := testRouter("https://app.example.edu, https://staff.example.edu")

	req := httptest.NewRequest(http.MethodOptions, "/v1/assessments", nil)
	req.Header.Set("Origin", "https://staff.example.edu")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("preflight status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://staff.example.edu" {
		t.Errorf("allow origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unlisted origin got allow origin %q", got)
	}
}
