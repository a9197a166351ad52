package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apphttp "casaora_backend/internal/http"
	"casaora_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

type stubRouterConfig struct{}

func (stubRouterConfig) GetJWTAccessSecret() string { return "test-secret" }
func (stubRouterConfig) GetHTTPAddr() string        { return ":0" }
func (stubRouterConfig) GetCORSAllowAll() bool      { return true }
func (stubRouterConfig) GetCORSOrigins() []string   { return nil }
func (stubRouterConfig) GetCORSAllowCreds() bool    { return false }

type stubHealth struct{ err error }

func (s stubHealth) Ping(ctx context.Context) error { return s.err }

type pingModule struct {
	registered bool
}

func (m *pingModule) Name() string { return "ping" }

func (m *pingModule) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.registered = true
	ctx.Protected.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})
}

func newTestApp(health apphttp.HealthChecker) (*apphttp.App, *pingModule) {
	gin.SetMode(gin.TestMode)
	module := &pingModule{}
	return &apphttp.App{
		Config:  stubRouterConfig{},
		Logger:  logger.New("test"),
		Health:  health,
		Modules: []apphttp.Module{module},
	}, module
}

func TestHealthEndpoint(t *testing.T) {
	app, _ := newTestApp(stubHealth{})
	engine := New(app)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Fatalf("body = %q, want it to report ok", rec.Body.String())
	}
}

func TestHealthEndpointDegraded(t *testing.T) {
	app, _ := newTestApp(stubHealth{err: context.DeadlineExceeded})
	engine := New(app)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestModuleRoutesRequireAuth(t *testing.T) {
	app, module := newTestApp(stubHealth{})
	engine := New(app)

	if !module.registered {
		t.Fatal("module routes were not registered")
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
