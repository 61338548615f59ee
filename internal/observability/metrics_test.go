package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/spec-kit/nexa-sys/internal/domain"
	apperrors "github.com/spec-kit/nexa-sys/pkg/util"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/api/users", http.MethodGet, 200, 10*time.Millisecond)
	m.RecordRequest("/api/users", http.MethodGet, 200, 5*time.Millisecond)
	m.RecordError("/api/users", http.MethodGet, "FORBIDDEN")
	m.RecordTaskTransition(domain.TaskStatusCompleted, domain.TaskStatusApproved)
	m.RecordLogin(LoginFailed)

	if got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/api/users", "200")); got != 2 {
		t.Fatalf("expected 2 requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.errors.WithLabelValues(http.MethodGet, "/api/users", "FORBIDDEN")); got != 1 {
		t.Fatalf("expected 1 error, got %v", got)
	}
	if got := testutil.ToFloat64(m.transitions.WithLabelValues("completada", "aprobada")); got != 1 {
		t.Fatalf("expected 1 transition, got %v", got)
	}
	if got := testutil.ToFloat64(m.logins.WithLabelValues(LoginFailed)); got != 1 {
		t.Fatalf("expected 1 failed login, got %v", got)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", http.MethodGet, 200, time.Millisecond)
	m.RecordError("/", http.MethodGet, "X")
	m.RecordTaskTransition(domain.TaskStatusPending, domain.TaskStatusInProgress)
	m.RecordLogin(LoginSucceeded)
}

func TestMetricsEndpointAndRequestLogger(t *testing.T) {
	m := NewMetrics()
	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop(), m))
	app.Get("/metrics", m.Handler())
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	app.Get("/denied", func(c *fiber.Ctx) error { return apperrors.NewForbidden("no") })

	for _, path := range []string{"/ping", "/denied"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		if err != nil {
			t.Fatalf("request %s: %v", path, err)
		}
		resp.Body.Close()
	}

	if got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/ping", "200")); got != 1 {
		t.Fatalf("expected /ping to be counted, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/denied", "403")); got != 1 {
		t.Fatalf("expected /denied to be counted as 403, got %v", got)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if err != nil {
		t.Fatalf("metrics request: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "nexa_http_requests_total") {
		t.Fatalf("metrics output missing request counter")
	}
}
