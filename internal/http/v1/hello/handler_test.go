package hello

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	applog "github.com/janisto/greeting-function/internal/platform/logging"
	"github.com/janisto/greeting-function/internal/platform/metrics"
	appmiddleware "github.com/janisto/greeting-function/internal/platform/middleware"
	"github.com/janisto/greeting-function/internal/platform/respond"
)

func newTestRouter(rec *metrics.Recorder) chi.Router {
	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	api := humachi.New(router, huma.DefaultConfig("HelloTest", "test"))
	Register(api, rec)
	return router
}

func TestGetReturnsDescriptorVerbatim(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, Path, nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "hello-get")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}
	if body := resp.Body.String(); body != `{"message":"Hello, world!"}` {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestGetIgnoresAcceptHeader(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, Path, nil)
	req.Header.Set("Accept", "application/cbor")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if ct := resp.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected descriptor content type, got %s", ct)
	}
	var payload map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if payload["message"] != "Hello, world!" {
		t.Fatalf("unexpected message %q", payload["message"])
	}
}

func TestGetRecordsInvocation(t *testing.T) {
	reg := prometheus.NewRegistry()
	router := newTestRouter(metrics.New(reg))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, Path, nil))

	count, err := testutil.GatherAndCount(reg, "greeting_invocations_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one invocation series, got %d", count)
	}
}

func TestOpenAPIDescribesGreeting(t *testing.T) {
	router := chi.NewRouter()
	api := humachi.New(router, huma.DefaultConfig("HelloTest", "test"))
	Register(api, nil)

	op := api.OpenAPI().Paths[Path].Get
	if op == nil || op.OperationID != "get-hello" {
		t.Fatalf("expected get-hello operation, got %+v", op)
	}
	if _, ok := op.Responses["200"].Content["application/json"]; !ok {
		t.Fatalf("expected application/json response content")
	}
}
