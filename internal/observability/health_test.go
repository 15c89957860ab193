package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/footypool/footypool/internal/platform/logging"
	"github.com/footypool/footypool/internal/usecase"
)

type staticStatus struct {
	status usecase.LoopStatus
}

func (s staticStatus) Status() usecase.LoopStatus { return s.status }

func TestHealthServer_StatusEndpoint(t *testing.T) {
	t.Parallel()

	source := staticStatus{status: usecase.LoopStatus{
		LastPassAt:   time.Date(2026, time.March, 7, 15, 0, 0, 0, time.UTC),
		LastWentLive: 2,
		PassCount:    7,
	}}
	hs := NewHealthServer(":0", source, func() bool { return true }, logging.NewNop())

	srv := httptest.NewServer(hs.server.Handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/status")
	if err != nil {
		t.Fatalf("get status: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type: %q", ct)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	var payload healthPayload
	if err := sonic.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if !payload.Leader {
		t.Fatal("expected leader=true")
	}
	if payload.Loop.LastWentLive != 2 || payload.Loop.PassCount != 7 {
		t.Fatalf("unexpected loop snapshot: %+v", payload.Loop)
	}
}

func TestHealthServer_StatusReportsStandby(t *testing.T) {
	t.Parallel()

	hs := NewHealthServer(":0", staticStatus{}, func() bool { return false }, logging.NewNop())

	srv := httptest.NewServer(hs.server.Handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/status")
	if err != nil {
		t.Fatalf("get status: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	var payload healthPayload
	if err := sonic.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Leader {
		t.Fatal("standby instance must not report leader=true")
	}
}

func TestShouldTraceRequest(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/healthz", "/HEALTH", " /readyz ", "/livez"} {
		if shouldTraceRequest(path) {
			t.Fatalf("liveness path %q should not be traced", path)
		}
	}
	if !shouldTraceRequest("/internal/sync/snapshots") {
		t.Fatal("snapshot ingestion should be traced")
	}
	if !shouldTraceRequest("/status") {
		t.Fatal("status endpoint should be traced")
	}
}

func TestHealthServer_Healthz(t *testing.T) {
	t.Parallel()

	hs := NewHealthServer(":0", staticStatus{}, func() bool { return false }, logging.NewNop())
	srv := httptest.NewServer(hs.server.Handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("get healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}
}
