package syncapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/mock"

	"github.com/footypool/footypool/internal/domain/fixture"
	"github.com/footypool/footypool/internal/infrastructure/repository/memory"
	fixturemock "github.com/footypool/footypool/internal/mocks/domain/fixture"
	"github.com/footypool/footypool/internal/platform/logging"
	"github.com/footypool/footypool/internal/usecase"
)

const testToken = "job-token-123"

func newTestServer(t *testing.T, fixtures []fixture.Fixture) (*httptest.Server, *memory.FixtureRepository) {
	t.Helper()

	repo := memory.NewFixtureRepository(fixtures)
	correlation := usecase.NewCorrelationService(repo, logging.NewNop())

	mux := http.NewServeMux()
	NewHandler(correlation, testToken, logging.NewNop()).Register(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, repo
}

func postSnapshots(t *testing.T, srv *httptest.Server, token, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/internal/sync/snapshots", strings.NewReader(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Internal-Job-Token", token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("post snapshots: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestHandleSnapshots_CorrelatesAndReportsCounts(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 7, 15, 0, 0, 0, time.UTC)
	srv, repo := newTestServer(t, []fixture.Fixture{
		{ID: "fx-1", Status: fixture.StatusUpcoming, ScheduledAt: now, HomeTeam: "Arsenal FC", AwayTeam: "Chelsea FC"},
	})

	resp := postSnapshots(t, srv, testToken, `{
		"snapshots": [
			{"external_id": 55, "home_team": "Arsenal", "away_team": "Chelsea", "status": "NS"}
		]
	}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var result usecase.CorrelationResult
	if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Correlated != 1 {
		t.Fatalf("unexpected correlated count: got=%d want=1", result.Correlated)
	}

	got, _ := repo.Get("fx-1")
	if got.ExternalID == nil || *got.ExternalID != 55 {
		t.Fatalf("external ref not stamped: %+v", got.ExternalID)
	}
}

func TestHandleSnapshots_RejectsBadToken(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, nil)

	resp := postSnapshots(t, srv, "wrong-token", `{"snapshots":[{"external_id":1,"home_team":"A","away_team":"B","status":"NS"}]}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	resp = postSnapshots(t, srv, "", `{"snapshots":[{"external_id":1,"home_team":"A","away_team":"B","status":"NS"}]}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}
}

func TestHandleSnapshots_RejectsInvalidPayload(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, nil)

	resp := postSnapshots(t, srv, testToken, `{"snapshots": []}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty snapshot list should be rejected, got %d", resp.StatusCode)
	}

	resp = postSnapshots(t, srv, testToken, `{"snapshots": [{"external_id": 0, "home_team": "A", "away_team": "B", "status": "NS"}]}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("zero external id should be rejected, got %d", resp.StatusCode)
	}

	resp = postSnapshots(t, srv, testToken, `{not json`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("malformed json should be rejected, got %d", resp.StatusCode)
	}
}

func TestHandleSnapshots_StoreFailureReportsUnavailable(t *testing.T) {
	t.Parallel()

	fixtureRepo := fixturemock.NewRepository(t)
	fixtureRepo.
		On("ListUnreconciled", mock.Anything).
		Return(nil, errors.New("connection reset")).
		Once()
	correlation := usecase.NewCorrelationService(fixtureRepo, logging.NewNop())

	mux := http.NewServeMux()
	NewHandler(correlation, testToken, logging.NewNop()).Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	resp := postSnapshots(t, srv, testToken, `{"snapshots":[{"external_id":1,"home_team":"A","away_team":"B","status":"NS"}]}`)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("store failure should map to 503, got %d", resp.StatusCode)
	}
}

func TestHandleSnapshots_RejectsGet(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/internal/sync/snapshots")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}
}
