package observability

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/footypool/footypool/internal/platform/logging"
	"github.com/footypool/footypool/internal/usecase"
)

// StatusSource exposes the latest loop snapshot for the health listener.
type StatusSource interface {
	Status() usecase.LoopStatus
}

type healthPayload struct {
	Status string             `json:"status"`
	Leader bool               `json:"leader"`
	Loop   usecase.LoopStatus `json:"loop"`
	Now    time.Time          `json:"now"`
}

// HealthServer is a small plaintext-port sidecar: liveness for the
// supervisor plus a JSON snapshot of the loop for humans.
type HealthServer struct {
	server *http.Server
	logger *logging.Logger
}

func NewHealthServer(addr string, source StatusSource, isLeader func() bool, logger *logging.Logger, mounts ...func(*http.ServeMux)) *HealthServer {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		payload := healthPayload{
			Status: "ok",
			Leader: isLeader(),
			Loop:   source.Status(),
			Now:    time.Now().UTC(),
		}

		buf := bytebufferpool.Get()
		defer bytebufferpool.Put(buf)

		if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
			http.Error(w, "encode status", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	})

	for _, mount := range mounts {
		mount(mux)
	}

	handler := otelhttp.NewHandler(mux, "footypool-http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return shouldTraceRequest(r.URL.Path)
		}),
	)

	return &HealthServer{
		server: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start runs the listener in the background. Listener failures are logged,
// not fatal: losing the health port must not take the scheduler down.
func (h *HealthServer) Start() {
	go func() {
		h.logger.Info("health listener starting", "addr", h.server.Addr)
		if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.logger.Error("health listener failed", "error", err)
		}
	}()
}

func (h *HealthServer) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// Liveness probes fire every few seconds; tracing them drowns the real
// snapshot ingestion spans.
func shouldTraceRequest(path string) bool {
	switch strings.ToLower(strings.TrimSpace(path)) {
	case "/healthz", "/health", "/livez", "/readyz":
		return false
	default:
		return true
	}
}
