package syncapi

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/footypool/footypool/internal/domain/matching"
	"github.com/footypool/footypool/internal/platform/logging"
	"github.com/footypool/footypool/internal/usecase"
)

const maxSnapshotBodyBytes = 1 << 20

// snapshotItem is the wire shape pushed by the score collaborator. Raw
// provider status codes pass through untouched.
type snapshotItem struct {
	ExternalID int64  `json:"external_id" validate:"required,gt=0"`
	HomeTeam   string `json:"home_team" validate:"required"`
	AwayTeam   string `json:"away_team" validate:"required"`
	Status     string `json:"status" validate:"required"`
	HomeScore  *int   `json:"home_score"`
	AwayScore  *int   `json:"away_score"`
}

type snapshotRequest struct {
	Snapshots []snapshotItem `json:"snapshots" validate:"required,min=1,dive"`
}

// Handler accepts pre-fetched provider snapshots and feeds them to the
// correlation pass. Fetching from providers stays with the collaborator
// that owns provider credentials and payload quirks.
type Handler struct {
	correlation *usecase.CorrelationService
	token       string
	logger      *logging.Logger
	validator   *validator.Validate
}

func NewHandler(correlation *usecase.CorrelationService, token string, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		correlation: correlation,
		token:       strings.TrimSpace(token),
		logger:      logger,
		validator:   validator.New(),
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/internal/sync/snapshots", h.handleSnapshots)
}

func (h *Handler) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !h.authorized(r) {
		writeError(w, http.StatusUnauthorized, "invalid internal job token")
		return
	}

	var req snapshotRequest
	body := http.MaxBytesReader(w, r.Body, maxSnapshotBodyBytes)
	if err := sonic.ConfigDefault.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed snapshot payload")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snapshots := make([]matching.ExternalFixture, 0, len(req.Snapshots))
	for _, item := range req.Snapshots {
		snapshots = append(snapshots, matching.ExternalFixture{
			ExternalID: item.ExternalID,
			HomeTeam:   item.HomeTeam,
			AwayTeam:   item.AwayTeam,
			Status:     item.Status,
			HomeScore:  item.HomeScore,
			AwayScore:  item.AwayScore,
		})
	}

	result, err := h.correlation.ApplySnapshots(r.Context(), snapshots)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, usecase.ErrDependencyUnavailable):
			h.logger.ErrorContext(r.Context(), "snapshot correlation lost the store", "error", err)
			writeError(w, http.StatusServiceUnavailable, "store unavailable")
		default:
			h.logger.ErrorContext(r.Context(), "snapshot correlation failed", "error", err)
			writeError(w, http.StatusInternalServerError, "correlation failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) authorized(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	provided := strings.TrimSpace(r.Header.Get("X-Internal-Job-Token"))
	return subtle.ConstantTimeCompare([]byte(provided), []byte(h.token)) == 1
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
