package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/healthlinkai/healthlink/internal/alert"
	"github.com/healthlinkai/healthlink/internal/logging"
	"github.com/healthlinkai/healthlink/internal/model"
	"github.com/healthlinkai/healthlink/internal/providers"
	"github.com/healthlinkai/healthlink/internal/rules"
	"github.com/healthlinkai/healthlink/internal/store"
	"github.com/healthlinkai/healthlink/internal/triage"
	"github.com/healthlinkai/healthlink/internal/usage"
	"github.com/healthlinkai/healthlink/internal/wellness"
)

const auditTimeout = 5 * time.Second

// Handler implements the HealthLink API endpoints.
type Handler struct {
	checker   *triage.Checker
	responder *wellness.Responder
	directory *providers.Directory
	meter     *usage.Meter
	ruleStore *rules.Store
	audit     *store.Mongo     // nil when persistence is disabled
	alerts    *alert.Publisher // nil when alerting is disabled
}

// NewHandler wires the engine and its collaborators into an API handler.
// audit and alerts may be nil.
func NewHandler(checker *triage.Checker, responder *wellness.Responder, directory *providers.Directory,
	meter *usage.Meter, ruleStore *rules.Store, audit *store.Mongo, alerts *alert.Publisher) *Handler {
	return &Handler{
		checker:   checker,
		responder: responder,
		directory: directory,
		meter:     meter,
		ruleStore: ruleStore,
		audit:     audit,
		alerts:    alerts,
	}
}

// Healthz responds to liveness probes.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type symptomsRequest struct {
	Text     string   `json:"text"`
	Selected []string `json:"selected"`
}

// Symptoms handles POST /api/symptoms.
func (h *Handler) Symptoms(w http.ResponseWriter, r *http.Request) {
	var req symptomsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
		return
	}

	userID := userID(r)
	if !h.allow(w, userID, model.FeatureSymptomCheck) {
		return
	}

	assessment, err := h.checker.Analyze(req.Text, req.Selected)
	if err != nil {
		if errors.Is(err, triage.ErrNoSymptoms) {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
			return
		}
		slog.ErrorContext(r.Context(), "analyze failed",
			"request_id", logging.RequestID(r.Context()), "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
		return
	}

	// Audit and alerting are fire-and-forget: the response never waits on
	// them and their failures are only logged.
	go h.auditAssessment(userID, req, assessment)

	writeJSON(w, http.StatusOK, assessment)
}

type mindwellRequest struct {
	Message string `json:"message"`
}

// Mindwell handles POST /api/mindwell.
func (h *Handler) Mindwell(w http.ResponseWriter, r *http.Request) {
	var req mindwellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
		return
	}
	if req.Message == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Message is required"})
		return
	}

	userID := userID(r)
	if !h.allow(w, userID, model.FeatureMindwellChat) {
		return
	}

	turn := h.responder.Reply(req.Message)

	go h.auditSession(userID, req.Message, turn)

	writeJSON(w, http.StatusOK, turn)
}

// Providers handles GET /api/providers.
func (h *Handler) Providers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(q.Get("lng"), 64)
	if errLat != nil || errLng != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "lat and lng are required"})
		return
	}

	if !h.allow(w, userID(r), model.FeatureProviderLookup) {
		return
	}

	limit := 5
	if raw := q.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	ranked := h.directory.Nearest(lat, lng, q.Get("type"), limit)
	writeJSON(w, http.StatusOK, map[string]any{
		"providers": ranked,
		"count":     len(ranked),
	})
}

// Usage handles GET /api/usage.
func (h *Handler) Usage(w http.ResponseWriter, r *http.Request) {
	id := userID(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"plan":     h.meter.Plan(id),
		"features": h.meter.Summary(id),
	})
}

// ReloadRules handles POST /api/rules/reload: re-reads the rule base and
// swaps it in atomically. In-flight requests keep their snapshot.
func (h *Handler) ReloadRules(w http.ResponseWriter, r *http.Request) {
	if err := h.ruleStore.Reload(); err != nil {
		slog.ErrorContext(r.Context(), "rule reload failed",
			"request_id", logging.RequestID(r.Context()), "error", err)
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: fmt.Sprintf("reload failed: %v", err)})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reloaded"})
}

// allow enforces the daily usage limit, writing the 429 response itself when
// the limit is exhausted.
func (h *Handler) allow(w http.ResponseWriter, userID, feature string) bool {
	if h.meter == nil {
		return true
	}
	check := h.meter.Allow(userID, feature)
	if check.Allowed {
		return true
	}
	writeJSON(w, http.StatusTooManyRequests, errorBody{
		Error:           "Usage limit exceeded",
		Message:         fmt.Sprintf("Daily limit of %d reached for %s. Upgrade to Premium for unlimited access.", check.Limit, feature),
		CurrentPlan:     check.Plan,
		UpgradeRequired: true,
	})
	return false
}

func (h *Handler) auditAssessment(userID string, req symptomsRequest, a *model.Assessment) {
	ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
	defer cancel()

	if h.audit != nil {
		if err := h.audit.SaveAssessment(ctx, userID, req.Text, req.Selected, a); err != nil {
			slog.Error("assessment audit failed", "error", err)
		}
	}
	if h.alerts != nil && a.Emergency {
		ev := alert.Event{
			Kind:      "emergency",
			UserID:    userID,
			RiskBand:  a.RiskBand,
			RiskScore: a.RiskScore,
			Timestamp: a.Timestamp,
		}
		if err := h.alerts.Publish(ctx, alert.KeyEmergency, ev); err != nil {
			slog.Error("emergency alert publish failed", "error", err)
		}
	}
}

func (h *Handler) auditSession(userID, message string, turn *model.ConversationTurn) {
	ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
	defer cancel()

	if h.audit != nil {
		if err := h.audit.SaveSession(ctx, userID, message, turn); err != nil {
			slog.Error("session audit failed", "error", err)
		}
	}
	if h.alerts != nil && turn.AlertFlag {
		ev := alert.Event{
			Kind:      "flagged_session",
			UserID:    userID,
			Intents:   turn.IntentsDetected,
			Crisis:    turn.CrisisDetected,
			Timestamp: turn.Timestamp,
		}
		if err := h.alerts.Publish(ctx, alert.KeySession, ev); err != nil {
			slog.Error("session alert publish failed", "error", err)
		}
	}
}

// userID identifies the caller for metering and audit. Anonymous callers
// share one bucket.
func userID(r *http.Request) string {
	if id := r.Header.Get("X-User-ID"); id != "" {
		return id
	}
	return "anonymous"
}
