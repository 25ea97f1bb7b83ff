package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/healthlinkai/healthlink/internal/model"
	"github.com/healthlinkai/healthlink/internal/providers"
	"github.com/healthlinkai/healthlink/internal/rules"
	"github.com/healthlinkai/healthlink/internal/triage"
	"github.com/healthlinkai/healthlink/internal/usage"
	"github.com/healthlinkai/healthlink/internal/wellness"
)

const testRulesDoc = `
keyword_mappings:
  fever:
    - fever
  cough:
    - cough
red_flag_terms:
  - condition: Severe Neurological Emergency
    terms: [severe headache]
    risk_score: 95
symptom_rules:
  - symptoms: [fever, cough]
    conditions:
      - name: Influenza (Flu)
        probability: 0.8
        risk_score: 45
risk_bands:
  low:
    range: [0, 30]
    message: Low risk
  medium:
    range: [31, 60]
    message: Medium risk
  high:
    range: [61, 89]
    message: High risk
  emergency:
    range: [90, 100]
    message: Emergency
`

// newTestServer builds the full middleware stack over a handler with no
// persistence or alerting, returning the rule file path for reload tests.
func newTestServer(t *testing.T, freeLimits map[string]int) (http.Handler, string) {
	t.Helper()

	rulesPath := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(rulesPath, []byte(testRulesDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	ruleStore, err := rules.NewStore(rulesPath)
	if err != nil {
		t.Fatalf("load rules: %v", err)
	}

	handler := NewHandler(
		triage.NewChecker(ruleStore),
		wellness.NewResponder(ruleStore, nil),
		providers.NewDirectory(nil),
		usage.NewMeter(freeLimits, []string{"premium-user"}),
		ruleStore,
		nil,
		nil,
	)
	limiter := NewIPRateLimiter(1000, 1000)
	return NewServeMux(handler, limiter, "*"), rulesPath
}

func defaultLimits() map[string]int {
	return map[string]int{
		model.FeatureSymptomCheck:   5,
		model.FeatureMindwellChat:   10,
		model.FeatureProviderLookup: 3,
	}
}

func doJSON(t *testing.T, mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Healthz(t *testing.T) {
	mux, _ := newTestServer(t, defaultLimits())

	rec := doJSON(t, mux, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_Symptoms(t *testing.T) {
	mux, _ := newTestServer(t, defaultLimits())

	rec := doJSON(t, mux, http.MethodPost, "/api/symptoms", `{"text": "fever and cough"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var a model.Assessment
	if err := json.Unmarshal(rec.Body.Bytes(), &a); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if a.RiskBand != "medium" {
		t.Errorf("expected medium band, got %q", a.RiskBand)
	}
	if len(a.Conditions) == 0 {
		t.Error("expected matched conditions")
	}
}

func TestHandler_SymptomsRedFlag(t *testing.T) {
	mux, _ := newTestServer(t, defaultLimits())

	rec := doJSON(t, mux, http.MethodPost, "/api/symptoms",
		`{"text": "I have a severe headache and can't stop vomiting"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var a model.Assessment
	if err := json.Unmarshal(rec.Body.Bytes(), &a); err != nil {
		t.Fatal(err)
	}
	if !a.Emergency || a.RiskBand != "emergency" || a.RiskScore != 95 {
		t.Errorf("expected emergency assessment, got %+v", a)
	}
}

func TestHandler_SymptomsEmpty(t *testing.T) {
	mux, _ := newTestServer(t, defaultLimits())

	rec := doJSON(t, mux, http.MethodPost, "/api/symptoms", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No symptoms provided") {
		t.Errorf("unexpected error body: %s", rec.Body.String())
	}
}

func TestHandler_SymptomsInvalidJSON(t *testing.T) {
	mux, _ := newTestServer(t, defaultLimits())

	rec := doJSON(t, mux, http.MethodPost, "/api/symptoms", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandler_SymptomsUsageLimit(t *testing.T) {
	mux, _ := newTestServer(t, map[string]int{model.FeatureSymptomCheck: 2})

	for i := 0; i < 2; i++ {
		rec := doJSON(t, mux, http.MethodPost, "/api/symptoms", `{"text": "fever"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("call %d: expected 200, got %d", i+1, rec.Code)
		}
	}

	rec := doJSON(t, mux, http.MethodPost, "/api/symptoms", `{"text": "fever"}`)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after limit, got %d", rec.Code)
	}

	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if !body.UpgradeRequired || body.CurrentPlan != usage.PlanFree {
		t.Errorf("expected upgrade prompt, got %+v", body)
	}
}

func TestHandler_PremiumBypassesLimit(t *testing.T) {
	mux, _ := newTestServer(t, map[string]int{model.FeatureSymptomCheck: 1})

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/symptoms", strings.NewReader(`{"text": "fever"}`))
		req.Header.Set("X-User-ID", "premium-user")
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("premium call %d: expected 200, got %d", i+1, rec.Code)
		}
	}
}

func TestHandler_Mindwell(t *testing.T) {
	mux, _ := newTestServer(t, defaultLimits())

	rec := doJSON(t, mux, http.MethodPost, "/api/mindwell",
		`{"message": "I feel so anxious about my exam tomorrow"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var turn model.ConversationTurn
	if err := json.Unmarshal(rec.Body.Bytes(), &turn); err != nil {
		t.Fatal(err)
	}
	if len(turn.IntentsDetected) == 0 || turn.IntentsDetected[0] != "anxiety" {
		t.Errorf("expected anxiety intent first, got %v", turn.IntentsDetected)
	}
}

func TestHandler_MindwellEmptyMessage(t *testing.T) {
	mux, _ := newTestServer(t, defaultLimits())

	rec := doJSON(t, mux, http.MethodPost, "/api/mindwell", `{"message": ""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Message is required") {
		t.Errorf("unexpected error body: %s", rec.Body.String())
	}
}

func TestHandler_Providers(t *testing.T) {
	mux, _ := newTestServer(t, defaultLimits())

	rec := doJSON(t, mux, http.MethodGet, "/api/providers?lat=4.05&lng=9.76&limit=3", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Providers []model.RankedProvider `json:"providers"`
		Count     int                    `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Count != 3 || len(body.Providers) != 3 {
		t.Errorf("expected 3 providers, got %d", body.Count)
	}
}

func TestHandler_ProvidersMissingCoords(t *testing.T) {
	mux, _ := newTestServer(t, defaultLimits())

	rec := doJSON(t, mux, http.MethodGet, "/api/providers?lat=4.05", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without lng, got %d", rec.Code)
	}
}

func TestHandler_Usage(t *testing.T) {
	mux, _ := newTestServer(t, defaultLimits())

	doJSON(t, mux, http.MethodPost, "/api/symptoms", `{"text": "fever"}`)

	rec := doJSON(t, mux, http.MethodGet, "/api/usage", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Plan     string                 `json:"plan"`
		Features map[string]usage.Check `json:"features"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Plan != usage.PlanFree {
		t.Errorf("expected free plan, got %q", body.Plan)
	}
	if body.Features[model.FeatureSymptomCheck].Current != 1 {
		t.Errorf("expected 1 recorded use, got %+v", body.Features)
	}
}

func TestHandler_ReloadRules(t *testing.T) {
	mux, rulesPath := newTestServer(t, defaultLimits())

	rec := doJSON(t, mux, http.MethodPost, "/api/rules/reload", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Corrupt the document; reload must fail without breaking the engine.
	if err := os.WriteFile(rulesPath, []byte("{{{"), 0o644); err != nil {
		t.Fatal(err)
	}
	rec = doJSON(t, mux, http.MethodPost, "/api/rules/reload", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for corrupt rules, got %d", rec.Code)
	}

	// The previous rule set stays active.
	rec = doJSON(t, mux, http.MethodPost, "/api/symptoms", `{"text": "fever and cough"}`)
	if rec.Code != http.StatusOK {
		t.Errorf("expected engine to keep working after failed reload, got %d", rec.Code)
	}
}

func TestHandler_RequestIDHeader(t *testing.T) {
	mux, _ := newTestServer(t, defaultLimits())

	rec := doJSON(t, mux, http.MethodGet, "/healthz", "")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID response header")
	}
}

func TestHandler_CORSPreflight(t *testing.T) {
	mux, _ := newTestServer(t, defaultLimits())

	req := httptest.NewRequest(http.MethodOptions, "/api/symptoms", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS headers on preflight")
	}
}
