package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imgoedu/imgo-backend/internal/config"
	"github.com/imgoedu/imgo-backend/internal/dataset"
	"github.com/imgoedu/imgo-backend/internal/handler"
	"github.com/imgoedu/imgo-backend/internal/middleware"
	"github.com/imgoedu/imgo-backend/internal/model"
	"github.com/imgoedu/imgo-backend/internal/router"
	"github.com/imgoedu/imgo-backend/internal/service"
	"github.com/imgoedu/imgo-backend/internal/store"
	"github.com/imgoedu/imgo-backend/internal/validator"
)

const testAdminToken = "admin-demo"

func newTestAPI(t *testing.T) (*gin.Engine, store.Store, *config.Config) {
	t.Helper()
	validator.Setup()

	dir := t.TempDir()
	log := zerolog.Nop()
	st := store.NewFileStore(filepath.Join(dir, "db.json"), log)

	cfg := &config.Config{
		GinMode:     gin.TestMode,
		AdminToken:  testAdminToken,
		DatasetFile: filepath.Join(dir, "universities.json"),
	}

	eventService := service.NewEventService(st, log)
	leadService := service.NewLeadService(st, log)
	agreementService := service.NewAgreementService(st, log)
	metricsService := service.NewMetricsService(st, log)
	insightsService := service.NewInsightsService(cfg.DatasetFile, log)

	handlers := &router.Handlers{
		Event:     handler.NewEventHandler(eventService),
		Lead:      handler.NewLeadHandler(leadService),
		Agreement: handler.NewAgreementHandler(agreementService),
		Metrics:   handler.NewMetricsHandler(metricsService),
		Insights:  handler.NewInsightsHandler(insightsService),
		System:    handler.NewSystemHandler(cfg.DatasetFile),
	}

	return router.SetupRouter(handlers, cfg), st, cfg
}

func do(t *testing.T, r *gin.Engine, method, path, body, token string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.HeaderAdminToken, token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]any
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &parsed)
	}
	return w, parsed
}

func TestHealth(t *testing.T) {
	r, _, _ := newTestAPI(t)

	w, body := do(t, r, http.MethodGet, "/api/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["ok"])
	assert.NotEmpty(t, body["time"])
}

func TestRecordEvent(t *testing.T) {
	r, _, _ := newTestAPI(t)

	w, body := do(t, r, http.MethodPost, "/api/events",
		`{"sessionId":"s1","name":"page_view","props":{"path":"/"}}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["ok"])
}

func TestRecordEventMissingFields(t *testing.T) {
	r, _, _ := newTestAPI(t)

	w, body := do(t, r, http.MethodPost, "/api/events", `{"name":"page_view"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "missing sessionId/name", body["error"])
}

func TestSubmitLeadMissingEmail(t *testing.T) {
	r, _, _ := newTestAPI(t)

	w, body := do(t, r, http.MethodPost, "/api/leads",
		`{"universityId":"uni-a","consent":true}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "missing email/universityId/consent", body["error"])
}

func TestSubmitLeadMissingConsent(t *testing.T) {
	r, _, _ := newTestAPI(t)

	w, body := do(t, r, http.MethodPost, "/api/leads",
		`{"universityId":"uni-a","email":"a@b.co","consent":false}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["ok"])
}

func TestSubmitLeadCreatesAgreement(t *testing.T) {
	r, st, _ := newTestAPI(t)

	w, body := do(t, r, http.MethodPost, "/api/leads",
		`{"universityId":"uni-a","email":"a@b.co","consent":true,"name":"Ana"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["ok"])

	db, err := st.Read(t.Context())
	require.NoError(t, err)
	require.Len(t, db.Leads, 1)
	assert.Equal(t, "a@b.co", db.Leads[0].Email)
	require.Len(t, db.Agreements, 1)
	assert.Equal(t, service.StageLead, db.Agreements[0].Stage)
	assert.Equal(t, "uni-a", db.Agreements[0].UniversityID)
	assert.Equal(t, "Auto-creado por lead", db.Agreements[0].Notes)
}

func TestListLeadsRequiresToken(t *testing.T) {
	r, _, _ := newTestAPI(t)

	w, body := do(t, r, http.MethodGet, "/api/leads", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "unauthorized", body["error"])

	w, _ = do(t, r, http.MethodGet, "/api/leads", "", "wrong-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListLeadsMostRecentFirst(t *testing.T) {
	r, _, _ := newTestAPI(t)

	for _, email := range []string{"uno@x.co", "dos@x.co"} {
		w, _ := do(t, r, http.MethodPost, "/api/leads",
			`{"universityId":"uni-a","email":"`+email+`","consent":true}`, "")
		require.Equal(t, http.StatusOK, w.Code)
	}

	w, body := do(t, r, http.MethodGet, "/api/leads", "", testAdminToken)
	require.Equal(t, http.StatusOK, w.Code)

	leads, ok := body["leads"].([]any)
	require.True(t, ok)
	require.Len(t, leads, 2)
	first := leads[0].(map[string]any)
	assert.Equal(t, "dos@x.co", first["email"])
}

func TestAgreementsFlow(t *testing.T) {
	r, _, _ := newTestAPI(t)

	w, _ := do(t, r, http.MethodPost, "/api/agreements",
		`{"universityId":"uni-a","stage":"Negociación","notes":"llamada inicial"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body := do(t, r, http.MethodPost, "/api/agreements",
		`{"universityId":"uni-a","stage":"Negociación","notes":"llamada inicial"}`, testAdminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["ok"])

	w, body = do(t, r, http.MethodGet, "/api/agreements", "", testAdminToken)
	require.Equal(t, http.StatusOK, w.Code)
	agreements, ok := body["agreements"].([]any)
	require.True(t, ok)
	require.Len(t, agreements, 1)
	assert.Equal(t, "Negociación", agreements[0].(map[string]any)["stage"])
}

func TestCreateAgreementMissingUniversity(t *testing.T) {
	r, _, _ := newTestAPI(t)

	w, body := do(t, r, http.MethodPost, "/api/agreements", `{"stage":"Lead"}`, testAdminToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "missing universityId", body["error"])
}

func TestMetrics(t *testing.T) {
	r, _, _ := newTestAPI(t)

	events := []string{
		`{"sessionId":"s1","name":"page_view"}`,
		`{"sessionId":"s1","name":"search"}`,
		`{"sessionId":"s2","name":"page_view"}`,
		`{"sessionId":"s2","name":"search"}`,
		`{"sessionId":"s2","name":"open_institution"}`,
	}
	for _, e := range events {
		w, _ := do(t, r, http.MethodPost, "/api/events", e, "")
		require.Equal(t, http.StatusOK, w.Code)
	}

	w, body := do(t, r, http.MethodGet, "/api/metrics", "", testAdminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["ok"])

	totals := body["totals"].(map[string]any)
	assert.EqualValues(t, 2, totals["uniqueUsers"])
	assert.EqualValues(t, 2, totals["pageViews"])

	funnel := body["funnel"].([]any)
	require.Len(t, funnel, 4)
	search := funnel[0].(map[string]any)
	assert.Equal(t, "search", search["step"])
	assert.EqualValues(t, 2, search["users"])

	lastEvents := body["lastEvents"].([]any)
	assert.Len(t, lastEvents, len(events))
}

func TestMetricsRequiresToken(t *testing.T) {
	r, _, _ := newTestAPI(t)

	w, body := do(t, r, http.MethodGet, "/api/metrics", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthorized", body["error"])
}

func TestMethodNotAllowed(t *testing.T) {
	r, _, _ := newTestAPI(t)

	w, body := do(t, r, http.MethodDelete, "/api/leads", "", testAdminToken)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "method_not_allowed", body["error"])
}

func TestInsights(t *testing.T) {
	r, _, cfg := newTestAPI(t)

	unis := []model.Institution{
		{
			ID:   "uni-a",
			Name: "Uni A",
			Type: model.TypePrivada,
			Programs: []model.Program{
				{ID: "p1", Title: "Derecho", Area: "Derecho", Level: "Pregrado", Modality: "Presencial", TuitionCOPYear: 8000000},
			},
		},
	}
	require.NoError(t, dataset.Save(cfg.DatasetFile, unis))

	w, _ := do(t, r, http.MethodGet, "/api/insights", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body := do(t, r, http.MethodGet, "/api/insights", "", testAdminToken)
	require.Equal(t, http.StatusOK, w.Code)

	institutions, ok := body["institutions"].([]any)
	require.True(t, ok)
	require.Len(t, institutions, 1)
	entry := institutions[0].(map[string]any)
	assert.Equal(t, "uni-a", entry["id"])
	assert.NotEmpty(t, entry["label"])

	score := entry["score"].(float64)
	assert.GreaterOrEqual(t, score, 7.0)
	assert.LessOrEqual(t, score, 9.9)
}

func TestUniversitiesNotBuilt(t *testing.T) {
	r, _, _ := newTestAPI(t)

	w, body := do(t, r, http.MethodGet, "/api/universities", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "dataset_not_built", body["error"])
	assert.Equal(t, "public, max-age=300", w.Header().Get("Cache-Control"))
}

func TestPublicWritesAreRateLimited(t *testing.T) {
	r, _, _ := newTestAPI(t)

	payload := `{"sessionId":"s1","name":"page_view"}`
	for i := 0; i < 30; i++ {
		w, _ := do(t, r, http.MethodPost, "/api/events", payload, "")
		require.Equal(t, http.StatusOK, w.Code, "request %d", i)
	}

	w, body := do(t, r, http.MethodPost, "/api/events", payload, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "rate_limit_exceeded", body["error"])
}
