package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	analyticsrepository "github.com/smallbiznis/dentalpay/internal/analytics/repository"
	analyticsservice "github.com/smallbiznis/dentalpay/internal/analytics/service"
	"github.com/smallbiznis/dentalpay/internal/clock"
	"github.com/smallbiznis/dentalpay/internal/config"
	contactdomain "github.com/smallbiznis/dentalpay/internal/contact/domain"
	contactrepository "github.com/smallbiznis/dentalpay/internal/contact/repository"
	contactservice "github.com/smallbiznis/dentalpay/internal/contact/service"
	ledgerrepository "github.com/smallbiznis/dentalpay/internal/emailledger/repository"
	ledgerservice "github.com/smallbiznis/dentalpay/internal/emailledger/service"
	"github.com/smallbiznis/dentalpay/internal/migration"
	"github.com/smallbiznis/dentalpay/internal/observability"
	salaryrepository "github.com/smallbiznis/dentalpay/internal/salary/repository"
	salaryservice "github.com/smallbiznis/dentalpay/internal/salary/service"
	"github.com/smallbiznis/dentalpay/internal/seed"
	specialtydomain "github.com/smallbiznis/dentalpay/internal/specialty/domain"
	specialtyrepository "github.com/smallbiznis/dentalpay/internal/specialty/repository"
	specialtyservice "github.com/smallbiznis/dentalpay/internal/specialty/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testServer struct {
	engine *gin.Engine
	db     *gorm.DB
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(conn))

	node, err := snowflake.NewNode(3)
	require.NoError(t, err)
	clk := clock.NewFakeClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	log := zap.NewNop()
	survey := config.NewStaticSurveyConfigHolder(config.DefaultSurveyConfig())

	ledger := ledgerservice.New(ledgerservice.Params{
		DB:    conn,
		Log:   log,
		GenID: node,
		Clock: clk,
		Repo:  ledgerrepository.Provide(),
	})
	salaryRepo := salaryrepository.Provide()

	engine := NewEngine(observability.Config{Environment: "test"}, nil, []string{"*"})
	NewServer(ServerParams{
		Gin: engine,
		Log: log,
		SalarySvc: salaryservice.New(salaryservice.Params{
			DB:     conn,
			Log:    log,
			GenID:  node,
			Clock:  clk,
			Repo:   salaryRepo,
			Ledger: ledger,
			Survey: survey,
		}),
		AnalyticsSvc: analyticsservice.New(analyticsservice.Params{
			DB:         conn,
			Log:        log,
			Repo:       analyticsrepository.Provide(),
			SalaryRepo: salaryRepo,
			Survey:     survey,
		}),
		SpecialtySvc: specialtyservice.New(specialtyservice.Params{
			DB:     conn,
			Log:    log,
			Repo:   specialtyrepository.Provide(),
			Survey: survey,
		}),
		ContactSvc: contactservice.New(contactservice.Params{
			DB:     conn,
			Log:    log,
			GenID:  node,
			Clock:  clk,
			Repo:   contactrepository.Provide(),
			Ledger: ledger,
		}),
	})

	return testServer{engine: engine, db: conn}
}

func (s testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch v := body.(type) {
		case string:
			buf.WriteString(v)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(v))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func submission(specialty string, base float64) map[string]any {
	return map[string]any{
		"specialty":         specialty,
		"state":             "CA",
		"practiceSetting":   "Private Practice",
		"base_salary":       base,
		"hoursWorked":       40,
		"yearsOfExperience": 5,
		"satisfactionLevel": 4,
		"chooseSpecialty":   "Yes",
		"email":             "dentist@example.com",
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestSubmitSalaryCreatesRecord(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/salary/submit-salary", submission("Orthodontics", 200000))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Orthodontics", body["specialty"])
	assert.Equal(t, "4", body["satisfactionLevel"])
	assert.Equal(t, "yes", body["would_choose_specialty_again"])
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	w = s.do(t, http.MethodGet, "/api/salary/salary-count", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":1}`, w.Body.String())
}

func TestSubmitSalaryValidationError(t *testing.T) {
	s := newTestServer(t)

	payload := submission("", 200000)
	w := s.do(t, http.MethodPost, "/api/salary/submit-salary", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode(t, w)
	assert.Equal(t, "invalid specialty", body["error"])
	assert.Equal(t, "validation_error", body["type"])
	errs, ok := body["errors"].([]any)
	require.True(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "specialty", errs[0].(map[string]any)["field"])
}

func TestSubmitSalaryRejectsNonScalarSatisfaction(t *testing.T) {
	s := newTestServer(t)

	payload := submission("Orthodontics", 200000)
	payload["satisfactionLevel"] = true
	w := s.do(t, http.MethodPost, "/api/salary/submit-salary", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid satisfaction", decode(t, w)["error"])
}

func TestSubmitSalaryWrongFieldType(t *testing.T) {
	s := newTestServer(t)

	payload := submission("Orthodontics", 200000)
	payload["base_salary"] = "lots"
	w := s.do(t, http.MethodPost, "/api/salary/submit-salary", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid base_salary", decode(t, w)["error"])
}

func TestSubmitSalaryMalformedJSON(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/salary/submit-salary", "{not json")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid request", decode(t, w)["error"])
}

func TestSearchSalariesAcceptsSpecialityAlias(t *testing.T) {
	s := newTestServer(t)
	for _, base := range []float64{100000, 200000} {
		w := s.do(t, http.MethodPost, "/api/salary/submit-salary", submission("Orthodontics", base))
		require.Equal(t, http.StatusCreated, w.Code)
	}
	w := s.do(t, http.MethodPost, "/api/salary/submit-salary", submission("Endodontics", 150000))
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodGet, "/api/salary/search-salaries?speciality=Orthodontics", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.EqualValues(t, 2, body["total"])
	overall, ok := body["overallSummary"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 150000, overall["avgBaseSalary"])
	assert.EqualValues(t, 2, body["totalParsed"])
}

func TestListSalariesRejectsBadPagination(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/salary/all-salaries?page=0", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	errs := body["errors"].([]any)
	assert.Equal(t, "invalid_page", errs[0].(map[string]any)["code"])

	w = s.do(t, http.MethodGet, "/api/salary/all-salaries?limit=abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListSalariesRejectsInvertedRange(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/salary/all-salaries?minSalary=200000&maxSalary=100000", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "minSalary must not exceed maxSalary", decode(t, w)["error"])

	w = s.do(t, http.MethodGet, "/api/salary/all-salaries?minSalary=ten", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListSalariesPaginates(t *testing.T) {
	s := newTestServer(t)
	for i := 0; i < 3; i++ {
		w := s.do(t, http.MethodPost, "/api/salary/submit-salary", submission("Orthodontics", float64(100000+i)))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := s.do(t, http.MethodGet, "/api/salary/all-salaries?limit=2&page=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 3, body["total"])
	assert.EqualValues(t, 2, body["totalPages"])
	assert.Len(t, body["data"], 1)
}

func TestCompensationAnalysisRejectsBadAmount(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/salary/compensation-analysis?specialty=Orthodontics&amount=abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid amount", decode(t, w)["error"])

	w = s.do(t, http.MethodGet, "/api/salary/compensation-analysis?compensation=100000", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid specialty", decode(t, w)["error"])
}

func TestStatsBySpecialityUnknownIsZeroValued(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/salary/stats-by-speciality?specialty=unknown-thing", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decode(t, w)["submissionCount"])
}

func TestSpecialityEndpoints(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, seed.EnsureSpecialties(s.db))

	var seeded int64
	require.NoError(t, s.db.Model(&specialtydomain.SpecialtyEntry{}).Count(&seeded).Error)

	w := s.do(t, http.MethodGet, "/api/speciality/all", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, int(seeded))

	w = s.do(t, http.MethodGet, "/api/speciality/?key=ORTHO", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var found []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &found))
	require.NotEmpty(t, found)
	for _, entry := range found {
		assert.Equal(t, "Orthodontics", entry["speciality"])
		assert.Equal(t, "orthodontics", entry["slug"])
	}
}

func TestContactStoresExtraFieldsAsMetadata(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/contact", map[string]any{
		"name":    "Dr. Smile",
		"email":   "smile@example.com",
		"message": "hello",
		"source":  "footer",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, map[string]any{"source": "footer"}, body["metadata"])

	var stored contactdomain.ContactMessage
	require.NoError(t, s.db.First(&stored).Error)
	assert.Equal(t, "footer", stored.Metadata["source"])
}

func TestFeedbackRequiresCategory(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/feedback", map[string]any{
		"name":  "Dr. Smile",
		"email": "smile@example.com",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid category", decode(t, w)["error"])
}

func TestUnknownRouteReturnsNotFound(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/nope", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not found", decode(t, w)["error"])
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/salary/submit-salary", nil)
	req.Header.Set("Origin", "https://dentalpay.example")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSRestrictedOrigins(t *testing.T) {
	engine := NewEngine(observability.Config{}, nil, []string{"https://allowed.example"})
	engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	for origin, want := range map[string]string{
		"https://allowed.example": "https://allowed.example",
		"https://other.example":   "",
	} {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, want, w.Header().Get("Access-Control-Allow-Origin"))
	}
}
