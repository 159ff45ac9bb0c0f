package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BorisDmv/portfolio-api/internal/config"
	"github.com/BorisDmv/portfolio-api/internal/handlers"
	"github.com/BorisDmv/portfolio-api/internal/memory"
	"github.com/BorisDmv/portfolio-api/internal/middleware"
	"github.com/BorisDmv/portfolio-api/internal/models"
	"github.com/BorisDmv/portfolio-api/internal/repository"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:               "0",
		Env:                "test",
		LogFormat:          "text",
		CorsAllowedOrigins: []string{"*"},
		TokenTTL:           time.Hour,
		LoginRateLimit:     100,
		MaxBodyBytes:       1 << 20,
	}
}

type server struct {
	t       *testing.T
	handler http.Handler
	store   *memory.Store
}

func newServer(t *testing.T, cfg *config.Config, repos *repository.Set) *server {
	t.Helper()
	store := memory.NewStore()
	set := store.Repositories()
	if repos != nil {
		set = *repos
	}
	limiter := middleware.NewRateLimiter(cfg.LoginRateLimit, time.Minute)
	t.Cleanup(limiter.Stop)
	return &server{
		t:     t,
		store: store,
		handler: handlers.NewRouter(handlers.Deps{
			Config:       cfg,
			Repos:        set,
			Schema:       store,
			LoginLimiter: limiter,
		}),
	}
}

func (s *server) do(method, target, body string, headers ...string) *httptest.ResponseRecorder {
	s.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

const projectA = `{"title": "A", "date": "2024-01", "category": "Web Development", "description": "d"}`

func TestProjectLifecycle(t *testing.T) {
	srv := newServer(t, testConfig(), nil)

	rec := srv.do(http.MethodPost, "/api/projects", projectA)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Positive(t, created.ID)
	assert.Equal(t, "A", created.Title)
	assert.False(t, created.CreatedAt.IsZero())

	rec = srv.do(http.MethodGet, "/api/projects", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, "Web Development", list[0].Category)

	target := "/api/projects?id=" + jsonID(created.ID)
	rec = srv.do(http.MethodPut, target,
		`{"title": "A2", "date": "2024-02", "category": "Web", "description": "d2", "featured": true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "A2", updated.Title)
	assert.True(t, updated.Featured)

	rec = srv.do(http.MethodDelete, target, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = srv.do(http.MethodDelete, target, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = srv.do(http.MethodGet, "/api/projects", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func jsonID(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func TestListOrderedBySortKey(t *testing.T) {
	srv := newServer(t, testConfig(), nil)

	for _, period := range []string{"2018", "2023", "2020"} {
		rec := srv.do(http.MethodPost, "/api/volunteering",
			`{"role": "r", "organization": "o", "description": "d", "period": "`+period+`"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := srv.do(http.MethodGet, "/api/volunteering", "")
	var list []models.VolunteeringRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 3)
	assert.Equal(t, []string{"2023", "2020", "2018"}, []string{list[0].Period, list[1].Period, list[2].Period})
}

func TestValidationErrors(t *testing.T) {
	srv := newServer(t, testConfig(), nil)

	rec := srv.do(http.MethodPost, "/api/blogs", `{"title": "t"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.CodeValidation, resp.Code)
	assert.Equal(t, "required", resp.Fields["author"])

	rec = srv.do(http.MethodPost, "/api/projects",
		`{"title": "A", "date": "2024", "category": "c", "description": "d", "featured": "yes"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(http.MethodPost, "/api/achievements",
		`{"title": "t", "description": "d", "date": "2024", "type": "medal"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(http.MethodPost, "/api/certifications", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	list, err := srv.store.Blogs.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdateAndDeleteNeedID(t *testing.T) {
	srv := newServer(t, testConfig(), nil)

	assert.Equal(t, http.StatusBadRequest, srv.do(http.MethodPut, "/api/projects", projectA).Code)
	assert.Equal(t, http.StatusBadRequest, srv.do(http.MethodPut, "/api/projects?id=abc", projectA).Code)
	assert.Equal(t, http.StatusBadRequest, srv.do(http.MethodDelete, "/api/projects", "").Code)
}

func TestUpdateMissingRecord(t *testing.T) {
	srv := newServer(t, testConfig(), nil)

	rec := srv.do(http.MethodPut, "/api/projects?id=99", projectA)
	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "record not found", resp.Error)
	assert.Equal(t, models.CodeNotFound, resp.Code)
}

func TestMethodRouting(t *testing.T) {
	srv := newServer(t, testConfig(), nil)

	rec := srv.do(http.MethodPatch, "/api/certifications", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), "Method not allowed")

	rec = srv.do(http.MethodOptions, "/api/certifications", "",
		"Origin", "https://portfolio.dev",
		"Access-Control-Request-Method", "PUT")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = srv.do(http.MethodGet, "/api/achievements", "", "Origin", "https://elsewhere.dev")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	assert.Equal(t, http.StatusMethodNotAllowed, srv.do(http.MethodGet, "/api/import-data", "").Code)

	rec = srv.do("PURGE", "/api/projects", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), "Method not allowed")

	rec = srv.do(http.MethodPost, "/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), "Method not allowed")
}

func TestServerFieldsIgnoredOnWrites(t *testing.T) {
	srv := newServer(t, testConfig(), nil)
	exported := `{"id": "1717171717", "createdAt": "2024-01-01 10:00:00", "updatedAt": 12,
		"title": "A", "date": "2024-01", "category": "Web", "description": "d"}`

	rec := srv.do(http.MethodPost, "/api/projects", exported)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEqual(t, int64(1717171717), created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	rec = srv.do(http.MethodPut, "/api/projects?id="+jsonID(created.ID), exported)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	rec = srv.do(http.MethodPost, "/api/import-data", `{"projects": [`+exported+`]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"projects":1`)
}

func TestTypeErrorsUseWireNames(t *testing.T) {
	srv := newServer(t, testConfig(), nil)

	rec := srv.do(http.MethodPost, "/api/projects",
		`{"title": "A", "date": "2024", "category": "c", "description": "d", "featured": "yes"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, map[string]string{"featured": "expected bool"}, resp.Fields)
}

func TestImportEndpoint(t *testing.T) {
	srv := newServer(t, testConfig(), nil)

	rec := srv.do(http.MethodPost, "/api/import-data", `{"projects": [`+projectA+`]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"success": true, "projects": 1, "blogs": 0, "certifications": 0, "achievements": 0, "volunteering": 0}`,
		rec.Body.String())

	rec = srv.do(http.MethodGet, "/api/projects", "")
	var list []models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "A", list[0].Title)
}

func TestImportPartialFailureStillSucceeds(t *testing.T) {
	srv := newServer(t, testConfig(), nil)

	rec := srv.do(http.MethodPost, "/api/import", `{
		"certifications": [
			{"name": "a", "issuer": "i", "date": "2020"},
			{"name": "b", "date": "2021"},
			{"name": "c", "issuer": "i", "date": "2022"}
		]
	}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp handlers.ImportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Certifications)
}

func TestImportMalformedBody(t *testing.T) {
	srv := newServer(t, testConfig(), nil)

	assert.Equal(t, http.StatusBadRequest, srv.do(http.MethodPost, "/api/import-data", `[1]`).Code)
	assert.Equal(t, http.StatusBadRequest, srv.do(http.MethodPost, "/api/import-data", `{"blogs": 3}`).Code)
}

type brokenList struct {
	*memory.Table[models.Achievement, *models.Achievement]
}

func (brokenList) List(context.Context) ([]models.Achievement, error) {
	return nil, errors.New("pq: connection refused at 10.0.0.5")
}

func TestInternalErrorsAreGeneric(t *testing.T) {
	store := memory.NewStore()
	repos := store.Repositories()
	repos.Achievements = brokenList{Table: store.Achievements}

	srv := newServer(t, testConfig(), &repos)
	for _, rec := range []*httptest.ResponseRecorder{
		srv.do(http.MethodGet, "/api/achievements", ""),
		srv.do(http.MethodPost, "/api/import-data",
			`{"achievements": [{"title": "t", "description": "d", "date": "2024", "type": "award"}]}`),
	} {
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Internal server error", resp.Error)
		assert.Empty(t, resp.Details)
		assert.NotContains(t, rec.Body.String(), "10.0.0.5")
	}

	debugCfg := testConfig()
	debugCfg.Debug = true
	srv = newServer(t, debugCfg, &repos)
	rec := srv.do(http.MethodGet, "/api/achievements", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Details, "connection refused")
}

func TestBodyLimit(t *testing.T) {
	cfg := testConfig()
	cfg.MaxBodyBytes = 16
	srv := newServer(t, cfg, nil)

	rec := srv.do(http.MethodPost, "/api/projects", projectA)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func authConfig(t *testing.T) *config.Config {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg := testConfig()
	cfg.JWTSecret = "0123456789abcdef0123456789abcdef"
	cfg.AdminUsername = "admin"
	cfg.AdminPasswordHash = string(hash)
	return cfg
}

func TestLoginAndGuardedWrites(t *testing.T) {
	srv := newServer(t, authConfig(t), nil)

	assert.Equal(t, http.StatusOK, srv.do(http.MethodGet, "/api/projects", "").Code)
	assert.Equal(t, http.StatusUnauthorized, srv.do(http.MethodPost, "/api/projects", projectA).Code)
	assert.Equal(t, http.StatusUnauthorized, srv.do(http.MethodPost, "/api/import-data", `{}`).Code)

	rec := srv.do(http.MethodPost, "/api/login", `{"username": "admin", "password": "wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(http.MethodPost, "/api/login", `{"username": "admin", "password": "hunter2"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var login handlers.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)
	assert.True(t, login.ExpiresAt.After(time.Now()))

	rec = srv.do(http.MethodPost, "/api/projects", projectA, "Authorization", "Bearer "+login.Token)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestLoginNotConfigured(t *testing.T) {
	srv := newServer(t, testConfig(), nil)

	rec := srv.do(http.MethodPost, "/api/login", `{"username": "admin", "password": "x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoginRateLimited(t *testing.T) {
	cfg := authConfig(t)
	cfg.LoginRateLimit = 2
	srv := newServer(t, cfg, nil)

	body := `{"username": "admin", "password": "wrong"}`
	assert.Equal(t, http.StatusUnauthorized, srv.do(http.MethodPost, "/api/login", body).Code)
	assert.Equal(t, http.StatusUnauthorized, srv.do(http.MethodPost, "/api/login", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, srv.do(http.MethodPost, "/api/login", body).Code)
}

func TestHealthInitDBAndMetrics(t *testing.T) {
	srv := newServer(t, testConfig(), nil)

	rec := srv.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())

	rec = srv.do(http.MethodGet, "/api/init-db", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success": true, "message": "Database initialized"}`, rec.Body.String())

	srv.do(http.MethodGet, "/api/projects", "")
	rec = srv.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "portfolio_http_requests_total")
}
