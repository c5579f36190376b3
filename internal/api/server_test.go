package api

import (
	"context"
	"encoding/hex"
	"encoding/json/v2"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globaldefense/index-server/internal/auth"
	"github.com/globaldefense/index-server/internal/domain"
	"github.com/globaldefense/index-server/internal/generate"
	"github.com/globaldefense/index-server/internal/realtime"
	"github.com/globaldefense/index-server/internal/service"
	"github.com/globaldefense/index-server/internal/sse"
	"github.com/globaldefense/index-server/internal/store"
	"github.com/globaldefense/index-server/internal/validation"
)

const (
	testAdminEmail    = "admin@defense-index.dev"
	testAdminPassword = "TestPassword123!"
)

// fakeProducer returns canned generation results for handler tests.
type fakeProducer struct {
	entity     *domain.Entity
	comparison *generate.Comparison
	err        error
}

func (p *fakeProducer) GenerateEntity(_ context.Context, _ generate.EntityRequest) (*domain.Entity, error) {
	if p.err != nil {
		return nil, p.err
	}
	clone := *p.entity
	return &clone, nil
}

func (p *fakeProducer) Compare(_ context.Context, _, _ domain.Entity) (*generate.Comparison, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.comparison, nil
}

type testServer struct {
	*Server
	api      humatest.TestAPI
	syncer   *realtime.Syncer
	producer *fakeProducer
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	backend, err := store.New(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	logger := slog.New(slog.DiscardHandler)
	syncer := realtime.New(backend, logger)
	t.Cleanup(syncer.Close)

	validator := validation.New()
	nations := service.NewDomainService(domain.KindNations, syncer, validator, logger)
	aircraft := service.NewDomainService(domain.KindAircraft, syncer, validator, logger)
	domains := map[domain.Kind]*service.DomainService{
		domain.KindNations:  nations,
		domain.KindAircraft: aircraft,
	}

	passwordHash, err := auth.HashPassword(testAdminPassword)
	require.NoError(t, err)

	tokens, err := auth.NewTokenService(hex.EncodeToString(make([]byte, 32)), 15*time.Minute)
	require.NoError(t, err)

	producer := &fakeProducer{}
	authService := service.NewAuthService(testAdminEmail, passwordHash, tokens, validator, logger)
	searchService := service.NewSearchService(domains, producer, generate.NewValidator(), logger)
	compareService := service.NewCompareService(nations, producer, logger)

	services := &Services{
		Auth:    authService,
		Domains: domains,
		Search:  searchService,
		Compare: compareService,
	}

	sseHandler := sse.NewHandler(syncer, logger)
	s := NewServer(services, syncer, sseHandler, []string{"*"}, logger)

	return &testServer{
		Server:   s,
		api:      humatest.Wrap(t, s.api),
		syncer:   syncer,
		producer: producer,
	}
}

// login returns a valid admin bearer header.
func (ts *testServer) login(t *testing.T) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	})
	require.Equal(t, http.StatusOK, resp.Code, "login failed: %s", resp.Body.String())

	var authResp AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &authResp))
	return "Bearer " + authResp.AccessToken
}

// seedEntities writes two nations directly through the syncer.
func (ts *testServer) seedEntities(t *testing.T) {
	t.Helper()

	_, err := ts.syncer.Save(context.Background(), domain.EntitiesPatch(domain.KindNations, []domain.Entity{
		{ID: "usa", Name: "United States", FlagCode: "us", Score: 98.5, Rank: 1,
			Stats: map[string]float64{"tanks": 5500}},
		{ID: "rus", Name: "Russia", FlagCode: "ru", Score: 94.2, Rank: 2,
			Stats: map[string]float64{"tanks": 12500}},
	}))
	require.NoError(t, err)
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "healthy", health.Components["database"].Status)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    testAdminEmail,
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestVerifyToken(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.login(t)

	resp := ts.api.Get("/api/v1/auth/verify", "Authorization: "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var verify VerifyResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &verify))
	assert.Equal(t, testAdminEmail, verify.Email)
}

func TestListEntities_PublicAndSorted(t *testing.T) {
	ts := setupTestServer(t)
	ts.seedEntities(t)

	resp := ts.api.Get("/api/v1/domains/nations/entities")
	require.Equal(t, http.StatusOK, resp.Code)

	var body EntitiesResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Entities, 2)
	assert.Equal(t, "usa", body.Entities[0].ID)
	assert.Equal(t, "rus", body.Entities[1].ID)
}

func TestListEntities_UnknownKind(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/domains/submarines/entities")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestGetEntity_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/domains/nations/entities/nope")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUpsertEntity_RequiresAuth(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Put("/api/v1/domains/nations/entities/fra", map[string]any{
		"name":     "France",
		"flagCode": "fr",
		"score":    82.3,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestUpsertEntity_InsertsAndReranks(t *testing.T) {
	ts := setupTestServer(t)
	ts.seedEntities(t)
	token := ts.login(t)

	resp := ts.api.Put("/api/v1/domains/nations/entities/xyz",
		"Authorization: "+token,
		map[string]any{
			"name":     "Xanadu",
			"flagCode": "xy",
			"score":    99.0,
		})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var entity domain.Entity
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &entity))
	assert.Equal(t, "xyz", entity.ID)
	assert.Equal(t, 1, entity.Rank)
}

func TestDeleteEntity_Idempotent(t *testing.T) {
	ts := setupTestServer(t)
	ts.seedEntities(t)
	token := ts.login(t)

	resp := ts.api.Delete("/api/v1/domains/nations/entities/usa", "Authorization: "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Delete("/api/v1/domains/nations/entities/usa", "Authorization: "+token)
	assert.Equal(t, http.StatusOK, resp.Code, "second delete is a no-op, not an error")
}

func TestNewEntityTemplate(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.login(t)

	resp := ts.api.Get("/api/v1/domains/aircraft/entities/new", "Authorization: "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var entity domain.Entity
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &entity))
	assert.Equal(t, "New Aircraft", entity.Name)
	assert.Equal(t, "Unknown", entity.Origin)
	assert.Equal(t, 50.0, entity.Score)
}

func TestAddStat_DuplicateConflicts(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.login(t)

	resp := ts.api.Post("/api/v1/domains/nations/stats",
		"Authorization: "+token,
		map[string]any{"label": "Tanks"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var def domain.StatDefinition
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &def))
	assert.Equal(t, "tanks", def.ID)

	resp = ts.api.Post("/api/v1/domains/nations/stats",
		"Authorization: "+token,
		map[string]any{"id": "tanks", "label": "Tank Count"})
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestDeleteStat_CascadesThroughAPI(t *testing.T) {
	ts := setupTestServer(t)
	ts.seedEntities(t)
	token := ts.login(t)

	resp := ts.api.Post("/api/v1/domains/nations/stats",
		"Authorization: "+token,
		map[string]any{"id": "tanks", "label": "Tanks"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Delete("/api/v1/domains/nations/stats/tanks", "Authorization: "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/domains/nations/entities/usa")
	require.Equal(t, http.StatusOK, resp.Code)

	var entity domain.Entity
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &entity))
	assert.NotContains(t, entity.Stats, "tanks")
}

func TestCategories_RoundTrip(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.login(t)

	resp := ts.api.Post("/api/v1/domains/nations/categories",
		"Authorization: "+token,
		map[string]any{"name": "Military"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/domains/nations/categories")
	require.Equal(t, http.StatusOK, resp.Code)

	var cats CategoriesResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &cats))
	assert.Equal(t, []string{"Military"}, cats.Categories)

	resp = ts.api.Delete("/api/v1/domains/nations/categories/Military", "Authorization: "+token)
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestSearch_ExistingMatch(t *testing.T) {
	ts := setupTestServer(t)
	ts.seedEntities(t)

	resp := ts.api.Post("/api/v1/domains/nations/search", map[string]any{"query": "united"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var result SearchResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	assert.Equal(t, "usa", result.Entity.ID)
	assert.False(t, result.Generated)
}

func TestSearch_GeneratesCandidate(t *testing.T) {
	ts := setupTestServer(t)
	ts.seedEntities(t)
	ts.producer.entity = &domain.Entity{
		ID:       "fra",
		Name:     "France",
		FlagCode: "fr",
		Score:    82.3,
		Rank:     3,
		Stats:    map[string]float64{},
	}

	resp := ts.api.Post("/api/v1/domains/nations/search", map[string]any{"query": "France"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var result SearchResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	assert.True(t, result.Generated)
	assert.True(t, result.Entity.IsGenerated)
	assert.Equal(t, "fra", result.Entity.ID)
}

func TestCompare(t *testing.T) {
	ts := setupTestServer(t)
	ts.seedEntities(t)
	ts.producer.comparison = &generate.Comparison{
		Analysis: "Overwhelming logistics advantage.",
		Winner:   "United States",
		Factors:  []string{"air power"},
	}

	resp := ts.api.Post("/api/v1/compare", map[string]any{
		"firstId":  "usa",
		"secondId": "rus",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var result CompareResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	assert.Equal(t, "United States", result.Comparison.Winner)
}
