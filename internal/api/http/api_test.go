package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/bug-tracker/internal/api/http/handlers"
	"github.com/spec-kit/bug-tracker/internal/auth"
	"github.com/spec-kit/bug-tracker/internal/config"
	"github.com/spec-kit/bug-tracker/internal/domain"
	"github.com/spec-kit/bug-tracker/internal/observability"
	"github.com/spec-kit/bug-tracker/internal/service"
)

type memBugRepository struct {
	mu    sync.Mutex
	bugs  map[string]domain.Bug
	clock time.Time
}

func newMemBugRepository() *memBugRepository {
	return &memBugRepository{
		bugs:  map[string]domain.Bug{},
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *memBugRepository) Create(_ context.Context, bug *domain.Bug) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	bug.ID = uuid.NewString()
	r.clock = r.clock.Add(time.Second)
	bug.CreatedAt = r.clock
	bug.UpdatedAt = r.clock
	r.bugs[bug.ID] = *bug
	return nil
}

func (r *memBugRepository) Update(_ context.Context, bug *domain.Bug) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bugs[bug.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.clock = r.clock.Add(time.Second)
	bug.UpdatedAt = r.clock
	r.bugs[bug.ID] = *bug
	return nil
}

func (r *memBugRepository) GetByID(_ context.Context, id string) (*domain.Bug, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bug, ok := r.bugs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &bug, nil
}

func (r *memBugRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bugs[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.bugs, id)
	return nil
}

func (r *memBugRepository) ListAll(_ context.Context) ([]domain.Bug, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.Bug, 0, len(r.bugs))
	for _, bug := range r.bugs {
		result = append(result, bug)
	}
	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			if result[j].CreatedAt.After(result[i].CreatedAt) {
				result[i], result[j] = result[j], result[i]
			}
		}
	}
	return result, nil
}

func newTestApp(t *testing.T, authRequired bool) (*fiber.App, *service.AuthService) {
	t.Helper()

	bugService := service.NewBugService(service.BugDependencies{
		BugRepo: newMemBugRepository(),
	})
	authService, err := service.NewAuthService(config.AuthConfig{
		Required:              authRequired,
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 5,
		AdminPassword:         "hunter2",
		BcryptCost:            4,
	})
	require.NoError(t, err)

	metrics := observability.NewMetrics()
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), metrics, 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("bug-tracker-test", "test", nil, nil),
		Metrics:        handlers.NewMetricsHandler(metrics),
		Bugs:           handlers.NewBugsHandler(bugService),
		Auth:           handlers.NewAuthHandler(authService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), authRequired),
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("kaboom")
	})
	return app, authService
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func createBug(t *testing.T, app *fiber.App, title, description, priority string) map[string]any {
	t.Helper()
	payload := map[string]any{"title": title, "description": description}
	if priority != "" {
		payload["priority"] = priority
	}
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/bugs", payload, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, true, body["success"])
	return body["data"].(map[string]any)
}

func TestCreateBugIntegration(t *testing.T) {
	app, _ := newTestApp(t, false)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/bugs", map[string]any{
		"title":       "Integration Test Bug",
		"description": "This is from integration test",
		"priority":    "medium",
	}, nil)

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, "Integration Test Bug", data["title"])
	assert.Equal(t, "open", data["status"])
	assert.Equal(t, "medium", data["priority"])
	assert.NotEmpty(t, data["createdAt"])
}

func TestCreateBugValidationEnvelope(t *testing.T) {
	app, _ := newTestApp(t, false)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/bugs", map[string]any{
		"title":       "",
		"description": "",
	}, nil)

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
	details := body["details"].(map[string]any)
	assert.Equal(t, "Title is required", details["title"])
	assert.Equal(t, "Description is required", details["description"])
}

func TestListBugsNewestFirst(t *testing.T) {
	app, _ := newTestApp(t, false)

	createBug(t, app, "R1", "first bug", "")
	second := createBug(t, app, "R2", "second bug", "high")

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/bugs", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.GreaterOrEqual(t, body["count"].(float64), float64(1))

	data := body["data"].([]any)
	require.Len(t, data, 2)
	assert.Equal(t, second["id"], data[0].(map[string]any)["id"])
	assert.Equal(t, "R1", data[1].(map[string]any)["title"])
}

func TestGetBugRoundTrip(t *testing.T) {
	app, _ := newTestApp(t, false)

	created := createBug(t, app, "Broken search", "Search returns no results", "low")

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/bugs/"+created["id"].(string), nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, created["title"], data["title"])
	assert.Equal(t, created["description"], data["description"])
	assert.Equal(t, created["status"], data["status"])
	assert.Equal(t, created["priority"], data["priority"])
}

func TestGetBugMalformedID(t *testing.T) {
	app, _ := newTestApp(t, false)

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/bugs/definitely-not-a-uuid", nil, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestGetBugAbsent(t *testing.T) {
	app, _ := newTestApp(t, false)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/bugs/"+uuid.NewString(), nil, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateBug(t *testing.T) {
	app, _ := newTestApp(t, false)

	created := createBug(t, app, "Stale cache", "Old data shown", "")

	resp, body := doJSON(t, app, http.MethodPut, "/api/v1/bugs/"+created["id"].(string), map[string]any{
		"status":   "resolved",
		"priority": "high",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, "resolved", data["status"])
	assert.Equal(t, "high", data["priority"])
	assert.Equal(t, "Stale cache", data["title"])
}

func TestUpdateBugInvalidStatus(t *testing.T) {
	app, _ := newTestApp(t, false)

	created := createBug(t, app, "Wrong icon", "Icon mismatch", "")

	resp, body := doJSON(t, app, http.MethodPut, "/api/v1/bugs/"+created["id"].(string), map[string]any{
		"status": "wontfix",
	}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	details := body["details"].(map[string]any)
	assert.Contains(t, details, "status")
}

func TestDeleteBugThenFetch(t *testing.T) {
	app, _ := newTestApp(t, false)

	created := createBug(t, app, "Zombie record", "Should go away", "")
	id := created["id"].(string)

	resp, body := doJSON(t, app, http.MethodDelete, "/api/v1/bugs/"+id, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, id, body["data"].(map[string]any)["id"])

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/bugs/"+id, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPanicBecomesEnvelope(t *testing.T) {
	app, _ := newTestApp(t, false)

	resp, body := doJSON(t, app, http.MethodGet, "/boom", nil, nil)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "internal server error", body["error"])
}

func TestWritesRequireTokenWhenAuthEnabled(t *testing.T) {
	app, _ := newTestApp(t, true)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/bugs", map[string]any{
		"title":       "Locked out",
		"description": "No token provided",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	// Reads stay open.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/bugs", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLoginAndAuthorizedWrite(t *testing.T) {
	app, _ := newTestApp(t, true)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"password": "hunter2",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := body["data"].(map[string]any)["token"].(string)
	require.NotEmpty(t, token)

	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/bugs", map[string]any{
		"title":       "Authorized bug",
		"description": "Created with a token",
	}, map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])
}

func TestLiveAndMetricsEndpoints(t *testing.T) {
	app, _ := newTestApp(t, false)

	resp, body := doJSON(t, app, http.MethodGet, "/health/live", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alive", body["status"])

	createBug(t, app, "Metric fodder", "Generates a counter", "")

	resp, body = doJSON(t, app, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["requests"])
}

func TestLoginWrongPassword(t *testing.T) {
	app, _ := newTestApp(t, true)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"password": "wrong",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}
