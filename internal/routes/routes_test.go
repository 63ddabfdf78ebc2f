package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kevxviikw/noted/internal/app"
	"github.com/kevxviikw/noted/internal/config"
	"github.com/kevxviikw/noted/internal/model"
	"github.com/kevxviikw/noted/internal/repository"
	"github.com/kevxviikw/noted/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newTestHandler(t *testing.T, apiToken, jwtSecret string) http.Handler {
	t.Helper()

	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		PRAGMA foreign_keys = ON;
		CREATE TABLE goals (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL,
			created_at TIMESTAMP NOT NULL
		);
		CREATE TABLE marks (
			goal_id INTEGER NOT NULL REFERENCES goals (id) ON DELETE CASCADE,
			day TEXT NOT NULL,
			done BOOLEAN NOT NULL,
			PRIMARY KEY (goal_id, day)
		);
	`)
	require.NoError(t, err)

	cfg := &config.Config{
		AppName:   "Noted",
		AppEnv:    "development",
		StaticDir: t.TempDir(),
		APIToken:  apiToken,
		JWTSecret: jwtSecret,
		JWTExpiry: time.Hour,
	}

	goalRepo := repository.NewGoalRepository(db)
	markRepo := repository.NewMarkRepository(db)

	return SetupRoutes(&app.App{
		Cfg:          cfg,
		DB:           db,
		AuthService:  service.NewAuthService(cfg.APIToken, cfg.JWTSecret, cfg.JWTExpiry),
		GoalService:  service.NewGoalService(goalRepo),
		MarkService:  service.NewMarkService(goalRepo, markRepo),
		StatsService: service.NewStatsService(goalRepo, markRepo),
	})
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// Decode object bodies only; list endpoints are decoded by their tests.
	var decoded map[string]any
	if rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func createGoal(t *testing.T, handler http.Handler, name string) int64 {
	t.Helper()
	rec, body := doJSON(t, handler, "POST", "/api/goals", map[string]string{"name": name}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	return int64(body["id"].(float64))
}

func TestHealth(t *testing.T) {
	handler := newTestHandler(t, "", "")

	rec, body := doJSON(t, handler, "GET", "/api/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["ok"])
	assert.NotEmpty(t, body["time"])
}

func TestGoalLifecycle(t *testing.T) {
	handler := newTestHandler(t, "", "")

	// Create
	rec, body := doJSON(t, handler, "POST", "/api/goals", map[string]string{"name": "  Read every day "}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Read every day", body["name"])
	goalID := int64(body["id"].(float64))

	// Duplicate name
	rec, _ = doJSON(t, handler, "POST", "/api/goals", map[string]string{"name": "Read every day"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Empty name
	rec, _ = doJSON(t, handler, "POST", "/api/goals", map[string]string{"name": "  "}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// List
	req := httptest.NewRequest("GET", "/api/goals", nil)
	recList := httptest.NewRecorder()
	handler.ServeHTTP(recList, req)
	require.Equal(t, http.StatusOK, recList.Code)
	var goals []map[string]any
	require.NoError(t, json.Unmarshal(recList.Body.Bytes(), &goals))
	require.Len(t, goals, 1)
	assert.Equal(t, "Read every day", goals[0]["name"])

	// Rename
	rec, body = doJSON(t, handler, "PATCH", fmt.Sprintf("/api/goals/%d", goalID), map[string]string{"name": "Read daily"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Read daily", body["name"])

	// Rename missing goal
	rec, _ = doJSON(t, handler, "PATCH", "/api/goals/999", map[string]string{"name": "x"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Delete
	rec, body = doJSON(t, handler, "DELETE", fmt.Sprintf("/api/goals/%d", goalID), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["ok"])

	rec, _ = doJSON(t, handler, "DELETE", fmt.Sprintf("/api/goals/%d", goalID), nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMarksEndpoints(t *testing.T) {
	handler := newTestHandler(t, "", "")
	goalID := createGoal(t, handler, "hydrate")

	// Upsert a mark twice; last write wins.
	rec, body := doJSON(t, handler, "PUT", fmt.Sprintf("/api/goals/%d/marks/2024-03-05", goalID), map[string]bool{"done": true}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "2024-03-05", body["day"])
	assert.Equal(t, true, body["done"])

	rec, _ = doJSON(t, handler, "PUT", fmt.Sprintf("/api/goals/%d/marks/2024-03-05", goalID), map[string]bool{"done": false}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, handler, "PUT", fmt.Sprintf("/api/goals/%d/marks/2024-03-06", goalID), map[string]bool{"done": true}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Invalid day format
	rec, _ = doJSON(t, handler, "PUT", fmt.Sprintf("/api/goals/%d/marks/2024-3-5", goalID), map[string]bool{"done": true}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown goal
	rec, _ = doJSON(t, handler, "PUT", "/api/goals/999/marks/2024-03-05", map[string]bool{"done": true}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Read back
	rec, body = doJSON(t, handler, "GET", fmt.Sprintf("/api/goals/%d/marks", goalID), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	marks := body["marks"].(map[string]any)
	assert.Len(t, marks, 2)
	assert.Equal(t, false, marks["2024-03-05"])
	assert.Equal(t, true, marks["2024-03-06"])

	// Range filter
	rec, body = doJSON(t, handler, "GET", fmt.Sprintf("/api/goals/%d/marks?start=2024-03-06&end=2024-03-07", goalID), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	marks = body["marks"].(map[string]any)
	assert.Len(t, marks, 1)

	// Bad range bound
	rec, _ = doJSON(t, handler, "GET", fmt.Sprintf("/api/goals/%d/marks?start=bogus&end=2024-03-07", goalID), nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatsEndpoint(t *testing.T) {
	handler := newTestHandler(t, "", "")
	goalID := createGoal(t, handler, "exercise")

	// Current streak is anchored to the real today, so mark today and
	// yesterday through the API.
	today := model.Today()
	for _, day := range []model.Day{today, today.AddDays(-1)} {
		rec, _ := doJSON(t, handler, "PUT", fmt.Sprintf("/api/goals/%d/marks/%s", goalID, day), map[string]bool{"done": true}, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// A longer, disjoint historical run.
	for d := 1; d <= 4; d++ {
		rec, _ := doJSON(t, handler, "PUT", fmt.Sprintf("/api/goals/%d/marks/2020-06-%02d", goalID, d), map[string]bool{"done": true}, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, body := doJSON(t, handler, "GET", fmt.Sprintf("/api/goals/%d/stats", goalID), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), body["current_streak"])
	assert.Equal(t, float64(4), body["longest_streak"])
	assert.Equal(t, float64(0), body["completion_rate"])

	// Month rate: June 2020 has 30 days, 4 marked true.
	rec, body = doJSON(t, handler, "GET", fmt.Sprintf("/api/goals/%d/stats?year=2020&month=6", goalID), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 4.0/30*100, body["completion_rate"].(float64), 1e-9)

	// Invalid month arguments
	rec, _ = doJSON(t, handler, "GET", fmt.Sprintf("/api/goals/%d/stats?year=2020&month=13", goalID), nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec, _ = doJSON(t, handler, "GET", fmt.Sprintf("/api/goals/%d/stats?year=2020", goalID), nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown goal
	rec, _ = doJSON(t, handler, "GET", "/api/goals/999/stats", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatsEmptyGoal(t *testing.T) {
	handler := newTestHandler(t, "", "")
	goalID := createGoal(t, handler, "untouched")

	rec, body := doJSON(t, handler, "GET", fmt.Sprintf("/api/goals/%d/stats?year=2024&month=4", goalID), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), body["current_streak"])
	assert.Equal(t, float64(0), body["longest_streak"])
	assert.Equal(t, float64(0), body["completion_rate"])
}

func TestAuthDisabledAllowsAll(t *testing.T) {
	handler := newTestHandler(t, "", "")

	rec, _ := doJSON(t, handler, "GET", "/api/goals", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthEnabled(t *testing.T) {
	handler := newTestHandler(t, "sekrit", "signing-key")

	// No header
	rec, _ := doJSON(t, handler, "GET", "/api/goals", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Wrong token
	rec, _ = doJSON(t, handler, "GET", "/api/goals", nil, map[string]string{"Authorization": "Bearer wrong"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Static API token
	rec, _ = doJSON(t, handler, "GET", "/api/goals", nil, map[string]string{"Authorization": "Bearer sekrit"})
	assert.Equal(t, http.StatusOK, rec.Code)

	// Health stays public
	rec, _ = doJSON(t, handler, "GET", "/api/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTokenExchange(t *testing.T) {
	handler := newTestHandler(t, "sekrit", "signing-key")

	// Exchange requires the API token.
	rec, _ := doJSON(t, handler, "POST", "/api/auth/token", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = doJSON(t, handler, "POST", "/api/auth/token", nil, map[string]string{"Authorization": "Bearer wrong"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, body := doJSON(t, handler, "POST", "/api/auth/token", nil, map[string]string{"Authorization": "Bearer sekrit"})
	require.Equal(t, http.StatusOK, rec.Code)
	jwtToken := body["token"].(string)
	require.NotEmpty(t, jwtToken)

	// The minted JWT works on protected routes.
	rec, _ = doJSON(t, handler, "GET", "/api/goals", nil, map[string]string{"Authorization": "Bearer " + jwtToken})
	assert.Equal(t, http.StatusOK, rec.Code)
}
