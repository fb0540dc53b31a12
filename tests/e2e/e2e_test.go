//go:build integration

package e2e

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// Covered flows:
//   - bootstrap login → first admin → normal login
//   - product registration and cached public lookup
//   - PO create → approve → receive → stock/entries fan-out
//   - exit with insufficient stock rolls back atomically
//   - exit listing filters, ordering and pagination against real SQL
//   - exit PDF and entries XLSX downloads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"almox/internal/config"
	"almox/internal/infra"
	"almox/internal/router"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Suite setup ──────────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("almox_test"),
		tcPostgres.WithUsername("almox"),
		tcPostgres.WithPassword("almox"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		JWTSecret:          "test-secret-key",
		JWTAccessMinutes:   15,
		JWTRefreshDays:     1,
		BootstrapUsername:  "root",
		BootstrapPassword:  "setup123",
		RateLimitPerMinute: 100000,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	srv := httptest.NewServer(router.New(cfg, db, rdb))
	t.Cleanup(srv.Close)

	env := &testEnv{server: srv}

	// Bootstrap mode: unknown credentials refused, bootstrap credentials
	// answer with the setup signal instead of tokens.
	resp := do(t, srv, http.MethodPost, "/auth/login",
		jsonBody(t, map[string]string{"username": "root", "password": "setup123"}), "")
	var boot struct {
		Bootstrap bool `json:"bootstrap"`
	}
	decodeJSON(t, resp, &boot)
	require.True(t, boot.Bootstrap)

	resp = do(t, srv, http.MethodPost, "/auth/bootstrap",
		jsonBody(t, map[string]string{"username": "admin", "password": "adminpass1"}), "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var login struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, resp, &login)
	env.token = login.AccessToken
	require.NotEmpty(t, env.token)

	return env
}

func (env *testEnv) createProduct(t *testing.T, code, stock string) {
	t.Helper()
	resp := do(t, env.server, http.MethodPost, "/api/products", jsonBody(t, map[string]any{
		"code":        code,
		"category":    "fasteners",
		"description": "product " + code,
		"unit":        "un",
		"stock":       stock,
	}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func (env *testEnv) productStock(t *testing.T, code string) decimal.Decimal {
	t.Helper()
	resp := do(t, env.server, http.MethodGet, "/api/products/"+code, nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p struct {
		Stock decimal.Decimal `json:"stock"`
	}
	decodeJSON(t, resp, &p)
	return p.Stock
}

func (env *testEnv) createExit(t *testing.T, destination, code, qty string) {
	t.Helper()
	resp := do(t, env.server, http.MethodPost, "/api/exits", jsonBody(t, map[string]any{
		"destination": destination,
		"items": []map[string]any{
			{"product_code": code, "qty": qty},
		},
	}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

type exitPage struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Data  []struct {
		ID          int64  `json:"id"`
		Destination string `json:"destination"`
		CreatedAt   string `json:"created_at"`
	} `json:"data"`
}

func (env *testEnv) listExits(t *testing.T, query string) exitPage {
	t.Helper()
	resp := do(t, env.server, http.MethodGet, "/api/exits"+query, nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page exitPage
	decodeJSON(t, resp, &page)
	return page
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_PurchaseOrderLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	env.createProduct(t, "P1", "10")
	env.createProduct(t, "P2", "20")

	// create
	resp := do(t, env.server, http.MethodPost, "/api/purchase-orders", jsonBody(t, map[string]any{
		"supplier_cnpj": "11.222.333/0001-44",
		"supplier_name": "ACME Supplies",
		"items": []map[string]any{
			{"code": "P1", "description": "bolt", "unit": "un", "qty": "5", "price": "2.00"},
			{"code": "P2", "description": "nut", "unit": "un", "qty": "3", "price": "1.50"},
		},
	}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		PONumber int64  `json:"po_number"`
		POCode   string `json:"po_code"`
	}
	decodeJSON(t, resp, &created)
	assert.Equal(t, fmt.Sprintf("PO%06d", created.PONumber), created.POCode)

	poPath := fmt.Sprintf("/api/purchase-orders/%d", created.PONumber)

	// receive before approval is refused
	resp = do(t, env.server, http.MethodPut, poPath+"/receive", nil, env.token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// approve
	resp = do(t, env.server, http.MethodPut, poPath+"/status",
		jsonBody(t, map[string]string{"status": "APPROVED"}), env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// receive
	resp = do(t, env.server, http.MethodPut, poPath+"/receive", nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var received struct {
		Success bool `json:"success"`
		Data    struct {
			TotalReceived decimal.Decimal `json:"total_received"`
		} `json:"data"`
	}
	decodeJSON(t, resp, &received)
	assert.True(t, received.Success)
	assert.True(t, received.Data.TotalReceived.Equal(decimal.RequireFromString("14.50")))

	// stock incremented exactly once
	assert.True(t, env.productStock(t, "P1").Equal(decimal.NewFromInt(15)))
	assert.True(t, env.productStock(t, "P2").Equal(decimal.NewFromInt(23)))

	// second receive refused, stock unchanged
	resp = do(t, env.server, http.MethodPut, poPath+"/receive", nil, env.token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
	assert.True(t, env.productStock(t, "P1").Equal(decimal.NewFromInt(15)))

	// entries history has one row per line item
	resp = do(t, env.server, http.MethodGet, "/api/entries", nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entries struct {
		Entries []struct {
			ProductCode string `json:"product_code"`
		} `json:"entries"`
	}
	decodeJSON(t, resp, &entries)
	assert.Len(t, entries.Entries, 2)

	// XLSX export downloads
	resp = do(t, env.server, http.MethodGet, "/api/entries/export", nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
}

func TestE2E_ExitAtomicity(t *testing.T) {
	env := setupTestEnv(t)
	env.createProduct(t, "P1", "50")
	env.createProduct(t, "P2", "2")

	// second line exceeds stock: whole exit must be refused with no effect
	resp := do(t, env.server, http.MethodPost, "/api/exits", jsonBody(t, map[string]any{
		"destination": "maintenance",
		"items": []map[string]any{
			{"product_code": "P1", "qty": "10"},
			{"product_code": "P2", "qty": "5"},
		},
	}), env.token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	assert.True(t, env.productStock(t, "P1").Equal(decimal.NewFromInt(50)))
	assert.True(t, env.productStock(t, "P2").Equal(decimal.NewFromInt(2)))

	// valid exit goes through and decrements
	resp = do(t, env.server, http.MethodPost, "/api/exits", jsonBody(t, map[string]any{
		"destination": "maintenance",
		"items": []map[string]any{
			{"product_code": "P1", "qty": "10", "unit_cost": "12.50"},
			{"product_code": "P2", "qty": "2"},
		},
	}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var exit struct {
		Exit struct {
			ID       int64  `json:"id"`
			ExitCode string `json:"exit_code"`
		} `json:"exit"`
	}
	decodeJSON(t, resp, &exit)
	assert.Contains(t, exit.Exit.ExitCode, "EX-")

	assert.True(t, env.productStock(t, "P1").Equal(decimal.NewFromInt(40)))
	assert.True(t, env.productStock(t, "P2").Equal(decimal.NewFromInt(0)))

	// PDF slip downloads
	resp = do(t, env.server, http.MethodGet, fmt.Sprintf("/api/exits/%d/pdf", exit.Exit.ID), nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.True(t, len(raw) > 4)
	assert.Equal(t, "%PDF", string(raw[:4]))
}

func TestE2E_ExitListingFiltersAndPagination(t *testing.T) {
	env := setupTestEnv(t)
	env.createProduct(t, "P1", "500")

	for i := 0; i < 120; i++ {
		dest := "warehouse"
		if i%2 == 0 {
			dest = "sector-a"
		}
		env.createExit(t, dest, "P1", "1")
	}

	// middle page, newest first by default
	page := env.listExits(t, "?page=2&limit=50")
	assert.Equal(t, int64(120), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 50, page.Limit)
	require.Len(t, page.Data, 50)
	for i := 1; i < len(page.Data); i++ {
		assert.False(t, page.Data[i].CreatedAt > page.Data[i-1].CreatedAt,
			"rows must be ordered by creation date descending")
	}

	// the three pages partition the full set
	seen := map[int64]bool{}
	for _, q := range []string{"?page=1&limit=50", "?page=2&limit=50", "?page=3&limit=50"} {
		for _, row := range env.listExits(t, q).Data {
			assert.False(t, seen[row.ID], "exit %d repeated across pages", row.ID)
			seen[row.ID] = true
		}
	}
	assert.Len(t, seen, 120)

	// past the last page
	page = env.listExits(t, "?page=4&limit=50")
	assert.Equal(t, int64(120), page.Total)
	assert.Empty(t, page.Data)

	// ascending order flips the extremes
	asc := env.listExits(t, "?page=1&limit=50&sort=asc")
	desc := env.listExits(t, "?page=1&limit=50")
	require.NotEmpty(t, asc.Data)
	require.NotEmpty(t, desc.Data)
	assert.False(t, asc.Data[0].CreatedAt > desc.Data[0].CreatedAt)

	// destination substring match is case-insensitive
	page = env.listExits(t, "?destination=SECTOR&limit=500")
	assert.Equal(t, int64(60), page.Total)
	require.Len(t, page.Data, 60)
	for _, row := range page.Data {
		assert.Equal(t, "sector-a", row.Destination)
	}

	// date window filters on the calendar day
	past := time.Now().AddDate(0, 0, -2).Format("2006-01-02")
	page = env.listExits(t, "?date_from="+past+"&limit=500")
	assert.Equal(t, int64(120), page.Total)
	page = env.listExits(t, "?date_to="+past)
	assert.Equal(t, int64(0), page.Total)
	assert.Empty(t, page.Data)
}

func TestE2E_PublicLookupCached(t *testing.T) {
	env := setupTestEnv(t)
	env.createProduct(t, "P1", "5")

	// liveness reports both dependencies by name
	resp := do(t, env.server, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health struct {
		Status   string `json:"status"`
		Service  string `json:"service"`
		Database string `json:"database"`
		Redis    string `json:"redis"`
	}
	decodeJSON(t, resp, &health)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "almox", health.Service)
	assert.Equal(t, "up", health.Database)
	assert.Equal(t, "up", health.Redis)

	// no token required
	resp = do(t, env.server, http.MethodGet, "/lookup/P1", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var lookup struct {
		Code  string          `json:"code"`
		Stock decimal.Decimal `json:"stock"`
	}
	decodeJSON(t, resp, &lookup)
	assert.Equal(t, "P1", lookup.Code)

	// cached second hit returns the same payload
	resp = do(t, env.server, http.MethodGet, "/lookup/P1", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &lookup)
	assert.True(t, lookup.Stock.Equal(decimal.NewFromInt(5)))

	resp = do(t, env.server, http.MethodGet, "/lookup/GHOST", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// protected surface rejects missing tokens
	resp = do(t, env.server, http.MethodGet, "/api/products", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
