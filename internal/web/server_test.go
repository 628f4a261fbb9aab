package web

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aiachain/migrator/config"
	"github.com/aiachain/migrator/internal/app"
	"github.com/aiachain/migrator/internal/clock"
	"github.com/aiachain/migrator/internal/domain"
)

func newTestServer(t *testing.T, cfg config.Config, fc *clock.Fake) (*Server, *app.Portal) {
	p, err := app.New(cfg, zap.NewNop(), app.WithClock(fc))
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	return NewServer(":0", p.Workflow, p.Connector, p, p.Events, zap.NewNop()), p
}

func instantConfig() config.Config {
	cfg := config.Default()
	cfg.ConnectDelay = 0
	cfg.ApproveDelay = 0
	cfg.MigrateDelay = 0
	return cfg
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeSnapshot(t *testing.T, rec *httptest.ResponseRecorder) domain.Snapshot {
	t.Helper()
	var s domain.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	return s
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestServer_Providers(t *testing.T) {
	s, _ := newTestServer(t, instantConfig(), clock.NewFake(time.Now()))

	rec := do(t, s.Handler(), http.MethodGet, "/api/providers", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var providers []domain.WalletProvider
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &providers))
	require.Len(t, providers, 6)
	assert.Equal(t, "MetaMask", providers[0].Name)
}

func TestServer_Index(t *testing.T) {
	s, _ := newTestServer(t, instantConfig(), clock.NewFake(time.Now()))

	rec := do(t, s.Handler(), http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "AIA Token Migration")

	rec = do(t, s.Handler(), http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_MigrationFlow(t *testing.T) {
	s, p := newTestServer(t, instantConfig(), clock.NewFake(time.Now()))
	h := s.Handler()

	rec := do(t, h, http.MethodGet, "/api/state", "")
	require.Equal(t, http.StatusOK, rec.Code)
	state := decodeSnapshot(t, rec)
	assert.False(t, state.Connected)
	assert.Equal(t, "Connect Wallet", state.Action)

	rec = do(t, h, http.MethodPost, "/api/migrate", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Connect your wallet first", decodeError(t, rec))

	rec = do(t, h, http.MethodPost, "/api/connect", `{"provider":"Ledger"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Unsupported wallet", decodeError(t, rec))

	rec = do(t, h, http.MethodPost, "/api/connect", `{"provider":"MetaMask"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	state = decodeSnapshot(t, rec)
	assert.True(t, state.Connected)
	assert.Equal(t, "15420.50", state.Legacy)
	assert.Equal(t, "Migrate", state.Action)

	rec = do(t, h, http.MethodPost, "/api/amount", `{"amount":"12a"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/amount", `{"amount":"20000"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/migrate", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Insufficient funds", decodeError(t, rec))

	rec = do(t, h, http.MethodPost, "/api/amount", `{"amount":"5000"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	state = decodeSnapshot(t, rec)
	assert.Equal(t, "5000", state.Amount)

	rec = do(t, h, http.MethodPost, "/api/migrate", "")
	require.Equal(t, http.StatusAccepted, rec.Code)

	require.Eventually(t, func() bool {
		return p.Workflow.Status() == domain.StatusSuccess
	}, time.Second, 5*time.Millisecond)

	rec = do(t, h, http.MethodGet, "/api/state", "")
	state = decodeSnapshot(t, rec)
	assert.Equal(t, "10420.50", state.Legacy)
	assert.Equal(t, "5000.00", state.Native)
	assert.Empty(t, state.Amount)
	assert.True(t, state.Disabled)

	rec = do(t, h, http.MethodPost, "/api/amount/max", "")
	require.Equal(t, http.StatusOK, rec.Code)
	state = decodeSnapshot(t, rec)
	assert.Equal(t, p.Session.LegacyBalance().String(), state.Amount)
	assert.Equal(t, domain.StatusIdle, state.Status)

	rec = do(t, h, http.MethodPost, "/api/disconnect", "")
	require.Equal(t, http.StatusOK, rec.Code)
	state = decodeSnapshot(t, rec)
	assert.False(t, state.Connected)
	assert.Equal(t, "0.00", state.Legacy)
}

func TestServer_MigrateBusy(t *testing.T) {
	cfg := instantConfig()
	cfg.ApproveDelay = 2 * time.Second
	cfg.MigrateDelay = 3 * time.Second
	fc := clock.NewFake(time.Now())
	s, p := newTestServer(t, cfg, fc)
	h := s.Handler()

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/connect", `{"provider":"OKX Wallet"}`).Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/amount", `{"amount":"1.5"}`).Code)

	rec := do(t, h, http.MethodPost, "/api/migrate", "")
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, domain.StatusApproving, decodeSnapshot(t, rec).Status)

	rec = do(t, h, http.MethodPost, "/api/migrate", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Migration in progress", decodeError(t, rec))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, fc.BlockUntil(ctx, 1))
	fc.Advance(2 * time.Second)
	require.NoError(t, fc.BlockUntil(ctx, 1))
	assert.Equal(t, domain.StatusMigrating, p.Workflow.Status())
	fc.Advance(3 * time.Second)

	require.Eventually(t, func() bool {
		return p.Workflow.Status() == domain.StatusSuccess
	}, time.Second, 5*time.Millisecond)
}

func TestServer_BadBody(t *testing.T) {
	s, _ := newTestServer(t, instantConfig(), clock.NewFake(time.Now()))

	rec := do(t, s.Handler(), http.MethodPost, "/api/connect", `{"wallet":"MetaMask"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s.Handler(), http.MethodPost, "/api/amount", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_HistoryDisabled(t *testing.T) {
	s, _ := newTestServer(t, instantConfig(), clock.NewFake(time.Now()))

	rec := do(t, s.Handler(), http.MethodGet, "/api/history", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestServer_HistoryJournal(t *testing.T) {
	cfg := instantConfig()
	cfg.JournalDir = t.TempDir()
	s, p := newTestServer(t, cfg, clock.NewFake(time.Now()))
	h := s.Handler()

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/connect", `{"provider":"Trust Wallet"}`).Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/amount", `{"amount":"42"}`).Code)
	require.NoError(t, p.Workflow.Submit(context.Background()))

	rec := do(t, h, http.MethodGet, "/api/history", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var records []domain.MigrationRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, domain.RecordDone, records[0].Status)
	assert.Equal(t, "42", records[0].Amount.String())
}

func TestServer_Stream(t *testing.T) {
	s, p := newTestServer(t, instantConfig(), clock.NewFake(time.Now()))
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/stream", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	next := func() domain.Snapshot {
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			if data, ok := strings.CutPrefix(line, "data: "); ok {
				var snap domain.Snapshot
				require.NoError(t, json.Unmarshal([]byte(data), &snap))
				return snap
			}
		}
	}

	first := next()
	assert.False(t, first.Connected)

	_, err = p.Connector.Connect(ctx, "Coinbase Wallet")
	require.NoError(t, err)

	second := next()
	assert.True(t, second.Connected)
	assert.Equal(t, "Coinbase Wallet", second.Provider)
}
