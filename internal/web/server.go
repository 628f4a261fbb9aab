// Package web serves the portal over a JSON API with a live SSE stream.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/aiachain/migrator/internal/domain"
)

const (
	heartbeatInterval = 30 * time.Second
	maxBodyBytes      = 1 << 16
)

type workflow interface {
	SetAmount(input string) bool
	Max() string
	Start(ctx context.Context) (<-chan error, error)
	Snapshot() domain.Snapshot
}

type connector interface {
	Providers() []domain.WalletProvider
	Connect(ctx context.Context, providerName string) (domain.WalletState, error)
	Disconnect()
}

type historyReader interface {
	History() ([]domain.MigrationRecord, error)
}

type snapshotFeed interface {
	Subscribe() chan domain.Snapshot
	Unsubscribe(ch chan domain.Snapshot)
}

// Server exposes the portal over HTTP.
type Server struct {
	Addr string

	workflow  workflow
	connector connector
	history   historyReader
	feed      snapshotFeed
	logger    *zap.Logger

	// migrations started over HTTP outlive the request, so they run on
	// this context instead.
	baseCtx context.Context
}

// NewServer creates a new web server instance.
func NewServer(addr string, wf workflow, conn connector, history historyReader, feed snapshotFeed, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		Addr:      addr,
		workflow:  wf,
		connector: conn,
		history:   history,
		feed:      feed,
		logger:    logger,
		baseCtx:   context.Background(),
	}
}

// Handler returns the routes of the portal.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/providers", s.handleProviders)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("POST /api/connect", s.handleConnect)
	mux.HandleFunc("POST /api/disconnect", s.handleDisconnect)
	mux.HandleFunc("POST /api/amount", s.handleAmount)
	mux.HandleFunc("POST /api/amount/max", s.handleMax)
	mux.HandleFunc("POST /api/migrate", s.handleMigrate)
	mux.HandleFunc("GET /api/history", s.handleHistory)
	mux.HandleFunc("GET /api/stream", s.handleStream)
	return mux
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is cancelled.
// Migrations in flight are cancelled with ctx.
func (s *Server) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s.baseCtx = ctx

	server := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("portal listening", zap.String("addr", s.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.connector.Providers())
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.workflow.Snapshot())
}

type connectRequest struct {
	Provider string `json:"provider"`
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	var req connectRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := s.connector.Connect(r.Context(), req.Provider); err != nil {
		if errors.Is(err, domain.ErrUnknownProvider) {
			writeError(w, http.StatusBadRequest, domain.UserMessage(err))
			return
		}
		s.logger.Warn("wallet connect failed", zap.String("provider", req.Provider), zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "wallet connection failed")
		return
	}
	writeJSON(w, http.StatusOK, s.workflow.Snapshot())
}

func (s *Server) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	s.connector.Disconnect()
	writeJSON(w, http.StatusOK, s.workflow.Snapshot())
}

type amountRequest struct {
	Amount string `json:"amount"`
}

func (s *Server) handleAmount(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !s.workflow.SetAmount(req.Amount) {
		writeError(w, http.StatusBadRequest, domain.UserMessage(domain.ErrInvalidAmount))
		return
	}
	writeJSON(w, http.StatusOK, s.workflow.Snapshot())
}

func (s *Server) handleMax(w http.ResponseWriter, r *http.Request) {
	s.workflow.Max()
	writeJSON(w, http.StatusOK, s.workflow.Snapshot())
}

func (s *Server) handleMigrate(w http.ResponseWriter, r *http.Request) {
	done, err := s.workflow.Start(s.baseCtx)
	if err != nil {
		writeError(w, migrateStatusCode(err), domain.UserMessage(err))
		return
	}

	go func() {
		if err := <-done; err != nil {
			s.logger.Warn("migration finished with error", zap.Error(err))
		}
	}()

	writeJSON(w, http.StatusAccepted, s.workflow.Snapshot())
}

func migrateStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrBusy), errors.Is(err, domain.ErrNotConnected):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	records, err := s.history.History()
	if err != nil {
		s.logger.Error("failed to read migration history", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	sub := s.feed.Subscribe()
	defer s.feed.Unsubscribe(sub)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// send a comment heartbeat every 30s so proxies keep connection
	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	send := func(snap domain.Snapshot) error {
		payload, err := json.Marshal(snap)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "event: snapshot\n")
		fmt.Fprintf(w, "data: %s\n\n", payload)
		flusher.Flush()
		return nil
	}

	if err := send(s.workflow.Snapshot()); err != nil {
		s.logger.Error("snapshot stream initial send", zap.Error(err))
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprintf(w, ": ping\n\n")
			flusher.Flush()
		case snap, ok := <-sub:
			if !ok {
				return
			}
			if err := send(snap); err != nil {
				s.logger.Warn("snapshot stream send", zap.Error(err))
			}
		}
	}
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
