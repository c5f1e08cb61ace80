// Package server exposes the inbound HTTP surface: the Telegram webhook
// endpoint and a health check on the root path.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	apperrors "github.com/dmsavelev/caloriebot/internal/errors"
	"github.com/dmsavelev/caloriebot/internal/logger"
)

const shutdownTimeout = 5 * time.Second

// UpdateProcessor consumes decoded Telegram updates.
type UpdateProcessor interface {
	Handle(ctx context.Context, update tgbotapi.Update) error
}

// Server serves the webhook and health endpoints.
type Server struct {
	httpServer *http.Server
	processor  UpdateProcessor
	errHandler *apperrors.Handler
}

// New creates the HTTP server on the given port.
func New(port string, processor UpdateProcessor) *Server {
	s := &Server{
		processor:  processor,
		errHandler: apperrors.NewHandler(logger.GetLogger()),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.homeHandler)
	mux.HandleFunc("/webhook", s.webhookHandler)

	s.httpServer = &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Start serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP server listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// webhookHandler accepts a Telegram update payload. Malformed input is a
// client error; a failing handler is logged and never crashes the process.
func (s *Server) webhookHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil || len(bytes.TrimSpace(body)) == 0 {
		logger.Warn("Empty or unreadable webhook payload")
		http.Error(w, "empty update", http.StatusBadRequest)
		return
	}

	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		logger.Warn("Malformed webhook payload", "error", err)
		http.Error(w, "malformed update", http.StatusBadRequest)
		return
	}

	if err := s.processor.Handle(r.Context(), update); err != nil {
		s.errHandler.Handle(r.Context(), err)
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		logger.Warn("Failed to write webhook response", "error", err)
	}
}

// homeHandler answers health probes on the root path.
func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if _, err := w.Write([]byte("Бот работает! Для проверки отправьте /start в Telegram")); err != nil {
		logger.Warn("Failed to write health response", "error", err)
	}
}
