// Package server assembles the HTTP surface: Connect services, the trend
// chart page, metrics and the embedded browser form.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/bmitracker/internal/auth"
	"github.com/mmynk/bmitracker/internal/config"
	"github.com/mmynk/bmitracker/internal/metrics"
	"github.com/mmynk/bmitracker/internal/middleware"
	"github.com/mmynk/bmitracker/internal/rpc"
	"github.com/mmynk/bmitracker/internal/service"
	"github.com/mmynk/bmitracker/internal/storage"
	"github.com/mmynk/bmitracker/internal/trend"
	"github.com/mmynk/bmitracker/web"
)

// Server serves the BMI tracker over HTTP/1.1 and h2c.
type Server struct {
	settings *config.Settings
	bmi      *service.BMIService
	handler  http.Handler
}

// New wires services, interceptors and routes around store.
func New(settings *config.Settings, store storage.Store, m *metrics.Metrics) (*Server, error) {
	authenticator, err := auth.NewPasswordAuthenticator(settings.Auth.PasswordHash)
	if err != nil {
		return nil, err
	}
	jwtManager := auth.NewJWTManager(settings.Auth.JWTSecret, settings.Auth.TokenTTL)

	if n, err := store.CountRecords(context.Background()); err != nil {
		slog.Warn("Failed to count stored records", "error", err)
	} else {
		m.SetRecordsStored(n)
	}

	interceptors := []connect.Interceptor{middleware.MetricsInterceptor(m)}
	if authenticator.Enabled() {
		interceptors = append(interceptors, middleware.RequireAuth(jwtManager, rpc.BMIServiceSaveRecordProcedure))
		slog.Info("Authentication enabled for saving records")
	}
	interceptors = append(interceptors, middleware.LoggingInterceptor(slog.Default()))
	opts := connect.WithInterceptors(interceptors...)

	bmiSvc := service.NewBMIService(store,
		service.WithRecorder(m),
		service.WithTrendCacheTTL(settings.Trend.CacheTTL),
	)
	authSvc := service.NewAuthService(authenticator, jwtManager, slog.Default())

	mux := http.NewServeMux()
	mux.Handle(rpc.NewBMIServiceHandler(bmiSvc, opts))
	mux.Handle(rpc.NewAuthServiceHandler(authSvc, opts))

	s := &Server{settings: settings, bmi: bmiSvc}

	mux.HandleFunc("GET /trend", s.handleTrend)
	mux.Handle("GET /metrics", m.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "ok")
	})
	mux.Handle("/", http.FileServerFS(web.Static()))

	s.handler = middleware.RequestID(middleware.AccessLog(middleware.CORS(mux)))
	return s, nil
}

// Handler returns the root handler with HTTP middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	chart, err := s.bmi.Chart(r.Context())
	if err != nil {
		slog.Error("Failed to build trend chart", "error", err)
		http.Error(w, "failed to build trend chart", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := trend.Render(&buf, chart, s.settings.Trend.Width, s.settings.Trend.Height); err != nil {
		slog.Error("Failed to render trend chart", "error", err)
		http.Error(w, "failed to render trend chart", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

// Run listens on the configured port until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.settings.Server.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	// Wrap with h2c for HTTP/2 without TLS
	srv := &http.Server{
		Handler:           h2c.NewHandler(s.handler, &http2.Server{}),
		ReadHeaderTimeout: s.settings.Server.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", ln.Addr().String(), "url", fmt.Sprintf("http://%s", ln.Addr()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) shutdownTimeout() time.Duration {
	if s.settings.Server.ShutdownTimeout > 0 {
		return s.settings.Server.ShutdownTimeout
	}
	return 10 * time.Second
}
