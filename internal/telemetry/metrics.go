package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsServer exposes the default Prometheus registry on /metrics.
type MetricsServer struct {
	srv *http.Server
	ln  net.Listener
}

// ServeMetrics starts serving /metrics on addr in the background.
func ServeMetrics(addr string, logger *slog.Logger) (*MetricsServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	srv := &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics_server_error", slog.String("error", err.Error()))
		}
	}()

	logger.Info("metrics_listen", slog.String("addr", ln.Addr().String()))
	return &MetricsServer{srv: srv, ln: ln}, nil
}

// Addr returns the address the server is listening on.
func (s *MetricsServer) Addr() string {
	return s.ln.Addr().String()
}

// Shutdown stops the server.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
