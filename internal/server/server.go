// Package server assembles the HTTP surface: routing, CORS, rate limiting,
// request logging and Prometheus metrics.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	advisoryhandler "github.com/alixwilliam/finplan/internal/domain/advisory/handler"
	importhandler "github.com/alixwilliam/finplan/internal/domain/import/handler"
	insightshandler "github.com/alixwilliam/finplan/internal/domain/insights/handler"
	"github.com/alixwilliam/finplan/internal/httpx"
)

// Handlers groups the domain handlers the router mounts.
type Handlers struct {
	Insights *insightshandler.InsightsHandler
	Advisory *advisoryhandler.AdvisoryHandler
	Import   *importhandler.ImportHandler
}

// Options tunes the outer middleware.
type Options struct {
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Server is the HTTP server with its graceful-shutdown plumbing.
type Server struct {
	http   *http.Server
	logger *slog.Logger
}

// New builds the router and wraps it with the middleware stack.
func New(addr string, h Handlers, opts Options, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /v1/kpis", h.Insights.ComputeKPIs)
	mux.HandleFunc("GET /v1/kpis", h.Insights.GetKPIs)
	mux.HandleFunc("GET /v1/config", h.Insights.GetConfig)
	mux.HandleFunc("PUT /v1/config", h.Insights.UpdateConfig)
	mux.HandleFunc("GET /v1/export/xlsx", h.Insights.ExportWorkbook)
	mux.HandleFunc("GET /v1/export/csv", h.Insights.ExportCashflowCSV)

	mux.HandleFunc("POST /v1/advice", h.Advisory.ComputeAdvice)
	mux.HandleFunc("GET /v1/advice", h.Advisory.GetAdvice)

	mux.HandleFunc("POST /v1/import/transactions", h.Import.ImportTransactions)
	mux.HandleFunc("POST /v1/import/projects", h.Import.ImportProjects)

	c := cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowedHeaders: []string{"Content-Type"},
	})

	handler := Chain(mux,
		RequestLogger(logger),
		Metrics(),
		RateLimit(opts.RateLimitRPS, opts.RateLimitBurst),
		c.Handler,
	)

	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		logger: logger,
	}
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("http server listening", slog.String("addr", s.http.Addr))
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
