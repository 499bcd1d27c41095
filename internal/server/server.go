// Package server отдает инструменты расчета по HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cloud-ru/finlit-projection-go/internal/calculations"
	"github.com/cloud-ru/finlit-projection-go/internal/config"
	"github.com/cloud-ru/finlit-projection-go/internal/logging"
	"github.com/cloud-ru/finlit-projection-go/internal/metrics"
	"github.com/cloud-ru/finlit-projection-go/internal/tools"
)

const maxBodyBytes = 1 << 20

// unmatchedRoute метка для запросов, не попавших ни в один маршрут
const unmatchedRoute = "unmatched"

// Server HTTP API поверх реестра инструментов
type Server struct {
	router   chi.Router
	cfg      *config.Config
	registry *tools.Registry
	logger   *zap.Logger
}

// New собирает сервер с маршрутами и middleware
func New(cfg *config.Config, registry *tools.Registry, logger *zap.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		registry: registry,
		logger:   logging.OrNop(logger),
	}
	s.router = s.buildRouter()
	return s
}

// Handler возвращает корневой обработчик, в том числе для тестов
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run слушает порт из конфигурации до отмены ctx, затем корректно останавливается
func (s *Server) Run(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:         ":" + strconv.Itoa(s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("http server started", zap.String("addr", httpSrv.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down http server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/tools", s.handleListTools)
		r.Post("/tools/{name}", s.handleCallTool)
		r.Get("/allocation", s.handleAllocation)
		r.Get("/funds", s.handleFunds)
	})

	return r
}

// accessLog пишет запрос в zap и считает его в метриках
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		s.logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"tools": s.registry.Names()})
}

func (s *Server) handleCallTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	params := map[string]interface{}{}
	if r.ContentLength != 0 {
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err := dec.Decode(&params); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body: " + err.Error()})
			return
		}
	}

	s.call(w, r, name, params)
}

func (s *Server) handleAllocation(w http.ResponseWriter, r *http.Request) {
	s.call(w, r, "risk_allocation", map[string]interface{}{
		"risk_tolerance": r.URL.Query().Get("risk"),
	})
}

func (s *Server) handleFunds(w http.ResponseWriter, r *http.Request) {
	params := map[string]interface{}{
		"risk_tolerance": r.URL.Query().Get("risk"),
	}
	if c := r.URL.Query().Get("category"); c != "" {
		params["category"] = c
	}
	s.call(w, r, "funds_by_risk", params)
}

func (s *Server) call(w http.ResponseWriter, r *http.Request, name string, params map[string]interface{}) {
	result, err := s.registry.Call(r.Context(), name, params)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var perr *calculations.InvalidParameterError
	switch {
	case errors.As(err, &perr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: perr.Error(), Field: perr.Field})
	case errors.Is(err, tools.ErrUnknownTool):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		s.logger.Error("tool call failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
