// Package debug exposes the bindings of a kernel over HTTP.
package debug

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/centraunit/bindery"
)

// Describer is the part of a kernel the debug routes read.
type Describer interface {
	Describe() []bindery.BindingInfo
	Services() []string
}

// NewRouter returns a read-only router:
//
//	GET /services           bound service identifiers
//	GET /bindings           every binding
//	GET /bindings/{service} bindings of one service, 404 when unbound
func NewRouter(k Describer, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &handler{kernel: k, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.Get("/services", h.services)
	r.Get("/bindings", h.bindings)
	r.Get("/bindings/{service}", h.service)
	return r
}

// Serve listens on addr until ctx is done, then shuts the server down.
func Serve(ctx context.Context, addr string, k Describer, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(k, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logger.Info("debug server listening", zap.String("addr", addr))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("debug server stopped", zap.String("addr", addr))
	return nil
}

type handler struct {
	kernel Describer
	logger *zap.Logger
}

func (h *handler) services(w http.ResponseWriter, _ *http.Request) {
	h.write(w, http.StatusOK, h.kernel.Services())
}

func (h *handler) bindings(w http.ResponseWriter, _ *http.Request) {
	infos := h.kernel.Describe()
	if infos == nil {
		infos = []bindery.BindingInfo{}
	}
	h.write(w, http.StatusOK, infos)
}

func (h *handler) service(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "service")

	var out []bindery.BindingInfo
	for _, info := range h.kernel.Describe() {
		if info.ServiceIdentifier == name {
			out = append(out, info)
		}
	}
	if len(out) == 0 {
		h.write(w, http.StatusNotFound, map[string]string{"error": "service not bound: " + name})
		return
	}
	h.write(w, http.StatusOK, out)
}

func (h *handler) write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("encode debug response", zap.Error(err))
	}
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Debug("debug request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}
