package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "localhost:8001"

const shutdownTimeout = 5 * time.Second

// Handler serves files from dir. Only GET (and HEAD) are routed; every
// response allows any origin and forbids caching.
func Handler(dir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.SetHeader("Access-Control-Allow-Origin", "*"))
	r.Use(middleware.SetHeader("Access-Control-Allow-Methods", "GET"))
	r.Use(noStore)

	fs := http.FileServer(http.Dir(dir))
	r.Get("/*", fs.ServeHTTP)
	r.Head("/*", fs.ServeHTTP)
	return r
}

// noStore disables client and proxy caching. Conditional request headers are
// dropped so every request gets a full 200 response.
func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
		for _, h := range []string{"If-Modified-Since", "If-None-Match"} {
			r.Header.Del(h)
		}
		next.ServeHTTP(w, r)
	})
}

// Run listens on addr and serves dir until ctx is cancelled.
func Run(ctx context.Context, addr, dir string, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	if addr == "" {
		addr = DefaultAddr
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return Serve(ctx, ln, dir, log)
}

// Serve serves dir on ln until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, ln net.Listener, dir string, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	srv := &http.Server{
		Handler:           middleware.RequestID(logRequests(log)(Handler(dir))),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("serving assets", zap.String("addr", ln.Addr().String()), zap.String("dir", dir))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	log.Info("server stopped")
	return nil
}

// logRequests logs one line per request.
func logRequests(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug("request",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)))
		})
	}
}
