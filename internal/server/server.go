// Package server is the HTTP adapter over the task store.
package server

import (
	"context"
	"log"
	"math/rand/v2"
	"net/http"
	"time"

	"taskbench/internal/config"
	"taskbench/internal/result"
	"taskbench/internal/store"
	"taskbench/pkg/cache"
	"taskbench/pkg/mq"
)

type Server struct {
	store    *store.Store
	cfg      *config.Config
	log      *log.Logger
	pub      mq.Publisher
	exporter *result.Exporter

	// Injection points so tests can pin the clock, the delay draw, the
	// failure coin-flip and the sleep without real waits.
	now       func() time.Time
	randDelay func() time.Duration
	randFloat func() float64
	sleep     func(ctx context.Context, d time.Duration) error
}

func New(st *store.Store, cfg *config.Config, logger *log.Logger, pub mq.Publisher) *Server {
	slow := cfg.Slow
	span := slow.MaxDelay() - slow.MinDelay()
	if span < 0 {
		span = 0
	}
	return &Server{
		store:    st,
		cfg:      cfg,
		log:      logger,
		pub:      pub,
		exporter: result.NewExporter(st, cache.NewMemory(cfg.Export.CacheTTL)),
		now:      time.Now,
		randDelay: func() time.Duration {
			return slow.MinDelay() + rand.N(span+1)
		},
		randFloat: rand.Float64,
		sleep:     sleepCtx,
	}
}

// Handler builds the route table. Method checks live inside the handlers so
// every response, including 404 and 405, carries the JSON error shape.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/tasks", s.handleTasks)
	mux.HandleFunc("/tasks/", s.handleTaskSub)
	mux.HandleFunc("/admin/reset-all-tasks", s.handleResetAll)
	mux.HandleFunc("/", s.handleUnmatched)
	return s.withAccessLog(s.withRecovery(mux))
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{Addr: addr, Handler: s.Handler()}
	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()
	s.log.Printf("listening on %s", addr)
	return server.ListenAndServe()
}

// sleepCtx waits for d or until the request is abandoned.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
