package hc

import (
	"net/http"
	"time"

	"vcop/handler/render"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

// Pinger dependency checked by the health check
type Pinger interface {
	Ping() error
}

// PingFunc func as Pinger
type PingFunc func() error

// Ping call f
func (f PingFunc) Ping() error {
	return f()
}

// Handle handle hc request
func Handle(ver string, deps map[string]Pinger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Handle("/", handle(ver, deps))
	return r
}

func handle(version string, deps map[string]Pinger) http.HandlerFunc {
	b := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := time.Since(b).Truncate(time.Millisecond)

		status := http.StatusOK
		checks := make(render.H, len(deps))
		for name, dep := range deps {
			if err := dep.Ping(); err != nil {
				checks[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}

			checks[name] = "ok"
		}

		render.Status(w, status, render.H{
			"uptime":  uptime.String(),
			"version": version,
			"checks":  checks,
		})
	}
}
