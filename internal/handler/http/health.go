package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cmlabs-hris/washpay-backend/internal/handler/http/response"
)

// Pinger is anything readiness depends on: the database and the file store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a plain function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthHandler interface {
	Live(w http.ResponseWriter, r *http.Request)
	Ready(w http.ResponseWriter, r *http.Request)
}

type healthHandlerImpl struct {
	checks map[string]Pinger
}

func NewHealthHandler(checks map[string]Pinger) HealthHandler {
	return &healthHandlerImpl{checks: checks}
}

func (h *healthHandlerImpl) Live(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]string{"status": "ok"})
}

func (h *healthHandlerImpl) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	failed := map[string]string{}
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			failed[name] = err.Error()
		}
	}

	if len(failed) > 0 {
		response.ServiceUnavailable(w, "Dependencies not ready", failed)
		return
	}
	response.Success(w, map[string]string{"status": "ready"})
}
