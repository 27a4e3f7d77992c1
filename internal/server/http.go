package server

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/timerift/internal/config"
	"github.com/gokatarajesh/timerift/internal/game"
	"github.com/gokatarajesh/timerift/internal/logging"
	"github.com/gokatarajesh/timerift/internal/storage"
	httperrors "github.com/gokatarajesh/timerift/pkg/http/errors"
	ws "github.com/gokatarajesh/timerift/pkg/http/ws"
)

const pingTimeout = 2 * time.Second

// NewHTTPServer wires health, metrics, gameplay and the live event feed.
// gameHandler and hub can be nil for a bare health server.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, deps []storage.Pinger, gameHandler *game.HTTPHandler, hub *ws.Hub) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()
		if err := pingDependencies(ctx, deps); err != nil {
			reqLogger := logging.FromContext(ctx)
			reqLogger.Error().Err(err).Msg("dependency ping failed")
			httperrors.RespondServiceUnavailable(w, httperrors.ErrCodeUpstreamError, "Storage backend unavailable")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	if gameHandler != nil {
		gameHandler.Register(mux)
	}

	if hub != nil {
		mux.HandleFunc("/ws/events", ws.ServeEvents(hub, logger))
	} else {
		mux.HandleFunc("/ws/events", func(w http.ResponseWriter, r *http.Request) {
			httperrors.RespondServiceUnavailable(w, httperrors.ErrCodeServiceUnavailable, "Event stream disabled")
		})
	}

	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           logging.Middleware(logger, mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func pingDependencies(ctx context.Context, deps []storage.Pinger) error {
	for _, dep := range deps {
		if dep == nil {
			continue
		}
		if err := dep.Ping(ctx); err != nil {
			return err
		}
	}
	return nil
}
