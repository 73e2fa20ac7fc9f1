package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/vovakirdan/tui-invaders/internal/storage"
)

// ScoreSource is the ranked high-score list.
type ScoreSource interface {
	Scores() []int
}

// NewRouter builds the HTTP API:
//
//	GET /metrics              Prometheus metrics
//	GET /healthz              liveness
//	GET /api/scores           ranked high scores
//	GET /api/scores/history   recent finished games (score-log backends only)
func NewRouter(c *Collector, scores ScoreSource, history storage.ScoreLog, gameID string) *mux.Router {
	r := mux.NewRouter()

	if c != nil {
		r.Handle("/metrics", c.Handler()).Methods("GET")
	}
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/scores", func(w http.ResponseWriter, _ *http.Request) {
		list := []int{}
		if scores != nil {
			list = scores.Scores()
		}
		writeJSON(w, http.StatusOK, map[string]any{"scores": list})
	}).Methods("GET")

	api.HandleFunc("/scores/history", func(w http.ResponseWriter, req *http.Request) {
		if history == nil {
			writeJSON(w, http.StatusNotImplemented, map[string]string{"error": "backend keeps no score history"})
			return
		}
		limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
		entries, err := history.RecentScores(req.Context(), gameID, limit)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"history": entries})
	}).Methods("GET")

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Serve runs the HTTP API on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP API listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
