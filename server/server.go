// Package server exposes a session over a small JSON API for browser front-ends.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/ytune-cli/ytune/app"
	"github.com/ytune-cli/ytune/log"
	"github.com/ytune-cli/ytune/notify"
	"github.com/ytune-cli/ytune/playback"
	"github.com/ytune-cli/ytune/youtube"
)

// State is the body of GET /api/state.
type State struct {
	Surface      playback.Surface     `json:"surface"`
	Notification *notify.Notification `json:"notification,omitempty"`
}

type errorBody struct {
	Error string `json:"error"`
}

type handler struct {
	// ctx outlives requests so that a closed tab does not abort a load
	ctx     context.Context
	session *app.Session
	latest  *notify.Latest
}

// New routes the API to session. latest must be the session's notifier so
// that GET /api/state can report the visible notification.
func New(ctx context.Context, session *app.Session, latest *notify.Latest, origins []string) http.Handler {
	h := &handler{ctx: ctx, session: session, latest: latest}

	r := mux.NewRouter()
	r.Use(logRequests)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/search", h.search).Methods(http.MethodGet)
	api.HandleFunc("/play/{id}", h.play).Methods(http.MethodPost)
	api.HandleFunc("/toggle", h.toggle).Methods(http.MethodPost)
	api.HandleFunc("/stop", h.stop).Methods(http.MethodPost)
	api.HandleFunc("/state", h.state).Methods(http.MethodGet)

	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}).Handler(r)
}

func (h *handler) search(w http.ResponseWriter, r *http.Request) {
	results, ok := h.session.Search(r.Context(), r.URL.Query().Get("q"))
	if !ok {
		writeError(w, http.StatusBadRequest, errors.New("query is blank"))
		return
	}

	// failures are reported through the notification, the list is just empty
	if results == nil {
		results = []*youtube.Result{}
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *handler) play(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	err := h.session.Select(h.ctx, id)
	switch {
	case errors.Is(err, app.ErrUnknownResult):
		writeError(w, http.StatusNotFound, err)
	case err != nil:
		writeError(w, http.StatusBadGateway, err)
	default:
		h.state(w, r)
	}
}

func (h *handler) toggle(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Toggle(); err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	h.state(w, r)
}

func (h *handler) stop(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Stop(); err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	h.state(w, r)
}

func (h *handler) state(w http.ResponseWriter, _ *http.Request) {
	body := State{Surface: h.session.Playback().Surface()}
	if n, ok := h.latest.Visible().Get(); ok {
		body.Notification = &n
	}
	writeJSON(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warnf("encode response: %s", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorBody{Error: err.Error()})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		log.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
			"status": recorder.status,
		}).Debugf("served in %s", time.Since(start))
	})
}
