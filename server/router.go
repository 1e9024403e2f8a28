package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"rummy-player/server/agent"
	"rummy-player/server/engine"
	"rummy-player/server/learning"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

// Router exposes the game-server callbacks. shutdown is invoked once the
// /shutdown reply has been written.
func Router(sess *agent.Session, learner *learning.Store, shutdown func(), logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, agent.StatusOut{Status: "Running"})
	})

	r.Post("/start-2p-game/", func(w http.ResponseWriter, r *http.Request) {
		var in agent.GameInfo
		if !decodeJSON(w, r, &in) {
			return
		}
		if err := in.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		sess.StartGame(r.Context(), in)
		writeJSON(w, http.StatusOK, agent.StatusOut{Status: "OK"})
	})

	r.Post("/start-2p-hand/", func(w http.ResponseWriter, r *http.Request) {
		var in agent.HandInfo
		if !decodeJSON(w, r, &in) {
			return
		}
		if err := in.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		sess.StartHand(r.Context(), in)
		writeJSON(w, http.StatusOK, agent.StatusOut{Status: "OK"})
	})

	r.Post("/update-2p-game/", func(w http.ResponseWriter, r *http.Request) {
		var in agent.UpdateInfo
		if !decodeJSON(w, r, &in) {
			return
		}
		sess.Update(r.Context(), in)
		writeJSON(w, http.StatusOK, agent.StatusOut{Status: "OK"})
	})

	r.Post("/draw/", func(w http.ResponseWriter, r *http.Request) {
		var in agent.UpdateInfo
		if !decodeJSON(w, r, &in) {
			return
		}
		writeJSON(w, http.StatusOK, agent.PlayOut{Play: sess.OnDrawPhase(r.Context(), in)})
	})

	r.Post("/lay-down/", func(w http.ResponseWriter, r *http.Request) {
		var in agent.UpdateInfo
		if !decodeJSON(w, r, &in) {
			return
		}
		play, err := sess.OnLayDownPhase(r.Context(), in)
		if errors.Is(err, engine.ErrEmptyHand) {
			writeError(w, http.StatusConflict, "empty hand")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, agent.PlayOut{Play: play})
	})

	r.Get("/stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, sess.View())
	})

	r.Delete("/stats", func(w http.ResponseWriter, r *http.Request) {
		if err := learner.Reset(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, "reset not persisted: "+err.Error())
			return
		}
		writeJSON(w, http.StatusOK, agent.StatusOut{Status: "OK"})
	})

	r.Get("/shutdown", func(w http.ResponseWriter, r *http.Request) {
		logger.Warn().Msg("player client shutting down")
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Server shutting down..."))
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		if shutdown != nil {
			go shutdown()
		}
	})

	return r
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("took", time.Since(start)).
				Msg("request")
		})
	}
}
