// Package api exposes team splitting as a small JSON API.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"team-roulette/domain"
	apperrors "team-roulette/errors"
	"team-roulette/observability"
	"team-roulette/services"

	"github.com/samber/lo"
)

const maxBodyBytes = 1 << 20

// HealthReporter gives the figures served by /health.
type HealthReporter interface {
	GetLatest() observability.HealthStats
}

type Server struct {
	log    *slog.Logger
	splits services.ISplitService
	health HealthReporter
}

func NewServer(log *slog.Logger, splits services.ISplitService, health HealthReporter) *Server {
	return &Server{log: log, splits: splits, health: health}
}

// Handler routes the API behind a permissive CORS layer, the web page may be served from anywhere.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /voice-members", s.handleVoiceMembers)
	mux.HandleFunc("POST /teams", s.handleTeams)
	mux.HandleFunc("POST /split", s.handleSplit)
	mux.HandleFunc("GET /health", s.handleHealth)
	return cors(mux)
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleVoiceMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.splits.VoiceMembers(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	names := lo.Map(members, func(m domain.Member, _ int) string { return m.DisplayName })
	s.writeJSON(w, http.StatusOK, VoiceMembersResponse{Members: names})
}

func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	var req TeamsRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	split, err := s.splits.SplitVoice(r.Context(), req.toCommand())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toSplitResponse(split))
}

func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	var req SplitRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	split, err := s.splits.SplitText(r.Context(), req.toCommand())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toSplitResponse(split))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.health.GetLatest())
}

// badRequest wraps errors caused by the request body.
type badRequest struct {
	err error
}

func (e badRequest) Error() string { return e.err.Error() }
func (e badRequest) Unwrap() error { return e.err }

// decode reads a JSON body, an empty body leaves v to its zero value.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		return badRequest{fmt.Errorf("invalid json body: %w", err)}
	}
	if err := validate.Struct(v); err != nil {
		return badRequest{err}
	}
	return nil
}

func statusOf(err error) int {
	var invalid badRequest
	switch {
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrEmptyNames),
		errors.Is(err, apperrors.ErrInvalidTeamCount),
		errors.Is(err, apperrors.ErrInvalidTrials),
		errors.Is(err, apperrors.ErrNotEnoughMembers),
		errors.Is(err, apperrors.ErrChannelNotFound),
		errors.Is(err, apperrors.ErrVoiceDisabled),
		errors.Is(err, apperrors.ErrNoPublisher):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("Request failed", "error", err)
	} else {
		s.log.Debug("Request refused", "error", err)
	}
	s.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Warn("Writing response failed", "error", err)
	}
}
