package game

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/timerift/internal/progression"
	"github.com/gokatarajesh/timerift/internal/question"
	"github.com/gokatarajesh/timerift/internal/session"
	httperrors "github.com/gokatarajesh/timerift/pkg/http/errors"
)

// HTTPHandler exposes the runner to the presentation layer.
type HTTPHandler struct {
	runner *Runner
	logger zerolog.Logger
}

// NewHTTPHandler constructs a game HTTP handler.
func NewHTTPHandler(runner *Runner, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		runner: runner,
		logger: logger.With().Str("component", "game_http").Logger(),
	}
}

// AnswerRequest carries the keypad input: a magnitude and an era toggle.
type AnswerRequest struct {
	Era  string `json:"era"`
	Year string `json:"year"`
}

// ProgressResponse decorates the persistent record with derived values.
type ProgressResponse struct {
	progression.Progress
	Accuracy    float64 `json:"accuracy"`
	NextLevelXP int     `json:"nextLevelXp"`
}

// Register mounts the game routes.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/session/start", h.HandleStart)
	mux.HandleFunc("/v1/session/obstacle", h.HandleObstacle)
	mux.HandleFunc("/v1/session/answer", h.HandleAnswer)
	mux.HandleFunc("/v1/session", h.HandleSnapshot)
	mux.HandleFunc("/v1/progress", h.HandleProgress)
	mux.HandleFunc("/v1/achievements", h.HandleAchievements)
}

// HandleStart begins a new session.
// Route: POST /v1/session/start
func (h *HTTPHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusCreated, h.runner.Start(r.Context()))
}

// HandleObstacle draws the next question.
// Route: POST /v1/session/obstacle
func (h *HTTPHandler) HandleObstacle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}
	prompt, err := h.runner.Obstacle(r.Context())
	if err != nil {
		h.respondGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prompt)
}

// HandleAnswer validates keypad input and submits it.
// Route: POST /v1/session/answer
func (h *HTTPHandler) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Request body must be JSON")
		return
	}

	year, err := question.ParseYear(req.Era, req.Year)
	switch {
	case errors.Is(err, question.ErrInvalidEra):
		httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidEra, "Era must be CE or BCE", "era")
		return
	case err != nil:
		httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidAnswer, "Year must be a positive whole number", "year")
		return
	}

	report, err := h.runner.Answer(r.Context(), year)
	if err != nil {
		h.respondGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleSnapshot returns the live session state.
// Route: GET /v1/session
func (h *HTTPHandler) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, h.runner.Snapshot())
}

// HandleProgress returns the persistent player record.
// Route: GET /v1/progress
func (h *HTTPHandler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}
	p := h.runner.Progress()
	writeJSON(w, http.StatusOK, ProgressResponse{
		Progress:    p,
		Accuracy:    p.Accuracy(),
		NextLevelXP: progression.XPForLevel(p.Level + 1),
	})
}

// HandleAchievements lists all achievements with unlock flags.
// Route: GET /v1/achievements
func (h *HTTPHandler) HandleAchievements(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"achievements": h.runner.Achievements(),
	})
}

func (h *HTTPHandler) respondGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNoActiveQuestion):
		httperrors.RespondConflict(w, httperrors.ErrCodeNoActiveQuestion, "No question is awaiting an answer")
	case errors.Is(err, ErrQuestionPending):
		httperrors.RespondConflict(w, httperrors.ErrCodeQuestionPending, "Answer the current question first")
	case errors.Is(err, session.ErrSessionOver):
		snap := h.runner.Snapshot()
		httperrors.RespondErrorWithDetails(w, http.StatusConflict, httperrors.ErrCodeSessionOver, "Session is over, start a new one", map[string]interface{}{
			"stats": snap.Stats,
		})
	case errors.Is(err, ErrNotPlaying):
		httperrors.RespondConflict(w, httperrors.ErrCodeNotPlaying, "Start a session first")
	default:
		h.logger.Error().Err(err).Msg("game request failed")
		httperrors.RespondInternalError(w, "Internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
