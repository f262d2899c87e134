package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

const (
	SessionCookieName = "ttt_session"
	sessionCookieTTL  = 24 * time.Hour
)

type uGame interface {
	GetOrCreateSession(ctx context.Context, sessionID string) (*entity.Session, error)
	NewGame(ctx context.Context, sessionID string, dimension int) (*entity.Session, error)
	MakeTurn(ctx context.Context, sessionID string, row, col int) (*entity.Session, entity.MoveResult, error)
	EndSession(ctx context.Context, sessionID string) error
}

type handlers struct {
	logger *slog.Logger
	uGame  uGame
	tpl    *templates
}

func newHandlers(logger *slog.Logger, uGame uGame) *handlers {
	return &handlers{
		logger: logger.With("component", "rest"),
		uGame:  uGame,
		tpl:    loadTemplates(),
	}
}

type newGameRequest struct {
	Dimension int `json:"dimension"`
}

type moveRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type gameResponse struct {
	SessionID string       `json:"session_id"`
	Game      *entity.Game `json:"game"`
	Accepted  *bool        `json:"accepted,omitempty"`
	Error     string       `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *handlers) index(w http.ResponseWriter, r *http.Request) {
	session, ok := that.session(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(that.tpl.renderBoard(session.Game))
}

func (that *handlers) newGame(w http.ResponseWriter, r *http.Request) {
	dimension, err := strconv.Atoi(r.FormValue("dimension"))
	if err != nil {
		http.Error(w, "dimension must be a number", http.StatusBadRequest)
		return
	}

	session, err := that.uGame.NewGame(r.Context(), sessionID(r), dimension)
	if err != nil {
		that.writePlainError(w, "newGame", err)
		return
	}

	setSessionCookie(w, session.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (that *handlers) move(w http.ResponseWriter, r *http.Request) {
	row, rowErr := strconv.Atoi(r.FormValue("row"))
	col, colErr := strconv.Atoi(r.FormValue("col"))
	if rowErr != nil || colErr != nil {
		http.Error(w, "row and col must be numbers", http.StatusBadRequest)
		return
	}

	session, ok := that.session(w, r)
	if !ok {
		return
	}

	// a rejected move is rendered from the game's last error
	if _, _, err := that.uGame.MakeTurn(r.Context(), session.ID, row, col); err != nil {
		that.writePlainError(w, "move", err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (that *handlers) apiGetGame(w http.ResponseWriter, r *http.Request) {
	session, ok := that.session(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, gameResponse{SessionID: session.ID, Game: session.Game})
}

func (that *handlers) apiNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	session, err := that.uGame.NewGame(r.Context(), sessionID(r), req.Dimension)
	if err != nil {
		that.writeJSONError(w, "apiNewGame", err)
		return
	}

	setSessionCookie(w, session.ID)
	writeJSON(w, http.StatusOK, gameResponse{SessionID: session.ID, Game: session.Game})
}

func (that *handlers) apiMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Row == nil || req.Col == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "row and col are required"})
		return
	}

	id := sessionID(r)
	if id == "" {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: apperror.ErrSessionNotFound.Error()})
		return
	}

	session, result, err := that.uGame.MakeTurn(r.Context(), id, *req.Row, *req.Col)
	if err != nil {
		that.writeJSONError(w, "apiMove", err)
		return
	}

	accepted := result.Accepted()
	resp := gameResponse{SessionID: session.ID, Game: session.Game, Accepted: &accepted}
	if result.Rejected() {
		resp.Error = result.Err.Error()
	}

	writeJSON(w, http.StatusOK, resp)
}

func (that *handlers) apiEndSession(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	if id == "" {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: apperror.ErrSessionNotFound.Error()})
		return
	}

	if err := that.uGame.EndSession(r.Context(), id); err != nil {
		that.writeJSONError(w, "apiEndSession", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:   SessionCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	w.WriteHeader(http.StatusNoContent)
}

// session - loads or creates the caller's session and refreshes its cookie.
func (that *handlers) session(w http.ResponseWriter, r *http.Request) (*entity.Session, bool) {
	session, err := that.uGame.GetOrCreateSession(r.Context(), sessionID(r))
	if err != nil {
		that.logger.Error("failed to get session", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}

	setSessionCookie(w, session.ID)

	return session, true
}

func (that *handlers) writePlainError(w http.ResponseWriter, method string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		http.Error(w, "Internal Server Error", status)
		return
	}

	http.Error(w, err.Error(), status)
}

func (that *handlers) writeJSONError(w http.ResponseWriter, method string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		writeJSON(w, status, errorResponse{Error: "internal server error"})
		return
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrInvalidDimension), errors.Is(err, apperror.ErrDimensionTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrSessionNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func sessionID(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}

	return cookie.Value
}

func setSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(sessionCookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
