package rest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
	"github.com/rocketscienceinc/tictactoe-board/internal/repository"
	"github.com/rocketscienceinc/tictactoe-board/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClient struct {
	t       *testing.T
	handler http.Handler
	cookie  *http.Cookie
}

func newTestClient(t *testing.T) *testClient {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := usecase.NewGameManager(logger, repository.NewMemorySessionRepository(), usecase.Options{
		DefaultDimension: 3,
		MaxDimension:     6,
	})

	return &testClient{t: t, handler: NewRouter(logger, manager, nil)}
}

func (that *testClient) do(req *http.Request) *httptest.ResponseRecorder {
	that.t.Helper()

	if that.cookie != nil {
		req.AddCookie(that.cookie)
	}

	rr := httptest.NewRecorder()
	that.handler.ServeHTTP(rr, req)

	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == SessionCookieName {
			that.cookie = cookie
		}
	}

	return rr
}

func (that *testClient) postJSON(path, body string) (*httptest.ResponseRecorder, gameResponse) {
	that.t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := that.do(req)

	var resp gameResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &resp)

	return rr, resp
}

func (that *testClient) postForm(path string, values url.Values) *httptest.ResponseRecorder {
	that.t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return that.do(req)
}

func TestPing(t *testing.T) {
	client := newTestClient(t)

	rr := client.do(httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong", rr.Body.String())
}

func TestIndex(t *testing.T) {
	// Given: a browser without a session
	client := newTestClient(t)

	// When: the board page is opened
	rr := client.do(httptest.NewRequest(http.MethodGet, "/", nil))

	// Then: a session cookie is set and an empty 3x3 board is rendered
	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, client.cookie)
	assert.NotEmpty(t, client.cookie.Value)

	body := rr.Body.String()
	assert.Contains(t, body, "Player X moves first!")
	assert.Equal(t, 9, strings.Count(body, `action="/game/move"`))
}

func TestFormFlow(t *testing.T) {
	// Given: a browser with a session
	client := newTestClient(t)
	client.do(httptest.NewRequest(http.MethodGet, "/", nil))

	// When: the center cell is clicked
	rr := client.postForm("/game/move", url.Values{"row": {"1"}, "col": {"1"}})

	// Then: the browser is redirected back to the board showing the mark
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	body := client.do(httptest.NewRequest(http.MethodGet, "/", nil)).Body.String()
	assert.Contains(t, body, `<span class="X">X</span>`)
	assert.Equal(t, 8, strings.Count(body, `action="/game/move"`))

	// When: the same cell is clicked again
	client.postForm("/game/move", url.Values{"row": {"1"}, "col": {"1"}})

	// Then: the rejection is shown
	body = client.do(httptest.NewRequest(http.MethodGet, "/", nil)).Body.String()
	assert.Contains(t, body, "cell is already occupied")

	// When: a 4x4 game is requested
	rr = client.postForm("/game", url.Values{"dimension": {"4"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	// Then: an empty 4x4 board is rendered
	body = client.do(httptest.NewRequest(http.MethodGet, "/", nil)).Body.String()
	assert.Equal(t, 16, strings.Count(body, `action="/game/move"`))
}

func TestFormValidation(t *testing.T) {
	client := newTestClient(t)

	rr := client.postForm("/game", url.Values{"dimension": {"big"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = client.postForm("/game", url.Values{"dimension": {"7"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = client.postForm("/game/move", url.Values{"row": {"a"}, "col": {"1"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAPI_GameFlow(t *testing.T) {
	// Given: a client that fetched its game
	client := newTestClient(t)
	rr := client.do(httptest.NewRequest(http.MethodGet, "/api/game", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var state gameResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &state))
	assert.Equal(t, client.cookie.Value, state.SessionID)
	assert.Equal(t, 3, state.Game.Dimension)

	// When: X wins on the top row
	moves := []string{`{"row":0,"col":0}`, `{"row":1,"col":0}`, `{"row":0,"col":1}`, `{"row":1,"col":1}`, `{"row":0,"col":2}`}

	var resp gameResponse
	for _, move := range moves {
		rr, resp = client.postJSON("/api/game/move", move)
		require.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, resp.Accepted)
		require.True(t, *resp.Accepted)
	}

	// Then: the outcome is reported
	assert.Equal(t, entity.OutcomeXWon, resp.Game.Outcome)
	assert.Equal(t, "X won!", resp.Game.Message)

	// When: another move is attempted
	rr, resp = client.postJSON("/api/game/move", `{"row":2,"col":2}`)

	// Then: it is rejected in the body, not by status
	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, resp.Accepted)
	assert.False(t, *resp.Accepted)
	assert.Equal(t, "game is already finished", resp.Error)
	assert.Equal(t, entity.MarkEmpty, resp.Game.Board[2][2])
}

func TestAPI_NewGame(t *testing.T) {
	client := newTestClient(t)

	rr, resp := client.postJSON("/api/game", `{"dimension":5}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 5, resp.Game.Dimension)
	assert.Equal(t, entity.NewBoard(5), resp.Game.Board)

	rr, _ = client.postJSON("/api/game", `{"dimension":0}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr, _ = client.postJSON("/api/game", `{"dimension":7}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr, _ = client.postJSON("/api/game", `not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAPI_MoveValidation(t *testing.T) {
	t.Run("Move without a session", func(t *testing.T) {
		client := newTestClient(t)

		rr, _ := client.postJSON("/api/game/move", `{"row":0,"col":0}`)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Move with an expired session", func(t *testing.T) {
		client := newTestClient(t)
		client.cookie = &http.Cookie{Name: SessionCookieName, Value: "expired"}

		rr, _ := client.postJSON("/api/game/move", `{"row":0,"col":0}`)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Missing coordinates", func(t *testing.T) {
		client := newTestClient(t)
		client.do(httptest.NewRequest(http.MethodGet, "/api/game", nil))

		rr, _ := client.postJSON("/api/game/move", `{"row":0}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Out of bounds", func(t *testing.T) {
		client := newTestClient(t)
		client.do(httptest.NewRequest(http.MethodGet, "/api/game", nil))

		rr, resp := client.postJSON("/api/game/move", `{"row":-1,"col":0}`)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.False(t, *resp.Accepted)
		assert.Contains(t, resp.Error, "out of bounds")
		assert.Equal(t, entity.PlayerX, resp.Game.Turn)
	})
}

func TestAPI_EndSession(t *testing.T) {
	client := newTestClient(t)
	client.do(httptest.NewRequest(http.MethodGet, "/api/game", nil))
	id := client.cookie.Value

	rr := client.do(httptest.NewRequest(http.MethodDelete, "/api/game", nil))
	require.Equal(t, http.StatusNoContent, rr.Code)

	client.cookie = &http.Cookie{Name: SessionCookieName, Value: id}
	rr, _ = client.postJSON("/api/game/move", `{"row":0,"col":0}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
