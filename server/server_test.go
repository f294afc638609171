package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"othello/game"
	"othello/meta"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Extras  json.RawMessage `json:"extras"`
}

func do(t *testing.T, s *Server, method, path string, body any) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	s.Engine().ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "Body: %s", rec.Body.String())
	require.Equal(t, rec.Code, env.Code)
	return rec.Code, env
}

func extras[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Extras, &v))
	return v
}

func newGame(t *testing.T, s *Server, layout string) GameState {
	t.Helper()
	code, env := do(t, s, http.MethodPost, "/games", NewGameRequest{Layout: layout})
	require.Equal(t, http.StatusCreated, code)
	return extras[GameState](t, env)
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func TestFindMove(t *testing.T) {
	s := NewServer()
	stuck := "XOOOOOO." + strings.Repeat(".", 56)

	t.Run("search strategies", func(t *testing.T) {
		for _, strategy := range []string{"minimax", "alpha-beta"} {
			code, env := do(t, s, http.MethodPost, "/findmove", FindMoveRequest{Layout: stuck, Side: "X", Strategy: strategy})

			require.Equal(t, http.StatusOK, code)
			got := extras[FindMoveResponse](t, env)
			require.Equal(t, 18, got.Move)
			require.Positive(t, got.Nodes)
		}
	})

	t.Run("random with a seed is legal", func(t *testing.T) {
		code, env := do(t, s, http.MethodPost, "/findmove", FindMoveRequest{Layout: game.InitialLayout, Side: "black", Strategy: "random", Seed: 3})

		require.Equal(t, http.StatusOK, code)
		require.True(t, game.InitialBoard().LegalMoves(game.Black).Has(extras[FindMoveResponse](t, env).Move))
	})

	t.Run("pass", func(t *testing.T) {
		code, env := do(t, s, http.MethodPost, "/findmove", FindMoveRequest{Layout: stuck, Side: "O", Strategy: "minimax", Depth: 2})

		require.Equal(t, http.StatusOK, code)
		require.Equal(t, game.NoMove, extras[FindMoveResponse](t, env).Move)
	})

	t.Run("depth up to the search limit", func(t *testing.T) {
		code, env := do(t, s, http.MethodPost, "/findmove", FindMoveRequest{Layout: stuck, Side: "X", Strategy: "alpha-beta", Depth: meta.SEARCH_DEPTH_LIMIT})

		require.Equal(t, http.StatusOK, code)
		require.Equal(t, 18, extras[FindMoveResponse](t, env).Move)
	})

	for name, req := range map[string]FindMoveRequest{
		"human strategy": {Layout: game.InitialLayout, Side: "X", Strategy: "human"},
		"bad layout":     {Layout: "XO", Side: "X", Strategy: "minimax"},
		"bad symbol":     {Layout: strings.Repeat("Z", 64), Side: "X", Strategy: "minimax"},
		"bad side":       {Layout: game.InitialLayout, Side: "red", Strategy: "minimax"},
		"too deep":       {Layout: game.InitialLayout, Side: "X", Strategy: "minimax", Depth: meta.SEARCH_DEPTH_LIMIT + 1},
		"negative depth": {Layout: game.InitialLayout, Side: "X", Strategy: "minimax", Depth: -1},
	} {
		t.Run("rejects "+name, func(t *testing.T) {
			code, env := do(t, s, http.MethodPost, "/findmove", req)

			require.Equal(t, http.StatusBadRequest, code)
			require.False(t, env.Success)
		})
	}
}

func TestGames(t *testing.T) {
	s := NewServer()

	t.Run("create with the standard opening", func(t *testing.T) {
		code, env := do(t, s, http.MethodPost, "/games", nil)

		require.Equal(t, http.StatusCreated, code)
		state := extras[GameState](t, env)
		require.NotEmpty(t, state.ID)
		require.Equal(t, game.InitialLayout, state.Layout)
		require.Equal(t, "Black", state.ToMove)
		require.Equal(t, []int{34, 43, 56, 65}, state.LegalMoves)
	})

	t.Run("play and read back", func(t *testing.T) {
		created := newGame(t, s, "")

		code, env := do(t, s, http.MethodPost, "/games/"+created.ID+"/moves", PlayRequest{Cell: 34})
		require.Equal(t, http.StatusOK, code)
		played := extras[GameState](t, env)
		require.Equal(t, "White", played.ToMove)
		require.Equal(t, 4, played.Black)
		require.Equal(t, 1, played.White)

		code, env = do(t, s, http.MethodGet, "/games/"+created.ID, nil)
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, played, extras[GameState](t, env))
	})

	t.Run("illegal move", func(t *testing.T) {
		created := newGame(t, s, "")

		code, env := do(t, s, http.MethodPost, "/games/"+created.ID+"/moves", PlayRequest{Cell: 11})

		require.Equal(t, http.StatusUnprocessableEntity, code)
		require.False(t, env.Success)
	})

	t.Run("finished game", func(t *testing.T) {
		created := newGame(t, s, "XOOOOOO."+strings.Repeat(".", 56))

		code, env := do(t, s, http.MethodPost, "/games/"+created.ID+"/moves", PlayRequest{Cell: 18})
		require.Equal(t, http.StatusOK, code)
		state := extras[GameState](t, env)
		require.True(t, state.Over)
		require.Equal(t, "Black", state.Winner)
		require.Empty(t, state.LegalMoves)

		code, _ = do(t, s, http.MethodPost, "/games/"+created.ID+"/moves", PlayRequest{Cell: 21})
		require.Equal(t, http.StatusConflict, code)
	})

	t.Run("updates include passes", func(t *testing.T) {
		created := newGame(t, s, "XO.XO..."+strings.Repeat(".", 56))
		code, env := do(t, s, http.MethodPost, "/games/"+created.ID+"/moves", PlayRequest{Cell: 13})
		require.Equal(t, http.StatusOK, code)
		played := extras[GameState](t, env)

		code, env = do(t, s, http.MethodGet, "/games/"+created.ID+"/updates", nil)

		require.Equal(t, http.StatusOK, code)
		got := extras[UpdatesResponse](t, env)
		require.Equal(t, "Black", got.ToMove, "White is stuck so Black moves again")
		require.False(t, got.Over)
		require.Len(t, got.Updates, 2)
		require.Equal(t, 13, got.Updates[0].Cell)
		require.Equal(t, "Black", got.Updates[0].Side)
		require.Equal(t, game.NoMove, got.Updates[1].Cell)
		require.Equal(t, "White", got.Updates[1].Side)
		require.Equal(t, played.Layout, got.Updates[1].Layout)
		board, err := game.NewBoard(played.Layout)
		require.NoError(t, err)
		require.Equal(t, uint64(board.Hash()), got.Updates[1].Hash)

		_, env = do(t, s, http.MethodGet, "/games/"+created.ID+"/updates", nil)
		require.Empty(t, extras[UpdatesResponse](t, env).Updates, "Updates are delivered once")
	})

	t.Run("delete", func(t *testing.T) {
		created := newGame(t, s, "")

		code, _ := do(t, s, http.MethodDelete, "/games/"+created.ID, nil)
		require.Equal(t, http.StatusOK, code)

		code, _ = do(t, s, http.MethodGet, "/games/"+created.ID, nil)
		require.Equal(t, http.StatusNotFound, code)
		code, _ = do(t, s, http.MethodDelete, "/games/"+created.ID, nil)
		require.Equal(t, http.StatusNotFound, code)
	})

	t.Run("unknown game", func(t *testing.T) {
		code, _ := do(t, s, http.MethodGet, "/games/nope", nil)
		require.Equal(t, http.StatusNotFound, code)

		code, _ = do(t, s, http.MethodGet, "/games/nope/updates", nil)
		require.Equal(t, http.StatusNotFound, code)

		code, _ = do(t, s, http.MethodPost, "/games/nope/moves", PlayRequest{Cell: 34})
		require.Equal(t, http.StatusNotFound, code)
	})

	t.Run("bad layout", func(t *testing.T) {
		code, _ := do(t, s, http.MethodPost, "/games", NewGameRequest{Layout: "..."})
		require.Equal(t, http.StatusBadRequest, code)
	})
}
