package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rocketscienceinc/minesweeper-backend/internal/minesweeper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBoard(t *testing.T) *minesweeper.Board {
	t.Helper()

	board, err := minesweeper.NewBoardFromDescription([][]bool{
		{false, true},
		{false, false},
	})
	require.NoError(t, err)

	return board
}

func TestRouter(t *testing.T) {
	t.Run("Ping", func(t *testing.T) {
		router := NewRouter(testBoard(t), nil)
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "pong", recorder.Body.String())
	})

	t.Run("Board shows the current render", func(t *testing.T) {
		// Given: a board where a player flagged a square
		board := testBoard(t)
		board.Flag(1, 1)
		router := NewRouter(board, nil)
		recorder := httptest.NewRecorder()

		// When: the board is requested
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/board", nil))

		// Then: it is returned as plain text
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "text/plain; charset=utf-8", recorder.Header().Get("Content-Type"))
		assert.Equal(t, "- -\r\n- F\r\n", recorder.Body.String())
	})

	t.Run("Board is read-only", func(t *testing.T) {
		router := NewRouter(testBoard(t), nil)
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/board", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
	})

	t.Run("Websocket route is mounted when given", func(t *testing.T) {
		called := false
		ws := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			called = true
			w.WriteHeader(http.StatusTeapot)
		})
		router := NewRouter(testBoard(t), ws)
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ws", nil))

		assert.True(t, called)
		assert.Equal(t, http.StatusTeapot, recorder.Code)
	})

	t.Run("Websocket route is absent without a handler", func(t *testing.T) {
		router := NewRouter(testBoard(t), nil)
		recorder := httptest.NewRecorder()

		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ws", nil))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestStart(t *testing.T) {
	t.Run("Stops when the context is canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)

		go func() {
			done <- Start(ctx, "0", NewRouter(testBoard(t), nil))
		}()

		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not stop")
		}
	})
}
