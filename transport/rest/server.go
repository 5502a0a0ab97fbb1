package rest

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

const shutdownTimeout = 5 * time.Second

type boardViewer interface {
	Look() string
}

// NewRouter - routes /ping, /board and, when ws is not nil, the websocket gateway on /ws.
func NewRouter(board boardViewer, ws http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", pingHandler)
	mux.Handle("/board", NewBoardHandler(board))

	if ws != nil {
		mux.Handle("/ws", ws)
	}

	return mux
}

// Start - serves handler on port until ctx is canceled. Request contexts are derived from ctx,
// so long-lived websocket handlers see the shutdown too. Returns once shutdown has finished.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	shutdownDone := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		defer close(shutdownDone)

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	})

	err := srv.ListenAndServe()

	if !stop() {
		<-shutdownDone
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
