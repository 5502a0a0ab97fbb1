package application

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rocketscienceinc/minesweeper-backend/internal/apperror"
	"github.com/rocketscienceinc/minesweeper-backend/internal/boardfile"
	"github.com/rocketscienceinc/minesweeper-backend/internal/config"
	"github.com/rocketscienceinc/minesweeper-backend/internal/minesweeper"
	"github.com/rocketscienceinc/minesweeper-backend/internal/protocol"
	"github.com/rocketscienceinc/minesweeper-backend/internal/repository"
	"github.com/rocketscienceinc/minesweeper-backend/internal/repository/storage"
	"github.com/rocketscienceinc/minesweeper-backend/internal/usecase"
	"github.com/rocketscienceinc/minesweeper-backend/transport/rest"
	"github.com/rocketscienceinc/minesweeper-backend/transport/tcp"
	"github.com/rocketscienceinc/minesweeper-backend/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	board, err := newBoard(conf.Board)
	if err != nil {
		return fmt.Errorf("could not create board: %w", err)
	}
	log.Info("Board ready", "size", board.Size(), "file", conf.Board.File, "debug", conf.Debug)

	sessions, closeSessions, err := newSessionRepository(ctx, conf.Redis)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeSessions(); closeErr != nil {
			log.Error("could not close session storage", "error", closeErr)
		}
	}()

	lobby := usecase.NewLobby(logger.With("component", "lobby"), sessions)
	dispatcher := protocol.NewDispatcher(board, conf.Debug)

	// handlers unregister players on exit, so they must finish before the session storage closes
	var servers sync.WaitGroup

	// run TCP server
	tcpErrCh := make(chan error, 1)
	servers.Add(1)
	go func() {
		defer servers.Done()

		log.Info("Starting TCP server", "port", conf.SocketPort)
		tcpServer := tcp.New(logger, dispatcher, lobby)
		if tcpErr := tcpServer.Start(ctx, conf.SocketPort); tcpErr != nil {
			log.Error("TCP server error", "error", tcpErr)
			tcpErrCh <- tcpErr
		}
	}()

	// run HTTP server, websocket gateway included
	httpErrCh := make(chan error, 1)
	servers.Add(1)
	go func() {
		defer servers.Done()

		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		wsServer := websocket.New(logger, dispatcher, lobby)
		httpErr := rest.Start(ctx, conf.HTTPPort, rest.NewRouter(board, wsServer))
		wsServer.Wait()

		if httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-tcpErrCh:
		err = fmt.Errorf("TCP server error: %w", err)
	case err = <-httpErrCh:
		err = fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
	}

	cancel()
	servers.Wait()
	log.Info("Servers stopped")

	return err
}

func newBoard(conf config.Board) (*minesweeper.Board, error) {
	if conf.File != "" {
		mines, err := boardfile.Load(conf.File)
		if err != nil {
			return nil, err
		}

		return minesweeper.NewBoardFromDescription(mines)
	}

	return minesweeper.NewBoard(conf.Size, rand.New(rand.NewSource(time.Now().UnixNano())))
}

func newSessionRepository(ctx context.Context, conf config.Redis) (repository.SessionRepository, func() error, error) {
	if !conf.Enabled {
		return repository.NewMemorySessionRepository(), func() error { return nil }, nil
	}

	redisAddrString := conf.GetRedisAddr()
	if redisAddrString == "" {
		return nil, nil, apperror.ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return repository.NewSessionRepository(redisStorage), redisStorage.Close, nil
}
