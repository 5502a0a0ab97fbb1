package tcp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"

	"github.com/rocketscienceinc/minesweeper-backend/internal/entity"
	"github.com/rocketscienceinc/minesweeper-backend/internal/protocol"
)

const lineTerminator = "\r\n"

type commandHandler interface {
	HandleLine(line string) protocol.Reply
}

type lobby interface {
	Join(ctx context.Context, remoteAddr, transport string) (*entity.Player, string)
	Leave(ctx context.Context, player *entity.Player)
}

// Server serves the line protocol over plain TCP, one goroutine per connection.
type Server struct {
	logger  *slog.Logger
	handler commandHandler
	lobby   lobby

	wg sync.WaitGroup
}

func New(logger *slog.Logger, handler commandHandler, lobby lobby) *Server {
	return &Server{
		logger:  logger.With("component", "tcp"),
		handler: handler,
		lobby:   lobby,
	}
}

// Start - listens on port and serves connections until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", port, err)
	}

	return that.Serve(ctx, listener)
}

// Serve - accepts connections from listener until ctx is canceled, then waits for open connections to close.
func (that *Server) Serve(ctx context.Context, listener net.Listener) error {
	log := that.logger.With("method", "Serve")

	stop := context.AfterFunc(ctx, func() {
		_ = listener.Close()
	})
	defer stop()

	log.Info("accepting connections", "addr", listener.Addr().String())

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				that.wg.Wait()
				return nil
			}

			_ = listener.Close()
			that.wg.Wait()

			return fmt.Errorf("failed to accept connection: %w", err)
		}

		that.wg.Add(1)
		go func() {
			defer that.wg.Done()
			that.handleConnection(ctx, conn)
		}()
	}
}

// handleConnection - greets the player and answers one line per command until bye, a detonation or EOF.
func (that *Server) handleConnection(ctx context.Context, conn net.Conn) {
	log := that.logger.With("method", "handleConnection", "remote_addr", conn.RemoteAddr().String())

	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	player, welcome := that.lobby.Join(ctx, conn.RemoteAddr().String(), entity.TransportTCP)
	defer that.lobby.Leave(ctx, player)

	log = log.With("player_id", player.ID)

	writer := bufio.NewWriter(conn)
	if err := writeLine(writer, welcome); err != nil {
		log.Error("failed to send welcome", "error", err)
		return
	}

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		reply := that.handler.HandleLine(scanner.Text())

		if reply.Detonated {
			log.Info("player dug a mine")
		}

		if err := writeLine(writer, reply.Text); err != nil {
			log.Error("failed to send reply", "error", err)
			return
		}

		if reply.Close {
			log.Info("closing connection")
			return
		}
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		log.Error("failed to read command", "error", err)
	}
}

// writeLine - writes text, terminating it with CRLF unless it already ends in a newline.
func writeLine(writer *bufio.Writer, text string) error {
	if !strings.HasSuffix(text, "\n") {
		text += lineTerminator
	}

	if _, err := writer.WriteString(text); err != nil {
		return fmt.Errorf("failed to write: %w", err)
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush buffer: %w", err)
	}

	return nil
}
