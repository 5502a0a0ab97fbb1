package websocket

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/minesweeper-backend/internal/entity"
	"github.com/rocketscienceinc/minesweeper-backend/internal/protocol"
)

const closeGracePeriod = time.Second

type commandHandler interface {
	HandleLine(line string) protocol.Reply
}

type lobby interface {
	Join(ctx context.Context, remoteAddr, transport string) (*entity.Player, string)
	Leave(ctx context.Context, player *entity.Player)
}

// Server carries the line protocol over websocket: every text message is one command,
// every reply is one text message.
type Server struct {
	logger   *slog.Logger
	handler  commandHandler
	lobby    lobby
	upgrader websocket.Upgrader

	wg sync.WaitGroup
}

func New(logger *slog.Logger, handler commandHandler, lobby lobby) *Server {
	return &Server{
		logger:  logger.With("component", "websocket"),
		handler: handler,
		lobby:   lobby,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Wait - blocks until every connection served so far has closed and left the lobby.
// Call it after the HTTP server has shut down.
func (that *Server) Wait() {
	that.wg.Wait()
}

// ServeHTTP - upgrades the request and serves commands until bye, a detonation,
// the client going away or the request context being canceled.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	that.wg.Add(1)
	defer that.wg.Done()

	log := that.logger.With("method", "ServeHTTP", "remote_addr", req.RemoteAddr)

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	ctx := req.Context()
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	player, welcome := that.lobby.Join(ctx, req.RemoteAddr, entity.TransportWebSocket)
	defer that.lobby.Leave(ctx, player)

	log = log.With("player_id", player.ID)

	if err = conn.WriteMessage(websocket.TextMessage, []byte(welcome)); err != nil {
		log.Error("failed to send welcome", "error", err)
		return
	}

	for {
		messageType, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		if messageType != websocket.TextMessage {
			continue
		}

		reply := that.handler.HandleLine(string(payload))

		if reply.Detonated {
			log.Info("player dug a mine")
		}

		if err = conn.WriteMessage(websocket.TextMessage, []byte(reply.Text)); err != nil {
			log.Error("failed to send reply", "error", err)
			return
		}

		if reply.Close {
			log.Info("closing connection")
			closeMessage := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			_ = conn.WriteControl(websocket.CloseMessage, closeMessage, time.Now().Add(closeGracePeriod))
			return
		}
	}
}
