// Package live plays a game over a websocket. Each connection owns one
// engine.Session; the server publishes state frames and the client sends
// actions.
package live

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/quiz-arcade/internal/auth"
	"github.com/vovakirdan/quiz-arcade/internal/config"
	"github.com/vovakirdan/quiz-arcade/internal/core"
	"github.com/vovakirdan/quiz-arcade/internal/engine"
	"github.com/vovakirdan/quiz-arcade/internal/registry"
	"github.com/vovakirdan/quiz-arcade/internal/storage"
)

const (
	maxMessage   = 4 << 10
	saveTimeout  = 5 * time.Second
	closeTimeout = time.Second
)

// ScoreStore saves finished games for authenticated players.
type ScoreStore interface {
	UpsertUser(ctx context.Context, externalID string) (storage.User, error)
	SaveScore(ctx context.Context, gameID string, score int, userID string) (int64, error)
}

// Handler serves live game connections.
type Handler struct {
	games  config.Games
	store  ScoreStore
	log    *log.Logger
	buffer int

	PingEvery    time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	upgrader websocket.Upgrader
}

// NewHandler returns a handler creating games from games. store may be nil,
// in which case nothing is saved.
func NewHandler(games config.Games, store ScoreStore, logger *log.Logger, sendBuffer int) *Handler {
	return &Handler{
		games:        games,
		store:        store,
		log:          logger.With("component", "live"),
		buffer:       sendBuffer,
		PingEvery:    25 * time.Second,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 10 * time.Second,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Serve upgrades the request and plays gameID until the client leaves.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request, gameID string) {
	game, err := registry.Create(gameID, h.games)
	if err != nil {
		http.Error(w, `{"error":"unknown game"}`, http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("upgrade failed", "game", gameID, "err", err)
		return
	}
	defer conn.Close()

	user, _ := auth.UserFrom(r.Context())
	logger := h.log.With("game", gameID, "user", user, "remote", r.RemoteAddr)
	logger.Info("connected")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	out := newOutbox(h.buffer)
	defer out.Close()

	sess := engine.NewSession(game)
	sess.Subscribe(func(f engine.Frame) {
		msg, err := Encode(TypeState, stateFrame(f))
		if err != nil {
			logger.Error("encode state", "err", err)
			return
		}
		out.Send(msg)
	})

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		conn.Close()
	}()
	go func() {
		defer wg.Done()
		defer cancel()
		h.writeLoop(ctx, conn, out)
	}()
	go func() {
		defer wg.Done()
		h.play(ctx, sess, gameID, user, logger)
	}()

	h.readLoop(conn, sess, out, logger)
	cancel()
	wg.Wait()
	logger.Info("disconnected", "dropped", out.Dropped())
}

// play runs the session, saving the score each time a game ends, until
// the connection context is cancelled.
func (h *Handler) play(ctx context.Context, sess *engine.Session, gameID, user string, logger *log.Logger) {
	for {
		err := sess.Run(ctx)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				logger.Warn("session ended", "err", err)
			}
			return
		}

		st := sess.State()
		logger.Info("game over", "score", st.Score, "reason", st.Reason)
		h.saveScore(ctx, gameID, user, st.Score, logger)

		select {
		case <-ctx.Done():
			return
		case <-sess.Restarted():
		}
	}
}

func (h *Handler) saveScore(ctx context.Context, gameID, user string, score int, logger *log.Logger) {
	if h.store == nil || user == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()

	u, err := h.store.UpsertUser(ctx, user)
	if err != nil {
		logger.Error("save score", "err", err)
		return
	}
	if _, err := h.store.SaveScore(ctx, gameID, score, u.ID); err != nil {
		logger.Error("save score", "err", err)
	}
}

func (h *Handler) readLoop(conn *websocket.Conn, sess *engine.Session, out *outbox, logger *log.Logger) {
	conn.SetReadLimit(maxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(h.ReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.ReadTimeout))
	})

	reject := func(msg string) {
		if b, err := Encode(TypeError, Error{Message: msg}); err == nil {
			out.Send(b)
		}
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("read", "err", err)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(h.ReadTimeout))

		env, err := DecodeEnvelope(data)
		if err != nil {
			reject(err.Error())
			continue
		}
		if env.T != TypeInput {
			reject("unknown message type " + env.T)
			continue
		}
		in, err := DecodePayload[Input](env)
		if err != nil {
			reject(err.Error())
			continue
		}
		action, ok := core.ParseAction(in.Action)
		if !ok {
			reject("unknown action " + in.Action)
			continue
		}
		if action == core.ActionQuit {
			return
		}
		sess.Push(core.InputFrame{Action: action, Target: in.Target})
	}
}

func (h *Handler) writeLoop(ctx context.Context, conn *websocket.Conn, out *outbox) {
	ping := time.NewTicker(h.PingEvery)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(closeTimeout))
			return

		case msg := <-out.Messages():
			_ = conn.SetWriteDeadline(time.Now().Add(h.WriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(h.WriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
