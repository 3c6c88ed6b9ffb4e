// Package realtime maintains the websocket stream delivering conversation
// events to the client.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"makernet/internal/models"
	"makernet/internal/observability"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 16384
)

// Event is one frame from the message stream.
type Event struct {
	Type           string         `json:"type"`
	ConversationID uint           `json:"conversation_id"`
	Message        models.Message `json:"message"`
}

// Handler receives decoded stream events.
type Handler func(Event)

// Stream is a client-side websocket subscription. There is no automatic
// reconnect; when the stream closes the caller decides whether to dial
// again.
type Stream struct {
	conn *websocket.Conn
	log  *observability.Logger
	done chan struct{}
}

// Dial connects to the message stream endpoint derived from the API base
// URL, authenticating with the bearer token.
func Dial(ctx context.Context, baseURL, token string) (*Stream, error) {
	wsURL := strings.Replace(baseURL, "http", "ws", 1) + "/conversations/stream"
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial stream: %w (status %d)", err, resp.StatusCode)
		}
		return nil, fmt.Errorf("dial stream: %w", err)
	}
	return &Stream{
		conn: conn,
		log:  observability.GlobalLogger,
		done: make(chan struct{}),
	}, nil
}

// Run reads events until the connection closes or ctx is cancelled,
// invoking handler for each decoded event. Run blocks; callers usually run
// it on its own goroutine.
func (s *Stream) Run(ctx context.Context, handler Handler) error {
	defer close(s.done)

	go s.pingLoop(ctx)

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Error("stream read failed", "error", err.Error())
				return err
			}
			return nil
		}

		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			s.log.Warn("stream frame skipped", "error", err.Error())
			continue
		}
		handler(ev)
	}
}

func (s *Stream) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-ctx.Done():
			_ = s.conn.Close()
			return
		case <-s.done:
			return
		}
	}
}

// Close tears down the connection.
func (s *Stream) Close() error {
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	return s.conn.Close()
}
