package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

func streamServer(t *testing.T, handle func(*websocket.Conn)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/conversations/stream" {
			http.NotFound(w, r)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()
		handle(conn)
	}))
}

func TestStreamDeliversEvents(t *testing.T) {
	srv := streamServer(t, func(conn *websocket.Conn) {
		payload, _ := json.Marshal(Event{
			Type:           "message",
			ConversationID: 3,
		})
		_ = conn.WriteMessage(websocket.TextMessage, payload)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
	})
	defer srv.Close()

	s, err := Dial(context.Background(), srv.URL, "tok")
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer s.Close()

	var events []Event
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Run(ctx, func(ev Event) { events = append(events, ev) }); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].ConversationID != 3 {
		t.Fatalf("conversation id = %d, want 3", events[0].ConversationID)
	}
}

func TestStreamSendsBearerToken(t *testing.T) {
	authCh := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authCh <- r.Header.Get("Authorization")
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn.Close()
	}))
	defer srv.Close()

	s, err := Dial(context.Background(), srv.URL, "tok-9")
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer s.Close()

	if got := <-authCh; got != "Bearer tok-9" {
		t.Fatalf("Authorization = %q, want Bearer tok-9", got)
	}
}

func TestStreamSkipsMalformedFrames(t *testing.T) {
	srv := streamServer(t, func(conn *websocket.Conn) {
		_ = conn.WriteMessage(websocket.TextMessage, []byte("not json"))
		payload, _ := json.Marshal(Event{Type: "message", ConversationID: 8})
		_ = conn.WriteMessage(websocket.TextMessage, payload)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
	})
	defer srv.Close()

	s, err := Dial(context.Background(), srv.URL, "")
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer s.Close()

	var events []Event
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Run(ctx, func(ev Event) { events = append(events, ev) }); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(events) != 1 || events[0].ConversationID != 8 {
		t.Fatalf("malformed frame handling wrong, events = %+v", events)
	}
}
