// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package websocket

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

type echoSelection struct {
	Country string `json:"country"`
}

// dispatchFunc adapts a function to Dispatcher.
type dispatchFunc func(ctx context.Context, data json.RawMessage) (interface{}, error)

func (f dispatchFunc) Dispatch(ctx context.Context, data json.RawMessage) (interface{}, error) {
	return f(ctx, data)
}

// echoDispatcher answers with the requested country, or fails on demand.
var echoDispatcher = dispatchFunc(func(_ context.Context, data json.RawMessage) (interface{}, error) {
	var sel echoSelection
	if err := json.Unmarshal(data, &sel); err != nil {
		return nil, &DispatchError{Code: "VALIDATION_ERROR", Message: "bad selection"}
	}
	switch sel.Country {
	case "":
		return nil, &DispatchError{Code: "VALIDATION_ERROR", Message: "country is required"}
	case "boom":
		return nil, errors.New("exploded")
	}
	return map[string]string{"country": sel.Country}, nil
})

// setupServer serves /ws backed by hub and dispatcher.
func setupServer(t *testing.T, hub *Hub, d Dispatcher) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.Upgrader{}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(r.Context(), hub, conn, d)
		if err := hub.Add(r.Context(), client); err != nil {
			_ = conn.Close()
			return
		}
		client.Start()
	}))
	t.Cleanup(server.Close)
	return server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		t.Fatalf("Failed to dial websocket: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

type received struct {
	Type string          `json:"type"`
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data"`
}

func readMessage(t *testing.T, conn *websocket.Conn) received {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("SetReadDeadline: %v", err)
	}
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	var msg received
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return msg
}

func send(t *testing.T, conn *websocket.Conn, raw string) {
	t.Helper()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(raw)); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
}

// connect dials and consumes the hello message.
func connect(t *testing.T, d Dispatcher) (*Hub, *websocket.Conn) {
	t.Helper()
	hub, _ := startHub(t)
	conn := dial(t, setupServer(t, hub, d))

	hello := readMessage(t, conn)
	if hello.Type != MessageTypeHello {
		t.Fatalf("first message = %q, want hello", hello.Type)
	}
	var data HelloData
	if err := json.Unmarshal(hello.Data, &data); err != nil || data.BootID != "boot-test" {
		t.Fatalf("hello data = %s", hello.Data)
	}
	return hub, conn
}

func TestClient_PingPong(t *testing.T) {
	t.Parallel()

	_, conn := connect(t, echoDispatcher)
	send(t, conn, `{"type":"ping","id":"p1"}`)

	msg := readMessage(t, conn)
	if msg.Type != MessageTypePong || msg.ID != "p1" {
		t.Errorf("got %+v, want pong p1", msg)
	}
}

func TestClient_Update(t *testing.T) {
	t.Parallel()

	_, conn := connect(t, echoDispatcher)
	send(t, conn, `{"type":"update","id":"1","data":{"country":"Germany"}}`)

	msg := readMessage(t, conn)
	if msg.Type != MessageTypeFigures || msg.ID != "1" {
		t.Fatalf("got %+v, want figures 1", msg)
	}
	if !strings.Contains(string(msg.Data), "Germany") {
		t.Errorf("figures data = %s", msg.Data)
	}
}

func TestClient_UpdatesAnsweredInOrder(t *testing.T) {
	t.Parallel()

	_, conn := connect(t, echoDispatcher)
	countries := []string{"France", "Germany", "Italy", "Spain"}
	for i, c := range countries {
		send(t, conn, `{"type":"update","id":"`+string(rune('a'+i))+`","data":{"country":"`+c+`"}}`)
	}
	for i, c := range countries {
		msg := readMessage(t, conn)
		if msg.ID != string(rune('a'+i)) || !strings.Contains(string(msg.Data), c) {
			t.Errorf("reply %d = %+v, want %s", i, msg, c)
		}
	}
}

func TestClient_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		wantID   string
		wantCode string
	}{
		{"dispatch error", `{"type":"update","id":"2","data":{"country":""}}`, "2", "VALIDATION_ERROR"},
		{"internal error", `{"type":"update","id":"3","data":{"country":"boom"}}`, "3", "INTERNAL_ERROR"},
		{"unknown type", `{"type":"subscribe","id":"4"}`, "4", "INVALID_MESSAGE"},
		{"invalid json", `{not json`, "", "INVALID_MESSAGE"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, conn := connect(t, echoDispatcher)
			send(t, conn, tt.raw)

			msg := readMessage(t, conn)
			if msg.Type != MessageTypeError || msg.ID != tt.wantID {
				t.Fatalf("got %+v, want error with id %q", msg, tt.wantID)
			}
			var data ErrorData
			if err := json.Unmarshal(msg.Data, &data); err != nil {
				t.Fatalf("decode error data: %v", err)
			}
			if data.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", data.Code, tt.wantCode)
			}
		})
	}
}

// fillQueue leaves c with no room for another message.
func fillQueue(c *Client) {
	for len(c.send) < cap(c.send) {
		c.send <- Message{Type: MessageTypePong}
	}
}

func TestClient_ReplyWaitsForFullQueue(t *testing.T) {
	t.Parallel()

	c := NewClient(context.Background(), nil, nil, echoDispatcher)
	fillQueue(c)

	done := make(chan struct{})
	go func() {
		c.handleUpdate(InboundMessage{Type: MessageTypeUpdate, ID: "late", Data: json.RawMessage(`{"country":"Germany"}`)})
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("figures reply returned while the queue was full")
	case <-time.After(50 * time.Millisecond):
	}

	for i := 0; i < sendBuffer; i++ {
		<-c.send
	}
	select {
	case msg := <-c.send:
		if msg.Type != MessageTypeFigures || msg.ID != "late" {
			t.Errorf("got %+v, want figures late", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("figures reply was dropped")
	}
	<-done
}

func TestClient_ReplyGivesUpWhenCanceled(t *testing.T) {
	t.Parallel()

	c := NewClient(context.Background(), nil, nil, echoDispatcher)
	fillQueue(c)

	result := make(chan bool, 1)
	go func() { result <- c.reply(Message{Type: MessageTypePong}) }()
	c.cancel()

	select {
	case ok := <-result:
		if ok {
			t.Error("reply() = true after cancel with a full queue")
		}
	case <-time.After(time.Second):
		t.Fatal("reply blocked after cancel")
	}
}

func TestClient_NoDispatcher(t *testing.T) {
	t.Parallel()

	_, conn := connect(t, nil)
	send(t, conn, `{"type":"update","id":"9","data":{}}`)

	msg := readMessage(t, conn)
	if msg.Type != MessageTypeError || !strings.Contains(string(msg.Data), "SERVICE_UNAVAILABLE") {
		t.Errorf("got %+v", msg)
	}
}

func TestClient_DisconnectUnregisters(t *testing.T) {
	t.Parallel()

	hub, conn := connect(t, echoDispatcher)
	waitFor(t, func() bool { return hub.ClientCount() == 1 }, "registration")

	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = conn.Close()
	waitFor(t, func() bool { return hub.ClientCount() == 0 }, "unregistration")
}

func TestClient_HubShutdownClosesConnection(t *testing.T) {
	t.Parallel()

	hub, cancel := startHub(t)
	conn := dial(t, setupServer(t, hub, echoDispatcher))
	_ = readMessage(t, conn) // hello

	cancel()

	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("SetReadDeadline: %v", err)
	}
	_, _, err := conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Errorf("ReadMessage() error = %v, want going-away close", err)
	}
}

func TestDispatchError(t *testing.T) {
	t.Parallel()

	err := error(&DispatchError{Code: "VALIDATION_ERROR", Message: "start_date is required"})
	if err.Error() != "VALIDATION_ERROR: start_date is required" {
		t.Errorf("Error() = %q", err.Error())
	}
	var de *DispatchError
	if !errors.As(err, &de) || de.Code != "VALIDATION_ERROR" {
		t.Error("errors.As failed")
	}
}

func TestConstants(t *testing.T) {
	t.Parallel()

	if pingPeriod >= pongWait {
		t.Errorf("pingPeriod %v must be shorter than pongWait %v", pingPeriod, pongWait)
	}
	if writeWait <= 0 || maxMessageSize <= 0 {
		t.Error("invalid timing or size constants")
	}
}
