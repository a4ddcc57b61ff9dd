// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package websocket

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/tomtom215/covidash/internal/logging"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{
		Level:  "info",
		Format: "console",
		Output: io.Discard,
	})
}

// startHub runs a hub until the test ends.
func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub("boot-test")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = hub.RunWithContext(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return hub, cancel
}

// testClient is a client without a connection, for registry tests.
func testClient(hub *Hub) *Client {
	return NewClient(context.Background(), hub, nil, nil)
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timeout waiting for %s", msg)
}

func TestNewHub(t *testing.T) {
	t.Parallel()

	hub := NewHub("abc")
	if hub.bootID != "abc" {
		t.Errorf("bootID = %q", hub.bootID)
	}
	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d, want 0", hub.ClientCount())
	}
	if hub.join == nil || hub.leave == nil || hub.clients == nil {
		t.Error("hub channels not initialized")
	}
}

func TestHub_RegisterSendsHello(t *testing.T) {
	t.Parallel()

	hub, _ := startHub(t)
	client := testClient(hub)

	if err := hub.Add(context.Background(), client); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	select {
	case msg := <-client.send:
		if msg.Type != MessageTypeHello {
			t.Errorf("first message type = %q, want hello", msg.Type)
		}
		hello, ok := msg.Data.(HelloData)
		if !ok || hello.BootID != "boot-test" {
			t.Errorf("hello data = %#v", msg.Data)
		}
	case <-time.After(time.Second):
		t.Fatal("no hello message")
	}
	waitFor(t, func() bool { return hub.ClientCount() == 1 }, "client registration")
}

func TestHub_Unregister(t *testing.T) {
	t.Parallel()

	hub, _ := startHub(t)
	client := testClient(hub)
	if err := hub.Add(context.Background(), client); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	<-client.send // hello

	if err := hub.Remove(context.Background(), client); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	waitFor(t, func() bool { return hub.ClientCount() == 0 }, "client removal")

	if _, ok := <-client.send; ok {
		t.Error("send channel should be closed after unregister")
	}
	if client.trySend(Message{Type: MessageTypePong}) {
		t.Error("trySend should fail on a closed client")
	}

	// A second removal of the same client is harmless.
	if err := hub.Remove(context.Background(), client); err != nil {
		t.Fatalf("second Remove() error = %v", err)
	}
	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d after double remove", hub.ClientCount())
	}
}

func TestHub_ShutdownClosesClients(t *testing.T) {
	t.Parallel()

	hub := NewHub("boot")
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- hub.RunWithContext(ctx) }()

	clients := []*Client{testClient(hub), testClient(hub), testClient(hub)}
	for _, c := range clients {
		if err := hub.Add(context.Background(), c); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("RunWithContext() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}

	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d after shutdown", hub.ClientCount())
	}
	for _, c := range clients {
		if c.ctx.Err() == nil {
			t.Errorf("client %d context not canceled", c.ID())
		}
	}
}

func TestHub_RemoveUnknownClient(t *testing.T) {
	t.Parallel()

	hub, _ := startHub(t)
	stranger := testClient(hub)
	if err := hub.Remove(context.Background(), stranger); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if !stranger.trySend(Message{Type: MessageTypePong}) {
		t.Error("removing an unregistered client should not close its queue")
	}
}

func TestHub_AddStoppedHub(t *testing.T) {
	t.Parallel()

	hub := NewHub("boot")
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := hub.Add(ctx, testClient(hub)); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Add() error = %v, want DeadlineExceeded", err)
	}
}

func TestStopReason(t *testing.T) {
	t.Parallel()

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	if got := stopReason(canceled); got != "context_canceled" {
		t.Errorf("canceled reason = %q", got)
	}

	expired, cancel2 := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel2()
	if got := stopReason(expired); got != "context_deadline" {
		t.Errorf("deadline reason = %q", got)
	}
}

func TestClientIDsIncrease(t *testing.T) {
	t.Parallel()

	hub := NewHub("boot")
	a, b := testClient(hub), testClient(hub)
	if b.ID() <= a.ID() {
		t.Errorf("IDs not increasing: %d then %d", a.ID(), b.ID())
	}
}

func TestMarshalMessage(t *testing.T) {
	t.Parallel()

	data, err := MarshalMessage(Message{Type: MessageTypePong})
	if err != nil {
		t.Fatalf("MarshalMessage() error = %v", err)
	}
	if string(data) != `{"type":"pong"}` {
		t.Errorf("MarshalMessage() = %s", data)
	}

	data, err = MarshalMessage(Message{Type: MessageTypeError, ID: "3", Data: ErrorData{Code: "X", Message: "y"}})
	if err != nil {
		t.Fatalf("MarshalMessage() error = %v", err)
	}
	if string(data) != `{"type":"error","id":"3","data":{"code":"X","message":"y"}}` {
		t.Errorf("MarshalMessage() = %s", data)
	}
}
