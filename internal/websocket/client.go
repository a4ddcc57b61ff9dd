// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package websocket

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/tomtom215/covidash/internal/logging"
	"github.com/tomtom215/covidash/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024 // 64 KB, selections are tiny
	sendBuffer     = 16
)

// clientIDCounter gives clients monotonically increasing IDs so shutdown
// closes them in a stable order.
var clientIDCounter atomic.Uint64

// Dispatcher answers update requests. The returned value is sent as the
// data of a figures message.
type Dispatcher interface {
	Dispatch(ctx context.Context, data json.RawMessage) (interface{}, error)
}

// DispatchError is an update failure reported to the client with a code.
// Other errors are reported as INTERNAL_ERROR.
type DispatchError struct {
	Code    string
	Message string
}

func (e *DispatchError) Error() string { return e.Code + ": " + e.Message }

// Client is a middleman between the websocket connection and the hub
type Client struct {
	id         uint64
	hub        *Hub
	conn       *websocket.Conn
	dispatcher Dispatcher
	send       chan Message

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// NewClient creates a client for conn. Values of ctx (request and
// correlation IDs) are kept for logging but its cancellation is not, since
// the connection outlives the upgrade request.
func NewClient(ctx context.Context, hub *Hub, conn *websocket.Conn, dispatcher Dispatcher) *Client {
	cctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	return &Client{
		id:         clientIDCounter.Add(1),
		hub:        hub,
		conn:       conn,
		dispatcher: dispatcher,
		send:       make(chan Message, sendBuffer),
		ctx:        cctx,
		cancel:     cancel,
	}
}

// ID returns the client's unique identifier
func (c *Client) ID() uint64 {
	return c.id
}

// trySend queues msg unless the client is closed or its buffer is full.
func (c *Client) trySend(msg Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		metrics.WSErrors.WithLabelValues("send_buffer_full").Inc()
		return false
	}
}

// reply queues the answer to a client request. Unlike trySend it waits for
// room in the queue, so a slow reader delays its own answers instead of
// losing them. It gives up once the client is canceled.
func (c *Client) reply(msg Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
	}
	metrics.WSErrors.WithLabelValues("send_wait").Inc()
	select {
	case c.send <- msg:
		return true
	case <-c.ctx.Done():
		return false
	}
}

// closeSend closes the outgoing queue once. Called by the hub only.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// readPump reads requests from the connection and answers them in order.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.leave <- c:
		case <-c.ctx.Done():
		}
		c.cancel()
		_ = c.conn.Close() // best-effort cleanup
	}()

	log := logging.Ctx(c.ctx)

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Error().Err(err).Msg("failed to set read deadline")
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				metrics.WSErrors.WithLabelValues("read").Inc()
				log.Warn().Err(err).Msg("unexpected websocket close error")
			}
			return
		}
		metrics.WSMessagesReceived.Inc()

		var msg InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			metrics.WSErrors.WithLabelValues("decode").Inc()
			c.reply(errorMessage("", "INVALID_MESSAGE", "message is not valid JSON"))
			continue
		}

		switch msg.Type {
		case MessageTypePing:
			c.reply(Message{Type: MessageTypePong, ID: msg.ID})
		case MessageTypeUpdate:
			c.handleUpdate(msg)
		default:
			metrics.WSErrors.WithLabelValues("unknown_type").Inc()
			c.reply(errorMessage(msg.ID, "INVALID_MESSAGE", "unknown message type: "+msg.Type))
		}
	}
}

func (c *Client) handleUpdate(msg InboundMessage) {
	if c.dispatcher == nil {
		c.reply(errorMessage(msg.ID, "SERVICE_UNAVAILABLE", "updates are not available"))
		return
	}

	result, err := c.dispatcher.Dispatch(c.ctx, msg.Data)
	if err != nil {
		var de *DispatchError
		if errors.As(err, &de) {
			c.reply(errorMessage(msg.ID, de.Code, de.Message))
			return
		}
		metrics.WSErrors.WithLabelValues("dispatch").Inc()
		logging.Ctx(c.ctx).Error().Err(err).Str("message_id", msg.ID).Msg("websocket update failed")
		c.reply(errorMessage(msg.ID, "INTERNAL_ERROR", "failed to compute figures"))
		return
	}
	c.reply(Message{Type: MessageTypeFigures, ID: msg.ID, Data: result})
}

func errorMessage(id, code, message string) Message {
	return Message{
		Type: MessageTypeError,
		ID:   id,
		Data: ErrorData{Code: code, Message: message},
	}
}

// writePump writes queued messages and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.cancel() // releases a reply waiting on a dead writer
		_ = c.conn.Close() // best-effort cleanup
	}()

	log := logging.Ctx(c.ctx)

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error().Err(err).Msg("failed to set write deadline")
				return
			}

			if !ok {
				// The hub closed the channel.
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
				return
			}

			data, err := MarshalMessage(message)
			if err != nil {
				metrics.WSErrors.WithLabelValues("encode").Inc()
				log.Error().Err(err).Str("type", message.Type).Msg("failed to encode websocket message")
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				metrics.WSErrors.WithLabelValues("write").Inc()
				return
			}
			metrics.WSMessagesSent.Inc()

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error().Err(err).Msg("failed to set write deadline for ping")
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Start begins reading and writing for the client
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}
