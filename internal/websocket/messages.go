// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

package websocket

import "github.com/goccy/go-json"

// Message types. Clients send update and ping; the server sends the rest.
const (
	MessageTypeHello   = "hello"
	MessageTypeUpdate  = "update"
	MessageTypeFigures = "figures"
	MessageTypeError   = "error"
	MessageTypePing    = "ping"
	MessageTypePong    = "pong"
)

// Message is a server-to-client frame.
type Message struct {
	Type string      `json:"type"`
	ID   string      `json:"id,omitempty"`
	Data interface{} `json:"data,omitempty"`
}

// InboundMessage is a client-to-server frame. Data stays raw until the
// Dispatcher decodes it.
type InboundMessage struct {
	Type string          `json:"type"`
	ID   string          `json:"id,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

// HelloData opens every session.
type HelloData struct {
	BootID string `json:"boot_id"`
}

// ErrorData is the payload of an error frame.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MarshalMessage encodes msg for the wire.
func MarshalMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}
