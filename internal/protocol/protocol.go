// Package protocol defines the messages exchanged on the WebSocket invoke channel.
package protocol

import "encoding/json"

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// TypeInvoke is sent by the UI shell to run a command
	TypeInvoke MessageType = "invoke"

	// TypeResult is sent by the agent in answer to an invoke
	TypeResult MessageType = "result"

	// TypePing can be used for application-level heartbeats
	TypePing MessageType = "ping"

	// TypePong answers a ping
	TypePong MessageType = "pong"
)

// Message is the generic container for all WebSocket messages
type Message struct {
	Type MessageType `json:"type"`

	// ID is chosen by the caller and echoed in the result
	ID string `json:"id,omitempty"`

	// Command and Args are set on invokes
	Command string          `json:"command,omitempty"`
	Args    json.RawMessage `json:"args,omitempty"`

	// Result or Error is set on results
	Result interface{} `json:"result,omitempty"`
	Error  *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody is the structured failure of a command
type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
