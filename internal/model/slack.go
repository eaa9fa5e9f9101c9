package model

import (
	"encoding/json"

	"github.com/slack-go/slack"
)

// EventKind tells which family of listeners an IncomingEvent is routed to
type EventKind int

const (
	// KindMessage is a message posted in a channel the bot is a member of
	KindMessage EventKind = iota + 1
	// KindAction is an interactive component invocation, e.g. a button click
	KindAction
	// KindEvent is any other Events API callback, e.g. app_mention
	KindEvent
)

func (k EventKind) String() string {
	switch k {
	case KindMessage:
		return "message"
	case KindAction:
		return "action"
	case KindEvent:
		return "event"
	default:
		return "unknown"
	}
}

// IncomingEvent represents a Slack event after it has been decoded from the request
type IncomingEvent struct {
	Kind EventKind

	// Type is the platform event type: "message", "app_mention", "block_actions", ...
	Type    string
	SubType string
	BotID   string

	User    string
	Channel string

	Text     string // message or mention text
	ActionID string // action invocations only

	TimeStamp       string
	ThreadTimeStamp string

	// Body is the raw request body as received from Slack
	Body json.RawMessage
}

// OutgoingResponse represents a single message sent back to Slack
type OutgoingResponse struct {
	Channel string

	// Text is the message itself, or the notification fallback when Blocks is set
	Text   string
	Blocks []slack.Block
}

// IsBlocks reports whether the response carries a structured block layout
func (r OutgoingResponse) IsBlocks() bool {
	return len(r.Blocks) > 0
}

// Reply is what a listener produces for one event
type Reply struct {
	// Ack is the empty success acknowledgment for interactive payloads
	Ack      bool
	Messages []OutgoingResponse
}
