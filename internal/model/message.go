package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MessageType tags every frame exchanged over the WebSocket.
type MessageType string

const (
	MsgInit   MessageType = "init"
	MsgMark   MessageType = "mark"
	MsgUnmark MessageType = "unmark"
	MsgUpdate MessageType = "update"
)

// Action is what a member does to an option.
type Action string

const (
	ActionMark   Action = "mark"
	ActionUnmark Action = "unmark"
)

var (
	ErrUnknownType = errors.New("unknown message type")
	ErrEmptyOption = errors.New("option must not be empty")
)

// Init is sent to a member once, right after it joins a room.
type Init struct {
	Type     MessageType `json:"type"`
	ClientID string      `json:"clientId"`
	Card     []string    `json:"card"`
	Marked   []string    `json:"marked"`
}

// NewInit builds the join frame. Marked is always a JSON array, never null.
func NewInit(clientID string, card, marked []string) *Init {
	if marked == nil {
		marked = []string{}
	}
	return &Init{
		Type:     MsgInit,
		ClientID: clientID,
		Card:     card,
		Marked:   marked,
	}
}

// Update notifies a member that an option on its card changed state.
type Update struct {
	Type   MessageType `json:"type"`
	Action Action      `json:"action"`
	Option string      `json:"option"`
}

// NewUpdate builds a broadcast frame for one state change.
func NewUpdate(action Action, option string) *Update {
	return &Update{Type: MsgUpdate, Action: action, Option: option}
}

// ActionRequest is a validated inbound mark/unmark frame.
type ActionRequest struct {
	Action Action
	Option string
}

type inboundFrame struct {
	Type   MessageType `json:"type"`
	Option string      `json:"option"`
}

// DecodeActionRequest parses and validates one inbound frame. The wire shape
// is {"type":"mark"|"unmark","option":...}; anything else is rejected here so
// the room layer only ever sees well-formed requests.
func DecodeActionRequest(data []byte) (*ActionRequest, error) {
	var frame inboundFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, fmt.Errorf("invalid frame: %w", err)
	}

	var action Action
	switch frame.Type {
	case MsgMark:
		action = ActionMark
	case MsgUnmark:
		action = ActionUnmark
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, frame.Type)
	}

	if frame.Option == "" {
		return nil, ErrEmptyOption
	}

	return &ActionRequest{Action: action, Option: frame.Option}, nil
}
