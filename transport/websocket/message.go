package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
)

const (
	TypeCreateRoom = "create_room"
	TypeJoinRoom   = "join_room"
	TypeMakeMove   = "make_move"
	TypeResetGame  = "reset_game"
	TypeLeaveRoom  = "leave_room"
)

// Message is a client to server action.
type Message struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId,omitempty"`
	Index  *int   `json:"index,omitempty"`
}

func parseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrMalformedMessage, err)
	}

	if msg.Type == "" {
		return nil, fmt.Errorf("%w: missing type", apperror.ErrMalformedMessage)
	}

	return &msg, nil
}
