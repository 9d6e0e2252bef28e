package apperror

import "errors"

var (
	ErrRoomExists    = errors.New("room already exists")
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomFull      = errors.New("room is full")
	ErrNotYourTurn   = errors.New("it's not your turn")
	ErrInvalidMove   = errors.New("invalid move")
	ErrAlreadyInRoom = errors.New("player is already in a room")

	// ErrNotInRoom rejects an action from a player that is not bound to the target room.
	// It is never reported to the client.
	ErrNotInRoom = errors.New("player is not in the room")

	ErrMalformedMessage   = errors.New("malformed message")
	ErrUnknownMessageType = errors.New("unknown message type")
)

var clientMessages = []struct {
	err     error
	message string
}{
	{ErrRoomExists, "Room already exists"},
	{ErrRoomNotFound, "Room not found"},
	{ErrRoomFull, "Room is full"},
	{ErrNotYourTurn, "Not your turn"},
	{ErrInvalidMove, "Invalid move"},
	{ErrAlreadyInRoom, "Already in a room"},
}

// ClientMessage returns the text sent to the requesting client for err.
// The second value is false when err must not be surfaced.
func ClientMessage(err error) (string, bool) {
	for _, item := range clientMessages {
		if errors.Is(err, item.err) {
			return item.message, true
		}
	}

	return "", false
}
