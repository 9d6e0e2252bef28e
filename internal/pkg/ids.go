package pkg

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	nanoid "github.com/jaevor/go-nanoid"
)

// RoomCodeAlphabet is the set of characters server generated room codes are drawn from.
const RoomCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var ErrInvalidCodeLength = errors.New("invalid room code length")

// GeneratePlayerID - generates a new unique player identifier.
func GeneratePlayerID() string {
	return uuid.NewString()
}

// NewRoomCodeGenerator - returns a generator of uppercase alphanumeric room codes of the given length.
func NewRoomCodeGenerator(length int) (func() string, error) {
	if length <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCodeLength, length)
	}

	generate, err := nanoid.CustomASCII(RoomCodeAlphabet, length)
	if err != nil {
		return nil, fmt.Errorf("failed to create room code generator: %w", err)
	}

	return generate, nil
}
