package websocket

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
)

func (that *Server) handleCreateRoom(playerID string, msg *Message) error {
	if _, err := that.coordinator.CreateRoom(playerID, msg.RoomID); err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	return nil
}

func (that *Server) handleJoinRoom(playerID string, msg *Message) error {
	if msg.RoomID == "" {
		return fmt.Errorf("%w: roomId is required", apperror.ErrMalformedMessage)
	}

	if _, err := that.coordinator.JoinRoom(playerID, msg.RoomID); err != nil {
		return fmt.Errorf("failed to join room: %w", err)
	}

	return nil
}

func (that *Server) handleMakeMove(playerID string, msg *Message) error {
	if msg.Index == nil {
		return fmt.Errorf("%w: index is required", apperror.ErrMalformedMessage)
	}

	if _, err := that.coordinator.MakeMove(playerID, msg.RoomID, *msg.Index); err != nil {
		return fmt.Errorf("failed to make move: %w", err)
	}

	return nil
}

func (that *Server) handleResetGame(playerID string, msg *Message) error {
	if _, err := that.coordinator.ResetGame(playerID, msg.RoomID); err != nil {
		return fmt.Errorf("failed to reset game: %w", err)
	}

	return nil
}

func (that *Server) handleLeaveRoom(playerID string, msg *Message) error {
	if err := that.coordinator.LeaveRoom(playerID, msg.RoomID); err != nil {
		return fmt.Errorf("failed to leave room: %w", err)
	}

	return nil
}
