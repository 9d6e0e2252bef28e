package entity

import (
	"fmt"
	"slices"
	"time"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
)

const MaxPlayers = 2

const (
	StatusEmpty    = "empty"
	StatusWaiting  = "waiting"
	StatusOngoing  = "in_progress"
	StatusFinished = "finished"
)

// Room is the authoritative state of one match. It is not safe for concurrent use;
// the coordinator serializes every access.
type Room struct {
	ID            string
	Board         Board
	CurrentPlayer Symbol
	Players       []string
	Winner        Outcome
	Started       bool

	CreatedAt  time.Time
	EmptySince time.Time
}

// Game is the snapshot of a room sent to clients.
type Game struct {
	ID            string   `json:"id"`
	Board         Board    `json:"board"`
	CurrentPlayer Symbol   `json:"currentPlayer"`
	Players       []string `json:"players"`
	Winner        Outcome  `json:"winner"`
	GameStarted   bool     `json:"gameStarted"`
}

// RoomSummary is the discovery view of a room.
type RoomSummary struct {
	ID          string
	Players     int
	CreatedAt   time.Time
	GameStarted bool
	Winner      Outcome
	Status      string
}

type Move struct {
	Index    int    `json:"index"`
	Symbol   Symbol `json:"symbol"`
	PlayerID string `json:"playerId"`
}

func NewRoom(id string, createdAt time.Time) *Room {
	return &Room{
		ID:            id,
		CurrentPlayer: PlayerX,
		Players:       make([]string, 0, MaxPlayers),
		CreatedAt:     createdAt,
	}
}

func (that *Room) IsFull() bool {
	return len(that.Players) >= MaxPlayers
}

func (that *Room) IsEmpty() bool {
	return len(that.Players) == 0
}

func (that *Room) IsFinished() bool {
	return that.Winner.IsFinal()
}

func (that *Room) HasPlayer(playerID string) bool {
	return slices.Contains(that.Players, playerID)
}

func (that *Room) AddPlayer(playerID string) {
	that.Players = append(that.Players, playerID)
	that.EmptySince = time.Time{}
}

// RemovePlayer drops playerID from the roster. The room stops being started and,
// when nobody is left, remembers since when it has been empty.
func (that *Room) RemovePlayer(playerID string, now time.Time) bool {
	idx := slices.Index(that.Players, playerID)
	if idx < 0 {
		return false
	}

	that.Players = slices.Delete(that.Players, idx, idx+1)
	that.Started = false

	if that.IsEmpty() {
		that.EmptySince = now
	}

	return true
}

func (that *Room) Status() string {
	switch {
	case that.IsEmpty():
		return StatusEmpty
	case that.IsFinished():
		return StatusFinished
	case that.IsFull():
		return StatusOngoing
	default:
		return StatusWaiting
	}
}

// MakeTurn places symbol at cell, records a win or draw and otherwise passes the turn.
func (that *Room) MakeTurn(symbol Symbol, cell int) error {
	if that.IsFinished() {
		return fmt.Errorf("%w: game is already finished", apperror.ErrInvalidMove)
	}

	if that.CurrentPlayer != symbol {
		return apperror.ErrNotYourTurn
	}

	if cell < 0 || cell >= BoardSize {
		return fmt.Errorf("%w: cell %d out of range", apperror.ErrInvalidMove, cell)
	}

	if that.Board[cell] != EmptyCell {
		return fmt.Errorf("%w: cell %d is occupied", apperror.ErrInvalidMove, cell)
	}

	that.Board[cell] = symbol

	if that.Winner = DetermineGameResult(that.Board); !that.Winner.IsFinal() {
		that.CurrentPlayer = symbol.Opponent()
	}

	return nil
}

// Reset starts a fresh game with the current roster. A room stays not started until it is full.
func (that *Room) Reset() {
	that.Board = Board{}
	that.CurrentPlayer = PlayerX
	that.Winner = OutcomeNone
	that.Started = that.IsFull()
}

func (that *Room) Summary() RoomSummary {
	return RoomSummary{
		ID:          that.ID,
		Players:     len(that.Players),
		CreatedAt:   that.CreatedAt,
		GameStarted: that.Started,
		Winner:      that.Winner,
		Status:      that.Status(),
	}
}

func (that *Room) Snapshot() *Game {
	players := make([]string, len(that.Players))
	copy(players, that.Players)

	return &Game{
		ID:            that.ID,
		Board:         that.Board,
		CurrentPlayer: that.CurrentPlayer,
		Players:       players,
		Winner:        that.Winner,
		GameStarted:   that.Started,
	}
}
