package entity

import (
	"encoding/json"
	"errors"
	"fmt"
)

const BoardSize = 9

// Symbol is the mark a participant places on the board. The empty symbol is an empty cell.
type Symbol string

const (
	PlayerX   Symbol = "X"
	PlayerO   Symbol = "O"
	EmptyCell Symbol = ""
)

// Outcome is the result of a room's current game: none, a winning symbol, or a draw.
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeX    Outcome = Outcome(PlayerX)
	OutcomeO    Outcome = Outcome(PlayerO)
	OutcomeDraw Outcome = "draw"
)

type Board [BoardSize]Symbol

var (
	ErrUnknownSymbol  = errors.New("unknown symbol")
	ErrUnknownOutcome = errors.New("unknown outcome")

	// WinCombos are checked in this order: rows, columns, diagonals.
	WinCombos = [8][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

func (that Symbol) Opponent() Symbol {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (that Symbol) IsValid() bool {
	return that == PlayerX || that == PlayerO
}

func (that Symbol) MarshalJSON() ([]byte, error) {
	if that == EmptyCell {
		return []byte("null"), nil
	}
	return json.Marshal(string(that))
}

func (that *Symbol) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*that = EmptyCell
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal symbol: %w", err)
	}

	symbol := Symbol(raw)
	if symbol != EmptyCell && !symbol.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownSymbol, raw)
	}

	*that = symbol
	return nil
}

func (that Outcome) IsFinal() bool {
	return that != OutcomeNone
}

func (that Outcome) MarshalJSON() ([]byte, error) {
	if that == OutcomeNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(that))
}

func (that *Outcome) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*that = OutcomeNone
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal outcome: %w", err)
	}

	switch outcome := Outcome(raw); outcome {
	case OutcomeNone, OutcomeX, OutcomeO, OutcomeDraw:
		*that = outcome
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOutcome, raw)
	}
}

func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}
	return true
}

// DetermineGameResult evaluates every winning line of the board. A fully occupied line wins
// for its symbol; a full board without one is a draw.
func DetermineGameResult(board Board) Outcome {
	winner := OutcomeNone

	// every line is checked even after a hit so that variants placing several marks per turn stay correct
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c && winner == OutcomeNone {
			winner = Outcome(a)
		}
	}

	if winner != OutcomeNone {
		return winner
	}

	if board.IsFull() {
		return OutcomeDraw
	}

	return OutcomeNone
}
