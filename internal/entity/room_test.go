package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var createdAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newStartedRoom() *Room {
	room := NewRoom("ABC123", createdAt)
	room.AddPlayer("p1")
	room.AddPlayer("p2")
	room.Started = true
	return room
}

func TestNewRoom(t *testing.T) {
	// When: a room is created
	room := NewRoom("ABC123", createdAt)

	// Then: it is empty, X moves first and nothing is decided
	assert.Equal(t, "ABC123", room.ID)
	assert.Equal(t, Board{}, room.Board)
	assert.Equal(t, PlayerX, room.CurrentPlayer)
	assert.Empty(t, room.Players)
	assert.Equal(t, OutcomeNone, room.Winner)
	assert.False(t, room.Started)
	assert.Equal(t, StatusEmpty, room.Status())
}

func TestRoom_MakeTurn(t *testing.T) {
	t.Run("Successful turn flips the current player", func(t *testing.T) {
		// Given: a started room
		room := newStartedRoom()

		// When: X plays the center
		err := room.MakeTurn(PlayerX, 4)

		// Then: the cell is taken and it is O's turn
		require.NoError(t, err)
		assert.Equal(t, PlayerX, room.Board[4])
		assert.Equal(t, PlayerO, room.CurrentPlayer)
		assert.Equal(t, StatusOngoing, room.Status())
	})

	t.Run("Error on playing out of turn", func(t *testing.T) {
		// Given: a started room where X is to move
		room := newStartedRoom()

		// When: O tries to move
		err := room.MakeTurn(PlayerO, 0)

		// Then: the move is refused and nothing changes
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, Board{}, room.Board)
		assert.Equal(t, PlayerX, room.CurrentPlayer)
	})

	t.Run("Error on occupied cell", func(t *testing.T) {
		// Given: X already holds cell 0 and O holds cell 1
		room := newStartedRoom()
		require.NoError(t, room.MakeTurn(PlayerX, 0))
		require.NoError(t, room.MakeTurn(PlayerO, 1))

		// When: X targets cell 1
		err := room.MakeTurn(PlayerX, 1)

		// Then: the move is invalid and the cell keeps O
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		assert.Equal(t, PlayerO, room.Board[1])
		assert.Equal(t, PlayerX, room.CurrentPlayer)
	})

	for _, cell := range []int{-1, 9, 20} {
		t.Run("Error on out of range cell", func(t *testing.T) {
			room := newStartedRoom()

			err := room.MakeTurn(PlayerX, cell)

			require.ErrorIs(t, err, apperror.ErrInvalidMove)
			assert.Equal(t, Board{}, room.Board)
		})
	}

	t.Run("Winning move finishes the game and keeps the turn", func(t *testing.T) {
		// Given: X holds 3 and 4, O holds 0 and 1
		room := newStartedRoom()
		for _, cell := range []int{4, 0, 3, 1} {
			require.NoError(t, room.MakeTurn(room.CurrentPlayer, cell))
		}

		// When: X completes the middle row
		err := room.MakeTurn(PlayerX, 5)

		// Then: X wins
		require.NoError(t, err)
		assert.Equal(t, OutcomeX, room.Winner)
		assert.Equal(t, PlayerX, room.CurrentPlayer)
		assert.Equal(t, StatusFinished, room.Status())
	})

	t.Run("Moves after the game finished are invalid", func(t *testing.T) {
		// Given: a finished game
		room := newStartedRoom()
		for _, cell := range []int{4, 0, 3, 1, 5} {
			require.NoError(t, room.MakeTurn(room.CurrentPlayer, cell))
		}

		// When: O tries to keep playing
		err := room.MakeTurn(PlayerO, 8)

		// Then: the move is invalid
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		assert.Equal(t, EmptyCell, room.Board[8])
	})
}

func TestRoom_LegalSequences(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		room := newStartedRoom()
		order := rapid.Permutation([]int{0, 1, 2, 3, 4, 5, 6, 7, 8}).Draw(t, "order")

		for _, cell := range order {
			if room.IsFinished() {
				break
			}

			before := room.Board
			mover := room.CurrentPlayer

			if err := room.MakeTurn(mover, cell); err != nil {
				t.Fatalf("legal move at %d refused: %v", cell, err)
			}

			changed := 0
			for i := range before {
				if before[i] != room.Board[i] {
					changed++
					if before[i] != EmptyCell {
						t.Fatalf("cell %d overwritten", i)
					}
				}
			}
			if changed != 1 {
				t.Fatalf("expected one changed cell, got %d", changed)
			}

			if !room.IsFinished() && room.CurrentPlayer != mover.Opponent() {
				t.Fatalf("turn did not alternate after %s moved", mover)
			}

			if err := room.MakeTurn(room.CurrentPlayer, cell); err == nil {
				t.Fatalf("occupied cell %d accepted a second mark", cell)
			}
		}

		if !room.IsFinished() {
			t.Fatalf("game not finished after the board filled: %v", room.Board)
		}
	})
}

func TestRoom_Roster(t *testing.T) {
	t.Run("Removing the last player marks the room empty", func(t *testing.T) {
		// Given: a started room
		room := newStartedRoom()
		leftAt := createdAt.Add(time.Minute)

		// When: both players leave
		assert.True(t, room.RemovePlayer("p1", leftAt))
		assert.False(t, room.Started)
		assert.True(t, room.EmptySince.IsZero())
		assert.True(t, room.RemovePlayer("p2", leftAt))

		// Then: the room is empty since the last departure
		assert.True(t, room.IsEmpty())
		assert.Equal(t, leftAt, room.EmptySince)
		assert.False(t, room.RemovePlayer("p2", leftAt))
	})

	t.Run("Adding a player clears the empty timestamp", func(t *testing.T) {
		room := NewRoom("R", createdAt)
		room.EmptySince = createdAt

		room.AddPlayer("p1")

		assert.True(t, room.EmptySince.IsZero())
		assert.True(t, room.HasPlayer("p1"))
		assert.Equal(t, StatusWaiting, room.Status())
	})
}

func TestRoom_Reset(t *testing.T) {
	// Given: a finished game
	room := newStartedRoom()
	for _, cell := range []int{4, 0, 3, 1, 5} {
		require.NoError(t, room.MakeTurn(room.CurrentPlayer, cell))
	}

	// When: the game is reset
	room.Reset()

	// Then: the board is clear and X starts again
	assert.Equal(t, Board{}, room.Board)
	assert.Equal(t, PlayerX, room.CurrentPlayer)
	assert.Equal(t, OutcomeNone, room.Winner)
	assert.True(t, room.Started)
	assert.Equal(t, []string{"p1", "p2"}, room.Players)
}

func TestRoom_ResetWithOnePlayerIsNotStarted(t *testing.T) {
	room := NewRoom("R", createdAt)
	room.AddPlayer("p1")

	room.Reset()

	assert.False(t, room.Started)
}

func TestRoom_Summary(t *testing.T) {
	room := newStartedRoom()

	summary := room.Summary()

	assert.Equal(t, RoomSummary{
		ID:          "ABC123",
		Players:     2,
		CreatedAt:   createdAt,
		GameStarted: true,
		Winner:      OutcomeNone,
		Status:      StatusOngoing,
	}, summary)
}

func TestRoom_Snapshot(t *testing.T) {
	// Given: a room with a move made
	room := newStartedRoom()
	require.NoError(t, room.MakeTurn(PlayerX, 4))

	// When: taking a snapshot and mutating the room afterwards
	snapshot := room.Snapshot()
	room.Players[0] = "someone-else"

	// Then: the snapshot is detached and serializes to the wire shape
	assert.Equal(t, []string{"p1", "p2"}, snapshot.Players)

	data, err := json.Marshal(snapshot)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "ABC123",
		"board": [null,null,null,null,"X",null,null,null,null],
		"currentPlayer": "O",
		"players": ["p1","p2"],
		"winner": null,
		"gameStarted": true
	}`, string(data))
}

func TestRoom_SnapshotOfEmptyRoomHasEmptyPlayerList(t *testing.T) {
	data, err := json.Marshal(NewRoom("R", createdAt).Snapshot())

	require.NoError(t, err)
	assert.Contains(t, string(data), `"players":[]`)
}
