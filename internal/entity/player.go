package entity

import "time"

type Player struct {
	ID          string    `json:"id"`
	RoomID      string    `json:"roomId,omitempty"`
	Symbol      Symbol    `json:"symbol,omitempty"`
	ConnectedAt time.Time `json:"connectedAt"`
}

func NewPlayer(id string, connectedAt time.Time) *Player {
	return &Player{
		ID:          id,
		ConnectedAt: connectedAt,
	}
}

func (that *Player) InRoom() bool {
	return that.RoomID != ""
}

func (that *Player) Bind(roomID string, symbol Symbol) {
	that.RoomID = roomID
	that.Symbol = symbol
}

func (that *Player) Unbind() {
	that.RoomID = ""
	that.Symbol = EmptyCell
}
