package repository

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

var ErrPlayerNotFound = errors.New("player not found")

func (that *RoomRegistry) AddPlayer(player *entity.Player) {
	that.players[player.ID] = player
}

func (that *RoomRegistry) GetPlayer(id string) (*entity.Player, error) {
	player, ok := that.players[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
	}

	return player, nil
}

func (that *RoomRegistry) DeletePlayer(id string) bool {
	if _, ok := that.players[id]; !ok {
		return false
	}

	delete(that.players, id)

	return true
}

func (that *RoomRegistry) PlayerCount() int {
	return len(that.players)
}
