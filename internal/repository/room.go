package repository

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

// RoomRegistry owns every active room and connected player of the process.
// It is not safe for concurrent use: a single coordinator must own it and serialize access.
type RoomRegistry struct {
	rooms   map[string]*entity.Room
	players map[string]*entity.Player
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		rooms:   make(map[string]*entity.Room),
		players: make(map[string]*entity.Player),
	}
}

func (that *RoomRegistry) CreateRoom(room *entity.Room) error {
	if _, ok := that.rooms[room.ID]; ok {
		return fmt.Errorf("%w: %s", apperror.ErrRoomExists, room.ID)
	}

	that.rooms[room.ID] = room

	return nil
}

func (that *RoomRegistry) GetRoom(id string) (*entity.Room, error) {
	room, ok := that.rooms[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, id)
	}

	return room, nil
}

func (that *RoomRegistry) HasRoom(id string) bool {
	_, ok := that.rooms[id]
	return ok
}

func (that *RoomRegistry) DeleteRoom(id string) bool {
	if _, ok := that.rooms[id]; !ok {
		return false
	}

	delete(that.rooms, id)

	return true
}

// Rooms returns the rooms ordered by creation time, oldest first.
func (that *RoomRegistry) Rooms() []*entity.Room {
	rooms := make([]*entity.Room, 0, len(that.rooms))
	for _, room := range that.rooms {
		rooms = append(rooms, room)
	}

	slices.SortFunc(rooms, func(a, b *entity.Room) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	return rooms
}

func (that *RoomRegistry) RoomCount() int {
	return len(that.rooms)
}
