package entity

const (
	EventConnected          = "connected"
	EventRoomCreated        = "room_created"
	EventPlayerJoined       = "player_joined"
	EventMoveMade           = "move_made"
	EventGameReset          = "game_reset"
	EventPlayerDisconnected = "player_disconnected"
	EventError              = "error"
)

// Event is a server to client message. Only the fields relevant to Type are set.
type Event struct {
	Type      string `json:"type"`
	RoomID    string `json:"roomId,omitempty"`
	PlayerID  string `json:"playerId,omitempty"`
	Symbol    Symbol `json:"symbol,omitempty"`
	Game      *Game  `json:"game,omitempty"`
	NewPlayer string `json:"newPlayer,omitempty"`
	Move      *Move  `json:"move,omitempty"`
	Message   string `json:"message,omitempty"`
}

func NewConnectedEvent(playerID string) *Event {
	return &Event{Type: EventConnected, PlayerID: playerID}
}

func NewRoomCreatedEvent(game *Game, playerID string, symbol Symbol) *Event {
	return &Event{Type: EventRoomCreated, RoomID: game.ID, PlayerID: playerID, Symbol: symbol, Game: game}
}

func NewPlayerJoinedEvent(game *Game, newPlayer string) *Event {
	return &Event{Type: EventPlayerJoined, Game: game, NewPlayer: newPlayer}
}

func NewMoveMadeEvent(game *Game, move *Move) *Event {
	return &Event{Type: EventMoveMade, Game: game, Move: move}
}

func NewGameResetEvent(game *Game) *Event {
	return &Event{Type: EventGameReset, Game: game}
}

func NewPlayerDisconnectedEvent(game *Game, playerID string) *Event {
	return &Event{Type: EventPlayerDisconnected, PlayerID: playerID, Game: game}
}

func NewErrorEvent(message string) *Event {
	return &Event{Type: EventError, Message: message}
}
