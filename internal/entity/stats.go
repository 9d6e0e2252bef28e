package entity

// Counters kept by the stats repository.
const (
	StatRoomsCreated = "rooms_created"
	StatRoomsRemoved = "rooms_removed"
	StatGamesStarted = "games_started"
	StatMoves        = "moves"
	StatWinsX        = "wins_x"
	StatWinsO        = "wins_o"
	StatDraws        = "draws"
)

// StatForOutcome returns the counter incremented when a game ends with outcome.
func StatForOutcome(outcome Outcome) string {
	switch outcome {
	case OutcomeX:
		return StatWinsX
	case OutcomeO:
		return StatWinsO
	case OutcomeDraw:
		return StatDraws
	default:
		return ""
	}
}
