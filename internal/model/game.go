package model

import "time"

// GameID uniquely identifies a game
type GameID string

// GameState represents the current phase of a game
type GameState string

const (
	GameStateAwaitingFleets GameState = "awaiting_fleets" // Waiting for ship placement
	GameStateInProgress     GameState = "in_progress"     // Players alternating attacks
	GameStateConcluded      GameState = "concluded"       // One fleet fully destroyed
)

// AttackStatus is the outcome of a resolved attack, as it appears on the wire
type AttackStatus string

const (
	AttackStatusMiss   AttackStatus = "miss"
	AttackStatusShot   AttackStatus = "shot"
	AttackStatusKilled AttackStatus = "killed"
)

// Game is one active two-player contest. It holds non-owning references to
// the players from the room that spawned it; the session registry owns them.
type Game struct {
	ID        GameID
	Players   [2]*Player
	TurnIdx   int
	State     GameState
	CreatedAt time.Time
}

// CurrentPlayer returns the player whose turn it is
func (g *Game) CurrentPlayer() *Player {
	return g.Players[g.TurnIdx]
}

// PlayerByID returns the player with the given id, or nil
func (g *Game) PlayerByID(id PlayerID) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Opponent returns the other player, or nil if id is not in the game
func (g *Game) Opponent(id PlayerID) *Player {
	for i, p := range g.Players {
		if p.ID == id {
			return g.Players[1-i]
		}
	}
	return nil
}

// BothFleetsPlaced reports whether both players have submitted ships
func (g *Game) BothFleetsPlaced() bool {
	return g.Players[0].HasFleet() && g.Players[1].HasFleet()
}

// AdvanceTurn hands the turn to the other player
func (g *Game) AdvanceTurn() {
	g.TurnIdx = 1 - g.TurnIdx
}

// IsOver reports whether either player's fleet is fully destroyed
func (g *Game) IsOver() bool {
	return g.Players[0].FleetDestroyed() || g.Players[1].FleetDestroyed()
}

// Winner returns the player whose opponent's fleet is destroyed, or nil
// while the game is still live
func (g *Game) Winner() *Player {
	for i, p := range g.Players {
		if p.FleetDestroyed() {
			return g.Players[1-i]
		}
	}
	return nil
}
