package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player is one registered participant bound to a connection.
// Fleet and attacked-cell state belong to the current match and are reset
// when a new fleet is submitted.
type Player struct {
	ID   PlayerID
	Name string

	// Transient registration feedback, set per registration attempt
	Error     bool
	ErrorText string

	// Wins is the cumulative win counter, mirrored from the player's
	// stored account at login
	Wins int

	fleet    []*Ship
	attacked map[Cell]struct{}
}

// NewPlayer creates a player with an empty board
func NewPlayer(id PlayerID, name string) *Player {
	return &Player{
		ID:       id,
		Name:     name,
		attacked: make(map[Cell]struct{}),
	}
}

// SetFleet replaces the player's fleet wholesale and clears the cells
// attacked against it. Fleet composition is not validated here.
func (p *Player) SetFleet(ships []*Ship) {
	p.fleet = ships
	p.attacked = make(map[Cell]struct{})
}

// Fleet returns the player's ships, or nil if none have been submitted
func (p *Player) Fleet() []*Ship {
	return p.fleet
}

// HasFleet reports whether the player has submitted ships for the
// current match
func (p *Player) HasFleet() bool {
	return len(p.fleet) > 0
}

// RecordAttack marks a cell on the player's board as attacked. Idempotent.
func (p *Player) RecordAttack(c Cell) {
	p.attacked[c] = struct{}{}
}

// HasAttacked reports whether the cell has already been attacked
func (p *Player) HasAttacked(c Cell) bool {
	_, ok := p.attacked[c]
	return ok
}

// FleetDestroyed reports whether every ship in the player's fleet is sunk.
// A player with no fleet is not considered destroyed.
func (p *Player) FleetDestroyed() bool {
	if len(p.fleet) == 0 {
		return false
	}
	for _, s := range p.fleet {
		if !s.IsDestroyed() {
			return false
		}
	}
	return true
}

// IncrementWins bumps the cumulative win counter
func (p *Player) IncrementWins() {
	p.Wins++
}

// Account is the persisted identity behind a player name.
// Only accounts are durable; rooms and games live in memory.
type Account struct {
	PlayerID     PlayerID
	Name         string
	PasswordHash string
	Wins         int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
