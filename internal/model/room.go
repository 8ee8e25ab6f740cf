package model

import "time"

// RoomID uniquely identifies a matchmaking room
type RoomID string

// Room is a pre-match lobby holding up to two players. Once the second
// player joins the room is started and no longer joinable; its players move
// into the game it spawned.
type Room struct {
	ID        RoomID
	Players   []*Player
	Started   bool
	CreatedAt time.Time
}

// RoomCapacity is the number of players a room holds before it starts a game
const RoomCapacity = 2

// AddPlayer adds a player to the room. It rejects a third player and a
// duplicate join of the same player. Reaching capacity marks the room
// started.
func (r *Room) AddPlayer(p *Player) error {
	if len(r.Players) >= RoomCapacity {
		return ErrRoomFull
	}
	if r.HasPlayer(p.ID) {
		return ErrAlreadyInRoom
	}
	r.Players = append(r.Players, p)
	if len(r.Players) == RoomCapacity {
		r.Started = true
	}
	return nil
}

// RemovePlayer removes the player with the given id, if present
func (r *Room) RemovePlayer(id PlayerID) {
	for i, p := range r.Players {
		if p.ID == id {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			return
		}
	}
}

// HasPlayer reports whether the player is in the room
func (r *Room) HasPlayer(id PlayerID) bool {
	for _, p := range r.Players {
		if p.ID == id {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the room has no players left
func (r *Room) IsEmpty() bool {
	return len(r.Players) == 0
}
