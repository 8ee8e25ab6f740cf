package model

// ShipClass is a cosmetic size label carried through from the client.
// It has no effect on gameplay; Length is authoritative.
type ShipClass string

const (
	ShipClassSmall  ShipClass = "small"
	ShipClassMedium ShipClass = "medium"
	ShipClassLarge  ShipClass = "large"
	ShipClassHuge   ShipClass = "huge"
)

// Ship is one fleet unit occupying a contiguous line of grid cells.
// Its footprint is immutable after creation; only hit state mutates.
type Ship struct {
	Anchor   Cell
	Vertical bool
	Length   int
	Class    ShipClass

	hits map[Cell]struct{}
}

// NewShip creates a ship anchored at the given cell, extending Length cells
// down (vertical) or right (horizontal)
func NewShip(anchor Cell, vertical bool, length int, class ShipClass) *Ship {
	return &Ship{
		Anchor:   anchor,
		Vertical: vertical,
		Length:   length,
		Class:    class,
		hits:     make(map[Cell]struct{}),
	}
}

// Cells returns the ship's occupied cells in deterministic order,
// anchor first
func (s *Ship) Cells() []Cell {
	cells := make([]Cell, 0, s.Length)
	for i := 0; i < s.Length; i++ {
		c := s.Anchor
		if s.Vertical {
			c.Y += i
		} else {
			c.X += i
		}
		cells = append(cells, c)
	}
	return cells
}

// Occupies reports whether the ship's footprint contains the cell
func (s *Ship) Occupies(c Cell) bool {
	for _, oc := range s.Cells() {
		if oc == c {
			return true
		}
	}
	return false
}

// RegisterHit records a hit on the cell if the ship occupies it.
// Repeating a hit on the same cell is a no-op beyond the first registration.
func (s *Ship) RegisterHit(c Cell) bool {
	if !s.Occupies(c) {
		return false
	}
	s.hits[c] = struct{}{}
	return true
}

// IsDestroyed reports whether every occupied cell has been hit
func (s *Ship) IsDestroyed() bool {
	return len(s.hits) == s.Length
}

// Halo returns the in-bounds cells adjacent (including diagonally) to the
// ship's footprint, excluding the footprint itself. When a ship is sunk
// these cells cannot contain another ship and are pre-resolved as misses.
func (s *Ship) Halo() []Cell {
	occupied := make(map[Cell]struct{}, s.Length)
	for _, c := range s.Cells() {
		occupied[c] = struct{}{}
	}

	seen := make(map[Cell]struct{})
	var halo []Cell
	for _, c := range s.Cells() {
		for _, n := range c.Neighbors() {
			if _, ok := occupied[n]; ok {
				continue
			}
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			halo = append(halo, n)
		}
	}
	return halo
}
