package model

// GridSize is the side length of the battle grid. Both boards are square.
const GridSize = 10

// Cell is a single grid coordinate
type Cell struct {
	X int
	Y int
}

// InBounds reports whether the cell lies on the grid
func (c Cell) InBounds() bool {
	return c.X >= 0 && c.X < GridSize && c.Y >= 0 && c.Y < GridSize
}

// Neighbors returns the in-bounds Moore neighborhood of the cell
// (all adjacent cells including diagonals)
func (c Cell) Neighbors() []Cell {
	var out []Cell
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := Cell{X: c.X + dx, Y: c.Y + dy}
			if n.InBounds() {
				out = append(out, n)
			}
		}
	}
	return out
}
