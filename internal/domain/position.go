package domain

// Position is a point in scene coordinates
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns the position shifted by the given offset
func (p Position) Add(o Offset) Position {
	return Position{X: p.X + o.DX, Y: p.Y + o.DY}
}

// Sub returns the offset from o to p
func (p Position) Sub(o Position) Offset {
	return Offset{DX: p.X - o.X, DY: p.Y - o.Y}
}

// Offset is a fixed positional delta between two nodes
type Offset struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}
