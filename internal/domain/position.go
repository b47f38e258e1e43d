package domain

// Edge is the screen side the host pins its floating button to.
type Edge string

const (
	EdgeLeft  Edge = "left"
	EdgeRight Edge = "right"
)

// ButtonPosition is advisory state for the host UI. The core stores it and
// hands it back without interpreting it.
type ButtonPosition struct {
	Top  int  `json:"top"`
	Edge Edge `json:"edge"`
}

// DefaultButtonPosition is returned when nothing (or garbage) is stored.
func DefaultButtonPosition() ButtonPosition {
	return ButtonPosition{Top: 100, Edge: EdgeRight}
}

// Valid reports whether Edge is one of the known sides.
func (e Edge) Valid() bool {
	return e == EdgeLeft || e == EdgeRight
}
