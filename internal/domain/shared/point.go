package shared

import "fmt"

// Arena dimensions. Coordinates are 1-indexed.
const (
	GridWidth  = 14
	GridHeight = 11
)

// Point is a cell on the arena grid
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// OffMap is where combatants live when they are not on the grid
var OffMap = Point{X: -1, Y: -1}

// Pt is shorthand for Point{X: x, Y: y}
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// InBounds reports whether p lies on the grid
func (p Point) InBounds() bool {
	return p.X >= 1 && p.X <= GridWidth && p.Y >= 1 && p.Y <= GridHeight
}

// Normalize maps any out-of-range point to OffMap
func (p Point) Normalize() Point {
	if !p.InBounds() {
		return OffMap
	}
	return p
}

// IsOffMap reports whether p is the off-map sentinel
func (p Point) IsOffMap() bool {
	return p == OffMap
}

func (p Point) String() string {
	if p.IsOffMap() {
		return "off-map"
	}
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Surrounding returns the in-bounds cells of the 3x3 block centred on p,
// including p itself, clipped at the grid edges.
func (p Point) Surrounding() []Point {
	if !p.InBounds() {
		return nil
	}

	out := make([]Point, 0, 9)
	for x := max(1, p.X-1); x <= min(GridWidth, p.X+1); x++ {
		for y := max(1, p.Y-1); y <= min(GridHeight, p.Y+1); y++ {
			out = append(out, Point{X: x, Y: y})
		}
	}
	return out
}

// InSafeZone reports whether p lies in the central rectangle that monsters are
// never seeded into.
func (p Point) InSafeZone() bool {
	return p.X >= 3 && p.X <= 11 && p.Y >= 3 && p.Y <= 9
}
