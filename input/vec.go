package input

// Vec2 is a resolved motion value.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Vec3 is a motion projected onto a 3D plane.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Plane selects the 3D plane a 2D motion is laid onto.
type Plane uint8

const (
	// PlaneXZ maps (x, y) to (x, 0, y): ground movement in a Y-up world.
	PlaneXZ Plane = iota
	// PlaneXY maps (x, y) to (x, y, 0).
	PlaneXY
)

// To3D projects v onto p, leaving the omitted axis at zero.
func (v Vec2) To3D(p Plane) Vec3 {
	switch p {
	case PlaneXY:
		return Vec3{X: v.X, Y: v.Y}
	default:
		return Vec3{X: v.X, Z: v.Y}
	}
}
