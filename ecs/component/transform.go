package component

// Transform is a world position. Y is height above the ground plane.
type Transform struct {
	X float64
	Y float64
	Z float64
}

var TransformComponent = NewComponent[Transform]("transform")
