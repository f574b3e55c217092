package component

import "github.com/jakecoffman/cp"

// PhysicsBody links an entity to its Chipmunk body on the ground plane.
type PhysicsBody struct {
	Body   *cp.Body
	Radius float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]("physics_body")
