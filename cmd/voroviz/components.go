package main

// Position is a moving particle's world coordinates.
type Position struct {
	X, Y float32
}

// Velocity is a moving particle's per-frame drift.
type Velocity struct {
	X, Y float32
}

// Tag carries the external particle ID this entity is inserted into the
// container under, and its radius for the radius-carrying variant.
type Tag struct {
	ID     int
	Radius float32
}
