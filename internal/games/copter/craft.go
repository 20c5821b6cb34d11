package copter

// Craft is the controlled actor. Only the vertical axis is free.
type Craft struct {
	Y          float64 // Height in world units, positive is down on screen
	Velocity   float64 // Signed vertical speed, negative is up
	RotorPhase float64 // Rotor angle in degrees, grows without bound
}

// integrate applies one tick of gravity and moves the craft.
// Velocity is capped from above only; a lift impulse may leave it far below zero.
func (c *Craft) integrate(w WorldConfig) {
	c.Velocity += w.Gravity
	if c.Velocity > w.MaxSpeed {
		c.Velocity = w.MaxSpeed
	}
	c.Y += c.Velocity
}

// lift assigns the impulse velocity, discarding any accumulated fall.
func (c *Craft) lift(w WorldConfig) {
	c.Velocity = -w.LiftForce
}

// respawn puts the craft back at the spawn height at rest.
func (c *Craft) respawn(w WorldConfig) {
	c.Y = w.SpawnY
	c.Velocity = 0
}

// outOfBounds reports whether the craft left the world vertically.
func (c *Craft) outOfBounds(w WorldConfig) bool {
	return c.Y < 0 || c.Y > w.Height
}

func (c *Craft) spinRotor(w WorldConfig) {
	c.RotorPhase += w.RotorStep
}
