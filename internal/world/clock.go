package world

import "time"

// pauseThreshold is the game speed below which the simulation is paused.
const pauseThreshold = 0.01

// Clock is the game-time clock. Wall time passed to Advance is scaled by
// Speed; Elapsed and Delta are game seconds.
type Clock struct {
	Elapsed float64
	Delta   float64
	Speed   float64
}

// Advance moves the clock forward by dt of wall time.
func (c *Clock) Advance(dt time.Duration) {
	c.Delta = dt.Seconds() * c.Speed
	if c.Paused() {
		c.Delta = 0
	}
	c.Elapsed += c.Delta
}

// Paused reports whether the speed is effectively zero.
func (c *Clock) Paused() bool { return c.Speed < pauseThreshold }

// SetSpeed changes the time scale. Negative speeds clamp to zero.
func (c *Clock) SetSpeed(speed float64) {
	if speed < 0 {
		speed = 0
	}
	c.Speed = speed
}
