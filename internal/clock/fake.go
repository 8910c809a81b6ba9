package clock

import "time"

// FakeClock reloj fijo para tests deterministas.
type FakeClock struct {
	now time.Time
}

func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{now: t.UTC()}
}

func (c *FakeClock) Now() time.Time {
	return c.now
}

// Advance mueve el reloj hacia adelante.
func (c *FakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
