package combat

import "time"

// Cooldown is a deadline gate: a start is refused until Duration has passed
// since the last accepted one.
type Cooldown struct {
	Duration time.Duration
	last     time.Time
	started  bool
}

// TryStart accepts and records now when ready.
func (c *Cooldown) TryStart(now time.Time) bool {
	if c.OnCooldown(now) {
		return false
	}
	c.last = now
	c.started = true
	return true
}

func (c *Cooldown) OnCooldown(now time.Time) bool {
	return c.started && c.Duration > 0 && now.Sub(c.last) < c.Duration
}

// Remaining is the time left before the next start is accepted.
func (c *Cooldown) Remaining(now time.Time) time.Duration {
	if !c.OnCooldown(now) {
		return 0
	}
	return c.Duration - now.Sub(c.last)
}
