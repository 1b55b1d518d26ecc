package engine

import (
	"sort"
	"time"
)

type timer struct {
	at  time.Time
	seq uint64
	fn  func()
}

// Timers holds fire-once callbacks keyed on a deadline. There is no cancel
// handle: once scheduled, a callback runs on the first Fire at or after its
// deadline unless the whole set is dropped.
type Timers struct {
	pending []timer
	seq     uint64
}

// After schedules fn to run d after now.
func (t *Timers) After(now time.Time, d time.Duration, fn func()) {
	if fn == nil {
		return
	}
	t.seq++
	t.pending = append(t.pending, timer{at: now.Add(d), seq: t.seq, fn: fn})
}

// Fire runs every callback due at now, earliest deadline first, and returns
// how many ran. Callbacks scheduled while firing wait for the next call.
func (t *Timers) Fire(now time.Time) int {
	if len(t.pending) == 0 {
		return 0
	}
	var due, rest []timer
	for _, tm := range t.pending {
		if !tm.at.After(now) {
			due = append(due, tm)
		} else {
			rest = append(rest, tm)
		}
	}
	if len(due) == 0 {
		return 0
	}
	t.pending = rest
	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})
	for _, tm := range due {
		tm.fn()
	}
	return len(due)
}

// Drop discards every pending callback.
func (t *Timers) Drop() {
	t.pending = nil
}

func (t *Timers) Pending() int {
	return len(t.pending)
}
