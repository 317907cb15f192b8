package main

import "time"

// TickLimiter paces the update loop to a fixed tick period.
type TickLimiter struct {
	next time.Time
}

// Wait blocks until the next tick is due. Uses a hybrid sleep/spin approach
// for better precision on short periods.
func (f *TickLimiter) Wait(period time.Duration) {
	if period <= 0 {
		f.next = time.Time{}
		return
	}

	if f.next.IsZero() {
		f.next = time.Now().Add(period)
	} else {
		f.next = f.next.Add(period)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
		if time.Until(f.next) <= 0 {
			break
		}
	}

	// If we're significantly late, resync to avoid drift
	if late := -time.Until(f.next); late > period {
		f.next = time.Now().Add(period)
	}
}
