package marketplace

import "time"

// Countdown is the display decomposition of the time left on a lot.
// Hours wrap at 24 the way the console clock renders them; a lot past
// its end time reports all zeroes rather than negative components.
type Countdown struct {
	Hours   int
	Minutes int
	Seconds int
}

func (c Countdown) Zero() bool {
	return c.Hours == 0 && c.Minutes == 0 && c.Seconds == 0
}

// CountdownAt computes the countdown from the immutable end time, never
// from accumulated ticks, so a suspended and resumed clock stays correct.
func CountdownAt(endTime, now time.Time) Countdown {
	remaining := endTime.Sub(now)
	if remaining <= 0 {
		return Countdown{}
	}

	totalSeconds := int(remaining / time.Second)
	return Countdown{
		Hours:   totalSeconds / 3600 % 24,
		Minutes: totalSeconds / 60 % 60,
		Seconds: totalSeconds % 60,
	}
}
