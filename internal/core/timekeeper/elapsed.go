package timekeeper

import (
	"fmt"
	"time"
)

const (
	millisPerSecond = 1000
	millisPerMinute = 60 * millisPerSecond
	millisPerHour   = 60 * millisPerMinute
)

// Elapsed is the overall timer display: zero-padded two digit fields.
type Elapsed struct {
	Hours   string
	Minutes string
	Seconds string
}

// ZeroElapsed is the display of a stopped overall timer.
var ZeroElapsed = Elapsed{Hours: "00", Minutes: "00", Seconds: "00"}

// ElapsedFrom splits a distance into display fields. Hours wrap at 24.
func ElapsedFrom(distance time.Duration) Elapsed {
	millis := distance.Milliseconds()
	if millis < 0 {
		millis = 0
	}
	return Elapsed{
		Hours:   pad((millis / millisPerHour) % 24),
		Minutes: pad((millis / millisPerMinute) % 60),
		Seconds: pad((millis / millisPerSecond) % 60),
	}
}

// String renders the elapsed time as HH:MM:SS.
func (elapsed Elapsed) String() string {
	return elapsed.Hours + ":" + elapsed.Minutes + ":" + elapsed.Seconds
}

func pad(value int64) string {
	return fmt.Sprintf("%02d", value)
}
