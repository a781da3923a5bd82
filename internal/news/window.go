package news

import "time"

const (
	DateLayout = "2006-01-02"

	mondayLookback  = 8 * time.Hour
	defaultLookback = 12 * time.Hour
)

// Window is an inclusive range of calendar dates. Start and End hold
// midnight UTC of the civil date so they compare and format without
// carrying a time of day.
type Window struct {
	Start time.Time
	End   time.Time
	Hours int
}

// WindowFor looks back 8 hours on Mondays and 12 hours otherwise, then
// drops the time of day. Dates are taken in now's location.
func WindowFor(now time.Time) Window {
	lookback := defaultLookback
	if now.Weekday() == time.Monday {
		lookback = mondayLookback
	}
	return Window{
		Start: civilDate(now.Add(-lookback)),
		End:   civilDate(now),
		Hours: int(lookback / time.Hour),
	}
}

func (w Window) StartDate() string { return w.Start.Format(DateLayout) }
func (w Window) EndDate() string   { return w.End.Format(DateLayout) }

// Through is the last second of End, for providers that take timestamps
// rather than dates.
func (w Window) Through() time.Time {
	return w.End.Add(24*time.Hour - time.Second)
}

func (w Window) SingleDay() bool {
	return w.Start.Equal(w.End)
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
