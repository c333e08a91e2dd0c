package aggregate

import "time"

// Dated is any record with a creation time. A zero time means unknown.
type Dated interface {
	CreatedTime() time.Time
}

// Window is a calendar offset back from now, such as "last 12 months".
type Window struct {
	Label  string `json:"label"`
	Years  int    `json:"years"`
	Months int    `json:"months"`
}

// Since returns the start of the window relative to now.
func (w Window) Since(now time.Time) time.Time {
	return now.AddDate(-w.Years, -w.Months, 0)
}

// Default windows shown on business pages.
var (
	LastThreeYears   = Window{Label: "last 3 years", Years: 3}
	LastTwelveMonths = Window{Label: "last 12 months", Months: 12}
	DefaultWindows   = []Window{LastThreeYears, LastTwelveMonths}
)

// WindowCount is the number of records inside a window.
type WindowCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CountSince counts records created strictly after w.Since(now). Records
// with an unknown creation time are never counted.
func CountSince[T Dated](records []T, w Window, now time.Time) WindowCount {
	since := w.Since(now)
	n := 0
	for _, r := range records {
		t := r.CreatedTime()
		if t.IsZero() {
			continue
		}
		if t.After(since) {
			n++
		}
	}
	return WindowCount{Label: w.Label, Count: n}
}

// CountWindows evaluates each window independently over the same records.
// With no windows it uses DefaultWindows.
func CountWindows[T Dated](records []T, now time.Time, windows ...Window) []WindowCount {
	if len(windows) == 0 {
		windows = DefaultWindows
	}
	out := make([]WindowCount, 0, len(windows))
	for _, w := range windows {
		out = append(out, CountSince(records, w, now))
	}
	return out
}
