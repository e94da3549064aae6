// Package window converts an observed "now" into the lookup windows the
// reconciliation jobs query against. All functions are pure; callers capture
// now once per run and pass it in.
package window

import "time"

// Defaults for the meeting reminder window. A 20 minute window polled on a
// 10 minute cadence yields deliberate overlap between consecutive runs, which
// trades duplicate reminders for never silently dropping one.
const (
	DefaultReminderLead  = 50 * time.Minute
	DefaultReminderWidth = 20 * time.Minute
)

// Range is a half-open-ish time window; both bounds are inclusive in the
// SQL predicates that consume it.
type Range struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the range, bounds included.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

// Reminder returns the window of meeting start times eligible for a reminder
// at the given instant: [now+lead, now+lead+width].
func Reminder(now time.Time, lead, width time.Duration) Range {
	from := now.Add(lead)
	return Range{From: from, To: from.Add(width)}
}

// DeadlineWarning returns the window of project end dates eligible for a
// deadline warning: [now, now+horizon].
func DeadlineWarning(now time.Time, horizon time.Duration) Range {
	return Range{From: now, To: now.Add(horizon)}
}

// Cutoff returns the instant before which an entity is considered stale for
// the given retention period.
func Cutoff(now time.Time, retention time.Duration) time.Time {
	return now.Add(-retention)
}
