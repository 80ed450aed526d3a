package usecase

import (
	"time"

	"ContentPublisher/internal/domain"
)

const (
	minScheduleLead = 15 * time.Minute
	scheduleStep    = 15 * time.Minute
)

// scheduleLayouts accepts RFC 3339 and the browser's datetime-local value,
// which carries no zone and is read in the configured location.
var scheduleLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// resolveSchedule returns nil for an immediate send. A usable time is at least
// fifteen minutes out and is rounded up to the next quarter hour.
func (p *Publisher) resolveSchedule(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	at, ok := parseScheduleTime(raw, p.location)
	if !ok {
		return nil, domain.NewValidationError("scheduleTime", "scheduleTime %q is not a valid date and time", raw)
	}
	if at.Before(p.now().Add(minScheduleLead)) {
		return nil, domain.NewValidationError("scheduleTime", "scheduleTime must be at least 15 minutes in the future")
	}

	rounded := roundUpQuarter(at)
	return &rounded, nil
}

func parseScheduleTime(raw string, loc *time.Location) (time.Time, bool) {
	for _, layout := range scheduleLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func roundUpQuarter(t time.Time) time.Time {
	t = t.UTC()
	q := t.Truncate(scheduleStep)
	if q.Before(t) {
		q = q.Add(scheduleStep)
	}
	return q
}
