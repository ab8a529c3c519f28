package listing

import "time"

// DefaultDurationMinutes is six months expressed in minutes, applied when the
// caller supplies no usable duration. A listing never has zero duration.
const DefaultDurationMinutes = int64(6 * 30 * 24 * 60)

// Window is the listing time window. StartTime is when matching may begin,
// PublicTime is when the listing becomes visible to non-whitelisted buyers.
type Window struct {
	StartTime       time.Time `json:"startTime" bson:"startTime"`
	PublicTime      time.Time `json:"publicTime" bson:"publicTime"`
	DurationHours   int64     `json:"durationHours" bson:"durationHours"`
	DurationMinutes int64     `json:"durationMinutes" bson:"durationMinutes"`
}

func (w Window) Duration() time.Duration {
	return time.Duration(w.DurationHours)*time.Hour + time.Duration(w.DurationMinutes)*time.Minute
}

// NormalizeWindow produces the canonical window for a listing request.
// A nil window defaults to start now, public now, six months duration.
// Past start times are floored to now, public time is floored to start time
// and negative duration components are clamped to zero.
func NormalizeWindow(w *Window, now time.Time) Window {
	if w == nil {
		return Window{
			StartTime:       now,
			PublicTime:      now,
			DurationMinutes: DefaultDurationMinutes,
		}
	}

	res := *w

	if res.StartTime.Before(now) {
		res.StartTime = now
	}
	if res.PublicTime.Before(res.StartTime) {
		res.PublicTime = res.StartTime
	}
	if res.DurationHours < 0 {
		res.DurationHours = 0
	}
	if res.DurationMinutes < 0 {
		res.DurationMinutes = 0
	}
	if res.DurationHours == 0 && res.DurationMinutes == 0 {
		res.DurationMinutes = DefaultDurationMinutes
	}

	return res
}
