package platform

import "time"

// SocketTimeLayout is the fixed timestamp layout daemons use in getstate
// replies. It is part of the wire contract and is not configurable.
const SocketTimeLayout = "2006-01-02 15:04:05"

// DefaultDateLayout is the platform's canonical date layout, used when the
// configuration does not override it.
const DefaultDateLayout = "2006-01-02T15:04:05Z07:00"

// DateFormatter converts parsed timestamps into the platform's canonical
// date-string format. The zero value formats with DefaultDateLayout.
type DateFormatter struct {
	layout string
}

// NewDateFormatter returns a formatter for the given Go time layout.
// An empty layout selects DefaultDateLayout.
func NewDateFormatter(layout string) DateFormatter {
	return DateFormatter{layout: layout}
}

// Layout returns the effective layout.
func (f DateFormatter) Layout() string {
	if f.layout == "" {
		return DefaultDateLayout
	}
	return f.layout
}

// Format renders t in the canonical layout.
func (f DateFormatter) Format(t time.Time) string {
	return t.Format(f.Layout())
}

// Reformat parses value with the source layout and re-renders it in the
// canonical layout. ok is false when value does not match srcLayout, in
// which case the caller should leave the original value untouched.
func (f DateFormatter) Reformat(srcLayout, value string) (string, bool) {
	t, err := time.Parse(srcLayout, value)
	if err != nil {
		return "", false
	}
	return f.Format(t), true
}
