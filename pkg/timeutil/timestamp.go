// Package timeutil converts between local time values and the remote
// timestamp column format. The remote system has emitted timestamps in at
// least four shapes over its lifetime (migrations, manual edits, older
// clients), so parsing is permissive while output is always canonical.
package timeutil

import (
	"time"

	"go.uber.org/zap"
)

// Layouts attempted by Parse, in priority order.
var parseLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00", // extended ISO-8601 with fractional seconds
	time.RFC3339,                          // ISO-8601 without fractional seconds
	"2006-01-02T15:04:05",                 // date+time without offset markers, read as UTC
	"2006-01-02",                          // date only, UTC midnight
}

// canonicalLayout is the only format ever written back to the remote:
// microsecond fraction plus explicit UTC offset, matching the precision of
// the remote timestamp columns so conflict timestamps survive a round trip.
const canonicalLayout = "2006-01-02T15:04:05.000000Z07:00"

// Parse attempts each known timestamp layout in order and returns nil when
// none match. Callers treat nil as "unparseable, field omitted"; a bad
// timestamp must never fail a whole record.
func Parse(text string, logger *zap.Logger) *time.Time {
	if text == "" {
		return nil
	}
	for _, layout := range parseLayouts {
		t, err := time.ParseInLocation(layout, text, time.UTC)
		if err == nil {
			t = t.UTC()
			return &t
		}
	}
	if logger != nil {
		logger.Warn("unparseable timestamp", zap.String("value", text))
	}
	return nil
}

// Format renders a timestamp in the canonical remote form regardless of the
// shape it was originally parsed from.
func Format(t time.Time) string {
	return t.UTC().Format(canonicalLayout)
}

// DateOnly renders a timestamp as YYYY-MM-DD in UTC, for remote columns of
// SQL date type.
func DateOnly(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
