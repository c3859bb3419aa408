package timezone

import "time"

const DefaultTimezone = "Pacific/Auckland"

// WireFormat is the textual timestamp format used on every API payload.
const WireFormat = "02/01/2006 15:04:05"

func Location() *time.Location {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location())
}

func Format(t time.Time) string {
	return t.In(Location()).Format(WireFormat)
}

func FormatPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return Format(*t)
}

func Parse(s string) (time.Time, error) {
	return time.ParseInLocation(WireFormat, s, Location())
}
