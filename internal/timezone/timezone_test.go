package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	parsed, err := Parse("25/12/2026 14:30:00")
	require.NoError(t, err)

	assert.Equal(t, 2026, parsed.Year())
	assert.Equal(t, time.December, parsed.Month())
	assert.Equal(t, 25, parsed.Day())
	assert.Equal(t, 14, parsed.Hour())
	assert.Equal(t, "25/12/2026 14:30:00", Format(parsed))
}

func TestParseRejectsOtherFormats(t *testing.T) {
	for _, s := range []string{
		"2026-12-25 14:30:00",
		"25/12/2026",
		"not a time",
		"",
	} {
		_, err := Parse(s)
		assert.Error(t, err, s)
	}
}

func TestFormatPtr(t *testing.T) {
	assert.Equal(t, "", FormatPtr(nil))

	ts, err := Parse("01/06/2026 09:00:00")
	require.NoError(t, err)
	assert.Equal(t, "01/06/2026 09:00:00", FormatPtr(&ts))
}

func TestLocation(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location().String())
}
