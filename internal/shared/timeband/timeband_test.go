package timeband

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToMinutes(t *testing.T) {
	m, err := ToMinutes("00:00")
	assert.NoError(t, err)
	assert.Equal(t, 0, m)

	m, err = ToMinutes("23:59")
	assert.NoError(t, err)
	assert.Equal(t, 1439, m)

	m, err = ToMinutes("8:30")
	assert.NoError(t, err)
	assert.Equal(t, 510, m)

	for _, bad := range []string{"", "24:00", "12:60", "12", "ab:cd", "-1:00"} {
		_, err := ToMinutes(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "00:00", FormatMinutes(0))
	assert.Equal(t, "23:59", FormatMinutes(1439))
	assert.Equal(t, "03:00", FormatMinutes(1620)) // wrapped past midnight
	assert.Equal(t, "08:05", FormatMinutes(485))
}

func TestWrap(t *testing.T) {
	s, e := Wrap(480, 960) // 08:00-16:00
	assert.Equal(t, 480, s)
	assert.Equal(t, 960, e)

	s, e = Wrap(1320, 180) // 22:00-03:00 crosses midnight
	assert.Equal(t, 1320, s)
	assert.Equal(t, 1620, e)

	// end == start means a full 24h wrap
	s, e = Wrap(600, 600)
	assert.Equal(t, 600, s)
	assert.Equal(t, 2040, e)
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps(480, 960, 900, 1020))
	assert.False(t, Overlaps(480, 960, 960, 1020)) // touching is not overlap
	assert.False(t, Overlaps(480, 960, 1020, 1080))
	assert.True(t, Overlaps(0, 1440, 700, 701))
}

func TestHoursFromMinutes(t *testing.T) {
	assert.Equal(t, 8.0, HoursFromMinutes(480))
	assert.Equal(t, 0.5, HoursFromMinutes(30))
	assert.Equal(t, 0.08, HoursFromMinutes(5))
	assert.Equal(t, 0.0, HoursFromMinutes(0))
}
