package timeband

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		start, end         string
		diurnal, nocturnal float64
	}{
		{"06:00", "21:00", 15, 0},
		{"21:00", "06:00", 0, 9},
		{"23:00", "03:00", 0, 4},
		{"08:00", "16:00", 8, 0},
		{"19:00", "23:00", 2, 2},
		{"05:30", "06:30", 0.5, 0.5},
		{"22:00", "22:00", 15, 9}, // full 24h wrap
	}
	for _, tc := range cases {
		split, err := Classify(tc.start, tc.end)
		assert.NoError(t, err)
		assert.Equal(t, tc.diurnal, split.Diurnal, "%s-%s diurnal", tc.start, tc.end)
		assert.Equal(t, tc.nocturnal, split.Nocturnal, "%s-%s nocturnal", tc.start, tc.end)
	}
}

func TestClassify_SumEqualsDuration(t *testing.T) {
	// the decomposition must add up to the rounded duration no matter
	// where the shift sits relative to the 06:00/21:00 boundaries
	for s := 0; s < MinutesPerDay; s += 97 {
		for _, dur := range []int{25, 50, 60, 300, 725, 1440} {
			start := FormatMinutes(s)
			end := FormatMinutes(s + dur)
			split, err := Classify(start, end)
			assert.NoError(t, err)
			total := HoursFromMinutes(dur)
			assert.InDelta(t, total, split.Diurnal+split.Nocturnal, 1e-9,
				fmt.Sprintf("%s-%s", start, end))
		}
	}
}

func TestClassify_InvalidInput(t *testing.T) {
	_, err := Classify("25:00", "08:00")
	assert.Error(t, err)
	_, err = Classify("08:00", "8h30")
	assert.Error(t, err)
}
