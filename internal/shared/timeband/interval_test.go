package timeband

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClipToDay(t *testing.T) {
	iv, ok := ClipToDay(Interval{Start: 480, End: 960})
	assert.True(t, ok)
	assert.Equal(t, Interval{Start: 480, End: 960}, iv)

	iv, ok = ClipToDay(Interval{Start: 1320, End: 1620})
	assert.True(t, ok)
	assert.Equal(t, Interval{Start: 1320, End: 1440}, iv)

	_, ok = ClipToDay(Interval{Start: 1440, End: 1620})
	assert.False(t, ok)

	_, ok = ClipToDay(Interval{Start: 300, End: 300})
	assert.False(t, ok)
}

func TestIntersect(t *testing.T) {
	iv, ok := Intersect(Interval{480, 960}, Interval{900, 1200})
	assert.True(t, ok)
	assert.Equal(t, Interval{900, 960}, iv)

	_, ok = Intersect(Interval{480, 960}, Interval{960, 1200})
	assert.False(t, ok)
}

func TestMergeUnion(t *testing.T) {
	got := MergeUnion([]Interval{{600, 720}, {480, 600}, {900, 1000}})
	assert.Equal(t, []Interval{{480, 720}, {900, 1000}}, got)

	// overlapping and contained ranges collapse
	got = MergeUnion([]Interval{{480, 960}, {500, 700}, {940, 1100}})
	assert.Equal(t, []Interval{{480, 1100}}, got)

	// empties dropped
	got = MergeUnion([]Interval{{100, 100}, {200, 180}})
	assert.Nil(t, got)
}

func TestIntervalLen(t *testing.T) {
	assert.Equal(t, 480, Interval{480, 960}.Len())
	assert.Equal(t, 0, Interval{960, 480}.Len())
}
