package timeband

import "sort"

// Interval is a half-open minute range [Start,End).
type Interval struct {
	Start int
	End   int
}

// Empty reports whether the interval covers no minutes.
func (iv Interval) Empty() bool {
	return iv.End <= iv.Start
}

// Len returns the covered minute count.
func (iv Interval) Len() int {
	if iv.Empty() {
		return 0
	}
	return iv.End - iv.Start
}

// ClipToDay intersects an interval with [0,1440). The second return is
// false when nothing of the interval lands inside the day.
func ClipToDay(iv Interval) (Interval, bool) {
	if iv.Start < 0 {
		iv.Start = 0
	}
	if iv.End > MinutesPerDay {
		iv.End = MinutesPerDay
	}
	if iv.Empty() {
		return Interval{}, false
	}
	return iv, true
}

// Intersect returns the overlap of two intervals, if any.
func Intersect(a, b Interval) (Interval, bool) {
	iv := Interval{Start: maxInt(a.Start, b.Start), End: minInt(a.End, b.End)}
	if iv.Empty() {
		return Interval{}, false
	}
	return iv, true
}

// MergeUnion sorts intervals by start and merges every touching or
// overlapping pair, yielding the minimal disjoint cover. Empty inputs
// are dropped. The input slice is not modified.
func MergeUnion(intervals []Interval) []Interval {
	cleaned := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		if !iv.Empty() {
			cleaned = append(cleaned, iv)
		}
	}
	if len(cleaned) == 0 {
		return nil
	}
	sort.Slice(cleaned, func(i, j int) bool { return cleaned[i].Start < cleaned[j].Start })

	merged := []Interval{cleaned[0]}
	for _, iv := range cleaned[1:] {
		last := &merged[len(merged)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
