package timeband

const (
	diurnalStart = 6 * 60  // 06:00
	diurnalEnd   = 21 * 60 // 21:00
)

// Split carries the diurnal/nocturnal decomposition of a shift, in
// decimal hours rounded to 2 places.
type Split struct {
	Diurnal   float64 `json:"diurnal"`
	Nocturnal float64 `json:"nocturnal"`
}

// Classify splits the duration of a (possibly midnight-crossing) shift
// into diurnal hours, inside [06:00,21:00), and nocturnal hours, its
// complement. Nocturnal is derived from the rounded total so that
// Diurnal+Nocturnal always equals the shift duration in hours.
func Classify(start, end string) (Split, error) {
	s, err := ToMinutes(start)
	if err != nil {
		return Split{}, err
	}
	e, err := ToMinutes(end)
	if err != nil {
		return Split{}, err
	}
	s, e = Wrap(s, e)

	diurnal := 0
	for m := s; m < e; m++ {
		md := m % MinutesPerDay
		if md >= diurnalStart && md < diurnalEnd {
			diurnal++
		}
	}

	d := HoursFromMinutes(diurnal)
	return Split{Diurnal: d, Nocturnal: round2(HoursFromMinutes(e-s) - d)}, nil
}
