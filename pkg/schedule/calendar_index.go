package schedule

// MarkerDotColor is the dot shown under a marked day in the calendar UI.
const MarkerDotColor = "#6200ee"

type DayMarker struct {
	Marked   bool   `json:"marked"`
	DotColor string `json:"dotColor"`
}

// BuildIndex maps each date with at least one payment to its marker.
// Multiple payments on the same date collapse to a single entry.
func BuildIndex(records []PaymentRecord) map[string]DayMarker {
	index := make(map[string]DayMarker, len(records))
	for _, r := range records {
		index[r.Date] = DayMarker{Marked: true, DotColor: MarkerDotColor}
	}
	return index
}
