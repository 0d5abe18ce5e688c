package domain

// MatchMethod identifies the strategy that produced a match. It is a closed
// set; free-form strings are not accepted by the persistence layer.
type MatchMethod string

// Match methods.
const (
	MatchMethodExact   MatchMethod = "exact"
	MatchMethodFuzzy   MatchMethod = "fuzzy"
	MatchMethodPartial MatchMethod = "partial"
	MatchMethodManual  MatchMethod = "manual"
	MatchMethodNone    MatchMethod = "none"

	// MatchMethodError marks a record whose line failed mid-pipeline and was
	// degraded rather than dropped.
	MatchMethodError MatchMethod = "error"
)

// Valid reports whether m is one of the defined match methods.
func (m MatchMethod) Valid() bool {
	switch m {
	case MatchMethodExact, MatchMethodFuzzy, MatchMethodPartial,
		MatchMethodManual, MatchMethodNone, MatchMethodError:
		return true
	}
	return false
}
