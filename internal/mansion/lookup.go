package mansion

// LookupStatus tags the outcome of an inverse lookup.
type LookupStatus int

const (
	LookupFound LookupStatus = iota
	LookupNone
	LookupAmbiguous
)

func (s LookupStatus) String() string {
	switch s {
	case LookupFound:
		return "found"
	case LookupNone:
		return "none"
	case LookupAmbiguous:
		return "ambiguous"
	default:
		return "unknown"
	}
}

// InverseLookup scans m once for keys whose value equals want. It returns the
// key only when exactly one matches; otherwise the zero key and LookupNone or
// LookupAmbiguous.
func InverseLookup[K comparable, V comparable](m map[K]V, want V) (K, LookupStatus) {
	var (
		found K
		hits  int
	)
	for k, v := range m {
		if v != want {
			continue
		}
		hits++
		if hits > 1 {
			var zero K
			return zero, LookupAmbiguous
		}
		found = k
	}
	if hits == 0 {
		return found, LookupNone
	}
	return found, LookupFound
}
