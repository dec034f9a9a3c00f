package profile

// Detect matches a header row against profiles in order and returns the
// first profile whose whole signature is present, or nil when no profile
// matches. An unrecognized format is a normal result, not an error.
func Detect(header []string, profiles []Profile) *Profile {
	index := HeaderIndex(header)

	for i := range profiles {
		if matches(&profiles[i], index) {
			return &profiles[i]
		}
	}

	return nil
}

func matches(p *Profile, index map[string]int) bool {
	if len(p.Signature) == 0 {
		return false
	}

	for _, col := range p.Signature {
		if _, ok := index[normalizeColumn(col)]; !ok {
			return false
		}
	}

	return true
}

// HeaderIndex maps normalized column names to their position in the header
// row. Column lookups during mapping go through this map so raw exports can
// reorder columns freely.
func HeaderIndex(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, name := range header {
		m[normalizeColumn(name)] = i
	}

	return m
}
