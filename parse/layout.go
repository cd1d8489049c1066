package parse

const (
	MinVersion = 0
	MaxVersion = 6

	// legacyCellStride is the per-cell size used by the pattern count sanity
	// check. It predates the 17-byte v6 cells and is kept as is.
	legacyCellStride = 13
)

// layout describes the version-dependent parts of the file.
type layout struct {
	instrumentCount int
	subpatterns     bool
	legacyNoise     bool
	noiseMacro      bool
	wavePadding     bool
	timer           bool
	patternIDs      bool
	appendOnIDClash bool
	cellUnused      bool
}

var layouts = [MaxVersion + 1]layout{
	0: {instrumentCount: 15, legacyNoise: true, wavePadding: true},
	1: {instrumentCount: 15, legacyNoise: true, wavePadding: true},
	2: {instrumentCount: 15, legacyNoise: true, wavePadding: true},
	3: {instrumentCount: 45, legacyNoise: true},
	4: {instrumentCount: 45, legacyNoise: true, noiseMacro: true},
	5: {instrumentCount: 45, legacyNoise: true, noiseMacro: true, patternIDs: true, appendOnIDClash: true},
	6: {instrumentCount: 45, subpatterns: true, timer: true, patternIDs: true, cellUnused: true},
}

func layoutFor(version uint32) (layout, error) {
	if version > MaxVersion {
		return layout{}, &FormatVersionError{Version: version}
	}
	return layouts[version], nil
}
