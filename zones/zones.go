// Package zones holds the static zone tables: power-zone FTP percentages
// and boundaries, pace-zone intensity factors and base paces, and the
// display metadata used by chart legends.
package zones

// Pace zone names in canonical order. Index positions double as the
// numeric zone indices (0-6) some upstream payloads use.
const (
	PaceRecovery    = "recovery"
	PaceEasy        = "easy"
	PaceModerate    = "moderate"
	PaceChallenging = "challenging"
	PaceHard        = "hard"
	PaceVeryHard    = "very_hard"
	PaceMax         = "max"
)

// PaceZoneOrder maps the numeric pace-zone index (0-6) to its name.
var PaceZoneOrder = []string{
	PaceRecovery,
	PaceEasy,
	PaceModerate,
	PaceChallenging,
	PaceHard,
	PaceVeryHard,
	PaceMax,
}

// PowerZoneCount is the number of power zones (1-7).
const PowerZoneCount = 7

// DefaultBasePace is the minutes-per-mile base used when a pace level
// falls outside the 1-10 table.
const DefaultBasePace = 8.0

// Band is one power zone's watt boundary expressed as a fraction of FTP.
// Open marks the top zone, whose upper bound is unbounded.
type Band struct {
	Lower float64
	Upper float64
	Open  bool
}

// Display carries the label and hex color a rendering layer shows for a zone.
type Display struct {
	Label string
	Color string
}

// Tables is the frozen zone configuration injected into the calculators.
// Treat every field as read-only; Default returns the one real instance.
type Tables struct {
	// PowerFTPPercent is the midpoint-style FTP percentage per power zone,
	// used for normalized-power weighting and target-watt resolution.
	PowerFTPPercent map[int]float64

	// PowerBoundary is the classification band per power zone.
	PowerBoundary map[int]Band

	// PaceIF is each pace zone's intensity factor relative to moderate.
	PaceIF map[string]float64

	// PaceBaseByLevel is the base pace (minutes/mile) for levels 1-10.
	PaceBaseByLevel map[int]float64

	// PaceOffset is each pace zone's minutes/mile offset from the base pace.
	PaceOffset map[string]float64

	// PowerDisplay and PaceDisplay are the legend metadata per zone.
	PowerDisplay map[int]Display
	PaceDisplay  map[string]Display
}

var defaultTables = Tables{
	PowerFTPPercent: map[int]float64{
		1: 0.45,
		2: 0.65,
		3: 0.825,
		4: 0.975,
		5: 1.125,
		6: 1.35,
		7: 1.60,
	},
	PowerBoundary: map[int]Band{
		1: {Lower: 0.00, Upper: 0.55},
		2: {Lower: 0.55, Upper: 0.75},
		3: {Lower: 0.75, Upper: 0.90},
		4: {Lower: 0.90, Upper: 1.05},
		5: {Lower: 1.05, Upper: 1.20},
		6: {Lower: 1.20, Upper: 1.50},
		7: {Lower: 1.50, Open: true},
	},
	PaceIF: map[string]float64{
		PaceRecovery:    0.5,
		PaceEasy:        0.7,
		PaceModerate:    1.0,
		PaceChallenging: 1.15,
		PaceHard:        1.3,
		PaceVeryHard:    1.5,
		PaceMax:         1.8,
	},
	// 12:00/mi at level 1 down to 6:00/mi at level 10. Whole-minute steps
	// through level 4, half-minute steps above.
	PaceBaseByLevel: map[int]float64{
		1:  12.0,
		2:  11.0,
		3:  10.0,
		4:  9.0,
		5:  8.5,
		6:  8.0,
		7:  7.5,
		8:  7.0,
		9:  6.5,
		10: 6.0,
	},
	PaceOffset: map[string]float64{
		PaceRecovery:    2.0,
		PaceEasy:        1.0,
		PaceModerate:    0.0,
		PaceChallenging: -0.5,
		PaceHard:        -1.0,
		PaceVeryHard:    -1.5,
		PaceMax:         -2.0,
	},
	PowerDisplay: map[int]Display{
		1: {Label: "Zone 1", Color: "#7F8C8D"},
		2: {Label: "Zone 2", Color: "#3498DB"},
		3: {Label: "Zone 3", Color: "#2ECC71"},
		4: {Label: "Zone 4", Color: "#F1C40F"},
		5: {Label: "Zone 5", Color: "#E67E22"},
		6: {Label: "Zone 6", Color: "#E74C3C"},
		7: {Label: "Zone 7", Color: "#8E44AD"},
	},
	PaceDisplay: map[string]Display{
		PaceRecovery:    {Label: "Recovery", Color: "#7F8C8D"},
		PaceEasy:        {Label: "Easy", Color: "#3498DB"},
		PaceModerate:    {Label: "Moderate", Color: "#2ECC71"},
		PaceChallenging: {Label: "Challenging", Color: "#F1C40F"},
		PaceHard:        {Label: "Hard", Color: "#E67E22"},
		PaceVeryHard:    {Label: "Very Hard", Color: "#E74C3C"},
		PaceMax:         {Label: "Max", Color: "#8E44AD"},
	},
}

// Default returns the standard zone tables.
func Default() Tables {
	return defaultTables
}

// PaceZoneByIndex resolves a numeric pace-zone index (0-6) to its name.
func PaceZoneByIndex(i int) (string, bool) {
	if i < 0 || i >= len(PaceZoneOrder) {
		return "", false
	}
	return PaceZoneOrder[i], true
}
