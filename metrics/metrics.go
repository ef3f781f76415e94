// Package metrics computes training load numbers (TSS, intensity factor),
// power zone ranges and classification, and pace zone targets.
package metrics

import (
	"math"
	"strings"

	"github.com/zonelab/chartengine/zones"
)

// ClassType selects which zone taxonomy a workout was ridden or run against.
type ClassType string

const (
	// ClassPowerZone is a cycling class with 7 FTP-relative power zones.
	ClassPowerZone ClassType = "power_zone"
	// ClassPaceTarget is a tread class with 7 named pace zones.
	ClassPaceTarget ClassType = "pace_target"
)

// ZoneRange is one power zone's watt band derived from a rider's FTP.
// The top zone is open-ended: Open is set and Upper is meaningless.
type ZoneRange struct {
	Zone  int
	Lower float64
	Upper float64
	Open  bool
}

// ZoneTime is one entry of a workout's zone occupancy breakdown. Power
// workouts carry PowerZone (1-7); pace workouts identify their zone by
// name, by numeric index, or only by a free-text display string,
// whichever the upstream payload happened to include.
type ZoneTime struct {
	PowerZone int    // 1-7, 0 when absent
	PaceZone  string // canonical pace zone name, "" when absent
	PaceIndex *int   // 0-6 index form, nil when absent
	Display   string // free-text label, e.g. "Very Hard"
	Seconds   float64
}

// Calculator derives training metrics from the injected zone tables.
// The zero value is not usable; construct with New.
type Calculator struct {
	Tables zones.Tables
}

// New returns a Calculator backed by the default zone tables.
func New() Calculator {
	return Calculator{Tables: zones.Default()}
}

// ClampIF bounds an intensity factor to the physically plausible [0, 2].
func ClampIF(intensity float64) float64 {
	if intensity < 0 {
		return 0
	}
	if intensity > 2 {
		return 2
	}
	return intensity
}

// TSS computes the Training Stress Score for an effort. Returns false when
// FTP or duration is non-positive; nothing here ever errors.
func (c Calculator) TSS(avgPower, durationSeconds, ftp float64) (float64, bool) {
	if ftp <= 0 || durationSeconds <= 0 {
		return 0, false
	}
	intensity := ClampIF(avgPower / ftp)
	hours := durationSeconds / 3600.0
	return hours * intensity * intensity * 100.0, true
}

// IFInput carries the optional scalars IntensityFactor can derive from.
type IFInput struct {
	AvgPower        *float64
	FTP             *float64
	TSS             *float64
	DurationSeconds *float64
}

// IntensityFactor derives IF directly from power/FTP when both are known,
// otherwise reverses it out of a TSS and a duration. Returns false when
// neither derivation is possible.
func (c Calculator) IntensityFactor(in IFInput) (float64, bool) {
	if in.AvgPower != nil && in.FTP != nil && *in.FTP > 0 {
		return ClampIF(*in.AvgPower / *in.FTP), true
	}
	if in.TSS != nil && in.DurationSeconds != nil && *in.DurationSeconds > 0 {
		hours := *in.DurationSeconds / 3600.0
		return math.Sqrt(*in.TSS / (hours * 100.0)), true
	}
	return 0, false
}

// PowerZoneRanges derives the 7 watt bands for a rider's FTP. The bands
// are contiguous: each zone's upper bound is the next zone's lower bound.
func (c Calculator) PowerZoneRanges(ftp float64) ([]ZoneRange, bool) {
	if ftp <= 0 {
		return nil, false
	}
	ranges := make([]ZoneRange, 0, zones.PowerZoneCount)
	for z := 1; z <= zones.PowerZoneCount; z++ {
		band := c.Tables.PowerBoundary[z]
		r := ZoneRange{Zone: z, Lower: band.Lower * ftp, Open: band.Open}
		if !band.Open {
			r.Upper = band.Upper * ftp
		}
		ranges = append(ranges, r)
	}
	return ranges, true
}

// ZoneFor classifies a watt value into its power zone. Zones 1-6 are
// half-open [lower, upper), so a value sitting exactly on a boundary
// belongs to the higher zone; the top zone matches anything >= its lower
// bound. Returns false when no band matches.
func ZoneFor(value float64, ranges []ZoneRange) (int, bool) {
	for _, r := range ranges {
		if r.Open {
			if value >= r.Lower {
				return r.Zone, true
			}
			continue
		}
		if value >= r.Lower && value < r.Upper {
			return r.Zone, true
		}
	}
	return 0, false
}

// PaceZoneTargets returns the minutes-per-mile target for each named pace
// zone at the given level. Levels outside the 1-10 table fall back to the
// default base pace rather than failing.
func (c Calculator) PaceZoneTargets(paceLevel int) map[string]float64 {
	base, ok := c.Tables.PaceBaseByLevel[paceLevel]
	if !ok {
		base = zones.DefaultBasePace
	}
	targets := make(map[string]float64, len(zones.PaceZoneOrder))
	for _, name := range zones.PaceZoneOrder {
		targets[name] = base + c.Tables.PaceOffset[name]
	}
	return targets
}

// TSSFromZoneDistribution estimates TSS when only zone occupancy is known.
// Power classes weight each zone's midpoint FTP percentage by time in zone
// ("normalized power"); pace classes weight the pace intensity factors the
// same way. Returns false when the distribution is empty, the duration is
// non-positive, or the needed scalar (FTP or pace level) is missing.
func (c Calculator) TSSFromZoneDistribution(zoneData []ZoneTime, durationSeconds float64, classType ClassType, ftp *float64, paceLevel *int) (float64, bool) {
	if len(zoneData) == 0 || durationSeconds <= 0 {
		return 0, false
	}
	hours := durationSeconds / 3600.0

	switch classType {
	case ClassPowerZone:
		if ftp == nil || *ftp <= 0 {
			return 0, false
		}
		var weighted, total float64
		for _, zt := range zoneData {
			pct, ok := c.Tables.PowerFTPPercent[zt.PowerZone]
			if !ok || zt.Seconds <= 0 {
				continue
			}
			weighted += pct * *ftp * zt.Seconds
			total += zt.Seconds
		}
		if total <= 0 {
			return 0, false
		}
		normalizedPower := weighted / total
		intensity := normalizedPower / *ftp
		return hours * intensity * intensity * 100.0, true

	case ClassPaceTarget:
		if paceLevel == nil {
			return 0, false
		}
		var weighted, total float64
		for _, zt := range zoneData {
			if zt.Seconds <= 0 {
				continue
			}
			intensity, ok := c.paceIntensity(zt)
			if !ok {
				continue
			}
			weighted += intensity * zt.Seconds
			total += zt.Seconds
		}
		if total <= 0 {
			return 0, false
		}
		intensity := weighted / total
		return hours * intensity * intensity * 100.0, true
	}
	return 0, false
}

// ResolvePaceZone resolves an occupancy entry to a canonical pace zone
// name, trying the name, the numeric index, then the display text. An
// entry that names a zone we cannot map falls back to moderate; only an
// entry with no zone identity at all fails.
func ResolvePaceZone(zt ZoneTime) (string, bool) {
	if zt.PaceZone != "" {
		for _, name := range zones.PaceZoneOrder {
			if zt.PaceZone == name {
				return name, true
			}
		}
		return zones.PaceModerate, true
	}
	if zt.PaceIndex != nil {
		if name, ok := zones.PaceZoneByIndex(*zt.PaceIndex); ok {
			return name, true
		}
		return zones.PaceModerate, true
	}
	if zt.Display != "" {
		if name, ok := paceZoneFromDisplay(zt.Display); ok {
			return name, true
		}
		return zones.PaceModerate, true
	}
	return "", false
}

// paceIntensity resolves a zone entry to its intensity factor.
func (c Calculator) paceIntensity(zt ZoneTime) (float64, bool) {
	name, ok := ResolvePaceZone(zt)
	if !ok {
		return 0, false
	}
	return c.Tables.PaceIF[name], true
}

// paceZoneFromDisplay scans a free-text label like "Very Hard" for a pace
// zone name. Longer names are tried first so "very hard" never matches
// plain "hard".
var displayScanOrder = []string{
	zones.PaceVeryHard,
	zones.PaceChallenging,
	zones.PaceRecovery,
	zones.PaceModerate,
	zones.PaceEasy,
	zones.PaceHard,
	zones.PaceMax,
}

func paceZoneFromDisplay(display string) (string, bool) {
	normalized := strings.ToLower(display)
	normalized = strings.ReplaceAll(normalized, " ", "_")
	for _, name := range displayScanOrder {
		if strings.Contains(normalized, name) {
			return name, true
		}
	}
	return "", false
}
