// Package targetline converts a class's planned segments into per-timestamp
// target lines for chart overlays, and extracts the unplanned "spin up"
// filler intervals that pad out the rest of the timeline.
package targetline

import (
	"sort"
	"strings"

	"github.com/zonelab/chartengine/metrics"
)

// PowerShiftSeconds is the fixed backward shift applied to power targets so
// the target line leads the recorded data, absorbing rider reaction lag.
const PowerShiftSeconds = 60

// openTopZoneScale rebuilds the top zone's midpoint watt target from its
// lower boundary: lower sits at 150% of FTP, the midpoint at 160%.
const openTopZoneScale = 1.60 / 1.50

// Segment is one planned interval of a class. End is exclusive.
type Segment struct {
	Start int
	End   int
	Zone  int
}

// Interval is a [Start, End) slice of the class timeline. Filler intervals
// may carry an explicit zone; most do not and default to zone 1.
type Interval struct {
	Start int
	End   int
	Zone  *int
}

// TargetPoint is one entry of a power target line. Value is nil where no
// planned target covers the timestamp.
type TargetPoint struct {
	Timestamp int
	Value     *float64
}

// PaceTargetPoint is one entry of a pace target line. Zone is nil where no
// planned target covers the timestamp.
type PaceTargetPoint struct {
	Timestamp int
	Zone      *int
}

// SubSegment is a labeled slice of a plan segment, offset-relative to it.
type SubSegment struct {
	Offset  int
	Length  int
	Display string
	Zone    *int
}

// PlanSegment is one segment of a class plan, offset from the class start.
type PlanSegment struct {
	Offset      int
	Length      int
	Name        string
	SubSegments []SubSegment
}

// ClassPlan is the planned structure of a class: a detailed sub-segment
// breakdown plus a coarser flat segment list some (older) classes only have.
type ClassPlan struct {
	TotalDuration int
	Segments      []PlanSegment
	SegmentList   []PlanSegment
}

// MetricRange is one named target band of a raw target-metrics segment.
type MetricRange struct {
	Name  string
	Lower float64
	Upper float64
}

// TargetMetric is the flat segment representation some class payloads use
// instead of a structured plan.
type TargetMetric struct {
	SegmentType string
	StartOffset int
	EndOffset   int
	Metrics     []MetricRange
}

// Builder maps planned segments onto sample timelines. Construct with New.
type Builder struct {
	Calc metrics.Calculator
}

// New returns a Builder backed by the default zone tables.
func New() Builder {
	return Builder{Calc: metrics.New()}
}

// isFillerLabel reports whether a display label marks a filler block.
// Both tokens must appear, so "Spin Ups" and "spin-up" match but
// "Warm Up" alone does not.
func isFillerLabel(display string) bool {
	label := strings.ToLower(display)
	return strings.Contains(label, "spin") && strings.Contains(label, "up")
}

// ExtractFillerIntervals finds the class-relative intervals covered by
// filler blocks and merges overlaps into a minimal ordered set. The
// detailed sub-segment breakdown is scanned first; the coarse segment list
// is the fallback when the breakdown names no fillers.
func (b Builder) ExtractFillerIntervals(plan ClassPlan) []Interval {
	candidates := fillerCandidates(plan.Segments, plan.TotalDuration, true)
	if len(candidates) == 0 {
		candidates = fillerCandidates(plan.SegmentList, plan.TotalDuration, false)
	}
	return mergeIntervals(candidates)
}

// fillerCandidates collects raw (unmerged) filler intervals. With detail
// set, only labeled sub-segments qualify; otherwise segment names are
// matched directly.
func fillerCandidates(segments []PlanSegment, totalDuration int, detail bool) []Interval {
	var out []Interval
	for _, seg := range segments {
		if detail {
			for _, sub := range seg.SubSegments {
				if !isFillerLabel(sub.Display) {
					continue
				}
				start := seg.Offset + sub.Offset
				if iv, ok := clampInterval(start, start+sub.Length, totalDuration, sub.Zone); ok {
					out = append(out, iv)
				}
			}
			continue
		}
		if !isFillerLabel(seg.Name) {
			continue
		}
		if iv, ok := clampInterval(seg.Offset, seg.Offset+seg.Length, totalDuration, nil); ok {
			out = append(out, iv)
		}
	}
	return out
}

// clampInterval bounds an interval into [0, totalDuration] and rejects
// anything left with non-positive length.
func clampInterval(start, end, totalDuration int, zone *int) (Interval, bool) {
	if start < 0 {
		start = 0
	}
	if end > totalDuration {
		end = totalDuration
	}
	if end <= start {
		return Interval{}, false
	}
	return Interval{Start: start, End: end, Zone: zone}, true
}

// mergeIntervals sorts by start and folds any interval that begins at or
// before the end of the previous kept one into it.
func mergeIntervals(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}
	sort.Slice(intervals, func(i, j int) bool { return intervals[i].Start < intervals[j].Start })
	merged := []Interval{intervals[0]}
	for _, next := range intervals[1:] {
		last := &merged[len(merged)-1]
		if next.Start <= last.End {
			if next.End > last.End {
				last.End = next.End
			}
			continue
		}
		merged = append(merged, next)
	}
	return merged
}

// resolveWatts turns a power zone into a target wattage. With FTP known it
// is the zone's midpoint FTP percentage; without it, the midpoint of the
// zone's watt band, or for the open top band a rescale of its lower bound.
func (b Builder) resolveWatts(zone int, ranges []metrics.ZoneRange, ftp *float64) (float64, bool) {
	if ftp != nil && *ftp > 0 {
		if pct, ok := b.Calc.Tables.PowerFTPPercent[zone]; ok {
			return *ftp * pct, true
		}
	}
	for _, r := range ranges {
		if r.Zone != zone {
			continue
		}
		if r.Open {
			return r.Lower * openTopZoneScale, true
		}
		return (r.Lower + r.Upper) / 2.0, true
	}
	return 0, false
}

// windowIndexes finds the index range of timestamps inside [start, end).
// A forward scan locates the first covered timestamp and a backward scan
// the last; ok is false when the window covers none.
func windowIndexes(timestamps []int, start, end int) (int, int, bool) {
	first := -1
	for i, ts := range timestamps {
		if ts >= start {
			if ts >= end {
				return 0, 0, false
			}
			first = i
			break
		}
	}
	if first < 0 {
		return 0, 0, false
	}
	last := -1
	for i := len(timestamps) - 1; i >= first; i-- {
		if timestamps[i] < end {
			last = i
			break
		}
	}
	if last < 0 {
		return 0, 0, false
	}
	return first, last, true
}

// shiftWindow applies the fixed backward power shift and clamps the start
// at zero. ok is false when the shifted window has collapsed.
func shiftWindow(start, end int) (int, int, bool) {
	start -= PowerShiftSeconds
	end -= PowerShiftSeconds
	if start < 0 {
		start = 0
	}
	if end <= start {
		return 0, 0, false
	}
	return start, end, true
}

// BuildPowerTargetLine maps planned power segments onto the requested
// timestamps. Every segment window is shifted back by PowerShiftSeconds;
// overlapping segments resolve last-write-wins in input order. Timestamps
// no explicit segment covers are then filled from the filler intervals
// (same shift, zone 1 unless the filler says otherwise); filler never
// overwrites an explicit target.
func (b Builder) BuildPowerTargetLine(segments []Segment, ranges []metrics.ZoneRange, timestamps []int, ftp *float64, fillers []Interval) []TargetPoint {
	out := make([]TargetPoint, len(timestamps))
	for i, ts := range timestamps {
		out[i] = TargetPoint{Timestamp: ts}
	}

	for _, seg := range segments {
		start, end, ok := shiftWindow(seg.Start, seg.End)
		if !ok {
			continue
		}
		watts, ok := b.resolveWatts(seg.Zone, ranges, ftp)
		if !ok {
			continue
		}
		first, last, ok := windowIndexes(timestamps, start, end)
		if !ok {
			continue
		}
		for i := first; i <= last; i++ {
			value := watts
			out[i].Value = &value
		}
	}

	for _, filler := range fillers {
		start, end, ok := shiftWindow(filler.Start, filler.End)
		if !ok {
			continue
		}
		zone := 1
		if filler.Zone != nil {
			zone = *filler.Zone
		}
		watts, ok := b.resolveWatts(zone, ranges, ftp)
		if !ok {
			continue
		}
		first, last, ok := windowIndexes(timestamps, start, end)
		if !ok {
			continue
		}
		for i := first; i <= last; i++ {
			if out[i].Value != nil {
				continue
			}
			value := watts
			out[i].Value = &value
		}
	}

	return out
}

// BuildPaceTargetLine maps planned pace segments onto the requested
// timestamps. Pace targets carry no reaction-lag shift; the target is the
// raw pace zone number clamped into [0, 6].
func (b Builder) BuildPaceTargetLine(segments []Segment, timestamps []int) []PaceTargetPoint {
	out := make([]PaceTargetPoint, len(timestamps))
	for i, ts := range timestamps {
		out[i] = PaceTargetPoint{Timestamp: ts}
	}

	for _, seg := range segments {
		if seg.End <= seg.Start {
			continue
		}
		zone := seg.Zone
		if zone < 0 {
			zone = 0
		}
		if zone > 6 {
			zone = 6
		}
		first, last, ok := windowIndexes(timestamps, seg.Start, seg.End)
		if !ok {
			continue
		}
		for i := first; i <= last; i++ {
			z := zone
			out[i].Zone = &z
		}
	}

	return out
}

// BuildPowerTargetLineFromRawMetrics maps the flat target-metrics segment
// representation onto the requested timestamps. Only power_zone segments
// contribute; the watt target comes straight from the FTP percentage of
// the zone band named by the power_zone metric, with no midpoint fallback.
func (b Builder) BuildPowerTargetLineFromRawMetrics(targetMetrics []TargetMetric, ftp float64, timestamps []int) []TargetPoint {
	out := make([]TargetPoint, len(timestamps))
	for i, ts := range timestamps {
		out[i] = TargetPoint{Timestamp: ts}
	}
	if ftp <= 0 {
		return out
	}

	for _, tm := range targetMetrics {
		if tm.SegmentType != string(metrics.ClassPowerZone) {
			continue
		}
		watts, ok := b.rawMetricWatts(tm, ftp)
		if !ok {
			continue
		}
		start, end, ok := shiftWindow(tm.StartOffset, tm.EndOffset)
		if !ok {
			continue
		}
		first, last, ok := windowIndexes(timestamps, start, end)
		if !ok {
			continue
		}
		for i := first; i <= last; i++ {
			value := watts
			out[i].Value = &value
		}
	}

	return out
}

// rawMetricWatts resolves the watt target of a raw segment from its
// power_zone metric. The metric's lower/upper are zone numbers; their FTP
// percentages are averaged when they differ.
func (b Builder) rawMetricWatts(tm TargetMetric, ftp float64) (float64, bool) {
	for _, m := range tm.Metrics {
		if m.Name != string(metrics.ClassPowerZone) {
			continue
		}
		lowPct, okLow := b.Calc.Tables.PowerFTPPercent[int(m.Lower)]
		if !okLow {
			return 0, false
		}
		highPct, okHigh := b.Calc.Tables.PowerFTPPercent[int(m.Upper)]
		if !okHigh {
			highPct = lowPct
		}
		return ftp * (lowPct + highPct) / 2.0, true
	}
	return 0, false
}
