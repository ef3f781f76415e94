// Package chart assembles the engine's chart-ready outputs: the
// performance line graph with zone legend, the zone-time distribution,
// and the TSS / intensity factor summaries.
package chart

import (
	"strconv"

	"github.com/rs/zerolog"

	"github.com/zonelab/chartengine/metrics"
	"github.com/zonelab/chartengine/timeseries"
	"github.com/zonelab/chartengine/zones"
)

// Sample is one recorded performance sample: seconds from workout start
// and the recorded value (watts or mph). Zone is set when the telemetry
// already classified the sample.
type Sample struct {
	Timestamp int     `json:"timestamp"`
	Value     float64 `json:"value"`
	Zone      *int    `json:"zone,omitempty"`
}

// GraphPoint is one retained point of a performance graph.
type GraphPoint struct {
	T    int     `json:"t"`
	V    float64 `json:"v"`
	Zone *int    `json:"z,omitempty"`
}

// LegendEntry is one zone's display metadata for a chart legend.
type LegendEntry struct {
	Zone  string `json:"zone"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// PerformanceGraph is the line-graph product: retained points, the zone
// legend, and the observed value bounds.
type PerformanceGraph struct {
	Points   []GraphPoint  `json:"points"`
	Legend   []LegendEntry `json:"legend"`
	MinValue float64       `json:"min_value"`
	MaxValue float64       `json:"max_value"`
	AvgValue float64       `json:"avg_value"`
}

// DistributionEntry is one zone's share of a workout's zone time.
type DistributionEntry struct {
	Zone       string  `json:"zone"`
	Seconds    float64 `json:"seconds"`
	Minutes    float64 `json:"minutes"`
	Percentage float64 `json:"percentage"`
	Label      string  `json:"label"`
	Color      string  `json:"color"`
}

// Distribution is the pie/donut product: per-zone time shares of the
// aggregated (not wall-clock) total.
type Distribution struct {
	Entries      []DistributionEntry `json:"entries"`
	TotalSeconds float64             `json:"total_seconds"`
}

// Summary carries whichever of TSS and IF were computable.
type Summary struct {
	TSS *float64 `json:"tss,omitempty"`
	IF  *float64 `json:"if,omitempty"`
}

// SummaryInput bundles the optional scalars the summaries derive from.
type SummaryInput struct {
	AvgPower        *float64
	DurationSeconds *float64
	FTP             *float64
	PaceLevel       *int
	ZoneData        []metrics.ZoneTime
	ClassType       metrics.ClassType
}

// CardStats is the compact summary-widget product.
type CardStats struct {
	Duration        string             `json:"duration"`
	DurationSeconds float64            `json:"duration_seconds"`
	MinValue        float64            `json:"min_value"`
	AvgValue        float64            `json:"avg_value"`
	MaxValue        float64            `json:"max_value"`
	Calories        *float64           `json:"calories,omitempty"`
	TSS             *float64           `json:"tss,omitempty"`
	IF              *float64           `json:"if,omitempty"`
	ZoneMinutes     map[string]float64 `json:"zone_minutes,omitempty"`
}

// Builder assembles chart products. Construct with New; the zero value
// has no options or tables wired.
type Builder struct {
	log  zerolog.Logger
	opts Options
	calc metrics.Calculator
}

// New returns a Builder with the given render options and logger. Pass
// zerolog.Nop() when instrumentation is not wanted.
func New(opts Options, log zerolog.Logger) *Builder {
	return &Builder{
		log:  log,
		opts: opts,
		calc: metrics.New(),
	}
}

// PerformanceGraph builds the line-graph product from recorded samples.
// Samples are downsampled to the configured point budget; power workouts
// with a known FTP get every retained sample classified into its zone.
// Returns nil when there are no samples.
func (b *Builder) PerformanceGraph(samples []Sample, classType metrics.ClassType, ftp *float64, paceLevel *int) *PerformanceGraph {
	if len(samples) == 0 {
		b.log.Debug().Msg("performance graph: no samples")
		return nil
	}

	minV, maxV := samples[0].Value, samples[0].Value
	sum := 0.0
	for _, s := range samples {
		if s.Value < minV {
			minV = s.Value
		}
		if s.Value > maxV {
			maxV = s.Value
		}
		sum += s.Value
	}

	retained := timeseries.Downsample(samples, b.opts.MaxPoints)

	var ranges []metrics.ZoneRange
	if classType == metrics.ClassPowerZone && ftp != nil {
		ranges, _ = b.calc.PowerZoneRanges(*ftp)
	}

	points := make([]GraphPoint, 0, len(retained))
	for _, s := range retained {
		p := GraphPoint{T: s.Timestamp, V: s.Value, Zone: s.Zone}
		if ranges != nil {
			if z, ok := metrics.ZoneFor(s.Value, ranges); ok {
				p.Zone = &z
			}
		}
		points = append(points, p)
	}

	b.log.Debug().
		Int("samples", len(samples)).
		Int("retained", len(points)).
		Str("class_type", string(classType)).
		Msg("performance graph built")

	return &PerformanceGraph{
		Points:   points,
		Legend:   b.legend(classType),
		MinValue: minV,
		MaxValue: maxV,
		AvgValue: sum / float64(len(samples)),
	}
}

// legend returns the zone legend for a class type, in zone order.
func (b *Builder) legend(classType metrics.ClassType) []LegendEntry {
	if classType == metrics.ClassPaceTarget {
		legend := make([]LegendEntry, 0, len(zones.PaceZoneOrder))
		for _, name := range zones.PaceZoneOrder {
			d := b.calc.Tables.PaceDisplay[name]
			legend = append(legend, LegendEntry{Zone: name, Label: d.Label, Color: d.Color})
		}
		return legend
	}
	legend := make([]LegendEntry, 0, zones.PowerZoneCount)
	for z := 1; z <= zones.PowerZoneCount; z++ {
		d := b.calc.Tables.PowerDisplay[z]
		legend = append(legend, LegendEntry{Zone: strconv.Itoa(z), Label: d.Label, Color: d.Color})
	}
	return legend
}

// ZoneDistribution aggregates time in zone and reports each zone's share
// of the aggregated total. Entries with non-positive time are skipped;
// nil when nothing remains.
func (b *Builder) ZoneDistribution(zoneData []metrics.ZoneTime, classType metrics.ClassType) *Distribution {
	seconds := make(map[string]float64)
	total := 0.0
	for _, zt := range zoneData {
		if zt.Seconds <= 0 {
			continue
		}
		key, ok := b.zoneKey(zt, classType)
		if !ok {
			continue
		}
		seconds[key] += zt.Seconds
		total += zt.Seconds
	}
	if total <= 0 {
		b.log.Debug().Str("class_type", string(classType)).Msg("zone distribution: no zone time")
		return nil
	}

	entries := make([]DistributionEntry, 0, len(seconds))
	for _, key := range b.zoneOrder(classType) {
		secs, ok := seconds[key]
		if !ok {
			continue
		}
		label, color := b.zoneDisplay(key, classType)
		entries = append(entries, DistributionEntry{
			Zone:       key,
			Seconds:    secs,
			Minutes:    secs / 60.0,
			Percentage: secs / total * 100.0,
			Label:      label,
			Color:      color,
		})
	}

	return &Distribution{Entries: entries, TotalSeconds: total}
}

// zoneKey resolves an occupancy entry to its distribution bucket.
func (b *Builder) zoneKey(zt metrics.ZoneTime, classType metrics.ClassType) (string, bool) {
	if classType == metrics.ClassPaceTarget {
		return metrics.ResolvePaceZone(zt)
	}
	if zt.PowerZone < 1 || zt.PowerZone > zones.PowerZoneCount {
		return "", false
	}
	return strconv.Itoa(zt.PowerZone), true
}

// zoneOrder returns the canonical bucket order for a class type.
func (b *Builder) zoneOrder(classType metrics.ClassType) []string {
	if classType == metrics.ClassPaceTarget {
		return zones.PaceZoneOrder
	}
	order := make([]string, 0, zones.PowerZoneCount)
	for z := 1; z <= zones.PowerZoneCount; z++ {
		order = append(order, strconv.Itoa(z))
	}
	return order
}

func (b *Builder) zoneDisplay(key string, classType metrics.ClassType) (string, string) {
	if classType == metrics.ClassPaceTarget {
		d := b.calc.Tables.PaceDisplay[key]
		return d.Label, d.Color
	}
	z, err := strconv.Atoi(key)
	if err != nil {
		return "", ""
	}
	d := b.calc.Tables.PowerDisplay[z]
	return d.Label, d.Color
}

// TSSIFSummary combines the direct and zone-distribution TSS/IF paths and
// returns whichever subset came out computable. Nil when neither did.
func (b *Builder) TSSIFSummary(in SummaryInput) *Summary {
	out := &Summary{}

	if in.AvgPower != nil && in.DurationSeconds != nil && in.FTP != nil {
		if tss, ok := b.calc.TSS(*in.AvgPower, *in.DurationSeconds, *in.FTP); ok {
			out.TSS = &tss
		}
	}
	if out.TSS == nil && in.DurationSeconds != nil {
		if tss, ok := b.calc.TSSFromZoneDistribution(in.ZoneData, *in.DurationSeconds, in.ClassType, in.FTP, in.PaceLevel); ok {
			out.TSS = &tss
		}
	}

	if intensity, ok := b.calc.IntensityFactor(metrics.IFInput{
		AvgPower:        in.AvgPower,
		FTP:             in.FTP,
		TSS:             out.TSS,
		DurationSeconds: in.DurationSeconds,
	}); ok {
		out.IF = &intensity
	}

	if out.TSS == nil && out.IF == nil {
		return nil
	}
	return out
}

// CardSummary builds the compact stats block for summary widgets. Nil when
// there is nothing at all to report.
func (b *Builder) CardSummary(samples []Sample, calories *float64, in SummaryInput) *CardStats {
	summary := b.TSSIFSummary(in)
	dist := b.ZoneDistribution(in.ZoneData, in.ClassType)
	if len(samples) == 0 && summary == nil && dist == nil && calories == nil {
		return nil
	}

	stats := &CardStats{Calories: calories}
	if in.DurationSeconds != nil {
		stats.DurationSeconds = *in.DurationSeconds
		stats.Duration = FormatDuration(int(*in.DurationSeconds))
	}
	if len(samples) > 0 {
		minV, maxV := samples[0].Value, samples[0].Value
		sum := 0.0
		for _, s := range samples {
			if s.Value < minV {
				minV = s.Value
			}
			if s.Value > maxV {
				maxV = s.Value
			}
			sum += s.Value
		}
		stats.MinValue = minV
		stats.MaxValue = maxV
		stats.AvgValue = sum / float64(len(samples))
	}
	if summary != nil {
		stats.TSS = summary.TSS
		stats.IF = summary.IF
	}
	if dist != nil {
		stats.ZoneMinutes = make(map[string]float64, len(dist.Entries))
		for _, e := range dist.Entries {
			stats.ZoneMinutes[e.Zone] = e.Minutes
		}
	}
	return stats
}
