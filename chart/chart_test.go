package chart

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/zonelab/chartengine/metrics"
	"github.com/zonelab/chartengine/zones"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func newTestBuilder() *Builder {
	return New(DefaultOptions(), zerolog.Nop())
}

func powerSamples(n int, value float64) []Sample {
	out := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Sample{Timestamp: i, Value: value})
	}
	return out
}

func TestPerformanceGraph(t *testing.T) {
	b := newTestBuilder()

	require.Nil(t, b.PerformanceGraph(nil, metrics.ClassPowerZone, floatPtr(200), nil))

	samples := []Sample{
		{Timestamp: 0, Value: 90},
		{Timestamp: 1, Value: 175},
		{Timestamp: 2, Value: 320},
	}
	graph := b.PerformanceGraph(samples, metrics.ClassPowerZone, floatPtr(200), nil)
	require.NotNil(t, graph)
	require.Len(t, graph.Points, 3)

	// With FTP known every point classifies into its zone.
	require.NotNil(t, graph.Points[0].Zone)
	require.Equal(t, 1, *graph.Points[0].Zone)
	require.Equal(t, 3, *graph.Points[1].Zone)
	require.Equal(t, 7, *graph.Points[2].Zone)

	require.Equal(t, 90.0, graph.MinValue)
	require.Equal(t, 320.0, graph.MaxValue)
	require.InDelta(t, 195.0, graph.AvgValue, 1e-9)

	require.Len(t, graph.Legend, 7)
	require.Equal(t, "1", graph.Legend[0].Zone)
	require.NotEmpty(t, graph.Legend[0].Label)
	require.NotEmpty(t, graph.Legend[0].Color)
}

func TestPerformanceGraphWithoutFTP(t *testing.T) {
	b := newTestBuilder()
	graph := b.PerformanceGraph(powerSamples(5, 150), metrics.ClassPowerZone, nil, nil)
	require.NotNil(t, graph)
	for _, p := range graph.Points {
		require.Nil(t, p.Zone)
	}
}

func TestPerformanceGraphDownsamples(t *testing.T) {
	b := newTestBuilder()
	graph := b.PerformanceGraph(powerSamples(5000, 180), metrics.ClassPowerZone, floatPtr(200), nil)
	require.NotNil(t, graph)
	require.Len(t, graph.Points, DefaultOptions().MaxPoints)
	require.Equal(t, 0, graph.Points[0].T)
	require.Equal(t, 4999, graph.Points[len(graph.Points)-1].T)
}

func TestPerformanceGraphPaceLegend(t *testing.T) {
	b := newTestBuilder()
	graph := b.PerformanceGraph(powerSamples(3, 6.5), metrics.ClassPaceTarget, nil, intPtr(5))
	require.NotNil(t, graph)
	require.Len(t, graph.Legend, len(zones.PaceZoneOrder))
	require.Equal(t, zones.PaceRecovery, graph.Legend[0].Zone)
	require.Equal(t, zones.PaceMax, graph.Legend[6].Zone)
}

func TestZoneDistribution(t *testing.T) {
	b := newTestBuilder()

	require.Nil(t, b.ZoneDistribution(nil, metrics.ClassPowerZone))
	require.Nil(t, b.ZoneDistribution([]metrics.ZoneTime{{PowerZone: 2, Seconds: 0}}, metrics.ClassPowerZone))

	zoneData := []metrics.ZoneTime{
		{PowerZone: 2, Seconds: 900},
		{PowerZone: 3, Seconds: 1800},
		{PowerZone: 5, Seconds: 900},
		{PowerZone: 4, Seconds: -60}, // skipped
	}
	dist := b.ZoneDistribution(zoneData, metrics.ClassPowerZone)
	require.NotNil(t, dist)
	require.Equal(t, 3600.0, dist.TotalSeconds)
	require.Len(t, dist.Entries, 3)

	// Entries come back in zone order with shares of the aggregated total.
	require.Equal(t, "2", dist.Entries[0].Zone)
	require.InDelta(t, 25.0, dist.Entries[0].Percentage, 1e-9)
	require.Equal(t, "3", dist.Entries[1].Zone)
	require.InDelta(t, 50.0, dist.Entries[1].Percentage, 1e-9)
	require.InDelta(t, 30.0, dist.Entries[1].Minutes, 1e-9)

	sum := 0.0
	for _, e := range dist.Entries {
		require.NotEmpty(t, e.Label)
		require.NotEmpty(t, e.Color)
		sum += e.Percentage
	}
	require.InDelta(t, 100.0, sum, 1e-9)
}

func TestZoneDistributionPace(t *testing.T) {
	b := newTestBuilder()
	zoneData := []metrics.ZoneTime{
		{PaceZone: zones.PaceEasy, Seconds: 600},
		{PaceIndex: intPtr(4), Seconds: 300},
		{Display: "Very Hard", Seconds: 100},
		{PaceZone: zones.PaceEasy, Seconds: 200}, // aggregates with the first
	}
	dist := b.ZoneDistribution(zoneData, metrics.ClassPaceTarget)
	require.NotNil(t, dist)
	require.Equal(t, 1200.0, dist.TotalSeconds)
	require.Len(t, dist.Entries, 3)
	require.Equal(t, zones.PaceEasy, dist.Entries[0].Zone)
	require.Equal(t, 800.0, dist.Entries[0].Seconds)
	require.Equal(t, zones.PaceHard, dist.Entries[1].Zone)
	require.Equal(t, zones.PaceVeryHard, dist.Entries[2].Zone)
}

func TestTSSIFSummary(t *testing.T) {
	b := newTestBuilder()

	require.Nil(t, b.TSSIFSummary(SummaryInput{}))

	// Direct path.
	s := b.TSSIFSummary(SummaryInput{
		AvgPower:        floatPtr(200),
		DurationSeconds: floatPtr(3600),
		FTP:             floatPtr(200),
		ClassType:       metrics.ClassPowerZone,
	})
	require.NotNil(t, s)
	require.NotNil(t, s.TSS)
	require.InDelta(t, 100.0, *s.TSS, 1e-9)
	require.NotNil(t, s.IF)
	require.InDelta(t, 1.0, *s.IF, 1e-9)

	// No average power: TSS comes from the zone distribution, IF reverses
	// out of that TSS.
	s = b.TSSIFSummary(SummaryInput{
		DurationSeconds: floatPtr(3600),
		FTP:             floatPtr(200),
		ZoneData:        []metrics.ZoneTime{{PowerZone: 4, Seconds: 3600}},
		ClassType:       metrics.ClassPowerZone,
	})
	require.NotNil(t, s)
	require.NotNil(t, s.TSS)
	require.InDelta(t, 0.975*0.975*100, *s.TSS, 1e-9)
	require.NotNil(t, s.IF)
	require.InDelta(t, 0.975, *s.IF, 1e-9)

	// IF alone is still a result.
	s = b.TSSIFSummary(SummaryInput{
		AvgPower: floatPtr(150),
		FTP:      floatPtr(200),
	})
	require.NotNil(t, s)
	require.Nil(t, s.TSS)
	require.NotNil(t, s.IF)
	require.InDelta(t, 0.75, *s.IF, 1e-9)
}

func TestCardSummary(t *testing.T) {
	b := newTestBuilder()

	require.Nil(t, b.CardSummary(nil, nil, SummaryInput{}))

	samples := []Sample{
		{Timestamp: 0, Value: 100},
		{Timestamp: 1, Value: 200},
		{Timestamp: 2, Value: 150},
	}
	stats := b.CardSummary(samples, floatPtr(420), SummaryInput{
		AvgPower:        floatPtr(150),
		DurationSeconds: floatPtr(3930),
		FTP:             floatPtr(200),
		ZoneData:        []metrics.ZoneTime{{PowerZone: 3, Seconds: 3930}},
		ClassType:       metrics.ClassPowerZone,
	})
	require.NotNil(t, stats)
	require.Equal(t, "1:05:30", stats.Duration)
	require.Equal(t, 100.0, stats.MinValue)
	require.Equal(t, 200.0, stats.MaxValue)
	require.InDelta(t, 150.0, stats.AvgValue, 1e-9)
	require.NotNil(t, stats.Calories)
	require.Equal(t, 420.0, *stats.Calories)
	require.NotNil(t, stats.TSS)
	require.NotNil(t, stats.IF)
	require.InDelta(t, 65.5, stats.ZoneMinutes["3"], 1e-9)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{60, "1:00"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{3930, "1:05:30"},
		{-5, "0:00"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%d) = %s, want %s", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatPace(t *testing.T) {
	tests := []struct {
		pace float64
		want string
	}{
		{8.5, "8:30 /mi"},
		{10.0, "10:00 /mi"},
		{6.25, "6:15 /mi"},
		{0, "-"},
		{-1, "-"},
	}
	for _, tt := range tests {
		if got := FormatPace(tt.pace); got != tt.want {
			t.Errorf("FormatPace(%v) = %s, want %s", tt.pace, got, tt.want)
		}
	}
}

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("CHART_MAX_POINTS", "120")
	t.Setenv("CHART_WIDTH", "640")

	opts := OptionsFromEnv()
	require.Equal(t, 120, opts.MaxPoints)
	require.Equal(t, 640.0, opts.Width)
	// Untouched values keep their defaults.
	require.Equal(t, DefaultOptions().Height, opts.Height)
}
