package telemetry

import (
	ocprom "contrib.go.opencensus.io/exporter/prometheus"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
)

var (
	MComposeRequests = stats.Int64(
		"tessera/compose/requests",
		"Number of mosaic compose requests",
		stats.UnitDimensionless,
	)
	MComposeLatency = stats.Float64(
		"tessera/compose/latency",
		"End-to-end mosaic compose latency",
		stats.UnitMilliseconds,
	)
	MNearestLatency = stats.Float64(
		"tessera/index/nearest_latency",
		"Nearest-color query latency",
		stats.UnitMilliseconds,
	)
	MCacheHits = stats.Int64(
		"tessera/palette/cache_hits",
		"Nearest-color lookups served from the LRU cache",
		stats.UnitDimensionless,
	)
	MCacheMisses = stats.Int64(
		"tessera/palette/cache_misses",
		"Nearest-color lookups that went to the tree",
		stats.UnitDimensionless,
	)
	MPaletteTiles = stats.Int64(
		"tessera/palette/tiles",
		"Number of tiles in the current palette snapshot",
		stats.UnitDimensionless,
	)
)

func Views() []*view.View {
	return []*view.View{
		{
			Name:        "tessera/compose/requests",
			Measure:     MComposeRequests,
			Description: "Count of mosaic compose requests",
			Aggregation: view.Count(),
		},
		{
			Name:        "tessera/compose/latency",
			Measure:     MComposeLatency,
			Description: "Latency distribution of mosaic composes",
			Aggregation: view.Distribution(5, 25, 100, 250, 1000, 5000, 20000),
		},
		{
			Name:        "tessera/index/nearest_latency",
			Measure:     MNearestLatency,
			Description: "Latency distribution of nearest-color queries",
			Aggregation: view.Distribution(0.001, 0.01, 0.1, 1, 10),
		},
		{
			Name:        "tessera/palette/cache_hits",
			Measure:     MCacheHits,
			Description: "Count of cache hits",
			Aggregation: view.Count(),
		},
		{
			Name:        "tessera/palette/cache_misses",
			Measure:     MCacheMisses,
			Description: "Count of cache misses",
			Aggregation: view.Count(),
		},
		{
			Name:        "tessera/palette/tiles",
			Measure:     MPaletteTiles,
			Description: "Tiles in the current palette snapshot",
			Aggregation: view.LastValue(),
		},
	}
}

// NewExporter registers the views and returns a prometheus exporter that
// doubles as the /metrics handler.
func NewExporter() (*ocprom.Exporter, error) {
	if err := view.Register(Views()...); err != nil {
		return nil, err
	}
	return ocprom.NewExporter(ocprom.Options{Namespace: "tessera"})
}
