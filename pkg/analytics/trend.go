package analytics

import (
	"math"

	"github.com/mohammaddehghani/fuelrep/pkg/domain"
)

const (
	// MinEntries is the minimum raw entry count required before any trend
	// can be computed.
	MinEntries = 5

	// ReliableVolumeThreshold separates full-tank refills (low noise) from
	// partial top-offs (high noise), in liters.
	ReliableVolumeThreshold = 12.0

	// ShortWindow and LongWindow are the trailing moving-average sizes,
	// counted in reliable points.
	ShortWindow = 5
	LongWindow  = 15

	// LastMarked is how many of the most recent reliable points receive
	// ordinal annotation labels.
	LastMarked = 5
)

// ReliablePoint is a consumption data point from a refill judged large enough
// to be low-noise. Moving averages are undefined until their window has
// filled; the Has flags say whether the value is meaningful.
type ReliablePoint struct {
	Odometer    float64 // x-axis: cumulative odometer at this refill
	Consumption float64 // liters per 100 distance units
	Volume      float64 // liters dispensed, for marker sizing
	ShortMA     float64
	LongMA      float64
	HasShortMA  bool
	HasLongMA   bool

	// LastLabel is 1..LastMarked for the most recent reliable points
	// (LastMarked = most recent), 0 for everything older.
	LastLabel int
}

// NoisyPoint is a consumption data point from a small/partial refill. It is
// plotted but excluded from all trend statistics.
type NoisyPoint struct {
	Odometer    float64
	Consumption float64
}

// Trend is the renderable result of a computation: pure data, no visual
// encodings. Average is the mean consumption over all reliable points.
type Trend struct {
	Reliable []ReliablePoint
	Noisy    []NoisyPoint
	Average  float64
}

// Compute turns the ordered entry log into a consumption trend.
//
// Entries must be in ID order. Fewer than MinEntries entries yields
// domain.ErrInsufficientData; callers branch on it with errors.Is. The first
// entry has no predecessor and therefore no consumption point. Entries whose
// distance since the previous entry is zero or negative are dropped entirely.
func Compute(entries []domain.FuelEntry) (*Trend, error) {
	if len(entries) < MinEntries {
		return nil, domain.ErrInsufficientData
	}

	trend := &Trend{}
	var reliable []float64 // consumption values of reliable points, in order
	var sum float64

	for i := 1; i < len(entries); i++ {
		distance := entries[i].Odometer - entries[i-1].Odometer
		if distance <= 0 {
			continue
		}
		consumption := entries[i].Volume / distance * 100
		if math.IsInf(consumption, 0) || math.IsNaN(consumption) {
			continue
		}

		if entries[i].Volume < ReliableVolumeThreshold {
			trend.Noisy = append(trend.Noisy, NoisyPoint{
				Odometer:    entries[i].Odometer,
				Consumption: consumption,
			})
			continue
		}

		reliable = append(reliable, consumption)
		sum += consumption
		p := ReliablePoint{
			Odometer:    entries[i].Odometer,
			Consumption: consumption,
			Volume:      entries[i].Volume,
		}
		if len(reliable) >= ShortWindow {
			p.ShortMA = mean(reliable[len(reliable)-ShortWindow:])
			p.HasShortMA = true
		}
		if len(reliable) >= LongWindow {
			p.LongMA = mean(reliable[len(reliable)-LongWindow:])
			p.HasLongMA = true
		}
		trend.Reliable = append(trend.Reliable, p)
	}

	if len(reliable) > 0 {
		trend.Average = sum / float64(len(reliable))
	}

	// Ordinal labels for the most recent reliable points, LastMarked = newest.
	for k := 0; k < LastMarked && k < len(trend.Reliable); k++ {
		trend.Reliable[len(trend.Reliable)-1-k].LastLabel = LastMarked - k
	}

	return trend, nil
}

func mean(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s / float64(len(values))
}
