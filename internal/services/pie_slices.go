package services

import (
	"math"
	"sort"

	"github.com/terraincognita07/paycharts/internal/models"
)

const (
	PieMobileSliceLimit = 5
	PieOtherLabel       = "Other"
)

// BuildPieSlices reads the first numeric field of the manifest only; any further
// series are discarded because a pie shows one share-of-total at a time.
func BuildPieSlices(records []models.Record, manifest FieldManifest, palette []string) ([]models.PieSlice, string) {
	if len(records) == 0 || manifest.Empty() {
		return []models.PieSlice{}, ""
	}
	if len(palette) == 0 {
		palette = PiePalette()
	}

	key := manifest.Keys[0]
	slices := make([]models.PieSlice, 0, len(records))
	for index, record := range records {
		value, _ := record.Value(key)
		slices = append(slices, models.PieSlice{
			Name:   record.Name,
			Value:  value,
			Colour: paletteColour(palette, index),
		})
	}
	return withPercentages(slices), key
}

// AggregatePieSlices keeps the limit-1 largest slices and folds the rest into a
// synthetic "Other" slice, so the total is unchanged.
func AggregatePieSlices(slices []models.PieSlice, limit int) []models.PieSlice {
	if limit < 2 || len(slices) <= limit {
		return slices
	}

	sorted := make([]models.PieSlice, len(slices))
	copy(sorted, slices)
	sort.SliceStable(sorted, func(left int, right int) bool {
		return sorted[left].Value > sorted[right].Value
	})

	kept := make([]models.PieSlice, 0, limit)
	kept = append(kept, sorted[:limit-1]...)

	other := models.PieSlice{Name: PieOtherLabel, Colour: ColourMutedForeground, Synthetic: true}
	for _, slice := range sorted[limit-1:] {
		other.Value += slice.Value
	}
	kept = append(kept, other)
	return withPercentages(kept)
}

func PieSlicesForDevice(records []models.Record, manifest FieldManifest, device models.DeviceClass) ([]models.PieSlice, string) {
	slices, key := BuildPieSlices(records, manifest, PiePalette())
	if device.IsMobile() {
		slices = AggregatePieSlices(slices, PieMobileSliceLimit)
	}
	return slices, key
}

func SumPieSlices(slices []models.PieSlice) float64 {
	total := 0.0
	for _, slice := range slices {
		total += slice.Value
	}
	return total
}

type ArcSpan struct {
	StartDegrees float64
	EndDegrees   float64
}

func (span ArcSpan) MidDegrees() float64 {
	return (span.StartDegrees + span.EndDegrees) / 2
}

// SliceArcs lays slices clockwise from three o'clock. Negative values
// occupy no angle.
func SliceArcs(slices []models.PieSlice) []ArcSpan {
	total := 0.0
	for _, slice := range slices {
		total += math.Max(slice.Value, 0)
	}

	arcs := make([]ArcSpan, 0, len(slices))
	start := 0.0
	for _, slice := range slices {
		sweep := 0.0
		if total > 0 {
			sweep = math.Max(slice.Value, 0) / total * 360
		}
		arcs = append(arcs, ArcSpan{StartDegrees: start, EndDegrees: start + sweep})
		start += sweep
	}
	return arcs
}

func PolarPoint(cx float64, cy float64, radius float64, degrees float64) Point {
	radians := degrees * math.Pi / 180
	return Point{X: cx + radius*math.Cos(radians), Y: cy + radius*math.Sin(radians)}
}

func withPercentages(slices []models.PieSlice) []models.PieSlice {
	total := SumPieSlices(slices)
	for index := range slices {
		if total != 0 {
			slices[index].Percent = slices[index].Value / total
		} else {
			slices[index].Percent = 0
		}
	}
	return slices
}
