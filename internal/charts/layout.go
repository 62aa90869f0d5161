package charts

import (
	"math"
	"strconv"

	"github.com/terraincognita07/paycharts/internal/models"
)

const (
	axisTickCount = 5
	maxPlotWidth  = 1152
	minPlotWidth  = 240
)

func containerPadding(device models.DeviceClass) int {
	if device.IsMobile() {
		return 16
	}
	return 24
}

// plotWidthFor fits the SVG into the viewport minus the card padding.
func plotWidthFor(viewportWidth int, device models.DeviceClass) int {
	width := viewportWidth - 2*containerPadding(device)
	if width > maxPlotWidth {
		width = maxPlotWidth
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}
	return width
}

func coord(value float64) string {
	return strconv.FormatFloat(math.Round(value*100)/100, 'f', -1, 64)
}

func px(value int) string {
	return strconv.Itoa(value)
}

func seriesValues(records []models.Record, series []models.SeriesConfig) []float64 {
	values := make([]float64, 0, len(records)*len(series))
	for _, record := range records {
		for _, config := range series {
			if value, ok := record.Value(config.Key); ok {
				values = append(values, value)
			}
		}
	}
	return values
}
