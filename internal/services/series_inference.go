package services

import (
	"strings"

	"github.com/terraincognita07/paycharts/internal/models"
)

type SeriesInference struct {
	catalog *FieldCatalog
	palette []string
}

func NewSeriesInference(catalog *FieldCatalog, palette []string) *SeriesInference {
	if catalog == nil {
		catalog = DefaultFieldCatalog()
	}
	if len(palette) == 0 {
		palette = SeriesPalette()
	}
	return &SeriesInference{catalog: catalog, palette: palette}
}

func (inference *SeriesInference) InferSeries(records []models.Record, device models.DeviceClass, overrides map[string]string) []models.SeriesConfig {
	return inference.InferFromManifest(DescribeFields(records), device, overrides)
}

func (inference *SeriesInference) InferFromManifest(manifest FieldManifest, device models.DeviceClass, overrides map[string]string) []models.SeriesConfig {
	if manifest.Empty() {
		return []models.SeriesConfig{}
	}

	ordered := make([]string, 0, len(manifest.Keys))
	for _, known := range inference.catalog.Fields() {
		if manifest.Has(known.Key) {
			ordered = append(ordered, known.Key)
		}
	}
	for _, key := range manifest.Keys {
		if _, known := inference.catalog.Lookup(key); !known {
			ordered = append(ordered, key)
		}
	}

	if limit := MaxSeriesForDevice(device); len(ordered) > limit {
		ordered = ordered[:limit]
	}

	strokeWidth := 3.0
	if device.IsMobile() {
		strokeWidth = 2
	}

	series := make([]models.SeriesConfig, 0, len(ordered))
	for index, key := range ordered {
		series = append(series, models.SeriesConfig{
			Key:         key,
			Label:       inference.seriesLabel(key, device, overrides),
			Colour:      paletteColour(inference.palette, index),
			StrokeWidth: strokeWidth,
		})
	}
	return series
}

func (inference *SeriesInference) seriesLabel(key string, device models.DeviceClass, overrides map[string]string) string {
	if override, ok := overrides[key]; ok && strings.TrimSpace(override) != "" {
		return override
	}
	if known, ok := inference.catalog.Lookup(key); ok {
		if device.IsMobile() {
			return known.ShortLabel
		}
		return known.LongLabel
	}
	return HumanizeFieldKey(key)
}
