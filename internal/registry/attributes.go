package registry

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/terraincognita07/paycharts/internal/models"
)

const (
	AttrChartData        = "data-chart-data"
	AttrChartTitle       = "data-chart-title"
	AttrShowLogo         = "data-show-logo"
	AttrSourceText       = "data-source-text"
	AttrSourceURL        = "data-source-url"
	AttrNotesDescription = "data-notes-description"
	AttrFieldLabels      = "data-field-labels"
	AttrShowInnerRadius  = "data-show-inner-radius"
	AttrShowLabels       = "data-show-labels"
	AttrShowLegend       = "data-show-legend"
	AttrClassName        = "data-class-name"
	AttrHeight           = "data-height"
)

// MarkerAttr is the attribute that flags a container for auto-render.
func MarkerAttr(kind models.ChartKind) string {
	return "data-payments-" + string(kind) + "-chart"
}

// OptionsFromAttributes decodes a container's data attributes. Field label
// overrides are read for line charts only; the pie flags for pie charts only.
func OptionsFromAttributes(kind models.ChartKind, attr func(name string) (string, bool)) (models.ChartOptions, error) {
	options := models.ChartOptions{}

	if raw, ok := attr(AttrChartData); ok && strings.TrimSpace(raw) != "" {
		records, err := models.ParseRecords([]byte(raw))
		if err != nil {
			return models.ChartOptions{}, fmt.Errorf("%s: %w", AttrChartData, err)
		}
		options.Data = records
	}

	options.Title, _ = attr(AttrChartTitle)
	options.SourceText, _ = attr(AttrSourceText)
	options.SourceURL, _ = attr(AttrSourceURL)
	options.NotesDescription, _ = attr(AttrNotesDescription)
	options.ClassName, _ = attr(AttrClassName)

	if value, ok := attr(AttrShowLogo); ok && value == "false" {
		options.ShowLogo = models.BoolRef(false)
	}

	if raw, ok := attr(AttrHeight); ok && strings.TrimSpace(raw) != "" {
		height, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(raw), "px"))
		if err != nil || height <= 0 {
			return models.ChartOptions{}, fmt.Errorf("%s: invalid height %q", AttrHeight, raw)
		}
		options.Height = height
	}

	switch kind {
	case models.ChartLine:
		if raw, ok := attr(AttrFieldLabels); ok && strings.TrimSpace(raw) != "" {
			labels := map[string]string{}
			if err := json.Unmarshal([]byte(raw), &labels); err != nil {
				return models.ChartOptions{}, fmt.Errorf("%s: %w", AttrFieldLabels, err)
			}
			options.FieldLabels = labels
		}
	case models.ChartPie:
		if value, ok := attr(AttrShowInnerRadius); ok && value == "true" {
			options.ShowInnerRadius = true
		}
		if value, ok := attr(AttrShowLabels); ok && value == "false" {
			options.ShowLabels = models.BoolRef(false)
		}
		if value, ok := attr(AttrShowLegend); ok && value == "false" {
			options.ShowLegend = models.BoolRef(false)
		}
	}
	return options, nil
}
