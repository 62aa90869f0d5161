package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultSourceText  = "The payments association industry research"
	DefaultChartWidth  = CSSLength("100%")
	DefaultChartHeight = 400
)

// CSSLength accepts either a CSS string ("100%", "640px") or a bare number of pixels.
type CSSLength string

func (length *CSSLength) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*length = ""
		return nil
	}
	var text string
	if err := json.Unmarshal(trimmed, &text); err == nil {
		*length = CSSLength(strings.TrimSpace(text))
		return nil
	}
	pixels, err := strconv.ParseFloat(string(trimmed), 64)
	if err != nil {
		return fmt.Errorf("invalid css length %s", trimmed)
	}
	*length = CSSLength(strconv.FormatFloat(pixels, 'f', -1, 64) + "px")
	return nil
}

type ChartOptions struct {
	Data             []Record          `json:"data,omitempty"`
	Title            string            `json:"title,omitempty"`
	SourceText       string            `json:"sourceText,omitempty"`
	SourceURL        string            `json:"sourceUrl,omitempty"`
	NotesDescription string            `json:"notesDescription,omitempty"`
	ShowLogo         *bool             `json:"showLogo,omitempty"`
	ShowLabels       *bool             `json:"showLabels,omitempty"`
	ShowLegend       *bool             `json:"showLegend,omitempty"`
	ShowInnerRadius  bool              `json:"showInnerRadius,omitempty"`
	FieldLabels      map[string]string `json:"fieldLabels,omitempty"`
	Width            CSSLength         `json:"width,omitempty"`
	Height           int               `json:"height,omitempty"`
	ClassName        string            `json:"className,omitempty"`
}

// WithDefaults fills every unset option. A nil Data slice means "not supplied"
// and falls back to the kind's sample dataset; an empty slice is kept as is.
func (options ChartOptions) WithDefaults(kind ChartKind) ChartOptions {
	if options.Data == nil {
		options.Data = SampleRecords(kind)
	}
	if strings.TrimSpace(options.SourceText) == "" {
		options.SourceText = DefaultSourceText
	}
	if options.ShowLogo == nil {
		options.ShowLogo = BoolRef(true)
	}
	if options.ShowLabels == nil {
		options.ShowLabels = BoolRef(true)
	}
	if options.ShowLegend == nil {
		options.ShowLegend = BoolRef(true)
	}
	if options.FieldLabels == nil {
		options.FieldLabels = map[string]string{}
	}
	if options.Width == "" {
		options.Width = DefaultChartWidth
	}
	if options.Height <= 0 {
		options.Height = DefaultChartHeight
	}
	return options
}

func (options ChartOptions) LogoVisible() bool {
	return options.ShowLogo == nil || *options.ShowLogo
}

func (options ChartOptions) LabelsVisible() bool {
	return options.ShowLabels == nil || *options.ShowLabels
}

func (options ChartOptions) LegendVisible() bool {
	return options.ShowLegend == nil || *options.ShowLegend
}

func (options ChartOptions) HasNotes() bool {
	return strings.TrimSpace(options.NotesDescription) != ""
}

func BoolRef(value bool) *bool {
	return &value
}
