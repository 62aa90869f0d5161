package models

import (
	"fmt"
	"strings"
)

type ChartKind string

const (
	ChartBar  ChartKind = "bar"
	ChartLine ChartKind = "line"
	ChartPie  ChartKind = "pie"
)

func AllChartKinds() []ChartKind {
	return []ChartKind{ChartBar, ChartLine, ChartPie}
}

func ParseChartKind(raw string) (ChartKind, error) {
	switch ChartKind(strings.ToLower(strings.TrimSpace(raw))) {
	case ChartBar:
		return ChartBar, nil
	case ChartLine:
		return ChartLine, nil
	case ChartPie:
		return ChartPie, nil
	default:
		return "", fmt.Errorf("unknown chart kind %q", raw)
	}
}

// DisplayName is the capitalised kind used in user-facing copy ("Bar Chart Loading Error").
func (kind ChartKind) DisplayName() string {
	switch kind {
	case ChartBar:
		return "Bar"
	case ChartLine:
		return "Line"
	case ChartPie:
		return "Pie"
	default:
		return "Chart"
	}
}
