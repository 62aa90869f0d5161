package services

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/terraincognita07/paycharts/internal/models"
)

// FormatThousands renders a value with thousands separators and at most three
// fraction digits: 145000 -> "145,000", 1234.5678 -> "1,234.568".
func FormatThousands(value float64) string {
	rounded := math.Round(value*1000) / 1000
	if rounded == 0 {
		rounded = 0
	}
	return humanize.Commaf(rounded)
}

// AbbreviateValue renders 1500000 as "1.5M" and 2500 as "2.5K".
func AbbreviateValue(value float64) string {
	magnitude := math.Abs(value)
	switch {
	case magnitude >= 1_000_000:
		return fmt.Sprintf("%.1fM", value/1_000_000)
	case magnitude >= 1_000:
		return fmt.Sprintf("%.1fK", value/1_000)
	default:
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
}

func FormatAxisValue(value float64, device models.DeviceClass) string {
	if device.IsMobile() {
		return AbbreviateValue(value)
	}
	return FormatThousands(value)
}

// FormatSliceValue is the pie label flavour: tablets abbreviate too.
func FormatSliceValue(value float64, device models.DeviceClass) string {
	if device.IsMobile() || device.IsTablet() {
		return AbbreviateValue(value)
	}
	return FormatThousands(value)
}

func FormatPercent(fraction float64) string {
	return fmt.Sprintf("%.1f%%", fraction*100)
}
