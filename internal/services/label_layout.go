package services

import (
	"sort"

	"github.com/terraincognita07/paycharts/internal/models"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// PieLabelMinPercent hides external labels of slices below 3% of the total.
const PieLabelMinPercent = 0.03

type Point struct {
	X float64
	Y float64
}

type PieGeometry struct {
	CX          float64
	CY          float64
	OuterRadius float64
}

type SliceLabel struct {
	SliceIndex int
	Name       string
	Detail     string
	Anchor     string
	X          float64
	Y          float64
	LineOffset float64
	Leader     []Point
	Width      float64
	Height     float64
}

type labelMetrics struct {
	labelDistance float64
	elbowDistance float64
	textInset     float64
	lineOffset    float64
	maxNameLength int
	fontSize      float64
}

func pieLabelMetrics(device models.DeviceClass) labelMetrics {
	switch device {
	case models.DeviceMobile:
		return labelMetrics{labelDistance: 70, elbowDistance: 40, textInset: 10, lineOffset: 10, maxNameLength: 10, fontSize: 20}
	case models.DeviceTablet:
		return labelMetrics{labelDistance: 45, elbowDistance: 20, textInset: 5, lineOffset: 15, maxNameLength: 12, fontSize: 12}
	default:
		return labelMetrics{labelDistance: 55, elbowDistance: 20, textInset: 5, lineOffset: 10, maxNameLength: 15, fontSize: 13}
	}
}

func TruncateLabel(name string, maxRunes int) string {
	runes := []rune(name)
	if maxRunes <= 0 || len(runes) <= maxRunes {
		return name
	}
	return string(runes[:maxRunes]) + "..."
}

// MeasureLabel estimates the rendered width of text at fontSize using the
// fixed 7x13 face scaled to the requested size.
func MeasureLabel(text string, fontSize float64) (float64, float64) {
	face := basicfont.Face7x13
	advance := font.MeasureString(face, text)
	baseHeight := float64(face.Metrics().Height.Ceil())
	scale := fontSize / baseHeight
	return float64(advance.Ceil()) * scale, fontSize
}

// PlacePieLabels computes leader lines and text anchors for every slice at or
// above PieLabelMinPercent. Labels that would overlap on the same side of the
// pie are pushed apart vertically and their leader lines follow.
func PlacePieLabels(slices []models.PieSlice, geometry PieGeometry, device models.DeviceClass) []SliceLabel {
	metrics := pieLabelMetrics(device)
	arcs := SliceArcs(slices)

	labels := make([]SliceLabel, 0, len(slices))
	for index, slice := range slices {
		if slice.Percent < PieLabelMinPercent {
			continue
		}
		mid := arcs[index].MidDegrees()
		start := PolarPoint(geometry.CX, geometry.CY, geometry.OuterRadius, mid)
		elbow := PolarPoint(geometry.CX, geometry.CY, geometry.OuterRadius+metrics.elbowDistance, mid)
		end := PolarPoint(geometry.CX, geometry.CY, geometry.OuterRadius+metrics.labelDistance, mid)

		anchor := "end"
		textX := end.X - metrics.textInset
		if end.X > geometry.CX {
			anchor = "start"
			textX = end.X + metrics.textInset
		}

		name := TruncateLabel(slice.Name, metrics.maxNameLength)
		detail := FormatSliceValue(slice.Value, device) + " (" + FormatPercent(slice.Percent) + ")"
		nameWidth, lineHeight := MeasureLabel(name, metrics.fontSize)
		detailWidth, _ := MeasureLabel(detail, metrics.fontSize*0.85)
		width := nameWidth
		if detailWidth > width {
			width = detailWidth
		}

		labels = append(labels, SliceLabel{
			SliceIndex: index,
			Name:       name,
			Detail:     detail,
			Anchor:     anchor,
			X:          textX,
			Y:          end.Y,
			LineOffset: metrics.lineOffset,
			Leader:     []Point{start, elbow, end},
			Width:      width,
			Height:     2*metrics.lineOffset + lineHeight,
		})
	}

	separateLabels(labels, "start")
	separateLabels(labels, "end")
	return labels
}

func separateLabels(labels []SliceLabel, anchor string) {
	side := []int{}
	for index := range labels {
		if labels[index].Anchor == anchor {
			side = append(side, index)
		}
	}
	sort.SliceStable(side, func(left int, right int) bool {
		return labels[side[left]].Y < labels[side[right]].Y
	})

	for position := 1; position < len(side); position++ {
		previous := labels[side[position-1]]
		current := &labels[side[position]]
		minimum := previous.Y + (previous.Height+current.Height)/2
		if current.Y >= minimum {
			continue
		}
		current.Y = minimum
		current.Leader[len(current.Leader)-1].Y = minimum
	}
}

func LabelsOverlap(first SliceLabel, second SliceLabel) bool {
	if first.Anchor != second.Anchor {
		return false
	}
	distance := first.Y - second.Y
	if distance < 0 {
		distance = -distance
	}
	return distance < (first.Height+second.Height)/2-1e-9
}
