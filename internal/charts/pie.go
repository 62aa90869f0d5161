package charts

import (
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/terraincognita07/paycharts/internal/models"
	"github.com/terraincognita07/paycharts/internal/services"
)

type pieStrategy struct{}

func (pieStrategy) kind() models.ChartKind { return models.ChartPie }

// Pie charts never page: a share of total needs the whole dataset.
func (pieStrategy) paginates() bool { return false }

func (pieStrategy) prepare(scene *scene, _ *services.SeriesInference) {
	scene.window = models.PageWindow{
		ItemsPerPage: len(scene.options.Data),
		TotalPages:   1,
		Visible:      scene.options.Data,
	}
	scene.slices, scene.sliceKey = services.PieSlicesForDevice(scene.options.Data, scene.manifest, scene.device)
}

func (pieStrategy) empty(scene *scene) bool {
	return len(scene.slices) == 0 || services.SumPieSlices(scene.slices) <= 0
}

func (pieStrategy) subtitle(scene *scene) string {
	if scene.device.IsMobile() {
		return "Payment distribution"
	}
	return "Payment transaction distribution"
}

func (pieStrategy) height(options models.ChartOptions, device models.DeviceClass) int {
	switch device {
	case models.DeviceMobile:
		return 700
	case models.DeviceTablet:
		return maxInt(options.Height, 600)
	default:
		return maxInt(options.Height, 450)
	}
}

func pieLabelsShown(scene *scene) bool {
	return !scene.device.IsMobile() && scene.options.LabelsVisible()
}

func pieLegendShown(scene *scene) bool {
	if scene.device.IsMobile() {
		return true
	}
	return scene.options.LegendVisible() && !scene.options.LabelsVisible()
}

// pieRoom is the padding kept around the pie, wide enough for external labels
// when they show.
func pieRoom(scene *scene) int {
	if pieLabelsShown(scene) {
		return 90
	}
	return 10
}

func pieDonut(scene *scene, positive int) bool {
	return scene.options.ShowInnerRadius && !scene.device.IsMobile() && positive > 1
}

// pieGeometry mirrors how go-chart fits the circle into the padded canvas, so
// external labels line up with the drawn slices.
func pieGeometry(scene *scene, donut bool) services.PieGeometry {
	room := pieRoom(scene)
	canvas := chart.PieChart{
		Width:      scene.plotWidth,
		Height:     scene.plotHeight,
		Background: chart.Style{Padding: chart.Box{Top: room, Left: room, Right: room, Bottom: room}},
	}.Box()
	diameter := chart.MinInt(canvas.Width(), canvas.Height())
	circle := canvas.Fit(chart.Box{Right: diameter, Bottom: diameter})
	cx, cy := circle.Center()

	outer := float64(chart.MinInt(circle.Width(), circle.Height()) >> 1)
	if donut {
		outer = outer / 1.1 / 1.25
	}
	return services.PieGeometry{CX: float64(cx), CY: float64(cy), OuterRadius: outer}
}

func (pieStrategy) draw(scene *scene, static bool) plotDrawing {
	room := pieRoom(scene)
	values := []chart.Value{}
	marks := map[string]markDecorator{}
	for index, slice := range scene.slices {
		if slice.Value <= 0 {
			continue
		}
		class := markClass("slice", index)
		value := chart.Value{
			Value: slice.Value,
			Style: chart.Style{
				ClassName:   class,
				FillColor:   chartColour(slice.Colour),
				StrokeColor: chartColour(services.ColourBackground),
				StrokeWidth: 2,
				FontColor:   chartColour(services.ColourForeground),
			},
		}
		if static && slice.Percent >= services.PieLabelMinPercent {
			value.Label = svgText(slice.Name)
		}
		values = append(values, value)

		marks[class] = func(node *Node, _ int) {
			if node.Tag != "path" && node.Tag != "circle" {
				return
			}
			node.SetAttr("class", "pie-slice")
			node.SetAttr("fill", slice.Colour)
			node.SetAttr("stroke", services.ColourBackground)
			node.SetAttr("stroke-width", "2")
			node.SetAttr("data-name", slice.Name)
			node.SetAttr("data-series", scene.sliceKey)
			if slice.Synthetic {
				node.SetAttr("data-synthetic", "true")
			}
			tooltip(node, pieTooltip(scene.device, slice))
		}
	}

	background := chart.Style{
		Padding:   chart.Box{Top: room, Left: room, Right: room, Bottom: room},
		FillColor: chartColour(services.ColourBackground),
	}
	if static && strings.TrimSpace(scene.options.Title) != "" {
		background.Padding.Top = maxInt(room, 48)
	}

	donut := pieDonut(scene, len(values))
	var drawn Plot
	if donut {
		drawn = chart.DonutChart{
			Title:      svgText(scene.options.Title),
			TitleStyle: titleStyle(static, scene.options.Title),
			Width:      scene.plotWidth,
			Height:     scene.plotHeight,
			Background: background,
			Values:     values,
		}
	} else {
		pie := chart.PieChart{
			Title:      svgText(scene.options.Title),
			TitleStyle: titleStyle(static, scene.options.Title),
			Width:      scene.plotWidth,
			Height:     scene.plotHeight,
			Background: background,
			Values:     values,
		}
		// A lone slice is drawn as a circle styled from SliceStyle.
		if len(values) == 1 {
			pie.SliceStyle = values[0].Style
		}
		drawn = pie
	}

	plotted := plotDrawing{chart: drawn, marks: marks}
	if !static && pieLabelsShown(scene) {
		plotted.overlay = func(svg *Node) {
			svg.Append(pieLabels(scene, pieGeometry(scene, donut)))
		}
	}
	return plotted
}

func pieTooltip(device models.DeviceClass, slice models.PieSlice) string {
	if device.IsMobile() {
		return slice.Name + ": " + services.FormatThousands(slice.Value) + " (" + services.FormatPercent(slice.Percent) + ")"
	}
	return slice.Name + "\nValue: " + services.FormatThousands(slice.Value)
}

func pieLabels(scene *scene, geometry services.PieGeometry) *Node {
	group := Element("g", Class("pie-labels"))
	for _, label := range services.PlacePieLabels(scene.slices, geometry, scene.device) {
		colour := scene.slices[label.SliceIndex].Colour
		points := ""
		for index, point := range label.Leader {
			if index > 0 {
				points += " "
			}
			points += coord(point.X) + "," + coord(point.Y)
		}
		group.Append(
			Element("polyline", Class("pie-leader"), A("points", points), A("fill", "none"), A("stroke", colour)),
			Element("text",
				Class("pie-label"),
				A("x", coord(label.X)),
				A("y", coord(label.Y-label.LineOffset/2)),
				A("text-anchor", label.Anchor),
				A("fill", services.ColourForeground),
			).Append(
				Element("tspan", Class("pie-label-name"), A("x", coord(label.X))).AppendText(label.Name),
				Element("tspan", Class("pie-label-detail"), A("x", coord(label.X)), A("dy", coord(label.LineOffset+label.Height/3)), A("fill", services.ColourMutedForeground)).AppendText(label.Detail),
			),
		)
	}
	return group
}

func (pieStrategy) legend(scene *scene) *Node {
	if !pieLegendShown(scene) {
		return nil
	}
	icon := legendIconRect
	if scene.device.IsMobile() {
		icon = legendIconCircle
	}
	entries := make([]legendEntry, 0, len(scene.slices))
	for _, slice := range scene.slices {
		entries = append(entries, legendEntry{label: slice.Name, colour: slice.Colour})
	}
	return legendList(entries, icon, legendOrientation(scene.device, len(entries)))
}

func maxInt(left int, right int) int {
	if left > right {
		return left
	}
	return right
}
