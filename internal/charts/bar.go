package charts

import (
	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/terraincognita07/paycharts/internal/models"
	"github.com/terraincognita07/paycharts/internal/services"
)

// minLabelledBarWidth is the narrowest bar that still gets a value label on phones.
const minLabelledBarWidth = 30

type barStrategy struct{}

func (barStrategy) kind() models.ChartKind { return models.ChartBar }

func (barStrategy) paginates() bool { return true }

func (barStrategy) prepare(scene *scene, inference *services.SeriesInference) {
	paginateScene(scene)
	scene.series = inference.InferFromManifest(scene.manifest, scene.device, scene.options.FieldLabels)
}

func (barStrategy) empty(scene *scene) bool {
	return len(scene.series) == 0 || len(scene.window.Visible) == 0
}

func (barStrategy) subtitle(scene *scene) string {
	if scene.device.IsMobile() {
		return "Payment analysis"
	}
	return "Payment transaction analysis"
}

func (barStrategy) height(options models.ChartOptions, _ models.DeviceClass) int {
	return options.Height
}

// barSizing splits the plot width into one slot per bar, three quarters bar
// and the rest spacing.
func barSizing(plotWidth int, bars int) (width int, spacing int) {
	slot := (plotWidth - 100) / bars
	width = slot * 3 / 4
	if width < 4 {
		width = 4
	}
	spacing = slot - width
	if spacing < 2 {
		spacing = 2
	}
	return width, spacing
}

// draw flattens the grouped bars into one go-chart bar per record and series.
// Only the first bar of a group carries the record name on the axis; static
// exports name every bar when several series share a group.
func (barStrategy) draw(scene *scene, static bool) plotDrawing {
	records := scene.window.Visible
	series := scene.series
	yAxis, low := valueAxis(scene.device, seriesValues(records, series))
	barWidth, barSpacing := barSizing(scene.plotWidth, len(records)*len(series))
	showValues := !(scene.device.IsMobile() && barWidth < minLabelledBarWidth)

	bars := make([]chart.Value, 0, len(records)*len(series))
	marks := map[string]markDecorator{}
	drawn := []*Node{}
	for recordIndex, record := range records {
		for seriesIndex, config := range series {
			value, _ := record.Value(config.Key)
			label := ""
			switch {
			case static && len(series) > 1:
				label = svgText(record.Name + " " + config.Label)
			case seriesIndex == 0:
				label = svgText(record.Name)
			}

			class := markClass("bar", recordIndex, seriesIndex)
			bars = append(bars, chart.Value{
				Label: label,
				Value: value,
				Style: chart.Style{
					ClassName:   class,
					FillColor:   chartColour(config.Colour),
					StrokeColor: chartColour(config.Colour),
					StrokeWidth: 1,
				},
			})

			marks[class] = func(node *Node, _ int) {
				node.SetAttr("class", "bar")
				node.SetAttr("fill", config.Colour)
				node.SetAttr("stroke", config.Colour)
				node.SetAttr("data-name", record.Name)
				node.SetAttr("data-series", config.Key)
				node.SetAttr("data-value", services.FormatAxisValue(value, scene.device))
				tooltip(node, config.Label+": "+services.FormatThousands(value))
				drawn = append(drawn, node)
			}
		}
	}

	barChart := chart.BarChart{
		Title:        svgText(scene.options.Title),
		TitleStyle:   titleStyle(static, scene.options.Title),
		Width:        scene.plotWidth,
		Height:       scene.plotHeight,
		BarWidth:     barWidth,
		BarSpacing:   barSpacing,
		Background:   plotBackground(static, scene.options.Title),
		XAxis:        axisStyle(scene.device),
		YAxis:        yAxis,
		UseBaseValue: low < 0,
		BaseValue:    0,
		Bars:         bars,
	}

	plotted := plotDrawing{chart: barChart, marks: marks}
	if showValues {
		plotted.overlay = func(svg *Node) {
			labels := Element("g", Class("bar-values"))
			for _, bar := range drawn {
				d, _ := bar.Attr("d")
				left, top, right, _, ok := pathBounds(d)
				if !ok {
					continue
				}
				value, _ := bar.Attr("data-value")
				labels.Append(Element("text",
					Class("bar-value"),
					A("x", coord((left+right)/2)),
					A("y", coord(top-6)),
					A("text-anchor", "middle"),
					A("fill", services.ColourMutedForeground),
				).AppendText(value))
			}
			svg.Append(labels)
		}
	}
	return plotted
}

func (barStrategy) legend(scene *scene) *Node {
	return seriesLegend(scene, legendIconRect)
}
