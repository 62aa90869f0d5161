package charts

import (
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/terraincognita07/paycharts/internal/models"
	"github.com/terraincognita07/paycharts/internal/services"
)

type lineStrategy struct{}

func (lineStrategy) kind() models.ChartKind { return models.ChartLine }

func (lineStrategy) paginates() bool { return true }

func (lineStrategy) prepare(scene *scene, inference *services.SeriesInference) {
	paginateScene(scene)
	scene.series = inference.InferFromManifest(scene.manifest, scene.device, scene.options.FieldLabels)
}

func (lineStrategy) empty(scene *scene) bool {
	return len(scene.series) == 0 || len(scene.window.Visible) == 0
}

func (lineStrategy) subtitle(scene *scene) string {
	mobile := scene.device.IsMobile()
	switch {
	case len(scene.series) <= 1 && mobile:
		return "Trend analysis"
	case len(scene.series) <= 1:
		return "Trend analysis over time"
	case mobile:
		return "Multi-metric trends"
	default:
		return "Multi-metric trend analysis"
	}
}

func (lineStrategy) height(options models.ChartOptions, _ models.DeviceClass) int {
	return options.Height
}

// categoryTicks places record names at their indexes with blank ticks half a
// step beyond either end, which keeps the x range open for a single record and
// keeps the first and last points off the axes.
func categoryTicks(records []models.Record) []chart.Tick {
	ticks := make([]chart.Tick, 0, len(records)+2)
	ticks = append(ticks, chart.Tick{Value: -0.5})
	for index, record := range records {
		ticks = append(ticks, chart.Tick{Value: float64(index), Label: svgText(record.Name)})
	}
	return append(ticks, chart.Tick{Value: float64(len(records)) - 0.5})
}

func lineDotRadius(device models.DeviceClass) float64 {
	if device.IsMobile() {
		return 3
	}
	return 4
}

func (lineStrategy) draw(scene *scene, static bool) plotDrawing {
	records := scene.window.Visible
	yAxis, _ := valueAxis(scene.device, seriesValues(records, scene.series))
	showDots := static || !(scene.device.IsMobile() && len(scene.series) > 2)

	xs := make([]float64, len(records))
	for index := range records {
		xs[index] = float64(index)
	}

	plotted := make([]chart.Series, 0, len(scene.series))
	marks := map[string]markDecorator{}
	var firstLine *Node
	for seriesIndex, config := range scene.series {
		ys := make([]float64, len(records))
		for index, record := range records {
			ys[index], _ = record.Value(config.Key)
		}

		style := chart.Style{
			ClassName:   markClass("line", seriesIndex),
			StrokeColor: chartColour(config.Colour),
			StrokeWidth: config.StrokeWidth,
		}
		if showDots {
			style.DotColor = chartColour(config.Colour)
			style.DotWidth = lineDotRadius(scene.device)
		}
		plotted = append(plotted, chart.ContinuousSeries{
			Name:    svgText(config.Label),
			XValues: xs,
			YValues: ys,
			Style:   style,
		})

		marks[style.ClassName] = func(node *Node, occurrence int) {
			node.SetAttr("data-series", config.Key)
			if node.Tag == "circle" {
				node.SetAttr("class", "line-dot")
				node.SetAttr("fill", config.Colour)
				node.SetAttr("stroke", config.Colour)
				if occurrence < len(records) {
					node.SetAttr("data-name", records[occurrence].Name)
					tooltip(node, config.Label+": "+services.FormatThousands(ys[occurrence]))
				}
				return
			}
			node.SetAttr("class", "line-path")
			node.SetAttr("fill", "none")
			node.SetAttr("stroke", config.Colour)
			node.SetAttr("stroke-width", coord(config.StrokeWidth))
			node.SetAttr("stroke-linejoin", "round")
			if firstLine == nil {
				firstLine = node
			}
		}
	}

	lineChart := chart.Chart{
		Title:      svgText(scene.options.Title),
		TitleStyle: titleStyle(static, scene.options.Title),
		Width:      scene.plotWidth,
		Height:     scene.plotHeight,
		Background: plotBackground(static, scene.options.Title),
		XAxis: chart.XAxis{
			Style:          axisStyle(scene.device),
			Range:          &chart.ContinuousRange{Min: -0.5, Max: float64(len(records)) - 0.5},
			Ticks:          categoryTicks(records),
			GridMajorStyle: chart.Style{Hidden: true},
			GridMinorStyle: chart.Style{Hidden: true},
		},
		YAxis:  yAxis,
		Series: plotted,
	}
	if static {
		lineChart.Elements = []chart.Renderable{chart.Legend(&lineChart)}
	}

	return plotDrawing{
		chart: &lineChart,
		marks: marks,
		overlay: func(svg *Node) {
			if firstLine == nil {
				return
			}
			d, _ := firstLine.Attr("d")
			svg.Append(hoverColumns(scene, records, pathPoints(d)))
		},
	}
}

// hoverColumns lays one transparent column per record over the plot, centred
// on the record's point, carrying every series value in its tooltip.
func hoverColumns(scene *scene, records []models.Record, points []plotPoint) *Node {
	if len(points) != len(records) {
		return nil
	}
	columnWidth := float64(scene.plotWidth) / float64(len(records))
	if len(points) > 1 {
		columnWidth = points[1].x - points[0].x
	}

	columns := Element("g", Class("hover-columns"))
	for index, record := range records {
		lines := []string{record.Name}
		for _, config := range scene.series {
			value, _ := record.Value(config.Key)
			lines = append(lines, config.Label+": "+services.FormatThousands(value))
		}
		column := Element("rect",
			Class("hover-column"),
			A("x", coord(points[index].x-columnWidth/2)),
			A("y", "0"),
			A("width", coord(columnWidth)),
			A("height", px(scene.plotHeight)),
			A("fill", "transparent"),
		)
		columns.Append(tooltip(column, strings.Join(lines, "\n")))
	}
	return columns
}

func (lineStrategy) legend(scene *scene) *Node {
	return seriesLegend(scene, legendIconLine)
}
