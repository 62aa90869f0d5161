package charts

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/terraincognita07/paycharts/internal/models"
	"github.com/terraincognita07/paycharts/internal/services"
)

// ErrNothingToPlot reports a dataset with no series or no positive values.
var ErrNothingToPlot = errors.New("nothing to plot")

// Plot is a go-chart chart ready to render through any renderer provider.
type Plot interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// markDecorator turns one generated mark into a chart element. occurrence
// counts earlier marks with the same class and tag.
type markDecorator func(node *Node, occurrence int)

// plotDrawing is a strategy's go-chart chart plus what the SVG plot needs on
// top of it: decorators keyed by the mark classes set on the chart's styles and
// an optional overlay drawn after decoration.
type plotDrawing struct {
	chart   Plot
	marks   map[string]markDecorator
	overlay func(svg *Node)
}

func markClass(kind string, indexes ...int) string {
	parts := []string{"mark", kind}
	for _, index := range indexes {
		parts = append(parts, strconv.Itoa(index))
	}
	return strings.Join(parts, "-")
}

// StaticPlot builds the go-chart chart behind a kind for raster export at
// exactly view.Width pixels, with the title drawn into the image.
func (renderer *Renderer) StaticPlot(kind models.ChartKind, options models.ChartOptions, view View) (Plot, error) {
	strategy, ok := renderer.strategies[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChartKind, kind)
	}

	scene := renderer.buildScene(strategy, options, view)
	scene.plotWidth = scene.view.Width
	if strategy.empty(scene) {
		return nil, ErrNothingToPlot
	}
	return strategy.draw(scene, true).chart, nil
}

// drawPlot renders the strategy's chart to SVG and converts it into the chart
// tree, so the marks can carry tooltips and data attributes.
func drawPlot(scene *scene, strategy kindStrategy) (*Node, error) {
	plotted := strategy.draw(scene, false)

	var buffer bytes.Buffer
	if err := plotted.chart.Render(chart.SVG, &buffer); err != nil {
		return nil, err
	}
	svg, err := parseSVG(buffer.Bytes())
	if err != nil {
		return nil, err
	}

	svg.SetAttr("class", "chart-plot")
	svg.SetAttr("width", px(scene.plotWidth))
	svg.SetAttr("height", px(scene.plotHeight))
	decoratePlot(svg, plotted.marks)
	if plotted.overlay != nil {
		plotted.overlay(svg)
	}
	return svg, nil
}

func parseSVG(markup []byte) (*Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(bytes.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("parse plot svg: %w", err)
	}
	for _, node := range nodes {
		if node.Type == html.ElementNode && node.Data == "svg" {
			return FromHTML(node), nil
		}
	}
	return nil, errors.New("parse plot svg: no svg element")
}

// decoratePlot hands every mark whose first class matches a decorator to it,
// in document order. Empty paths, which go-chart emits after each dot, are
// dropped.
func decoratePlot(svg *Node, marks map[string]markDecorator) {
	occurrences := map[string]int{}
	var visit func(parent *Node)
	visit = func(parent *Node) {
		kept := parent.Children[:0]
		for _, child := range parent.Children {
			if child.Tag == "path" {
				if d, _ := child.Attr("d"); strings.TrimSpace(d) == "" {
					continue
				}
			}
			kept = append(kept, child)

			class, _ := child.Attr("class")
			fields := strings.Fields(class)
			if len(fields) > 0 {
				if decorate, ok := marks[fields[0]]; ok {
					key := fields[0] + "/" + child.Tag
					decorate(child, occurrences[key])
					occurrences[key]++
				}
			}
			visit(child)
		}
		parent.Children = kept
	}
	visit(svg)
}

type plotPoint struct {
	x float64
	y float64
}

// pathPoints reads the M and L vertices of a go-chart path.
func pathPoints(d string) []plotPoint {
	fields := strings.Fields(d)
	points := []plotPoint{}
	for index := 0; index+2 < len(fields); index++ {
		if fields[index] != "M" && fields[index] != "L" {
			continue
		}
		x, errX := strconv.ParseFloat(fields[index+1], 64)
		y, errY := strconv.ParseFloat(fields[index+2], 64)
		if errX == nil && errY == nil {
			points = append(points, plotPoint{x: x, y: y})
			index += 2
		}
	}
	return points
}

func pathBounds(d string) (left, top, right, bottom float64, ok bool) {
	points := pathPoints(d)
	if len(points) == 0 {
		return 0, 0, 0, 0, false
	}
	left, right = points[0].x, points[0].x
	top, bottom = points[0].y, points[0].y
	for _, point := range points[1:] {
		left, right = minFloat(left, point.x), maxFloat(right, point.x)
		top, bottom = minFloat(top, point.y), maxFloat(bottom, point.y)
	}
	return left, top, right, bottom, true
}

func chartColour(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// svgText escapes text handed to go-chart, which writes label bodies into the
// SVG verbatim.
func svgText(text string) string {
	return html.EscapeString(text)
}

func axisFontSize(device models.DeviceClass) float64 {
	if device.IsMobile() {
		return 8
	}
	return 9
}

func axisStyle(device models.DeviceClass) chart.Style {
	return chart.Style{
		FontColor:   chartColour(services.ColourMutedForeground),
		FontSize:    axisFontSize(device),
		StrokeColor: chartColour(services.ColourBorder),
		StrokeWidth: 1,
	}
}

func plotBackground(static bool, title string) chart.Style {
	padding := chart.Box{Top: 16, Left: 8, Right: 8, Bottom: 8}
	if static && strings.TrimSpace(title) != "" {
		padding.Top = 48
	}
	return chart.Style{
		Padding:     padding,
		FillColor:   chartColour(services.ColourBackground),
		StrokeWidth: 0,
	}
}

func titleStyle(static bool, title string) chart.Style {
	return chart.Style{Hidden: !static || strings.TrimSpace(title) == ""}
}

// valueAxis pins the y axis to the nice bounds of values with axisTickCount
// evenly spaced ticks and dashed grid lines. The zero line shows only when the
// range crosses zero.
func valueAxis(device models.DeviceClass, values []float64) (chart.YAxis, float64) {
	low, high := services.AxisBounds(values)
	step := (high - low) / float64(axisTickCount-1)

	ticks := make([]chart.Tick, 0, axisTickCount)
	for index := 0; index < axisTickCount; index++ {
		value := low + step*float64(index)
		ticks = append(ticks, chart.Tick{Value: value, Label: svgText(services.FormatAxisValue(value, device))})
	}

	grid := chart.Style{
		StrokeColor:     chartColour(services.ColourGrid),
		StrokeWidth:     1,
		StrokeDashArray: []float64{3, 3},
	}
	zero := chart.Style{Hidden: low >= 0}
	if low < 0 {
		zero = chart.Style{StrokeColor: chartColour(services.ColourBorder), StrokeWidth: 1}
	}

	return chart.YAxis{
		Style:          axisStyle(device),
		Range:          &chart.ContinuousRange{Min: low, Max: high},
		Ticks:          ticks,
		GridMajorStyle: grid,
		GridMinorStyle: grid,
		Zero:           chart.GridLine{Value: 0, Style: zero},
	}, low
}

func minFloat(left float64, right float64) float64 {
	if left < right {
		return left
	}
	return right
}

func maxFloat(left float64, right float64) float64 {
	if left > right {
		return left
	}
	return right
}
