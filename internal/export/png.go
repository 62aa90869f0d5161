package export

import (
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/terraincognita07/paycharts/internal/charts"
	"github.com/terraincognita07/paycharts/internal/models"
	"github.com/terraincognita07/paycharts/internal/services"
)

const (
	minImageWidth = 320
	maxImageWidth = 1600
)

var ErrNothingToPlot = charts.ErrNothingToPlot

// Request describes one static export. Width doubles as the viewport width, so
// series limits, pagination and pie aggregation match the interactive chart.
type Request struct {
	Kind    models.ChartKind
	Options models.ChartOptions
	Width   int
	Page    int
}

// Exporter rasterises the same go-chart charts the renderer draws as SVG.
type Exporter struct {
	renderer *charts.Renderer
}

func NewExporter(renderer *charts.Renderer) *Exporter {
	if renderer == nil {
		renderer = charts.NewRenderer()
	}
	return &Exporter{renderer: renderer}
}

func (exporter *Exporter) WritePNG(w io.Writer, request Request) error {
	width := clampWidth(request.Width)
	plot, err := exporter.renderer.StaticPlot(request.Kind, request.Options, charts.View{Width: width, Page: request.Page})
	if err != nil {
		return fmt.Errorf("export %s chart: %w", request.Kind, err)
	}
	if err := plot.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("export %s chart: %w", request.Kind, err)
	}
	return nil
}

func clampWidth(width int) int {
	if width <= 0 {
		return services.DefaultViewportWidth
	}
	if width < minImageWidth {
		return minImageWidth
	}
	if width > maxImageWidth {
		return maxImageWidth
	}
	return width
}
