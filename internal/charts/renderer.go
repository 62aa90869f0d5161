package charts

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/terraincognita07/paycharts/internal/models"
	"github.com/terraincognita07/paycharts/internal/services"
)

const (
	DefaultLogoURL = "https://res.cloudinary.com/dmlmugaye/image/upload/v1754492437/PA_Logo_Black_xlb4mj.svg"
	DefaultLogoAlt = "The Payments Association"
	chartCredit    = "Chart: Payments Intelligence"
)

var ErrUnknownChartKind = errors.New("unknown chart kind")

// View is the per-render state a host supplies alongside the options.
type View struct {
	Width     int
	Page      int
	NotesOpen bool
	ID        string
	Actions   Actions
}

type scene struct {
	kind       models.ChartKind
	options    models.ChartOptions
	device     models.DeviceClass
	view       View
	plotWidth  int
	plotHeight int
	manifest   services.FieldManifest
	series     []models.SeriesConfig
	window     models.PageWindow
	slices     []models.PieSlice
	sliceKey   string
}

type kindStrategy interface {
	kind() models.ChartKind
	paginates() bool
	prepare(scene *scene, inference *services.SeriesInference)
	empty(scene *scene) bool
	subtitle(scene *scene) string
	height(options models.ChartOptions, device models.DeviceClass) int
	draw(scene *scene, static bool) plotDrawing
	legend(scene *scene) *Node
}

type Renderer struct {
	inference  *services.SeriesInference
	logoURL    string
	logoAlt    string
	sourceText string
	strategies map[models.ChartKind]kindStrategy
}

type RendererOption func(*Renderer)

func WithFieldCatalog(catalog *services.FieldCatalog) RendererOption {
	return func(renderer *Renderer) {
		renderer.inference = services.NewSeriesInference(catalog, services.SeriesPalette())
	}
}

func WithLogo(url string, alt string) RendererOption {
	return func(renderer *Renderer) {
		if strings.TrimSpace(url) != "" {
			renderer.logoURL = url
		}
		if strings.TrimSpace(alt) != "" {
			renderer.logoAlt = alt
		}
	}
}

// WithDefaultSourceText sets the footer source used when a chart leaves its
// own blank.
func WithDefaultSourceText(text string) RendererOption {
	return func(renderer *Renderer) {
		renderer.sourceText = strings.TrimSpace(text)
	}
}

func NewRenderer(options ...RendererOption) *Renderer {
	renderer := &Renderer{
		inference: services.NewSeriesInference(nil, nil),
		logoURL:   DefaultLogoURL,
		logoAlt:   DefaultLogoAlt,
		strategies: map[models.ChartKind]kindStrategy{
			models.ChartBar:  barStrategy{},
			models.ChartLine: lineStrategy{},
			models.ChartPie:  pieStrategy{},
		},
	}
	for _, option := range options {
		option(renderer)
	}
	return renderer
}

func (renderer *Renderer) Supports(kind models.ChartKind) bool {
	_, ok := renderer.strategies[kind]
	return ok
}

// Render builds the complete chart tree for one pass. It is pure: the same
// kind, options and view always produce the same tree.
func (renderer *Renderer) Render(kind models.ChartKind, options models.ChartOptions, view View) (*Node, error) {
	strategy, ok := renderer.strategies[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChartKind, kind)
	}

	scene := renderer.buildScene(strategy, options, view)

	root := Element("div",
		Class(rootClass(scene)),
		A("data-chart-kind", string(kind)),
		A("data-device", string(scene.device)),
		A("style", "width: "+string(scene.options.Width)),
	)
	if view.ID != "" {
		root.SetAttr("id", view.ID)
	}
	bindAction(view.Actions, root, ActionScrollLock)

	body := Element("div", Class("chart-body"))
	if strategy.empty(scene) {
		body.Append(emptyState())
	} else {
		plot, err := drawPlot(scene, strategy)
		if err != nil {
			return nil, fmt.Errorf("draw %s plot: %w", kind, err)
		}
		body.Append(plot, strategy.legend(scene))
	}
	if strategy.paginates() {
		body.Append(paginationControls(scene))
	}

	root.Append(
		renderer.header(scene, strategy),
		body,
		footer(scene),
		notesModal(scene),
	)
	return root, nil
}

// PageCount reports how many pages the dataset spans at width.
func (renderer *Renderer) PageCount(kind models.ChartKind, options models.ChartOptions, width int) int {
	strategy, ok := renderer.strategies[kind]
	if !ok || !strategy.paginates() {
		return 1
	}
	options = options.WithDefaults(kind)
	device := services.ResolveDeviceClass(width)
	return services.Paginate(options.Data, device, 0).TotalPages
}

func (renderer *Renderer) buildScene(strategy kindStrategy, options models.ChartOptions, view View) *scene {
	kind := strategy.kind()
	if strings.TrimSpace(options.SourceText) == "" {
		options.SourceText = renderer.sourceText
	}
	options = options.WithDefaults(kind)
	if view.Width <= 0 {
		view.Width = services.DefaultViewportWidth
	}
	device := services.ResolveDeviceClass(view.Width)

	current := &scene{
		kind:       kind,
		options:    options,
		device:     device,
		view:       view,
		plotWidth:  plotWidthFor(view.Width, device),
		plotHeight: strategy.height(options, device),
		manifest:   services.DescribeFields(options.Data),
	}
	for _, issue := range current.manifest.Validate(options.Data) {
		log.Printf("%s chart schema mismatch: %s", kind, issue)
	}
	strategy.prepare(current, renderer.inference)
	return current
}

func rootClass(scene *scene) string {
	classes := []string{
		"payments-chart",
		"payments-chart--" + string(scene.kind),
		"payments-chart--" + string(scene.device),
	}
	if extra := strings.TrimSpace(scene.options.ClassName); extra != "" {
		classes = append(classes, extra)
	}
	return strings.Join(classes, " ")
}

// paginateScene fills the page window for strategies that page their records.
func paginateScene(scene *scene) {
	scene.window = services.Paginate(scene.options.Data, scene.device, scene.view.Page)
}
