package registry

import (
	"errors"
	"fmt"
	"log"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/terraincognita07/paycharts/internal/charts"
	"github.com/terraincognita07/paycharts/internal/host"
	"github.com/terraincognita07/paycharts/internal/models"
	"github.com/terraincognita07/paycharts/internal/services"
)

// RenderFunc produces the chart tree for one kind.
type RenderFunc func(options models.ChartOptions, view charts.View) (*charts.Node, error)

// Registry maps chart kinds to renderers and mounts them into host documents.
// The generic Render alias goes to the kind chosen with SetDefault, or else to
// the first kind registered.
type Registry struct {
	mu          sync.RWMutex
	renderers   map[models.ChartKind]RenderFunc
	order       []models.ChartKind
	defaultKind models.ChartKind
	width       int
}

func New(viewportWidth int) *Registry {
	if viewportWidth <= 0 {
		viewportWidth = services.DefaultViewportWidth
	}
	return &Registry{
		renderers: map[models.ChartKind]RenderFunc{},
		width:     viewportWidth,
	}
}

// NewDefault registers bar, line and pie in that order, so bar owns the alias
// unless SetDefault says otherwise.
func NewDefault(renderer *charts.Renderer, viewportWidth int) *Registry {
	registry := New(viewportWidth)
	for _, kind := range models.AllChartKinds() {
		kind := kind
		_ = registry.RegisterChartRenderer(kind, func(options models.ChartOptions, view charts.View) (*charts.Node, error) {
			return renderer.Render(kind, options, view)
		})
	}
	return registry
}

func (registry *Registry) RegisterChartRenderer(kind models.ChartKind, render RenderFunc) error {
	if strings.TrimSpace(string(kind)) == "" {
		return errors.New("chart kind is required")
	}
	if render == nil {
		return fmt.Errorf("renderer for %s chart is nil", kind)
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	if _, exists := registry.renderers[kind]; !exists {
		registry.order = append(registry.order, kind)
	}
	registry.renderers[kind] = render
	return nil
}

func (registry *Registry) SetDefault(kind models.ChartKind) error {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if _, ok := registry.renderers[kind]; !ok {
		return &BridgeError{Op: "set default", Kind: KindMissingDependency, Chart: kind, Err: ErrMissingDependency}
	}
	registry.defaultKind = kind
	return nil
}

func (registry *Registry) DefaultKind() (models.ChartKind, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	if registry.defaultKind != "" {
		return registry.defaultKind, true
	}
	if len(registry.order) > 0 {
		return registry.order[0], true
	}
	return "", false
}

func (registry *Registry) Kinds() []models.ChartKind {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	kinds := make([]models.ChartKind, len(registry.order))
	copy(kinds, registry.order)
	return kinds
}

func (registry *Registry) ViewportWidth() int {
	return registry.width
}

func (registry *Registry) RenderBarChart(document *host.Document, targetID string, options models.ChartOptions) error {
	return registry.RenderChart(document, models.ChartBar, targetID, options)
}

func (registry *Registry) RenderLineChart(document *host.Document, targetID string, options models.ChartOptions) error {
	return registry.RenderChart(document, models.ChartLine, targetID, options)
}

func (registry *Registry) RenderPieChart(document *host.Document, targetID string, options models.ChartOptions) error {
	return registry.RenderChart(document, models.ChartPie, targetID, options)
}

// Render is the generic alias; see DefaultKind.
func (registry *Registry) Render(document *host.Document, targetID string, options models.ChartOptions) error {
	kind, ok := registry.DefaultKind()
	if !ok {
		err := &BridgeError{Op: "render", Kind: KindMissingDependency, Target: targetID, Err: ErrMissingDependency}
		log.Printf("chart bridge: %v", err)
		if target := document.GetElementByID(targetID); target != nil {
			document.Mount(target, charts.ErrorPanel("", err.Error()).HTML())
		}
		return err
	}
	return registry.RenderChart(document, kind, targetID, options)
}

// RenderChart mounts the chart into the element with targetID, replacing its
// children. A missing target is logged and leaves the document untouched;
// every other failure replaces the target's content with an error panel.
// Panics from a renderer are recovered.
func (registry *Registry) RenderChart(document *host.Document, kind models.ChartKind, targetID string, options models.ChartOptions) error {
	target := document.GetElementByID(targetID)
	if target == nil {
		err := &BridgeError{Op: "render", Kind: KindMissingMountTarget, Chart: kind, Target: targetID, Err: fmt.Errorf("container with id %q not found", targetID)}
		log.Printf("chart bridge: %v", err)
		return err
	}

	registry.mu.RLock()
	render, ok := registry.renderers[kind]
	registry.mu.RUnlock()
	if !ok {
		err := &BridgeError{Op: "render", Kind: KindMissingDependency, Chart: kind, Target: targetID, Err: ErrMissingDependency}
		log.Printf("chart bridge: %v", err)
		document.Mount(target, charts.ErrorPanel(kind, ErrMissingDependency.Error()).HTML())
		return err
	}

	node, err := safeRender(render, options, charts.View{Width: registry.width})
	if err != nil {
		bridgeErr := &BridgeError{Op: "render", Kind: KindRenderFailure, Chart: kind, Target: targetID, Err: err}
		log.Printf("chart bridge: %v", bridgeErr)
		document.Mount(target, charts.ErrorPanel(kind, err.Error()).HTML())
		return bridgeErr
	}

	document.Mount(target, node.HTML())
	return nil
}

func safeRender(render RenderFunc, options models.ChartOptions, view charts.View) (node *charts.Node, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			log.Printf("chart renderer panic: %v\n%s", recovered, debug.Stack())
			node, err = nil, fmt.Errorf("panic: %v", recovered)
		}
	}()

	node, err = render(options, view)
	if err == nil && node == nil {
		err = errors.New("renderer returned no chart")
	}
	return node, err
}
