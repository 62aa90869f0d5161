package charts

import (
	"errors"
	"sync"
	"time"

	"github.com/terraincognita07/paycharts/internal/models"
	"github.com/terraincognita07/paycharts/internal/services"
)

var ErrUnmounted = errors.New("chart instance is unmounted")

type InstanceConfig struct {
	ID           string
	Kind         models.ChartKind
	Options      models.ChartOptions
	Width        int
	Page         int
	PageID       string
	ScrollLock   *services.ScrollLock
	Actions      Actions
	ResizeWindow time.Duration
	// OnUnmount runs once, after the instance has released its scroll lock.
	OnUnmount func()
}

type InstanceState struct {
	ID         string             `json:"id"`
	Kind       models.ChartKind   `json:"kind"`
	PageID     string             `json:"pageId,omitempty"`
	Width      int                `json:"width"`
	Device     models.DeviceClass `json:"device"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
	NotesOpen  bool               `json:"notesOpen"`
	Unmounted  bool               `json:"unmounted"`
}

// Instance is one mounted chart whose page, viewport and notes modal survive
// between renders. All methods are safe for concurrent use.
type Instance struct {
	mu         sync.Mutex
	id         string
	kind       models.ChartKind
	pageID     string
	options    models.ChartOptions
	renderer   *Renderer
	actions    Actions
	width      int
	pager      *services.Pager
	viewport   *services.Viewport
	modal      *services.NotesModal
	onUnmount  func()
	lastActive time.Time
	unmounted  bool
}

func (renderer *Renderer) Mount(config InstanceConfig) (*Instance, error) {
	if !renderer.Supports(config.Kind) {
		return nil, ErrUnknownChartKind
	}

	width := config.Width
	if width <= 0 {
		width = services.DefaultViewportWidth
	}
	window := config.ResizeWindow
	if window <= 0 {
		window = services.ResizeDebounceWindow
	}
	options := config.Options.WithDefaults(config.Kind)
	device := services.ResolveDeviceClass(width)

	instance := &Instance{
		id:         config.ID,
		kind:       config.Kind,
		pageID:     config.PageID,
		options:    options,
		renderer:   renderer,
		actions:    config.Actions,
		width:      width,
		pager:      services.NewPager(device),
		modal:      services.NewNotesModal(options.NotesDescription, config.ScrollLock),
		onUnmount:  config.OnUnmount,
		lastActive: time.Now(),
	}
	if config.Page > 0 {
		instance.pager.GoTo(config.Page, renderer.PageCount(config.Kind, options, width))
	}
	instance.viewport = services.NewViewport(width, window, instance.applyResize)
	return instance, nil
}

func (instance *Instance) ID() string {
	return instance.id
}

func (instance *Instance) Kind() models.ChartKind {
	return instance.kind
}

// PageID names the host page whose scroll lock the instance shares.
func (instance *Instance) PageID() string {
	return instance.pageID
}

func (instance *Instance) DOMID() string {
	return InstanceDOMID(instance.id)
}

// InstanceDOMID is the element id a mounted chart renders with.
func InstanceDOMID(id string) string {
	if id == "" {
		return ""
	}
	return "payments-chart-" + id
}

// applyResize runs once per settled resize burst. The width and the page reset
// change together so no render sees a page from the previous device class.
func (instance *Instance) applyResize(width int, device models.DeviceClass, _ bool) {
	instance.mu.Lock()
	defer instance.mu.Unlock()

	if instance.unmounted {
		return
	}
	instance.width = width
	instance.pager.SetDevice(device)
}

// ObserveResize records a viewport width; bursts are coalesced into one update
// after the debounce window.
func (instance *Instance) ObserveResize(width int) {
	instance.touch()
	instance.viewport.Observe(width)
}

// Resize applies a width immediately.
func (instance *Instance) Resize(width int) {
	instance.touch()
	instance.viewport.Observe(width)
	instance.viewport.Flush()
}

func (instance *Instance) NextPage() bool {
	instance.mu.Lock()
	defer instance.mu.Unlock()

	instance.lastActive = time.Now()
	return instance.pager.Next(instance.renderer.PageCount(instance.kind, instance.options, instance.width))
}

func (instance *Instance) PreviousPage() bool {
	instance.mu.Lock()
	defer instance.mu.Unlock()

	instance.lastActive = time.Now()
	return instance.pager.Previous(instance.renderer.PageCount(instance.kind, instance.options, instance.width))
}

// OpenNotes holds the instance lock while acquiring the scroll lock so a
// concurrent Unmount cannot leave it held.
func (instance *Instance) OpenNotes() bool {
	instance.mu.Lock()
	defer instance.mu.Unlock()

	if instance.unmounted {
		return false
	}
	instance.lastActive = time.Now()
	return instance.modal.Open()
}

func (instance *Instance) CloseNotes() bool {
	instance.touch()
	return instance.modal.Close()
}

func (instance *Instance) HandleKey(key string) bool {
	instance.touch()
	return instance.modal.HandleKey(key)
}

func (instance *Instance) HandleClick(target string) bool {
	instance.touch()
	return instance.modal.HandleClick(target)
}

func (instance *Instance) Render() (*Node, error) {
	instance.mu.Lock()
	defer instance.mu.Unlock()

	if instance.unmounted {
		return nil, ErrUnmounted
	}
	return instance.renderer.Render(instance.kind, instance.options, View{
		Width:     instance.width,
		Page:      instance.pager.Page(),
		NotesOpen: instance.modal.IsOpen(),
		ID:        instance.DOMID(),
		Actions:   instance.actions,
	})
}

func (instance *Instance) State() InstanceState {
	instance.mu.Lock()
	defer instance.mu.Unlock()

	return InstanceState{
		ID:         instance.id,
		Kind:       instance.kind,
		PageID:     instance.pageID,
		Width:      instance.width,
		Device:     services.ResolveDeviceClass(instance.width),
		Page:       instance.pager.Page(),
		TotalPages: instance.renderer.PageCount(instance.kind, instance.options, instance.width),
		NotesOpen:  instance.modal.IsOpen(),
		Unmounted:  instance.unmounted,
	}
}

func (instance *Instance) LastActive() time.Time {
	instance.mu.Lock()
	defer instance.mu.Unlock()
	return instance.lastActive
}

// Unmount stops pending resize work and releases the page scroll lock if the
// notes modal is still open. It is safe to call more than once.
func (instance *Instance) Unmount() {
	instance.mu.Lock()
	if instance.unmounted {
		instance.mu.Unlock()
		return
	}
	instance.unmounted = true
	instance.mu.Unlock()

	instance.viewport.Stop()
	instance.modal.Teardown()
	if instance.onUnmount != nil {
		instance.onUnmount()
	}
}

func (instance *Instance) touch() {
	instance.mu.Lock()
	instance.lastActive = time.Now()
	instance.mu.Unlock()
}
