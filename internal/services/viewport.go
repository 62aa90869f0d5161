package services

import (
	"sync"
	"time"

	"github.com/terraincognita07/paycharts/internal/models"
)

const ResizeDebounceWindow = 150 * time.Millisecond

// Viewport tracks the last known width of a host viewport. Observations are
// coalesced so a burst of resize events triggers at most one recompute per window.
type Viewport struct {
	mu       sync.Mutex
	width    int
	device   models.DeviceClass
	pending  int
	hasNext  bool
	timer    *time.Timer
	window   time.Duration
	onChange func(width int, device models.DeviceClass, changed bool)
}

func NewViewport(width int, window time.Duration, onChange func(width int, device models.DeviceClass, changed bool)) *Viewport {
	if width <= 0 {
		width = DefaultViewportWidth
	}
	if window < 0 {
		window = 0
	}
	return &Viewport{
		width:    width,
		device:   ResolveDeviceClass(width),
		window:   window,
		onChange: onChange,
	}
}

func (viewport *Viewport) Width() int {
	viewport.mu.Lock()
	defer viewport.mu.Unlock()
	return viewport.width
}

func (viewport *Viewport) Device() models.DeviceClass {
	viewport.mu.Lock()
	defer viewport.mu.Unlock()
	return viewport.device
}

func (viewport *Viewport) Observe(width int) {
	if width <= 0 {
		return
	}

	viewport.mu.Lock()
	defer viewport.mu.Unlock()

	viewport.pending = width
	viewport.hasNext = true
	if viewport.timer != nil {
		viewport.timer.Stop()
	}
	viewport.timer = time.AfterFunc(viewport.window, viewport.Flush)
}

// Flush applies the pending observation immediately, if any.
func (viewport *Viewport) Flush() {
	viewport.mu.Lock()
	if !viewport.hasNext {
		viewport.mu.Unlock()
		return
	}
	if viewport.timer != nil {
		viewport.timer.Stop()
		viewport.timer = nil
	}

	width := viewport.pending
	viewport.hasNext = false
	device := ResolveDeviceClass(width)
	changed := device != viewport.device
	viewport.width = width
	viewport.device = device
	callback := viewport.onChange
	viewport.mu.Unlock()

	if callback != nil {
		callback(width, device, changed)
	}
}

func (viewport *Viewport) Stop() {
	viewport.mu.Lock()
	defer viewport.mu.Unlock()

	if viewport.timer != nil {
		viewport.timer.Stop()
		viewport.timer = nil
	}
	viewport.hasNext = false
}
