package api

import (
	"context"

	"github.com/terraincognita07/paycharts/internal/charts"
	"github.com/terraincognita07/paycharts/internal/config"
	"github.com/terraincognita07/paycharts/internal/export"
	"github.com/terraincognita07/paycharts/internal/models"
	"github.com/terraincognita07/paycharts/internal/registry"
	"github.com/terraincognita07/paycharts/internal/services"
)

type Handler struct {
	settings  *config.Settings
	renderer  *charts.Renderer
	exporter  *export.Exporter
	instances *instanceStore
	pages     *services.ScrollLocks
	limiter   *attemptLimiter
}

type chartKindsResponse struct {
	Kinds   []models.ChartKind `json:"kinds"`
	Default models.ChartKind   `json:"default"`
}

type instanceResponse struct {
	State charts.InstanceState `json:"state"`
	Chart *charts.Node         `json:"chart,omitempty"`
}

type scrollLockResponse struct {
	Page    string `json:"page"`
	Locked  bool   `json:"locked"`
	Holders int    `json:"holders"`
}

func NewHandler(settings *config.Settings) *Handler {
	renderer := settings.Renderer()
	return &Handler{
		settings:  settings,
		renderer:  renderer,
		exporter:  export.NewExporter(renderer),
		instances: newInstanceStore(settings.InstanceTTL),
		pages:     services.NewScrollLocks(),
		limiter:   newAttemptLimiter(),
	}
}

// Start launches the idle instance janitor; it stops with ctx.
func (handler *Handler) Start(ctx context.Context) {
	handler.instances.start(ctx, janitorInterval)
}

// Close unmounts every live instance, releasing any scroll locks they hold.
func (handler *Handler) Close() {
	handler.instances.closeAll()
}

func (handler *Handler) newRegistry(width int) (*registry.Registry, error) {
	return handler.settings.Registry(handler.renderer, width)
}
