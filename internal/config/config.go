package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/terraincognita07/paycharts/internal/charts"
	"github.com/terraincognita07/paycharts/internal/models"
	"github.com/terraincognita07/paycharts/internal/registry"
	"github.com/terraincognita07/paycharts/internal/services"
)

const (
	DefaultConfigPath  = "paycharts.yaml"
	DefaultPort        = "8080"
	DefaultInstanceTTL = 30 * time.Minute
)

// File mirrors the optional paycharts.yaml. Every field may be omitted.
type File struct {
	Server ServerFile `yaml:"server"`
	Charts ChartsFile `yaml:"charts"`
}

type ServerFile struct {
	Port          string `yaml:"port,omitempty"`
	InstanceTTL   string `yaml:"instanceTTL,omitempty"`
	ViewportWidth int    `yaml:"viewportWidth,omitempty"`
}

type ChartsFile struct {
	DefaultKind string                `yaml:"defaultKind,omitempty"`
	SourceText  string                `yaml:"sourceText,omitempty"`
	Logo        LogoFile              `yaml:"logo"`
	Fields      []services.KnownField `yaml:"fields,omitempty"`
}

type LogoFile struct {
	URL string `yaml:"url,omitempty"`
	Alt string `yaml:"alt,omitempty"`
}

// Settings is the resolved configuration: environment first, then the YAML
// file, then built-in defaults.
type Settings struct {
	Path          string
	Port          string
	DefaultKind   models.ChartKind
	InstanceTTL   time.Duration
	ViewportWidth int
	SourceText    string
	LogoURL       string
	LogoAlt       string
	Fields        []services.KnownField
}

// LoadOptional reads the YAML file at path if present.
func LoadOptional(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &file, nil
}

func Resolve() (*Settings, error) {
	path := getEnv("PAYCHARTS_CONFIG", DefaultConfigPath)
	file, err := LoadOptional(path)
	if err != nil {
		return nil, err
	}

	settings := &Settings{
		Path:       path,
		Port:       getEnv("PORT", firstNonEmpty(file.Server.Port, DefaultPort)),
		SourceText: firstNonEmpty(file.Charts.SourceText, models.DefaultSourceText),
		LogoURL:    firstNonEmpty(file.Charts.Logo.URL, charts.DefaultLogoURL),
		LogoAlt:    firstNonEmpty(file.Charts.Logo.Alt, charts.DefaultLogoAlt),
		Fields:     file.Charts.Fields,
	}

	rawKind := getEnv("DEFAULT_CHART_KIND", firstNonEmpty(file.Charts.DefaultKind, string(models.ChartBar)))
	settings.DefaultKind, err = models.ParseChartKind(rawKind)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_CHART_KIND: %w", err)
	}

	rawTTL := getEnv("INSTANCE_TTL", file.Server.InstanceTTL)
	settings.InstanceTTL = DefaultInstanceTTL
	if rawTTL != "" {
		ttl, err := time.ParseDuration(rawTTL)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("invalid INSTANCE_TTL %q", rawTTL)
		}
		settings.InstanceTTL = ttl
	}

	settings.ViewportWidth = services.DefaultViewportWidth
	if file.Server.ViewportWidth > 0 {
		settings.ViewportWidth = file.Server.ViewportWidth
	}
	if rawWidth := getEnv("DEFAULT_VIEWPORT_WIDTH", ""); rawWidth != "" {
		width, err := strconv.Atoi(rawWidth)
		if err != nil || width <= 0 {
			return nil, fmt.Errorf("invalid DEFAULT_VIEWPORT_WIDTH %q", rawWidth)
		}
		settings.ViewportWidth = width
	}

	return settings, nil
}

func (settings *Settings) FieldCatalog() *services.FieldCatalog {
	catalog := services.DefaultFieldCatalog()
	catalog.Extend(settings.Fields...)
	return catalog
}

func (settings *Settings) Renderer() *charts.Renderer {
	return charts.NewRenderer(
		charts.WithFieldCatalog(settings.FieldCatalog()),
		charts.WithLogo(settings.LogoURL, settings.LogoAlt),
		charts.WithDefaultSourceText(settings.SourceText),
	)
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// Registry binds renderer to a chart bridge for one viewport width, with the
// configured kind backing the generic alias. Pass Renderer() so configured
// defaults apply to every chart the bridge mounts.
func (settings *Settings) Registry(renderer *charts.Renderer, width int) (*registry.Registry, error) {
	bridge := registry.NewDefault(renderer, width)
	if err := bridge.SetDefault(settings.DefaultKind); err != nil {
		return nil, err
	}
	return bridge, nil
}
