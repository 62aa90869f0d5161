package registry

import (
	"errors"
	"strings"
	"testing"

	"github.com/terraincognita07/paycharts/internal/charts"
	"github.com/terraincognita07/paycharts/internal/host"
	"github.com/terraincognita07/paycharts/internal/models"
)

func parseDocument(t *testing.T, markup string) *host.Document {
	t.Helper()

	document, err := host.ParseString(markup)
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	return document
}

func documentHTML(t *testing.T, document *host.Document) string {
	t.Helper()

	output, err := document.String()
	if err != nil {
		t.Fatalf("render document: %v", err)
	}
	return output
}

func TestDefaultAliasFollowsRegistrationOrder(t *testing.T) {
	t.Parallel()

	registry := NewDefault(charts.NewRenderer(), 0)
	kind, ok := registry.DefaultKind()
	if !ok || kind != models.ChartBar {
		t.Fatalf("expected bar to own the alias, got %q", kind)
	}
	if err := registry.SetDefault(models.ChartPie); err != nil {
		t.Fatalf("set default: %v", err)
	}
	if kind, _ := registry.DefaultKind(); kind != models.ChartPie {
		t.Fatalf("expected explicit default pie, got %q", kind)
	}

	custom := New(0)
	noop := func(models.ChartOptions, charts.View) (*charts.Node, error) { return charts.Element("div"), nil }
	_ = custom.RegisterChartRenderer(models.ChartLine, noop)
	_ = custom.RegisterChartRenderer(models.ChartBar, noop)
	_ = custom.RegisterChartRenderer(models.ChartLine, noop)
	if kind, _ := custom.DefaultKind(); kind != models.ChartLine {
		t.Fatalf("expected first registered kind to own the alias, got %q", kind)
	}
	if got := custom.Kinds(); len(got) != 2 {
		t.Fatalf("expected re-registration to keep one entry per kind, got %v", got)
	}
	if err := custom.SetDefault(models.ChartPie); !errors.Is(err, ErrMissingDependency) {
		t.Fatalf("expected missing dependency for unregistered default, got %v", err)
	}
}

func TestRegisterChartRendererValidatesInput(t *testing.T) {
	t.Parallel()

	registry := New(0)
	if err := registry.RegisterChartRenderer("", func(models.ChartOptions, charts.View) (*charts.Node, error) { return nil, nil }); err == nil {
		t.Fatal("expected empty kind to be rejected")
	}
	if err := registry.RegisterChartRenderer(models.ChartBar, nil); err == nil {
		t.Fatal("expected nil renderer to be rejected")
	}
}

func TestRenderMountsIntoTarget(t *testing.T) {
	t.Parallel()

	registry := NewDefault(charts.NewRenderer(), 1280)
	document := parseDocument(t, `<body><div id="revenue">loading</div></body>`)

	if err := registry.Render(document, "revenue", models.ChartOptions{Title: "Quarterly Payment Volume"}); err != nil {
		t.Fatalf("render chart: %v", err)
	}
	output := documentHTML(t, document)
	if strings.Contains(output, "loading") {
		t.Fatal("expected placeholder replaced")
	}
	if !strings.Contains(output, "payments-chart--bar") || !strings.Contains(output, "Quarterly Payment Volume") {
		t.Fatalf("expected bar chart markup, got %s", output)
	}
}

func TestRenderMissingTargetIsNoop(t *testing.T) {
	t.Parallel()

	registry := NewDefault(charts.NewRenderer(), 0)
	document := parseDocument(t, `<body><div id="other">keep</div></body>`)
	before := documentHTML(t, document)

	err := registry.RenderLineChart(document, "missing", models.ChartOptions{})
	if !errors.Is(err, ErrMissingMountTarget) || KindOf(err) != KindMissingMountTarget {
		t.Fatalf("expected missing mount target error, got %v", err)
	}
	if after := documentHTML(t, document); after != before {
		t.Fatal("expected document untouched")
	}
}

func TestRenderMissingDependencyShowsErrorPanel(t *testing.T) {
	t.Parallel()

	registry := New(0)
	document := parseDocument(t, `<body><div id="share"></div></body>`)

	err := registry.RenderPieChart(document, "share", models.ChartOptions{})
	if !errors.Is(err, ErrMissingDependency) {
		t.Fatalf("expected missing dependency, got %v", err)
	}
	output := documentHTML(t, document)
	if !strings.Contains(output, "Pie Chart Loading Error") || !strings.Contains(output, ErrMissingDependency.Error()) {
		t.Fatalf("expected inline error panel, got %s", output)
	}

	aliasErr := registry.Render(document, "share", models.ChartOptions{})
	if KindOf(aliasErr) != KindMissingDependency {
		t.Fatalf("expected alias without renderers to report missing dependency, got %v", aliasErr)
	}
}

func TestRenderRecoversRendererPanic(t *testing.T) {
	t.Parallel()

	registry := New(0)
	_ = registry.RegisterChartRenderer(models.ChartBar, func(models.ChartOptions, charts.View) (*charts.Node, error) {
		panic("boom")
	})
	document := parseDocument(t, `<body><div id="volume"></div></body>`)

	err := registry.RenderBarChart(document, "volume", models.ChartOptions{})
	if !errors.Is(err, ErrRenderFailure) {
		t.Fatalf("expected render failure, got %v", err)
	}
	output := documentHTML(t, document)
	if !strings.Contains(output, "Bar Chart Loading Error") || !strings.Contains(output, "panic: boom") {
		t.Fatalf("expected error panel with panic message, got %s", output)
	}
}

func TestAutoRenderIsolatesMalformedContainers(t *testing.T) {
	t.Parallel()

	registry := NewDefault(charts.NewRenderer(), 1280)
	document := parseDocument(t, `<body>
<div id="good-bar" data-payments-bar-chart data-chart-data='[{"name":"Q1","volume":100},{"name":"Q2","volume":200}]'></div>
<div id="bad-line" data-payments-line-chart data-chart-data="{bad json">placeholder</div>
<div data-payments-pie-chart data-chart-title="Methods" data-show-labels="false"></div>
</body>`)

	result := registry.AutoRender(document)
	if len(result.Rendered) != 2 {
		t.Fatalf("expected two charts rendered, got %v", result.Rendered)
	}
	if len(result.Errors) != 1 || KindOf(result.Errors[0]) != KindMalformedConfig {
		t.Fatalf("expected one malformed config error, got %v", result.Errors)
	}
	if !errors.Is(result.Errors[0], ErrMalformedConfig) {
		t.Fatalf("expected malformed config sentinel, got %v", result.Errors[0])
	}

	output := documentHTML(t, document)
	if !strings.Contains(output, "payments-chart--bar") || !strings.Contains(output, "payments-chart--pie") {
		t.Fatalf("expected bar and pie charts, got %s", output)
	}
	if strings.Contains(output, "payments-chart--line") || !strings.Contains(output, "placeholder") {
		t.Fatal("expected malformed line container left without a chart")
	}
	if result.Rendered[1] != "payments-pie-chart-1" {
		t.Fatalf("expected generated container id, got %q", result.Rendered[1])
	}
}

func TestOptionsFromAttributes(t *testing.T) {
	t.Parallel()

	attrs := map[string]string{
		AttrChartTitle:      "Methods",
		AttrShowLogo:        "false",
		AttrShowInnerRadius: "true",
		AttrShowLabels:      "false",
		AttrShowLegend:      "false",
		AttrFieldLabels:     `{"volume":"Custom"}`,
		AttrHeight:          "520px",
		AttrClassName:       "wide",
	}
	reader := func(name string) (string, bool) {
		value, ok := attrs[name]
		return value, ok
	}

	pie, err := OptionsFromAttributes(models.ChartPie, reader)
	if err != nil {
		t.Fatalf("decode pie attributes: %v", err)
	}
	if pie.Title != "Methods" || pie.LogoVisible() || !pie.ShowInnerRadius || pie.LabelsVisible() || pie.LegendVisible() {
		t.Fatalf("unexpected pie options %#v", pie)
	}
	if pie.Height != 520 || pie.ClassName != "wide" {
		t.Fatalf("unexpected size options %#v", pie)
	}
	if pie.FieldLabels != nil {
		t.Fatal("expected field labels ignored for pie charts")
	}
	if pie.Data != nil {
		t.Fatal("expected missing data attribute to leave data unset")
	}

	line, err := OptionsFromAttributes(models.ChartLine, reader)
	if err != nil {
		t.Fatalf("decode line attributes: %v", err)
	}
	if line.FieldLabels["volume"] != "Custom" || line.ShowInnerRadius {
		t.Fatalf("unexpected line options %#v", line)
	}

	attrs[AttrFieldLabels] = "[1,2"
	if _, err := OptionsFromAttributes(models.ChartLine, reader); err == nil {
		t.Fatal("expected malformed field labels to fail")
	}
	attrs[AttrHeight] = "tall"
	if _, err := OptionsFromAttributes(models.ChartBar, reader); err == nil {
		t.Fatal("expected invalid height to fail")
	}
}
