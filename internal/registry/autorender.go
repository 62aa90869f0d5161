package registry

import (
	"log"

	"github.com/terraincognita07/paycharts/internal/host"
	"github.com/terraincognita07/paycharts/internal/models"
	"golang.org/x/net/html"
)

type AutoRenderResult struct {
	Rendered []string
	Errors   []error
}

// AutoRender mounts a chart into every container flagged with a kind marker
// attribute. Each container is handled on its own: a malformed one is logged,
// left without a chart, and scanning continues.
func (registry *Registry) AutoRender(document *host.Document) AutoRenderResult {
	result := AutoRenderResult{Rendered: []string{}, Errors: []error{}}

	for _, kind := range models.AllChartKinds() {
		marker := MarkerAttr(kind)
		for _, container := range document.ElementsWithAttr(marker) {
			targetID := document.EnsureID(container, "payments-"+string(kind)+"-chart")
			options, err := OptionsFromAttributes(kind, attrReader(container))
			if err != nil {
				bridgeErr := &BridgeError{Op: "auto-render", Kind: KindMalformedConfig, Chart: kind, Target: targetID, Err: err}
				log.Printf("chart bridge: %v", bridgeErr)
				result.Errors = append(result.Errors, bridgeErr)
				continue
			}
			if err := registry.RenderChart(document, kind, targetID, options); err != nil {
				result.Errors = append(result.Errors, err)
				continue
			}
			result.Rendered = append(result.Rendered, targetID)
		}
	}
	return result
}

func attrReader(node *html.Node) func(string) (string, bool) {
	return func(name string) (string, bool) {
		return host.Attr(node, name)
	}
}
