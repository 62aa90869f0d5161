package charts

import "github.com/terraincognita07/paycharts/internal/models"

type legendIcon string

const (
	legendIconRect   legendIcon = "rect"
	legendIconLine   legendIcon = "line"
	legendIconCircle legendIcon = "circle"
)

type legendEntry struct {
	label  string
	colour string
}

// legendOrientation stacks entries on phones once they no longer fit side by side.
func legendOrientation(device models.DeviceClass, entries int) string {
	if device.IsMobile() && entries > 2 {
		return "vertical"
	}
	return "horizontal"
}

func legendList(entries []legendEntry, icon legendIcon, orientation string) *Node {
	if len(entries) == 0 {
		return nil
	}
	list := Element("ul", Class("chart-legend chart-legend--"+orientation))
	for _, entry := range entries {
		list.Append(Element("li", Class("legend-item")).Append(
			legendSwatch(icon, entry.colour),
			Element("span", Class("legend-label")).AppendText(entry.label),
		))
	}
	return list
}

func legendSwatch(icon legendIcon, colour string) *Node {
	swatch := Element("svg", Class("legend-swatch"), A("width", "14"), A("height", "14"), A("viewBox", "0 0 14 14"))
	switch icon {
	case legendIconLine:
		swatch.Append(Element("line", A("x1", "0"), A("y1", "7"), A("x2", "14"), A("y2", "7"), A("stroke", colour), A("stroke-width", "3")))
	case legendIconCircle:
		swatch.Append(Element("circle", A("cx", "7"), A("cy", "7"), A("r", "6"), A("fill", colour)))
	default:
		swatch.Append(Element("rect", A("width", "14"), A("height", "14"), A("rx", "2"), A("fill", colour)))
	}
	return swatch
}

func seriesLegend(scene *scene, icon legendIcon) *Node {
	if !scene.options.LegendVisible() {
		return nil
	}
	entries := make([]legendEntry, 0, len(scene.series))
	for _, config := range scene.series {
		entries = append(entries, legendEntry{label: config.Label, colour: config.Colour})
	}
	return legendList(entries, icon, legendOrientation(scene.device, len(entries)))
}

// tooltip attaches the hover text both as an SVG title and as data-tooltip.
func tooltip(node *Node, text string) *Node {
	node.SetAttr("data-tooltip", text)
	return node.Append(Element("title").AppendText(text))
}
