package charts

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/terraincognita07/paycharts/internal/models"
)

const (
	notesTitle      = "Chart Notes"
	notesToggleHint = "View chart notes"
	emptyMessage    = "Nothing to plot"
)

func (renderer *Renderer) header(scene *scene, strategy kindStrategy) *Node {
	heading := Element("div", Class("chart-heading"))
	if title := strings.TrimSpace(scene.options.Title); title != "" {
		heading.Append(Element("h3", Class("chart-title")).AppendText(title))
	}

	subtitle := Element("p", Class("chart-subtitle")).AppendText(strategy.subtitle(scene))
	if strategy.kind() == models.ChartBar && scene.window.Paginated() {
		subtitle.Append(Element("span", Class("page-info")).
			AppendText(fmt.Sprintf("(%d/%d)", scene.window.Page+1, scene.window.TotalPages)))
	}
	heading.Append(subtitle)

	header := Element("div", Class("chart-header")).Append(heading)
	if scene.options.LogoVisible() {
		header.Append(Element("div", Class("chart-logo")).Append(
			Element("img", A("src", renderer.logoURL), A("alt", renderer.logoAlt)),
		))
	}
	return header
}

func emptyState() *Node {
	return Element("div", Class("chart-empty")).AppendText(emptyMessage)
}

func paginationControls(scene *scene) *Node {
	window := scene.window
	if !window.Paginated() {
		return nil
	}

	previous := Element("button", A("type", "button"), Class("page-previous")).AppendText("Previous")
	if window.Page == 0 {
		previous.SetAttr("disabled", "disabled")
	}
	next := Element("button", A("type", "button"), Class("page-next")).AppendText("Next")
	if window.Page >= window.TotalPages-1 {
		next.SetAttr("disabled", "disabled")
	}

	return Element("div", Class("chart-pagination")).Append(
		bindAction(scene.view.Actions, previous, ActionPreviousPage),
		Element("span", Class("page-counter")).AppendText(fmt.Sprintf("%d of %d", window.Page+1, window.TotalPages)),
		bindAction(scene.view.Actions, next, ActionNextPage),
	)
}

func footer(scene *scene) *Node {
	options := scene.options
	sourceLabel := "Source: " + options.SourceText

	var source *Node
	if link, ok := safeSourceURL(options.SourceURL); ok {
		source = Element("a",
			Class("chart-source-link"),
			A("href", link),
			A("target", "_blank"),
			A("rel", "noopener noreferrer"),
		).AppendText(sourceLabel)
	} else {
		source = Element("span", Class("chart-source-text")).AppendText(sourceLabel)
	}

	footer := Element("div", Class("chart-footer")).Append(
		Element("div", Class("chart-source")).Append(
			source,
			Element("span", Class("chart-credit")).AppendText(chartCredit),
		),
	)

	if options.HasNotes() {
		toggle := Element("button", A("type", "button"), Class("notes-toggle"), A("title", notesToggleHint)).
			Append(infoIcon(scene.device), Element("span").AppendText("Notes"))
		footer.Append(bindAction(scene.view.Actions, toggle, ActionOpenNotes))
	}
	return footer
}

// safeSourceURL accepts absolute http(s) links and relative references. Any
// other scheme, javascript: included, renders the source as plain text.
func safeSourceURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		if parsed.Host == "" {
			return "", false
		}
	case "":
	default:
		return "", false
	}
	return raw, true
}

// notesModal renders the overlay only while it is open; the description is
// never part of the closed tree.
func notesModal(scene *scene) *Node {
	if !scene.view.NotesOpen || !scene.options.HasNotes() {
		return nil
	}
	actions := scene.view.Actions

	closeIcon := Element("button", A("type", "button"), Class("notes-close"), A("aria-label", "Close notes")).AppendText("×")
	closeButton := Element("button", A("type", "button"), Class("notes-close-button")).AppendText("Close")

	dialog := Element("div",
		Class("notes-dialog"),
		A("role", "dialog"),
		A("aria-modal", "true"),
		A("data-click-target", "dialog"),
	).Append(
		Element("div", Class("notes-header")).Append(
			Element("h4").AppendText(notesTitle),
			bindAction(actions, closeIcon, ActionCloseNotes),
		),
		Element("div", Class("notes-body")).Append(
			Element("p").AppendText(strings.TrimSpace(scene.options.NotesDescription)),
		),
		Element("div", Class("notes-footer")).Append(
			bindAction(actions, closeButton, ActionCloseNotes),
		),
	)
	bindAction(actions, dialog, ActionEscapeKey)

	backdrop := Element("div", Class("notes-backdrop"), A("data-click-target", "backdrop")).Append(dialog)
	return bindAction(actions, backdrop, ActionBackdropClick)
}

func infoIcon(device models.DeviceClass) *Node {
	size := "16"
	if device.IsMobile() {
		size = "14"
	}
	return Element("svg",
		Class("notes-icon"),
		A("width", size),
		A("height", size),
		A("viewBox", "0 0 24 24"),
		A("fill", "none"),
		A("stroke", "currentColor"),
		A("stroke-width", "2"),
	).Append(
		Element("circle", A("cx", "12"), A("cy", "12"), A("r", "10")),
		Element("line", A("x1", "12"), A("y1", "16"), A("x2", "12"), A("y2", "12")),
		Element("line", A("x1", "12"), A("y1", "8"), A("x2", "12.01"), A("y2", "8")),
	)
}

// ErrorPanel is the inline replacement for a chart that failed to render.
func ErrorPanel(kind models.ChartKind, message string) *Node {
	heading := "Chart Loading Error"
	if name := kind.DisplayName(); name != "Chart" {
		heading = name + " " + heading
	}
	return Element("div", Class("chart-error"), A("role", "alert"), A("data-chart-kind", string(kind))).Append(
		Element("h4").AppendText(heading),
		Element("p").AppendText(message),
	)
}
