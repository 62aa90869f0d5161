package host

import (
	"strings"
	"sync"
	"testing"

	"golang.org/x/net/html"
)

const samplePage = `<!DOCTYPE html>
<html><head><title>Dashboard</title></head>
<body style="margin: 0">
  <div id="volume" data-payments-bar-chart data-chart-title="Volume">loading</div>
  <div data-payments-pie-chart></div>
</body></html>`

func TestDocumentLookup(t *testing.T) {
	t.Parallel()

	document, err := ParseString(samplePage)
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}

	target := document.GetElementByID("volume")
	if target == nil {
		t.Fatal("expected element by id")
	}
	if title, _ := Attr(target, "data-chart-title"); title != "Volume" {
		t.Fatalf("unexpected title attribute %q", title)
	}
	if document.GetElementByID("missing") != nil || document.GetElementByID("") != nil {
		t.Fatal("expected missing ids to resolve to nil")
	}
	if got := len(document.ElementsWithAttr("data-payments-pie-chart")); got != 1 {
		t.Fatalf("expected one pie container, got %d", got)
	}
}

func TestDocumentEnsureIDAvoidsCollisions(t *testing.T) {
	t.Parallel()

	document, err := ParseString(`<body><div id="chart-1"></div><div data-x></div></body>`)
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	node := document.ElementsWithAttr("data-x")[0]
	id := document.EnsureID(node, "chart")
	if id != "chart-2" {
		t.Fatalf("expected generated id chart-2, got %q", id)
	}
	if again := document.EnsureID(node, "chart"); again != id {
		t.Fatalf("expected existing id to be kept, got %q", again)
	}
}

func TestDocumentEnsureIDConcurrentCallers(t *testing.T) {
	t.Parallel()

	document := NewDocument()
	nodes := make([]*html.Node, 16)
	for index := range nodes {
		nodes[index] = &html.Node{Type: html.ElementNode, Data: "div"}
		document.Body().AppendChild(nodes[index])
	}

	ids := make([]string, len(nodes))
	var group sync.WaitGroup
	for index := range nodes {
		group.Add(1)
		go func(index int) {
			defer group.Done()
			ids[index] = document.EnsureID(nodes[index], "chart")
		}(index)
	}
	group.Wait()

	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("expected unique generated ids, got %v", ids)
		}
		seen[id] = true
	}
}

func TestDocumentMountReplacesChildren(t *testing.T) {
	t.Parallel()

	document, err := ParseString(samplePage)
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	target := document.GetElementByID("volume")
	content := &html.Node{Type: html.ElementNode, Data: "section"}
	content.AppendChild(&html.Node{Type: html.TextNode, Data: "chart"})
	document.Mount(target, content)

	output, err := document.String()
	if err != nil {
		t.Fatalf("render document: %v", err)
	}
	if strings.Contains(output, "loading") {
		t.Fatal("expected previous children to be removed")
	}
	if !strings.Contains(output, "<section>chart</section>") {
		t.Fatalf("expected mounted content, got %s", output)
	}
}

func TestDocumentScrollLockKeepsOtherStyles(t *testing.T) {
	t.Parallel()

	document, err := ParseString(samplePage)
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}

	document.SetScrollLocked(true)
	if !document.ScrollLocked() {
		t.Fatal("expected scroll lock")
	}
	if style, _ := Attr(document.Body(), "style"); style != "margin: 0; overflow: hidden" {
		t.Fatalf("unexpected locked style %q", style)
	}

	document.SetScrollLocked(false)
	if document.ScrollLocked() {
		t.Fatal("expected scroll restored")
	}
	if style, _ := Attr(document.Body(), "style"); style != "margin: 0" {
		t.Fatalf("unexpected restored style %q", style)
	}

	empty := NewDocument()
	empty.SetScrollLocked(true)
	empty.SetScrollLocked(false)
	if _, ok := Attr(empty.Body(), "style"); ok {
		t.Fatal("expected style attribute removed when empty")
	}
}
