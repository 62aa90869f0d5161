package charts

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTML converts the tree into x/net/html nodes so it can be spliced into a
// parsed host document or serialised.
func (node *Node) HTML() *html.Node {
	if node.IsText() {
		return &html.Node{Type: html.TextNode, Data: node.Text}
	}

	converted := &html.Node{
		Type:     html.ElementNode,
		Data:     node.Tag,
		DataAtom: atom.Lookup([]byte(node.Tag)),
	}
	for _, attr := range node.Attrs {
		converted.Attr = append(converted.Attr, html.Attribute{Key: attr.Name, Val: attr.Value})
	}
	for _, child := range node.Children {
		converted.AppendChild(child.HTML())
	}
	return converted
}

// FromHTML converts a parsed element into the chart tree. Namespaced
// attributes keep their prefix, and comments are dropped.
func FromHTML(source *html.Node) *Node {
	switch source.Type {
	case html.TextNode:
		return Text(source.Data)
	case html.ElementNode:
	default:
		return nil
	}

	node := Element(source.Data)
	for _, attr := range source.Attr {
		name := attr.Key
		if attr.Namespace != "" {
			name = attr.Namespace + ":" + attr.Key
		}
		node.Attrs = append(node.Attrs, Attr{Name: name, Value: attr.Val})
	}
	for child := source.FirstChild; child != nil; child = child.NextSibling {
		node.Append(FromHTML(child))
	}
	return node
}

func RenderHTML(w io.Writer, node *Node) error {
	if node == nil {
		return nil
	}
	if err := html.Render(w, node.HTML()); err != nil {
		return fmt.Errorf("render chart html: %w", err)
	}
	return nil
}

func HTMLString(node *Node) (string, error) {
	var buffer bytes.Buffer
	if err := RenderHTML(&buffer, node); err != nil {
		return "", err
	}
	return buffer.String(), nil
}
