package host

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const emptyDocument = "<!DOCTYPE html><html><head></head><body></body></html>"

// Document is a parsed host page that charts are mounted into.
type Document struct {
	root *html.Node

	// mu guards generated and the id assignment EnsureID performs.
	mu        sync.Mutex
	generated int
}

func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse host document: %w", err)
	}
	return &Document{root: root}, nil
}

func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

func NewDocument() *Document {
	document, _ := ParseString(emptyDocument)
	return document
}

func (document *Document) Root() *html.Node {
	return document.root
}

func (document *Document) Body() *html.Node {
	var body *html.Node
	walk(document.root, func(node *html.Node) bool {
		if node.Type == html.ElementNode && node.DataAtom == atom.Body {
			body = node
			return false
		}
		return true
	})
	return body
}

func (document *Document) GetElementByID(id string) *html.Node {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	var found *html.Node
	walk(document.root, func(node *html.Node) bool {
		if found != nil {
			return false
		}
		if node.Type == html.ElementNode {
			if value, ok := Attr(node, "id"); ok && value == id {
				found = node
				return false
			}
		}
		return true
	})
	return found
}

// ElementsWithAttr returns every element carrying the attribute, in document order.
func (document *Document) ElementsWithAttr(name string) []*html.Node {
	matches := []*html.Node{}
	walk(document.root, func(node *html.Node) bool {
		if node.Type == html.ElementNode {
			if _, ok := Attr(node, name); ok {
				matches = append(matches, node)
			}
		}
		return true
	})
	return matches
}

// EnsureID returns the element's id, assigning prefix-N first when it has none.
func (document *Document) EnsureID(node *html.Node, prefix string) string {
	document.mu.Lock()
	defer document.mu.Unlock()

	if value, ok := Attr(node, "id"); ok && strings.TrimSpace(value) != "" {
		return value
	}
	for {
		document.generated++
		candidate := prefix + "-" + strconv.Itoa(document.generated)
		if document.GetElementByID(candidate) == nil {
			SetAttr(node, "id", candidate)
			return candidate
		}
	}
}

// Mount replaces every child of target with content.
func (document *Document) Mount(target *html.Node, content *html.Node) {
	for child := target.FirstChild; child != nil; {
		next := child.NextSibling
		target.RemoveChild(child)
		child = next
	}
	if content != nil {
		target.AppendChild(content)
	}
}

func (document *Document) Render(w io.Writer) error {
	if err := html.Render(w, document.root); err != nil {
		return fmt.Errorf("render host document: %w", err)
	}
	return nil
}

func (document *Document) String() (string, error) {
	var buffer bytes.Buffer
	if err := document.Render(&buffer); err != nil {
		return "", err
	}
	return buffer.String(), nil
}

func Attr(node *html.Node, name string) (string, bool) {
	for _, attr := range node.Attr {
		if attr.Namespace == "" && attr.Key == name {
			return attr.Val, true
		}
	}
	return "", false
}

func SetAttr(node *html.Node, name string, value string) {
	for index := range node.Attr {
		if node.Attr[index].Namespace == "" && node.Attr[index].Key == name {
			node.Attr[index].Val = value
			return
		}
	}
	node.Attr = append(node.Attr, html.Attribute{Key: name, Val: value})
}

func RemoveAttr(node *html.Node, name string) {
	kept := node.Attr[:0]
	for _, attr := range node.Attr {
		if attr.Namespace == "" && attr.Key == name {
			continue
		}
		kept = append(kept, attr)
	}
	node.Attr = kept
}

func walk(node *html.Node, visit func(*html.Node) bool) {
	if node == nil || !visit(node) {
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		walk(child, visit)
	}
}
