package charts

import "strings"

type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Node is one element or text run of a rendered chart. A node with an empty
// Tag is a text node.
type Node struct {
	Tag      string  `json:"tag,omitempty"`
	Attrs    []Attr  `json:"attrs,omitempty"`
	Text     string  `json:"text,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

func Element(tag string, attrs ...Attr) *Node {
	return &Node{Tag: tag, Attrs: attrs}
}

func Text(text string) *Node {
	return &Node{Text: text}
}

func A(name string, value string) Attr {
	return Attr{Name: name, Value: value}
}

func Class(value string) Attr {
	return Attr{Name: "class", Value: value}
}

func (node *Node) IsText() bool {
	return node.Tag == ""
}

// Append adds children in order, skipping nil ones so optional sections can be
// passed inline.
func (node *Node) Append(children ...*Node) *Node {
	for _, child := range children {
		if child != nil {
			node.Children = append(node.Children, child)
		}
	}
	return node
}

func (node *Node) AppendText(text string) *Node {
	return node.Append(Text(text))
}

func (node *Node) Attr(name string) (string, bool) {
	for _, attr := range node.Attrs {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

func (node *Node) SetAttr(name string, value string) *Node {
	for index := range node.Attrs {
		if node.Attrs[index].Name == name {
			node.Attrs[index].Value = value
			return node
		}
	}
	node.Attrs = append(node.Attrs, Attr{Name: name, Value: value})
	return node
}

func (node *Node) HasClass(class string) bool {
	value, ok := node.Attr("class")
	if !ok {
		return false
	}
	for _, candidate := range strings.Fields(value) {
		if candidate == class {
			return true
		}
	}
	return false
}

// Walk visits node and its descendants depth first. Returning false from visit
// skips the children of that node.
func (node *Node) Walk(visit func(*Node) bool) {
	if node == nil || !visit(node) {
		return
	}
	for _, child := range node.Children {
		child.Walk(visit)
	}
}

func (node *Node) FindAll(match func(*Node) bool) []*Node {
	found := []*Node{}
	node.Walk(func(candidate *Node) bool {
		if match(candidate) {
			found = append(found, candidate)
		}
		return true
	})
	return found
}

func (node *Node) FindByClass(class string) []*Node {
	return node.FindAll(func(candidate *Node) bool {
		return candidate.HasClass(class)
	})
}

func (node *Node) First(class string) *Node {
	matches := node.FindByClass(class)
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

func (node *Node) TextContent() string {
	var builder strings.Builder
	node.Walk(func(candidate *Node) bool {
		if candidate.IsText() {
			builder.WriteString(candidate.Text)
		}
		return true
	})
	return builder.String()
}
