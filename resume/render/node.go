package render

import (
	"bytes"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Node is the preview's renderable tree. It is a plain value so tests can
// inspect it without a browser.
type Node struct {
	Tag      string  `json:"tag"`
	Class    string  `json:"class,omitempty"`
	Section  string  `json:"section,omitempty"`
	Page     int     `json:"page,omitempty"`
	Style    string  `json:"style,omitempty"`
	Text     string  `json:"text,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

func el(tag string, class Element, style string, children ...*Node) *Node {
	return &Node{Tag: tag, Class: ClassName(class), Style: style, Children: children}
}

func textEl(tag string, class Element, style, text string) *Node {
	return &Node{Tag: tag, Class: ClassName(class), Style: style, Text: text}
}

func (n *Node) append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Walk visits n and its descendants depth first, stopping when fn
// returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the first node carrying the element's class.
func (n *Node) Find(class Element) *Node {
	want := ClassName(class)
	var found *Node
	n.Walk(func(c *Node) bool {
		if c.Class == want {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindAll returns every node carrying the element's class, in order.
func (n *Node) FindAll(class Element) []*Node {
	want := ClassName(class)
	var out []*Node
	n.Walk(func(c *Node) bool {
		if c.Class == want {
			out = append(out, c)
		}
		return true
	})
	return out
}

// SectionOrder lists the data-section values of section nodes in
// document order.
func (n *Node) SectionOrder() []string {
	var out []string
	for _, s := range n.FindAll(ElementSection) {
		out = append(out, s.Section)
	}
	return out
}

// TextContent concatenates all text below n, separated by newlines.
func (n *Node) TextContent() string {
	var parts []string
	n.Walk(func(c *Node) bool {
		if c.Text != "" {
			parts = append(parts, c.Text)
		}
		return true
	})
	return strings.Join(parts, "\n")
}

// HTML renders the tree as an HTML fragment.
func (n *Node) HTML() string {
	var buf bytes.Buffer
	_ = html.Render(&buf, n.toHTML())
	return buf.String()
}

func (n *Node) toHTML() *html.Node {
	out := &html.Node{Type: html.ElementNode, Data: n.Tag}
	if n.Class != "" {
		out.Attr = append(out.Attr, html.Attribute{Key: "class", Val: n.Class})
	}
	if n.Section != "" {
		out.Attr = append(out.Attr, html.Attribute{Key: "data-section", Val: n.Section})
	}
	if n.Page > 0 {
		out.Attr = append(out.Attr, html.Attribute{Key: "data-page", Val: strconv.Itoa(n.Page)})
	}
	if n.Style != "" {
		out.Attr = append(out.Attr, html.Attribute{Key: "style", Val: n.Style})
	}
	if n.Text != "" {
		out.AppendChild(&html.Node{Type: html.TextNode, Data: n.Text})
	}
	for _, c := range n.Children {
		out.AppendChild(c.toHTML())
	}
	return out
}

// document wraps body content in a full HTML document.
func document(title, css string, bodyNodes ...*html.Node) string {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	root := &html.Node{Type: html.ElementNode, Data: "html"}
	head := &html.Node{Type: html.ElementNode, Data: "head"}
	head.AppendChild(&html.Node{Type: html.ElementNode, Data: "meta", Attr: []html.Attribute{{Key: "charset", Val: "utf-8"}}})
	t := &html.Node{Type: html.ElementNode, Data: "title"}
	t.AppendChild(&html.Node{Type: html.TextNode, Data: title})
	head.AppendChild(t)
	if css != "" {
		head.AppendChild(styleNode(css))
	}
	bodyEl := &html.Node{Type: html.ElementNode, Data: "body"}
	for _, n := range bodyNodes {
		bodyEl.AppendChild(n)
	}
	root.AppendChild(head)
	root.AppendChild(bodyEl)
	doc.AppendChild(root)

	var buf bytes.Buffer
	_ = html.Render(&buf, doc)
	return buf.String()
}

func styleNode(css string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: "style"}
	n.AppendChild(&html.Node{Type: html.RawNode, Data: css})
	return n
}
