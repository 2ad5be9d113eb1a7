package html

import (
	"sort"
	"strings"
)

type Node struct {
	Type       NodeType
	TagName    string
	Attributes map[string]string
	Text       string
	Children   []*Node
	Parent     *Node // back reference only; the parent's Children slice owns this node
}

type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	}
	return "unknown"
}

// NewElement returns a detached element with the given tag and attributes.
// A nil attribute map is replaced with an empty one.
func NewElement(tag string, attributes map[string]string, parent *Node) *Node {
	if attributes == nil {
		attributes = make(map[string]string)
	}
	return &Node{
		Type:       ElementNode,
		TagName:    tag,
		Attributes: attributes,
		Children:   make([]*Node, 0),
		Parent:     parent,
	}
}

// NewText returns a text node pointing back at parent. It is not appended
// to parent's children.
func NewText(text string, parent *Node) *Node {
	return &Node{Type: TextNode, Text: text, Parent: parent}
}

func (n *Node) GetAttribute(name string) (string, bool) {
	if n.Attributes == nil {
		return "", false
	}
	val, ok := n.Attributes[strings.ToLower(name)]
	return val, ok
}

// AddChild adds a child node and sets up the parent relationship
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Walk visits n and its descendants in document order. Returning false from
// fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// TextContent returns the concatenated text of all descendant text nodes.
func (n *Node) TextContent() string {
	var sb strings.Builder
	n.Walk(func(c *Node) bool {
		if c.Type == TextNode {
			sb.WriteString(c.Text)
		}
		return true
	})
	return sb.String()
}

// Serialize returns the innerHTML of this node: the serialized HTML of
// all child nodes, but not the node's own tags.
func (n *Node) Serialize() string {
	var sb strings.Builder
	for _, child := range n.Children {
		serializeNode(&sb, child)
	}
	return sb.String()
}

// SerializeOuter returns the outerHTML of this node: the node's own tags
// plus all descendants.
func (n *Node) SerializeOuter() string {
	var sb strings.Builder
	serializeNode(&sb, n)
	return sb.String()
}

// Dump renders the tree one node per line, indented two spaces per level.
// Element lines show the tag, text lines show the quoted text.
func (n *Node) Dump() string {
	var sb strings.Builder
	dumpNode(&sb, n, 0)
	return sb.String()
}

func dumpNode(sb *strings.Builder, n *Node, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	if n.Type == TextNode {
		sb.WriteString(quote(n.Text))
	} else {
		sb.WriteByte('<')
		sb.WriteString(n.TagName)
		writeAttributes(sb, n.Attributes)
		sb.WriteByte('>')
	}
	sb.WriteByte('\n')
	for _, child := range n.Children {
		dumpNode(sb, child, depth+1)
	}
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, "\n", `\n`) + `"`
}

func serializeNode(sb *strings.Builder, n *Node) {
	if n.Type == TextNode {
		sb.WriteString(escapeHTML(n.Text))
		return
	}

	sb.WriteByte('<')
	sb.WriteString(n.TagName)
	writeAttributes(sb, n.Attributes)

	if isVoidElement(n.TagName) {
		sb.WriteString(">")
		return
	}

	sb.WriteByte('>')
	for _, child := range n.Children {
		serializeNode(sb, child)
	}
	sb.WriteString("</")
	sb.WriteString(n.TagName)
	sb.WriteByte('>')
}

// writeAttributes emits attributes sorted by key for deterministic output.
func writeAttributes(sb *strings.Builder, attrs map[string]string) {
	if len(attrs) == 0 {
		return
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteByte(' ')
		sb.WriteString(k)
		if v := attrs[k]; v != "" {
			sb.WriteString(`="`)
			sb.WriteString(escapeAttr(v))
			sb.WriteByte('"')
		}
	}
}

func escapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func escapeAttr(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func isVoidElement(tag string) bool {
	return selfClosingTags[tag]
}
