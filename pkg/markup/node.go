package markup

// NodeKind distinguishes text runs from tagged elements
type NodeKind int

const (
	KindText NodeKind = iota
	KindElement
)

// Node is one node of a formatted markup tree. Trees are fully built by a
// formatter before streaming begins; the streaming engine only reads them
// and appends clones into a live render target.
type Node struct {
	Kind     NodeKind
	Tag      string            // element tag, empty for text nodes
	Attrs    map[string]string // element attributes, nil for text nodes
	Text     string            // text content, empty for elements
	Children []*Node

	parent *Node
}

// NewText creates a text node
func NewText(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}

// NewElement creates an element node with the given tag
func NewElement(tag string, children ...*Node) *Node {
	n := &Node{Kind: KindElement, Tag: tag}
	for _, child := range children {
		n.AppendChild(child)
	}
	return n
}

// SetAttr sets an attribute, allocating the map on first use
func (n *Node) SetAttr(key, value string) *Node {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[key] = value
	return n
}

// Attr returns the attribute value, or "" when unset
func (n *Node) Attr(key string) string {
	if n.Attrs == nil {
		return ""
	}
	return n.Attrs[key]
}

// Parent returns the node's current parent, nil for detached nodes and roots
func (n *Node) Parent() *Node {
	return n.parent
}

// AppendChild appends a child to the node, detaching it from any previous
// parent first
func (n *Node) AppendChild(child *Node) {
	if child == nil {
		return
	}
	child.Detach()
	child.parent = n
	n.Children = append(n.Children, child)
}

// RemoveChild removes a direct child. Returns false if the node is not a
// child of n.
func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Detach removes the node from its parent, if any
func (n *Node) Detach() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// AppendText appends a text run to the node's children, merging into a
// trailing text node so consecutive runs reconstruct the original text
// content rather than a chain of fragments.
func (n *Node) AppendText(text string) {
	if text == "" {
		return
	}
	if last := n.LastChild(); last != nil && last.Kind == KindText {
		last.Text += text
		return
	}
	n.AppendChild(NewText(text))
}

// LastChild returns the last child, or nil
func (n *Node) LastChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// HasAncestor reports whether root is the node itself or one of its ancestors
func (n *Node) HasAncestor(root *Node) bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur == root {
			return true
		}
	}
	return false
}

// Shell returns a shallow clone: tag identity and attributes, no children.
// This is the payload of element open/close events; children arrive as their
// own events.
func (n *Node) Shell() *Node {
	clone := &Node{Kind: n.Kind, Tag: n.Tag, Text: n.Text}
	if n.Attrs != nil {
		clone.Attrs = make(map[string]string, len(n.Attrs))
		for k, v := range n.Attrs {
			clone.Attrs[k] = v
		}
	}
	return clone
}

// Snapshot returns a deep clone of the whole subtree. Atomic blocks are
// revealed as one pre-built snapshot, rendered verbatim and never descended
// into, so the clone must be complete and independent of the source tree.
func (n *Node) Snapshot() *Node {
	clone := n.Shell()
	for _, child := range n.Children {
		clone.AppendChild(child.Snapshot())
	}
	return clone
}

// Walk visits the node and every descendant in document order. Returning
// false from fn stops the walk.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, child := range n.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// TextContent concatenates all text runs in the subtree
func (n *Node) TextContent() string {
	var out string
	n.Walk(func(node *Node) bool {
		if node.Kind == KindText {
			out += node.Text
		}
		return true
	})
	return out
}
