package fbx

import (
	"iter"
	"strings"
)

// PathSeparator separates node names in the paths accepted by
// [Document.FindNode] and yielded by [Document.Walk].
const PathSeparator = "/"

// Document is the result of parsing one ASCII FBX source: a named forest of
// top-level nodes.
type Document struct {
	// Name is the source file's base name without its extension.
	Name string `json:"name"            yaml:"name"`
	// Nodes are the top-level nodes in source order.
	Nodes []*Node `json:"nodes,omitempty" yaml:"nodes,omitempty"`
	// Anomalies lists the structural defects recovered from while parsing.
	Anomalies []Anomaly `json:"-" yaml:"-"`
}

// Node is a named element of the scene tree. Properties are literal text
// fragments in source order; no type conversion is applied.
type Node struct {
	Name       string   `json:"name"                 yaml:"name"`
	Properties []string `json:"properties,omitempty" yaml:"properties,omitempty,flow"`
	Nodes      []*Node  `json:"nodes,omitempty"      yaml:"nodes,omitempty"`
}

// FindNode returns the node at path, a [PathSeparator]-separated sequence of
// names such as "Objects/Model/Properties70". The first top-level node whose
// name equals the first segment is selected, then the first matching child
// for each following segment. Later siblings with a duplicate name are never
// considered. The second result is false if any segment has no match.
func (d *Document) FindNode(path string) (*Node, bool) {
	if d == nil {
		return nil, false
	}

	segments := strings.Split(path, PathSeparator)

	node := first(d.Nodes, segments[0])
	for _, name := range segments[1:] {
		if node == nil {
			break
		}

		node = first(node.Nodes, name)
	}

	return node, node != nil
}

// FindChildren returns every immediate child of n named name, in source
// order. The result is empty when nothing matches.
func (n *Node) FindChildren(name string) []*Node {
	if n == nil {
		return []*Node{}
	}

	found := make([]*Node, 0, len(n.Nodes))

	for _, child := range n.Nodes {
		if child.Name == name {
			found = append(found, child)
		}
	}

	return found
}

// Walk yields every node of d with its path in depth-first pre-order.
func (d *Document) Walk() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		if d == nil {
			return
		}

		walk(d.Nodes, "", 1, func(path string, _ int, n *Node) bool {
			return yield(path, n)
		})
	}
}

// Walk yields n and all of its descendants with their paths in depth-first
// pre-order. Paths are relative to prefix, which names the parent of n.
func (n *Node) Walk(prefix string) iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		if n == nil {
			return
		}

		walk([]*Node{n}, prefix, 1, func(path string, _ int, n *Node) bool {
			return yield(path, n)
		})
	}
}

// Len returns the total number of nodes in d.
func (d *Document) Len() int {
	count := 0

	for range d.Walk() {
		count++
	}

	return count
}

// Join returns the path of the child named name under parent.
func Join(parent, name string) string {
	if parent == "" {
		return name
	}

	return parent + PathSeparator + name
}

func first(nodes []*Node, name string) *Node {
	for _, n := range nodes {
		if n.Name == name {
			return n
		}
	}

	return nil
}

type frame struct {
	path  string
	depth int
	nodes []*Node
}

// walk visits nodes and their descendants in depth-first pre-order with an
// explicit stack, so deeply nested documents do not grow the goroutine
// stack. The nodes themselves are at the given depth.
func walk(
	nodes []*Node,
	prefix string,
	depth int,
	visit func(path string, depth int, n *Node) bool,
) {
	stack := []frame{{path: prefix, depth: depth, nodes: nodes}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if len(top.nodes) == 0 {
			stack = stack[:len(stack)-1]

			continue
		}

		n := top.nodes[0]
		top.nodes = top.nodes[1:]

		path, depth := Join(top.path, n.Name), top.depth
		if !visit(path, depth, n) {
			return
		}

		if len(n.Nodes) > 0 {
			stack = append(stack, frame{path: path, depth: depth + 1, nodes: n.Nodes})
		}
	}
}
