package extrinsics

import (
	"fmt"

	"github.com/c360/devicelink/errors"
)

// NodeID is a stable handle to a node in the graph. Stream nodes and profile
// nodes share the namespace; the same-extrinsics relation links a profile
// node into its stream node's equivalence class.
type NodeID int

type edge struct {
	from NodeID
	to   NodeID
	tf   Transform
}

// Graph is the directed extrinsics graph. Append-only during proxy
// construction and read-only afterward; topology changes mean building a new
// proxy, never mutating a live graph. The construction path is
// single-threaded by contract, so no locking.
type Graph struct {
	labels []string
	parent []int
	edges  []edge
}

// NewGraph creates an empty extrinsics graph
func NewGraph() *Graph {
	return &Graph{}
}

func (g *Graph) addNode(label string) NodeID {
	id := NodeID(len(g.labels))
	g.labels = append(g.labels, label)
	g.parent = append(g.parent, int(id))
	return id
}

// AddStream adds a stream node. Every registered stream gets a node even if
// it ends up with zero edges.
func (g *Graph) AddStream(name string) NodeID {
	return g.addNode(name)
}

// RegisterProfile adds a profile node. Linking it to its owning stream is a
// separate pass via RegisterSameExtrinsics.
func (g *Graph) RegisterProfile(label string) NodeID {
	return g.addNode(label)
}

// Label returns the label a node was registered with
func (g *Graph) Label(n NodeID) string {
	if int(n) < 0 || int(n) >= len(g.labels) {
		return ""
	}
	return g.labels[n]
}

// NodeCount returns the number of registered nodes
func (g *Graph) NodeCount() int {
	return len(g.labels)
}

// EdgeCount returns the number of directed edges
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// RegisterExtrinsics records a directed transform edge between two nodes.
// Registering the same ordered pair again replaces the edge, keeping the
// pass idempotent. No reverse edge is inferred: the remote device may
// legitimately expose an asymmetric or incomplete transform set.
func (g *Graph) RegisterExtrinsics(from, to NodeID, tf Transform) {
	for i, e := range g.edges {
		if e.from == from && e.to == to {
			g.edges[i].tf = tf
			return
		}
	}
	g.edges = append(g.edges, edge{from: from, to: to, tf: tf})
}

// RegisterSameExtrinsics places two nodes in the same equivalence class:
// they share a coordinate frame and need no transform between them. Used to
// link every profile to its owning stream node. Construction path only; the
// class chains are flattened here so query-time resolution never writes.
func (g *Graph) RegisterSameExtrinsics(a, b NodeID) {
	ra, rb := g.compress(int(a)), g.compress(int(b))
	if ra != rb {
		g.parent[rb] = ra
		g.parent[int(b)] = ra
	}
}

// compress resolves a node to its equivalence-class representative, pointing
// every node on the walk directly at it. Construction path only.
func (g *Graph) compress(n int) int {
	root := n
	for g.parent[root] != root {
		root = g.parent[root]
	}
	for g.parent[n] != root {
		n, g.parent[n] = g.parent[n], root
	}
	return root
}

// find resolves a node to its equivalence-class representative. A pure read:
// a constructed graph serves concurrent queries without locking.
func (g *Graph) find(n int) int {
	for g.parent[n] != n {
		n = g.parent[n]
	}
	return n
}

// SameExtrinsics reports whether two nodes share a coordinate frame
func (g *Graph) SameExtrinsics(a, b NodeID) bool {
	return g.find(int(a)) == g.find(int(b))
}

// TransformBetween resolves the transform from one node's frame to
// another's. Both nodes are first mapped to their equivalence-class
// representatives; nodes in the same class get the identity transform.
// Otherwise a breadth-first search composes directed edges. A missing path
// is the distinct non-fatal "no known transform" condition.
func (g *Graph) TransformBetween(from, to NodeID) (Transform, error) {
	src, dst := g.find(int(from)), g.find(int(to))
	if src == dst {
		return Identity(), nil
	}

	type pathEntry struct {
		node int
		tf   Transform
	}

	visited := map[int]bool{src: true}
	queue := []pathEntry{{node: src, tf: Identity()}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, e := range g.edges {
			if g.find(int(e.from)) != cur.node {
				continue
			}
			next := g.find(int(e.to))
			if visited[next] {
				continue
			}
			composed := Compose(cur.tf, e.tf)
			if next == dst {
				return composed, nil
			}
			visited[next] = true
			queue = append(queue, pathEntry{node: next, tf: composed})
		}
	}

	return Transform{}, fmt.Errorf("%s -> %s: %w",
		g.labels[g.find(int(from))], g.labels[g.find(int(to))], errors.ErrNoTransform)
}
