package analyze

import "github.com/rowgraph/rowgraph/pkg/graphview"

// unionFind is an arena-indexed disjoint-set forest keyed by vertex ID.
// Vertices are interned into dense slots on first sight; parent and rank
// live in slices rather than pointer-linked nodes. Each root carries the
// aggregate edge count and weight sum of its component, so merging two
// components folds the totals already counted on either side into the
// surviving root.
type unionFind struct {
	slot    map[graphview.VertexID]int
	ids     []graphview.VertexID
	parent  []int
	rank    []int
	edges   []int64   // valid at roots only
	weights []float64 // valid at roots only
}

func newUnionFind() *unionFind {
	return &unionFind{slot: make(map[graphview.VertexID]int)}
}

// intern returns the arena slot for v, creating a singleton set on first
// sight.
func (u *unionFind) intern(v graphview.VertexID) int {
	if s, ok := u.slot[v]; ok {
		return s
	}
	s := len(u.parent)
	u.slot[v] = s
	u.ids = append(u.ids, v)
	u.parent = append(u.parent, s)
	u.rank = append(u.rank, 0)
	u.edges = append(u.edges, 0)
	u.weights = append(u.weights, 0)
	return s
}

// find returns the root slot of s, compressing the path as it walks.
func (u *unionFind) find(s int) int {
	for u.parent[s] != s {
		u.parent[s] = u.parent[u.parent[s]]
		s = u.parent[s]
	}
	return s
}

// union merges the sets containing slots a and b and returns the
// surviving root. Union by rank; the loser's aggregates fold into the
// winner.
func (u *unionFind) union(a, b int) int {
	rootA := u.find(a)
	rootB := u.find(b)
	if rootA == rootB {
		return rootA
	}
	if u.rank[rootA] < u.rank[rootB] {
		rootA, rootB = rootB, rootA
	}
	u.parent[rootB] = rootA
	if u.rank[rootA] == u.rank[rootB] {
		u.rank[rootA]++
	}
	u.edges[rootA] += u.edges[rootB]
	u.weights[rootA] += u.weights[rootB]
	return rootA
}

// observe records one edge: its endpoints join one component and the
// component's aggregates grow by one edge and its weight.
func (u *unionFind) observe(source, target graphview.VertexID, weight float64) {
	root := u.union(u.intern(source), u.intern(target))
	u.edges[root]++
	u.weights[root] += weight
}

// size returns the number of interned vertices.
func (u *unionFind) size() int { return len(u.parent) }
