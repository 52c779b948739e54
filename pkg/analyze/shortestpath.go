package analyze

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rowgraph/rowgraph/pkg/graphview"
	"github.com/rowgraph/rowgraph/pkg/observability"
)

// ErrNoPath indicates the target is unreachable from the source. It is
// distinct from a successful zero-weight path, which returns a Path with
// Weight 0 and a non-nil (possibly empty) edge sequence.
var ErrNoPath = errors.New("analyze: no path between vertices")

// Path is an ordered edge sequence from source to target with its total
// weight. For a path from a vertex to itself, Edges is empty and Weight
// is zero.
type Path struct {
	Edges  []graphview.Edge
	Weight float64
}

// ShortestPath computes a minimum total-weight path from source to
// target using Dijkstra's algorithm over the view's indexed adjacency.
//
// The mode selects which adjacency the frontier expands: ModeDirected
// follows outgoing edges, ModeReversed walks incoming edges backwards,
// and ModeUndirected treats every incident edge as traversable both
// ways. Weights are read as stored and assumed non-negative; negative
// weights are not validated against and yield incorrect results.
//
// Returns an empty Path when source equals target and ErrNoPath when the
// target is unreachable. The view is never mutated. The context is
// checked each time a vertex is settled.
func ShortestPath(ctx context.Context, view *graphview.View, source, target graphview.VertexID, mode Mode) (Path, error) {
	if !mode.Valid() {
		return Path{}, ErrInvalidMode
	}

	observability.Analysis().OnAnalysisStart("shortest-path")
	start := time.Now()
	path, err := dijkstra(ctx, view, source, target, mode)
	observability.Analysis().OnAnalysisComplete("shortest-path", time.Since(start), err)
	return path, err
}

// step is one relaxation candidate: the vertex reached and the edge that
// reached it.
type step struct {
	next graphview.VertexID
	edge graphview.Edge
}

func dijkstra(ctx context.Context, view *graphview.View, source, target graphview.VertexID, mode Mode) (Path, error) {
	if source == target {
		return Path{Edges: []graphview.Edge{}}, nil
	}

	// neighbors expands a settled vertex into relaxation candidates
	// according to the direction mode.
	neighbors := func(u graphview.VertexID) ([]step, error) {
		switch mode {
		case ModeDirected:
			edges, err := view.OutgoingEdgesOf(u)
			if err != nil {
				return nil, err
			}
			steps := make([]step, len(edges))
			for i, e := range edges {
				steps[i] = step{next: e.Target, edge: e}
			}
			return steps, nil
		case ModeReversed:
			edges, err := view.IncomingEdgesOf(u)
			if err != nil {
				return nil, err
			}
			steps := make([]step, len(edges))
			for i, e := range edges {
				steps[i] = step{next: e.Source, edge: e}
			}
			return steps, nil
		default: // ModeUndirected
			edges, err := view.EdgesOf(u)
			if err != nil {
				return nil, err
			}
			steps := make([]step, 0, len(edges))
			for _, e := range edges {
				other := e.Target
				if e.Source != u {
					other = e.Source
				}
				steps = append(steps, step{next: other, edge: e})
			}
			return steps, nil
		}
	}

	dist := map[graphview.VertexID]float64{source: 0}
	prev := make(map[graphview.VertexID]step)
	settled := make(map[graphview.VertexID]bool)

	pq := &frontier{{vertex: source, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return Path{}, err
		}

		item := heap.Pop(pq).(frontierItem)
		u := item.vertex
		if settled[u] {
			// Stale entry from the lazy decrease-key strategy.
			continue
		}
		settled[u] = true

		if u == target {
			return reconstruct(source, target, prev), nil
		}

		steps, err := neighbors(u)
		if err != nil {
			return Path{}, err
		}
		for _, s := range steps {
			if settled[s.next] {
				continue
			}
			candidate := dist[u] + s.edge.Weight
			if best, seen := dist[s.next]; seen && candidate >= best {
				continue
			}
			dist[s.next] = candidate
			prev[s.next] = s
			heap.Push(pq, frontierItem{vertex: s.next, dist: candidate})
		}
	}

	return Path{}, fmt.Errorf("%w: %d -> %d", ErrNoPath, source, target)
}

// reconstruct walks the predecessor chain from target back to source and
// reverses it into path order.
func reconstruct(source, target graphview.VertexID, prev map[graphview.VertexID]step) Path {
	var edges []graphview.Edge
	var weight float64
	for cur := target; cur != source; {
		s := prev[cur]
		edges = append(edges, s.edge)
		weight += s.edge.Weight
		// Step back across the edge, whichever endpoint we came from.
		if s.edge.Target == cur {
			cur = s.edge.Source
		} else {
			cur = s.edge.Target
		}
	}
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}
	return Path{Edges: edges, Weight: weight}
}

// frontierItem is a vertex with its tentative distance from the source.
type frontierItem struct {
	vertex graphview.VertexID
	dist   float64
}

// frontier is a min-heap of frontier items ordered by distance. Shorter
// rediscoveries push duplicates; stale entries are skipped when popped
// (lazy decrease-key).
type frontier []frontierItem

func (f frontier) Len() int            { return len(f) }
func (f frontier) Less(i, j int) bool  { return f[i].dist < f[j].dist }
func (f frontier) Swap(i, j int)       { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x interface{}) { *f = append(*f, x.(frontierItem)) }
func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}
