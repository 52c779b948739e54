// Package analyze runs graph algorithms against a graphview.View.
//
// Two algorithms are provided:
//
//   - ShortestPath: point-to-point minimum-weight path via Dijkstra's
//     algorithm over the view's indexed adjacency queries.
//   - SubgraphStatistics: connected-component discovery with one
//     aggregate row (edge count, total weight) per component, computed
//     in a single pass over the lazy edge set with a union-find forest.
//
// Algorithms never mutate the view. Long passes honor context
// cancellation at the view's iteration checkpoints and report progress
// through the observability hooks.
package analyze
