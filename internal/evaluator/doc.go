// Package evaluator computes one numeric attribute for every vertex and edge
// of a metagraph.
//
// An Evaluator performs a memoized depth-first resolution over the dependency
// graph built by package dag. The graph may contain cycles: when resolution
// re-enters a node whose own resolution is still in progress, the node
// receives a fixed default (0 for a vertex, 1 for an edge), a warning is
// logged and evaluation carries on. Every node is therefore resolved exactly
// once and the pass always terminates.
//
// All state of a pass (the value map, the in-progress set and the list of
// cycle breaks) is owned by one Evaluator. Evaluators are not safe for
// concurrent use, but independent Evaluators share nothing and may run in
// parallel, even over the same *dag.Graph.
package evaluator
