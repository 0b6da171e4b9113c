// Package dag builds the dependency graph of a metagraph: for every vertex and
// edge it records which other vertices and edges must be resolved before its
// own attribute can be computed.
//
// The graph is derived purely from the rules. Build parses every rule exactly
// once, checks that references stay within the vertex and edge counts and
// links dependencies in a deterministic order, so that the evaluator visits
// them identically on every run. Unlike a scheduling DAG, the result is not
// required to be acyclic; FindCycle reports a cycle for diagnostics but its
// presence is not an error here.
package dag
