// internal/nodeid/doc.go

/*
Package nodeid provides the typed identifier used to address attribute slots
in a metagraph. Every vertex and every edge owns exactly one slot, and both
share the same 1-based integer id space, so a key carries a Kind next to the
id to tell them apart.

The canonical text form is `v<id>` for vertices and `e<id>` for edges,
e.g. `v1`, `e12`. Parse is the inverse of Key.String.
*/
package nodeid
