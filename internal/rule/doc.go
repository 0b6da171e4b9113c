// Package rule turns the textual attribute rule attached to a vertex or an edge
// into a closed, exhaustively matchable variant.
//
// Five forms exist and no others are recognized:
//
//	<number>  constant, vertex or edge
//	min       vertex: minimum over its incoming edges
//	e <idx>   vertex: copy of edge idx
//	*         edge: product of its source vertex and the edges entering that vertex
//	v <idx>   edge: copy of vertex idx
package rule
