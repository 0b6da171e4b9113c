// Package hclformat reads metagraphs written in HCL.
//
//	vertex "1" { rule = 5 }
//	vertex "2" { rule = "min" }
//
//	edge "1" {
//	  from = 1
//	  to   = 2
//	  rule = "v 1"
//	}
//
// Block labels are the 1-based ids. Blocks may appear in any order, but the
// labels of each kind must form a contiguous range starting at 1. A rule may
// be written as a number or as a string.
package hclformat
