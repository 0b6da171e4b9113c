// Package textformat reads the line-oriented metagraph format.
//
// The file is a sequence of significant lines; everything after a '#' is a
// comment, surrounding whitespace is dropped and blank lines are skipped:
//
//	NV NE           header
//	from to         NE edge lines, edge ids 1..NE in order
//	rule            NV vertex rules
//	rule            NE edge rules
//
// Lines past the last edge rule are ignored. Input that is not valid UTF-8 is
// decoded as Windows-1251, and as ISO 8859-1 if that fails too.
package textformat
