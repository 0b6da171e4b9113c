// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the immutable, already-parsed representation of a
// metagraph: its vertex and edge counts, the ordered edge list and one rule
// string per vertex and per edge.
//
// # Core Concepts
//
//   - Metagraph: the root record produced by a reader (text, HCL or YAML) and
//     consumed by the dependency graph builder and the evaluator.
//
//   - Edge: a directed (From, To) pair of 1-based vertex ids. Edge ids are the
//     1-based positions in the edge list.
//
// Why a separate model package?
//
// Readers differ in syntax but must all hand the engine the same record. By
// validating the record once, in New, every downstream stage can rely on the
// counts and array lengths agreeing and on every endpoint naming a real vertex.
// The engine never re-checks any of it.
package model
