// Package ast defines the internal representation of an arithmetic expression.
//
// A tree is stored as an Arena: one contiguous slice of Node values in which
// children are referenced by index rather than by pointer. Arenas are laid
// out in pre-order, so:
//   - index 0 is the root
//   - every child index is greater than its parent's index
//   - a node's left subtree occupies the range immediately after the node,
//     followed directly by its right subtree
//
// This package imports only the standard library. Building an Arena from a
// host tree and folding it to a number live in pkg/calc.
package ast
