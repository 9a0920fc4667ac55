// Package calc imports host expression trees into an ast.Arena and evaluates
// them.
//
// A host tree is anything that implements Source: a YAML or JSON document, a
// Starlark value, a Lua table or a hand-written Go type. Import performs one
// pre-order descent and writes each node once into an arena sized from the
// tree's node count; Evaluate folds the arena to a float64. Eval chains the
// two and is the usual entry point.
package calc
