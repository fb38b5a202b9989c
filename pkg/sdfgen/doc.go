// Package sdfgen builds signed distance fields from graphs of shape
// nodes and evaluates them over blocks of voxel sample points.
//
// A Graph is authored by adding nodes (primitives, transforms,
// modifiers, and combinators) and designating a root. Build compiles
// the graph into a Generator: a flat, stack-machine style program in
// which every child appears before its parent and the root comes
// last. Shared subgraphs are duplicated into each consumer during
// compilation, so the program needs no indirection at evaluation
// time.
//
// A Generator is immutable and safe for concurrent use. Each
// goroutine evaluates through its own BlockBuffers, which hold the
// value stack for one cubic block of sample points.
package sdfgen
