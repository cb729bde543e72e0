// Package ir provides the value representation for page model properties.
//
// # Overview
//
// Page models carry arbitrary author-defined properties next to a few
// reserved keys.  The reserved keys are typed in package model; every other
// property value is an ir.Node.
//
// A Node is a recursive tagged union: values are placed in fields depending
// on the node type.
//
// # Node Types
//
// The Type field indicates the node's type:
//
//   - NullType: null value
//   - BoolType: boolean (true/false)
//   - NumberType: numeric value (int64 or float64)
//   - StringType: string value
//   - ArrayType: ordered list of nodes
//   - ObjectType: key-value pairs (fields and values)
//
// # Objects
//
// For ObjectType nodes, Fields[i] is the key for the value at Values[i], so
// there will always be the same number of fields as values.  Fields are
// string typed and appear at most once.  Field order is significant: it is
// the order of the source document, and it is kept by the JSON and YAML
// codecs in both directions.
//
// # Numbers
//
// Number values are placed under:
//   - Int64: if it is an integer (64-bit signed)
//   - Float64: if it is a floating point number (64-bit IEEE float)
//   - Number: as a string fallback if neither Int64 nor Float64 can represent it
//
// # Ownership
//
// Nodes hold no parent pointers.  A node is owned by exactly one container;
// Clone produces a copy sharing no memory with the original, which is how
// values cross the boundary between a store and its callers.
//
// # Thread Safety
//
// Node structures are not thread-safe. If you need to access nodes from
// multiple goroutines, you must synchronize access yourself or clone nodes
// for each goroutine.
package ir
