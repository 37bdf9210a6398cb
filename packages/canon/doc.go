// Package canon provides an order-preserving JSON value model for hitcurl.
//
// Response bodies are parsed into a Value tree that remembers the order in
// which object members appeared in the document. Canonicalize rewrites the
// tree so that every object's members are sorted by key, recursively, while
// array element order and scalar values are left untouched. Indent and
// Colorize turn a tree back into human-readable output.
package canon
