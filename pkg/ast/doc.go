// Package ast defines the stable syntax tree handed to lint plugins.
//
// # Layout
//
// Every node type is a plain struct made of fixed-width scalars, typed IDs,
// Option values of scalars and slices of IDs. Nodes never hold interfaces,
// maps or pointers, so a plugin built against this package sees the same
// field order and sizes no matter which producer built the tree. The layout
// is named by LayoutVersion; any change to a node struct must bump it.
//
// # Ownership
//
// A Crate owns one Arena per node kind. Children are referenced by typed,
// 1-based arena IDs (ItemID, ExprID, ...); the zero ID means "none". Every
// walkable node also carries a NodeID, an identity token that is unique within
// one crate and never reused. Back-references (a node's parent, the item a type
// path resolves to) are not stored in the nodes: they are looked up by NodeID or
// TyID through the crate or the analysis context.
//
// # Variants
//
// Items, statements and expressions are tagged: a Kind field plus a Payload
// index into the arena for that kind. The typed accessors on Crate (Fn, Struct,
// Let, Binary, ...) check the tag before reading the payload.
//
// Crates are built with a Builder and exchanged with the producer through
// WriteSnapshot and ReadSnapshot.
package ast

// LayoutVersion identifies the field layout of every node struct in this
// package. Hosts and plugins must agree on it.
const LayoutVersion uint16 = 1
