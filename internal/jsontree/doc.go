// Package jsontree provides an ordered, loosely-typed JSON value tree.
//
// A [Value] is a tagged union over null, bool, number, string, array and
// object. Objects keep their members in source order (duplicates included)
// and numbers keep their literal text, so decoding a document and encoding it
// again never drops or rewrites fields the caller does not touch.
//
// Accessors such as [Value.AsArray] and [Value.Get] return a [*ShapeError]
// when the value has a different kind than requested.
package jsontree
