// Package paste models a CopyPaste save document: a versioned JSON tree
// holding an ordered collection of placed entities.
//
// The parser is deliberately conservative about what it understands. Only
// the fields the transformation engine acts on (typeId, ownerId, lock,
// flags.on, items) are lifted into typed accessors; every other field, at
// both the document and the entity level, is kept in an opaque side-map
// and written back unchanged on serialization. A document cleaned by a
// newer game build therefore survives a round trip through an older
// cleaner without losing data.
package paste
