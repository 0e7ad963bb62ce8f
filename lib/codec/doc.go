// Package codec converts nested values of the record store into bytes and back.
//
// Supported values are the value domain of package db: nil, bool, int64,
// string, []any, db.Record and *db.Table. Every codec is a stateless
// implementation of ICodec:
//
//   - binaryCodecImpl: self-describing, length-prefixed binary format used by
//     the persistence layer. Each value starts with a one byte tag. Strings are
//     prefixed with a big endian uint32 length, lists, records and tables with a
//     big endian uint32 element count. Record fields are written in sorted
//     order, table entries in insertion order, so encoding is deterministic.
//
//   - jsonCodecImpl: JSON text used by the admin shell. Objects decode to
//     db.Record, numbers must be integral and tables encode as objects in
//     insertion order.
//
// Decoding never panics on malformed input: truncated data, unknown tags and
// nesting deeper than 64 levels are reported as errors.
//
// Thread Safety:
//
//	All codec implementations are stateless and safe for concurrent use
//	across multiple goroutines without additional synchronization.
//
// Usage:
//
//	c := codec.NewBinaryCodec()
//	data, err := c.Encode(table)
//	// ... write data ...
//	v, err := c.Decode(data)
package codec
