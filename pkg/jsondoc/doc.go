// Package jsondoc decodes and encodes JSON documents while preserving the
// order of object keys.
//
// Decoded values are one of: *Object, []any, string, json.Number, bool or
// nil. Numbers keep their literal text, so a document that is decoded and
// encoded again does not change 1.0 into 1 or lose precision on large
// integers.
//
// Encoding is pretty-printed with a two space indent, leaves non-ASCII and
// HTML characters unescaped and has no trailing newline.
package jsondoc
