// Package patch applies patch sources to target files.
//
// A unified diff is applied by an Engine. CommandEngine runs the system
// patch tool (`patch <target> <patchfile>`) and reports its diagnostic
// output on failure. BuiltinEngine applies the diff in process and only
// writes the target once every hunk applied cleanly.
//
// String replacement sources are JSON objects mapping literal substrings to
// their replacements. They are applied in document order, each one on the
// text produced by the previous ones.
package patch
