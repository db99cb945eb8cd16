// Package filesystem provides filesystem implementations for overlay.
//
// This package contains implementations of the types.FS interface: the OS
// filesystem, whose writes are atomic replacements, and an afero-backed
// filesystem used for in-memory and read-only runs. CopyFile carries bytes,
// permissions and modification time from one path to another.
package filesystem
