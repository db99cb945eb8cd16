// Package types defines the core types and interfaces used throughout overlay.
// This includes the FS interface, the typed manifest directive (Strategy and
// Directive) and the loaded Manifest with its ordered entries.
package types
