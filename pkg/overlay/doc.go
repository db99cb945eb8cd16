// Package overlay applies a loaded manifest to a working tree.
//
// An Applicator walks the manifest entries in order and routes each target
// to one of three strategies:
//
//	replace  copy overlays/<name>/<source> over the target
//	merge    deep merge overlays/<name>/configs/<basename> into the target JSON
//	patch    apply patches/<basename>.patch, or else the string
//	         replacements in patches/<basename>.json
//
// The first failing entry stops the run. Entries processed before it stay
// applied; backups, when enabled, are the only way back.
package overlay
