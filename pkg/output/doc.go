// Package output renders applicator progress and listings for the user.
//
// Three renderings are supported: styled terminal output (lipgloss styles
// from the styles registry, pterm strategy badges), plain text for pipes
// and NO_COLOR, and JSON lines for scripts. Logging never goes through
// this package; it writes to stdout only.
package output
