// Package testutil provides helpers shared by overlay's tests: building
// overlay trees on disk or in memory and reading results back.
package testutil
