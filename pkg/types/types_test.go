package types

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDirective(t *testing.T) {
	tests := []struct {
		raw      string
		strategy Strategy
		source   string
	}{
		{"merge", StrategyMerge, ""},
		{"patch", StrategyPatch, ""},
		{"cdk/parameter.ts", StrategyReplace, "cdk/parameter.ts"},
		{"Merge", StrategyReplace, "Merge"},
		{"does/not/exist", StrategyReplace, "does/not/exist"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			d := ParseDirective(tt.raw)
			assert.Equal(t, tt.strategy, d.Strategy)
			assert.Equal(t, tt.source, d.Source)
			assert.Equal(t, tt.raw, d.Raw())
		})
	}
}

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "merge", StrategyMerge.String())
	assert.Equal(t, "patch", StrategyPatch.String())
	assert.Equal(t, "replace", StrategyReplace.String())
	assert.Equal(t, "unknown", Strategy(42).String())
}

func TestSourcePaths(t *testing.T) {
	dir := filepath.Join("overlays", "dev")

	assert.Equal(t, filepath.Join(dir, "configs", "cdk.json"), MergeSource(dir, "cdk/cdk.json"))

	patchFile, replacements := PatchSources(dir, "frontend/package.json")
	assert.Equal(t, filepath.Join(dir, "patches", "package.json.patch"), patchFile)
	assert.Equal(t, filepath.Join(dir, "patches", "package.json.json"), replacements)

	d := ParseDirective("cdk/parameter.ts")
	assert.Equal(t, filepath.Join(dir, "cdk", "parameter.ts"), d.ReplaceSource(dir))
}
