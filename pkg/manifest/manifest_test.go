// pkg/manifest/manifest_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: In-memory filesystem
// PURPOSE: Test manifest discovery, parsing, ordering and classification of failures

package manifest_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/overlay/pkg/errors"
	"github.com/arthur-debert/overlay/pkg/manifest"
	"github.com/arthur-debert/overlay/pkg/testutil"
	"github.com/arthur-debert/overlay/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var overlaysDir = filepath.Join(testutil.MemoryRoot, "overlays")

func targets(m *types.Manifest) []string {
	out := make([]string, 0, len(m.Entries))
	for _, e := range m.Entries {
		out = append(out, e.Target)
	}
	return out
}

func TestLoad(t *testing.T) {
	fsys, _ := testutil.NewMemoryFS(t, map[string]string{
		"overlays/prod/overlay.config.json": `{
  "metadata": {"name": "prod", "description": "Production", "version": "1.2"},
  "files": {
    "src/config.json": "merge",
    "Dockerfile": "patch",
    "config/app.yaml": "files/app.yaml"
  }
}`,
	})

	m, err := manifest.Load(fsys, overlaysDir, "prod")
	require.NoError(t, err)

	assert.Equal(t, "prod", m.Name)
	assert.Equal(t, filepath.Join(overlaysDir, "prod"), m.Dir)
	require.NotNil(t, m.Metadata)
	assert.Equal(t, "Production", m.Metadata.Description)
	assert.Equal(t, "1.2", m.Metadata.Version)

	require.Len(t, m.Entries, 3)
	assert.Equal(t, types.Entry{Target: "src/config.json", Directive: types.Directive{Strategy: types.StrategyMerge}}, m.Entries[0])
	assert.Equal(t, types.Entry{Target: "Dockerfile", Directive: types.Directive{Strategy: types.StrategyPatch}}, m.Entries[1])
	assert.Equal(t, types.Entry{
		Target:    "config/app.yaml",
		Directive: types.Directive{Strategy: types.StrategyReplace, Source: "files/app.yaml"},
	}, m.Entries[2])
}

func TestLoad_OverlayNotFound(t *testing.T) {
	fsys, _ := testutil.NewMemoryFS(t, map[string]string{
		"overlays/dev/overlay.config.json": `{"files": {}}`,
	})

	_, err := manifest.Load(fsys, overlaysDir, "missing")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrOverlayNotFound))
	assert.True(t, errors.IsConfigurationError(err))
	assert.Contains(t, err.Error(), "overlay directory not found")
	assert.Contains(t, err.Error(), filepath.Join(overlaysDir, "missing"))
}

func TestLoad_ManifestNotFound(t *testing.T) {
	fsys, _ := testutil.NewMemoryFS(t, map[string]string{
		"overlays/empty/README.md": "nothing here",
	})

	_, err := manifest.Load(fsys, overlaysDir, "empty")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestNotFound))
	assert.True(t, errors.IsConfigurationError(err))
	assert.Contains(t, err.Error(), types.ManifestFileName)
}

func TestLoad_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		contains string
	}{
		{
			name:     "invalid_json",
			content:  `{"files": {"a": "merge",}}`,
			contains: "invalid manifest",
		},
		{
			name:     "empty_file",
			content:  ``,
			contains: "invalid manifest",
		},
		{
			name:     "root_not_object",
			content:  `["files"]`,
			contains: "invalid manifest",
		},
		{
			name:     "missing_files_section",
			content:  `{"metadata": {"name": "x"}}`,
			contains: "must contain a 'files' section",
		},
		{
			name:     "files_not_object",
			content:  `{"files": ["a", "b"]}`,
			contains: "'files' must be an object",
		},
		{
			name:     "directive_not_string",
			content:  `{"files": {"a.json": 3}}`,
			contains: `directive for "a.json" must be a string`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys, _ := testutil.NewMemoryFS(t, map[string]string{
				"overlays/bad/overlay.config.json": tt.content,
			})

			_, err := manifest.Load(fsys, overlaysDir, "bad")
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrManifestMalformed))
			assert.True(t, errors.IsConfigurationError(err))
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestParse_PreservesOrder(t *testing.T) {
	m, err := manifest.Parse([]byte(`{"files": {
		"z.txt": "merge",
		"a.txt": "patch",
		"m/n.txt": "files/n.txt",
		"b.txt": "merge"
	}}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"z.txt", "a.txt", "m/n.txt", "b.txt"}, targets(m))
}

func TestParse_DuplicateTargetKeepsFirstPosition(t *testing.T) {
	m, err := manifest.Parse([]byte(`{"files": {"a": "merge", "b": "patch", "a": "files/a"}}`))
	require.NoError(t, err)

	require.Equal(t, []string{"a", "b"}, targets(m))
	assert.Equal(t, types.StrategyReplace, m.Entries[0].Directive.Strategy)
	assert.Equal(t, "files/a", m.Entries[0].Directive.Source)
}

func TestParse_EmptyFiles(t *testing.T) {
	m, err := manifest.Parse([]byte(`{"files": {}}`))
	require.NoError(t, err)

	assert.Empty(t, m.Entries)
	assert.Nil(t, m.Metadata)
}

func TestParse_Metadata(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		m, err := manifest.Parse([]byte(`{"metadata": {}, "files": {}}`))
		require.NoError(t, err)

		require.NotNil(t, m.Metadata)
		assert.Equal(t, manifest.DefaultDescription, m.Metadata.Description)
		assert.Equal(t, manifest.DefaultVersion, m.Metadata.Version)
	})

	t.Run("non_string_values_rendered", func(t *testing.T) {
		m, err := manifest.Parse([]byte(`{"metadata": {"version": 2}, "files": {}}`))
		require.NoError(t, err)

		require.NotNil(t, m.Metadata)
		assert.Equal(t, "2", m.Metadata.Version)
	})

	t.Run("non_object_ignored", func(t *testing.T) {
		m, err := manifest.Parse([]byte(`{"metadata": "prod", "files": {}}`))
		require.NoError(t, err)

		require.NotNil(t, m.Metadata)
		assert.Equal(t, manifest.DefaultDescription, m.Metadata.Description)
	})
}

func TestParse_DirectiveTokensAreExact(t *testing.T) {
	m, err := manifest.Parse([]byte(`{"files": {"a": "Merge", "b": "patches/b.patch"}}`))
	require.NoError(t, err)

	for _, e := range m.Entries {
		assert.Equal(t, types.StrategyReplace, e.Directive.Strategy, e.Target)
	}
}
