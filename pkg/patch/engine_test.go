package patch

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	overlayerrors "github.com/arthur-debert/overlay/pkg/errors"
	"github.com/arthur-debert/overlay/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	callArgs := m.Called(ctx, name, args)
	return callArgs.Get(0).([]byte), callArgs.Get(1).([]byte), callArgs.Error(2)
}

const confPatch = `--- a/app.conf
+++ b/app.conf
@@ -1,3 +1,3 @@
 host=localhost
-port=8080
+port=9090
 debug=false
`

func TestNewEngine(t *testing.T) {
	fs := filesystem.NewMemory()

	e, err := NewEngine("", fs, "")
	require.NoError(t, err)
	assert.Equal(t, EngineExternal, e.Name())

	e, err = NewEngine(EngineBuiltin, fs, "")
	require.NoError(t, err)
	assert.Equal(t, EngineBuiltin, e.Name())

	_, err = NewEngine("quilt", fs, "")
	require.Error(t, err)
	assert.True(t, overlayerrors.IsErrorCode(err, overlayerrors.ErrConfigInvalid))
}

func TestCommandEngineSuccess(t *testing.T) {
	runner := new(mockRunner)
	runner.On("Run", mock.Anything, "gpatch", []string{"app.conf", "overlays/dev/patches/app.conf.patch"}).
		Return([]byte("patching file app.conf\n"), []byte(nil), nil)

	engine := NewCommandEngine("gpatch", runner)
	err := engine.Apply(context.Background(), "app.conf", "overlays/dev/patches/app.conf.patch")

	require.NoError(t, err)
	runner.AssertExpectations(t)
}

func TestCommandEngineDefaultsToPatch(t *testing.T) {
	runner := new(mockRunner)
	runner.On("Run", mock.Anything, "patch", mock.Anything).Return([]byte(nil), []byte(nil), nil)

	require.NoError(t, NewCommandEngine("", runner).Apply(context.Background(), "a", "b"))
	runner.AssertExpectations(t)
}

func TestCommandEngineFailureSurfacesDiagnostic(t *testing.T) {
	runner := new(mockRunner)
	runner.On("Run", mock.Anything, "patch", mock.Anything).
		Return([]byte(nil), []byte("Hunk #1 FAILED at 2.\n1 out of 1 hunk FAILED\n"), errors.New("exit status 1"))

	err := NewCommandEngine("patch", runner).Apply(context.Background(), "app.conf", "app.conf.patch")

	require.Error(t, err)
	assert.True(t, overlayerrors.IsErrorCode(err, overlayerrors.ErrPatchFailed))
	assert.Contains(t, err.Error(), "Hunk #1 FAILED at 2.\n1 out of 1 hunk FAILED")
	assert.False(t, overlayerrors.IsConfigurationError(err))
}

func TestCommandEngineFailureFallsBackToStdout(t *testing.T) {
	runner := new(mockRunner)
	runner.On("Run", mock.Anything, "patch", mock.Anything).
		Return([]byte("patching file app.conf\nHunk #1 FAILED at 1.\n"), []byte(nil), errors.New("exit status 1"))

	err := NewCommandEngine("patch", runner).Apply(context.Background(), "app.conf", "app.conf.patch")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Hunk #1 FAILED at 1.")
}

func TestCommandEngineMissingTool(t *testing.T) {
	runner := new(mockRunner)
	notFound := &exec.Error{Name: "patch", Err: exec.ErrNotFound}
	runner.On("Run", mock.Anything, "patch", mock.Anything).Return([]byte(nil), []byte(nil), notFound)

	err := NewCommandEngine("patch", runner).Apply(context.Background(), "app.conf", "app.conf.patch")

	require.Error(t, err)
	assert.True(t, overlayerrors.IsErrorCode(err, overlayerrors.ErrPatchFailed))
	assert.True(t, errors.Is(err, exec.ErrNotFound))
}

func TestCommandEngineWithSystemPatch(t *testing.T) {
	if _, err := exec.LookPath("patch"); err != nil {
		t.Skip("patch tool not available")
	}

	dir := t.TempDir()
	target := filepath.Join(dir, "app.conf")
	patchFile := filepath.Join(dir, "app.conf.patch")
	require.NoError(t, os.WriteFile(target, []byte("host=localhost\nport=8080\ndebug=false\n"), 0644))
	require.NoError(t, os.WriteFile(patchFile, []byte(confPatch), 0644))

	require.NoError(t, NewCommandEngine("patch", nil).Apply(context.Background(), target, patchFile))

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "host=localhost\nport=9090\ndebug=false\n", string(content))
}

func TestBuiltinEngineApplies(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.WriteFile("/work/app.conf", []byte("host=localhost\nport=8080\ndebug=false\n"), 0600))
	require.NoError(t, fs.WriteFile("/work/overlays/dev/patches/app.conf.patch", []byte(confPatch), 0644))

	engine := NewBuiltinEngine(fs)
	require.NoError(t, engine.Apply(context.Background(), "/work/app.conf", "/work/overlays/dev/patches/app.conf.patch"))

	content, err := fs.ReadFile("/work/app.conf")
	require.NoError(t, err)
	assert.Equal(t, "host=localhost\nport=9090\ndebug=false\n", string(content))

	info, err := fs.Stat("/work/app.conf")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestBuiltinEngineFailedHunkLeavesTarget(t *testing.T) {
	fs := filesystem.NewMemory()
	original := "host=localhost\nport=7070\ndebug=false\n"
	require.NoError(t, fs.WriteFile("/work/app.conf", []byte(original), 0644))
	require.NoError(t, fs.WriteFile("/work/app.conf.patch", []byte(confPatch), 0644))

	err := NewBuiltinEngine(fs).Apply(context.Background(), "/work/app.conf", "/work/app.conf.patch")

	require.Error(t, err)
	assert.True(t, overlayerrors.IsErrorCode(err, overlayerrors.ErrPatchFailed))

	content, readErr := fs.ReadFile("/work/app.conf")
	require.NoError(t, readErr)
	assert.Equal(t, original, string(content))
}

func TestBuiltinEngineRejectsMultiFilePatch(t *testing.T) {
	fs := filesystem.NewMemory()
	multi := confPatch + `--- a/other.conf
+++ b/other.conf
@@ -1 +1 @@
-a
+b
`
	require.NoError(t, fs.WriteFile("/work/app.conf", []byte("host=localhost\nport=8080\ndebug=false\n"), 0644))
	require.NoError(t, fs.WriteFile("/work/app.conf.patch", []byte(multi), 0644))

	err := NewBuiltinEngine(fs).Apply(context.Background(), "/work/app.conf", "/work/app.conf.patch")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one file")
}

func TestBuiltinEngineMissingPatchFile(t *testing.T) {
	fs := filesystem.NewMemory()

	err := NewBuiltinEngine(fs).Apply(context.Background(), "/work/app.conf", "/work/missing.patch")

	require.Error(t, err)
	assert.True(t, overlayerrors.IsErrorCode(err, overlayerrors.ErrFileAccess))
}
