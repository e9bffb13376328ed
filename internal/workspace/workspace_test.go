package workspace_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/mini-maxit/acick/internal/console"
	"github.com/mini-maxit/acick/internal/workspace"
	customErr "github.com/mini-maxit/acick/pkg/errors"
	"github.com/mini-maxit/acick/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeString(s string) func(w io.Writer) error {
	return func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	}
}

func TestNew_RejectsRelative(t *testing.T) {
	_, err := workspace.New("relative/path")
	assert.ErrorIs(t, err, customErr.ErrRelativePath)

	p, err := workspace.New("/tmp/../tmp/x")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x", p.String())
}

func TestFromShellPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("ACICK_TEST_DIR", "/opt/acick")

	p, err := workspace.FromShellPath("~/contests")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "contests"), p.String())

	p, err = workspace.FromShellPath("$ACICK_TEST_DIR/cookies.json")
	require.NoError(t, err)
	assert.Equal(t, "/opt/acick/cookies.json", p.String())

	p, err = workspace.FromShellPath("${ACICK_TEST_DIR}/x")
	require.NoError(t, err)
	assert.Equal(t, "/opt/acick/x", p.String())

	_, err = workspace.FromShellPath("$ACICK_TEST_UNSET_DIR/x")
	assert.Error(t, err)

	_, err = workspace.FromShellPath("contests")
	assert.ErrorIs(t, err, customErr.ErrRelativePath)
}

func TestJoinAndStripPrefix(t *testing.T) {
	base := workspace.MustNew("/home/user/ws")
	p := base.Join("atcoder/arc100/c/problem.yaml")
	assert.Equal(t, "/home/user/ws/atcoder/arc100/c/problem.yaml", p.String())
	assert.Equal(t, "atcoder/arc100/c/problem.yaml", p.StripPrefix(base))

	other := workspace.MustNew("/etc/passwd")
	assert.Equal(t, "/etc/passwd", other.StripPrefix(base))
	assert.Equal(t, "/etc/passwd", other.StripPrefix(workspace.AbsPath{}))

	escaped := base.Join("/etc")
	assert.Equal(t, "/home/user/ws/etc", escaped.String())
}

func TestJoinExpand(t *testing.T) {
	base := workspace.MustNew("/home/user/ws")
	t.Setenv("ACICK_TEST_SUB", "sub")

	p, err := base.JoinExpand("$ACICK_TEST_SUB/file")
	require.NoError(t, err)
	assert.Equal(t, "/home/user/ws/sub/file", p.String())

	p, err = base.JoinExpand("/abs/file")
	require.NoError(t, err)
	assert.Equal(t, "/abs/file", p.String())
}

func TestSave(t *testing.T) {
	dir := workspace.MustNew(t.TempDir())
	p := dir.Join("a/b/file.txt")

	result, err := p.Save(writeString("first"), false)
	require.NoError(t, err)
	assert.Equal(t, workspace.SaveCreated, result)

	called := false
	result, err = p.Save(func(w io.Writer) error {
		called = true
		return nil
	}, false)
	require.NoError(t, err)
	assert.Equal(t, workspace.SaveSkipped, result)
	assert.False(t, called)

	result, err = p.Save(writeString("second"), true)
	require.NoError(t, err)
	assert.Equal(t, workspace.SaveOverwritten, result)

	content, err := os.ReadFile(p.String())
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))
}

func TestSave_FailedWriteKeepsOldContent(t *testing.T) {
	dir := t.TempDir()
	tests.WriteFile(t, dir, "file.txt", "old")
	p := workspace.MustNew(filepath.Join(dir, "file.txt"))

	_, err := p.Save(func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return errors.New("boom")
	}, true)
	require.Error(t, err)

	content, err := os.ReadFile(p.String())
	require.NoError(t, err)
	assert.Equal(t, "old", string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSave_WithMode(t *testing.T) {
	p := workspace.MustNew(t.TempDir()).Join("token")
	_, err := p.Save(writeString("1&abc"), false, workspace.WithMode(0o600))
	require.NoError(t, err)

	info, err := os.Stat(p.String())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSavePretty(t *testing.T) {
	base := workspace.MustNew(t.TempDir())
	p := base.Join("c/problem.yaml")
	cnsl := console.NewBuffer("")

	_, err := p.SavePretty(cnsl, base, writeString("x"), false)
	require.NoError(t, err)
	_, err = p.SavePretty(cnsl, base, writeString("x"), false)
	require.NoError(t, err)
	_, err = p.SavePretty(cnsl, base, writeString("y"), true)
	require.NoError(t, err)

	assert.Equal(t,
		"Saving c/problem.yaml ... saved\n"+
			"Saving c/problem.yaml ... already exists\n"+
			"Saving c/problem.yaml ... overwritten\n",
		cnsl.Output())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	tests.WriteFile(t, dir, "file.txt", "content")
	p := workspace.MustNew(filepath.Join(dir, "file.txt"))

	var got string
	err := p.Load(func(r io.Reader) error {
		b, err := io.ReadAll(r)
		got = string(b)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "content", got)

	err = workspace.MustNew(filepath.Join(dir, "missing")).Load(func(r io.Reader) error { return nil })
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRemove(t *testing.T) {
	base := workspace.MustNew(t.TempDir())
	tests.WriteFile(t, base.String(), "d/f.txt", "x")
	cnsl := console.NewBuffer("")

	removed, err := base.Join("d/f.txt").RemoveFilePretty(cnsl, base)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = base.Join("d/f.txt").RemoveFilePretty(cnsl, base)
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = base.Join("d").RemoveDirAllPretty(cnsl, base)
	require.NoError(t, err)
	assert.True(t, removed)

	assert.Equal(t,
		"Removing d/f.txt ... removed\n"+
			"Removing d/f.txt ... not existed\n"+
			"Removing d ... removed\n",
		cnsl.Output())
}

func TestMoveFrom(t *testing.T) {
	base := workspace.MustNew(t.TempDir())
	tests.WriteFile(t, base.String(), "tmp/in/01.txt", "1\n")

	dst := base.Join("atcoder/arc100/c/testcases")
	require.NoError(t, dst.MoveFrom(base.Join("tmp")))

	assert.True(t, dst.Join("in/01.txt").IsFile())
	assert.False(t, base.Join("tmp").Exists())
}

func TestSearchDirContains(t *testing.T) {
	base := workspace.MustNew(t.TempDir())
	tests.WriteFile(t, base.String(), "acick.yaml", "version: 0.1.0\n")
	deep := base.Join("atcoder/arc100/c")
	require.NoError(t, deep.CreateDirAll())

	found, ok := deep.SearchDirContains("acick.yaml")
	require.True(t, ok)
	assert.Equal(t, base, found)

	_, ok = deep.SearchDirContains("acick-file-that-does-not-exist.yaml")
	assert.False(t, ok)
}

func TestDataDir(t *testing.T) {
	t.Setenv("ACICK_DATA_DIR", "/var/lib/acick")
	dir, err := workspace.DataDir()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/acick", dir.String())

	t.Setenv("ACICK_DATA_DIR", "")
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("HOME", "/home/user")
	dir, err = workspace.DataDir()
	require.NoError(t, err)
	assert.False(t, dir.IsZero())
	assert.Equal(t, "acick", dir.Base())
}
