package compiler_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mini-maxit/acick/internal/console"
	"github.com/mini-maxit/acick/internal/stages/compiler"
	customErr "github.com/mini-maxit/acick/pkg/errors"
	"github.com/mini-maxit/acick/pkg/model"
	"github.com/mini-maxit/acick/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_Success(t *testing.T) {
	dir := t.TempDir()
	tests.WriteFile(t, dir, "main.sh", "echo ok\n")
	cnsl := console.NewBuffer("")

	err := compiler.NewCompiler().Compile(context.Background(), model.Command{
		Args: []string{"sh", "-c", "echo building && cp main.sh a.out"},
		Dir:  dir,
	}, cnsl)

	require.NoError(t, err)
	assert.Equal(t, "Compiling ...\nbuilding\n", cnsl.Output())
	assert.FileExists(t, filepath.Join(dir, "a.out"))
}

func TestCompile_Failure(t *testing.T) {
	cnsl := console.NewBuffer("")

	err := compiler.NewCompiler().Compile(context.Background(), model.Command{
		Args: []string{"sh", "-c", "echo 'main.cpp:1: error' >&2; exit 1"},
		Dir:  t.TempDir(),
	}, cnsl)

	assert.ErrorIs(t, err, customErr.ErrCompilationFailed)
	assert.Contains(t, cnsl.Output(), "main.cpp:1: error")
}

func TestCompile_EmptyCommand(t *testing.T) {
	err := compiler.NewCompiler().Compile(context.Background(), model.Command{}, console.NewSink())

	assert.ErrorIs(t, err, customErr.ErrEmptyCommand)
}
