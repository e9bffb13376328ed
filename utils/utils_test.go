package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mini-maxit/acick/tests"
	"github.com/mini-maxit/acick/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantErr  bool
	}{
		{
			name:     "valid simple filename",
			filename: "sample_01.txt",
			wantErr:  false,
		},
		{
			name:     "valid filename with underscores",
			filename: "subtask_1_05.txt",
			wantErr:  false,
		},
		{
			name:     "valid filename with hyphens",
			filename: "random-large-3.txt",
			wantErr:  false,
		},
		{
			name:     "valid filename with dots",
			filename: "01.in.txt",
			wantErr:  false,
		},
		{
			name:     "empty filename",
			filename: "",
			wantErr:  true,
		},
		{
			name:     "filename with semicolon",
			filename: "solution.py; rm -rf /",
			wantErr:  true,
		},
		{
			name:     "filename with pipe",
			filename: "solution.py | cat /etc/passwd",
			wantErr:  true,
		},
		{
			name:     "filename with ampersand",
			filename: "solution.py && malicious",
			wantErr:  true,
		},
		{
			name:     "filename with backtick",
			filename: "solution`whoami`.py",
			wantErr:  true,
		},
		{
			name:     "filename with dollar sign",
			filename: "solution$PATH.py",
			wantErr:  true,
		},
		{
			name:     "filename with forward slash",
			filename: "../../../etc/passwd",
			wantErr:  true,
		},
		{
			name:     "filename with backslash",
			filename: "..\\..\\windows\\system32",
			wantErr:  true,
		},
		{
			name:     "filename is dot",
			filename: ".",
			wantErr:  true,
		},
		{
			name:     "filename is double dot",
			filename: "..",
			wantErr:  true,
		},
		{
			name:     "filename with space",
			filename: "solution .py",
			wantErr:  true,
		},
		{
			name:     "filename with single quote",
			filename: "solution'.py",
			wantErr:  true,
		},
		{
			name:     "filename with double quote",
			filename: "solution\".py",
			wantErr:  true,
		},
		{
			name:     "filename with asterisk",
			filename: "solution*.py",
			wantErr:  true,
		},
		{
			name:     "filename with question mark",
			filename: "solution?.py",
			wantErr:  true,
		},
		{
			name:     "filename with brackets",
			filename: "solution[0].py",
			wantErr:  true,
		},
		{
			name:     "filename with parentheses",
			filename: "solution(cmd).py",
			wantErr:  true,
		},
		{
			name:     "filename with redirection",
			filename: "solution>output.txt",
			wantErr:  true,
		},
		{
			name:     "filename with hash",
			filename: "solution#comment.py",
			wantErr:  true,
		},
		{
			name:     "filename with tilde",
			filename: "~/.bashrc",
			wantErr:  true,
		},
		{
			name:     "filename with exclamation",
			filename: "solution!.py",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.ValidateFilename(tt.filename)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilename() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMoveDir(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	tests.WriteFile(t, src, "in/01.txt", "1 2\n")
	tests.WriteFile(t, src, "out/01.txt", "3\n")

	dst := filepath.Join(root, "dst")
	require.NoError(t, utils.MoveDir(src, dst))

	_, err := os.Stat(src)
	assert.True(t, os.IsNotExist(err))

	content, err := os.ReadFile(filepath.Join(dst, "in", "01.txt"))
	require.NoError(t, err)
	assert.Equal(t, "1 2\n", string(content))
	content, err = os.ReadFile(filepath.Join(dst, "out", "01.txt"))
	require.NoError(t, err)
	assert.Equal(t, "3\n", string(content))
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := tests.WriteFile(t, dir, "a.txt", "hello")
	dst := filepath.Join(dir, "b.txt")

	require.NoError(t, utils.CopyFile(src, dst))

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
}

func TestRemoveIO(t *testing.T) {
	dir := t.TempDir()
	tests.WriteFile(t, dir, "sub/a.txt", "x")

	assert.Error(t, utils.RemoveIO(filepath.Join(dir, "sub"), false, false))
	assert.NoError(t, utils.RemoveIO(filepath.Join(dir, "sub"), false, true))
	assert.NoError(t, utils.RemoveIO(filepath.Join(dir, "sub"), true, false))

	_, err := os.Stat(filepath.Join(dir, "sub"))
	assert.True(t, os.IsNotExist(err))
}
