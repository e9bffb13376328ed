package storage_test

import (
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/mini-maxit/acick/internal/storage"
	"github.com/mini-maxit/acick/internal/workspace"
	customErr "github.com/mini-maxit/acick/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestcaseWriter_Write(t *testing.T) {
	dir := workspace.MustNew(t.TempDir())
	writer := storage.NewTestcaseWriter(dir)

	dest, err := writer.Write(storage.In, "sample_01", strings.NewReader("5\n"))
	require.NoError(t, err)
	assert.Equal(t, dir.Join("in/sample_01.txt"), dest)

	dest, err = writer.Write(storage.Out, "sample_01.txt", strings.NewReader("2\n"))
	require.NoError(t, err)
	assert.Equal(t, dir.Join("out/sample_01.txt"), dest)

	content, err := os.ReadFile(dest.String())
	require.NoError(t, err)
	assert.Equal(t, "2\n", string(content))
	assert.Equal(t, int64(4), writer.Written())
	assert.Equal(t, dir, writer.Dir())
}

func TestTestcaseWriter_InvalidName(t *testing.T) {
	writer := storage.NewTestcaseWriter(workspace.MustNew(t.TempDir()))

	_, err := writer.Write(storage.In, ".txt", strings.NewReader(""))

	assert.ErrorIs(t, err, customErr.ErrInvalidTestcaseName)
}

func TestTestcaseWriter_Store(t *testing.T) {
	dir := workspace.MustNew(t.TempDir())
	writer := storage.NewTestcaseWriter(dir)
	src := createTestFile(t, "cached\n")

	dest, err := writer.Store(storage.Out, "02.txt", src)
	require.NoError(t, err)

	content, err := os.ReadFile(dest.String())
	require.NoError(t, err)
	assert.Equal(t, "cached\n", string(content))
}

func TestTestcaseWriter_Concurrent(t *testing.T) {
	dir := workspace.MustNew(t.TempDir())
	writer := storage.NewTestcaseWriter(dir)
	names := []string{"01", "02", "03", "04", "05", "06", "07", "08"}

	var wg sync.WaitGroup
	for _, name := range names {
		for _, inout := range storage.InOuts {
			wg.Add(1)
			go func(inout storage.InOut, name string) {
				defer wg.Done()
				_, err := writer.Write(inout, name+".txt", strings.NewReader(name))
				assert.NoError(t, err)
			}(inout, name)
		}
	}
	wg.Wait()

	iter, err := storage.LoadTestcases(dir, "")
	require.NoError(t, err)
	assert.Equal(t, len(names), iter.Len())
	assert.Equal(t, int64(2*2*len(names)), writer.Written())
}
