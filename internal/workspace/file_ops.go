package workspace

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mini-maxit/acick/internal/console"
	"github.com/mini-maxit/acick/utils"
)

type SaveResult int

const (
	SaveSkipped SaveResult = iota
	SaveCreated
	SaveOverwritten
)

func (r SaveResult) String() string {
	switch r {
	case SaveSkipped:
		return "already exists"
	case SaveCreated:
		return "saved"
	case SaveOverwritten:
		return "overwritten"
	default:
		return "unknown"
	}
}

// IsSaved reports whether the file was written.
func (r SaveResult) IsSaved() bool {
	return r != SaveSkipped
}

type saveOptions struct {
	mode fs.FileMode
}

type SaveOption func(*saveOptions)

// WithMode sets the permissions of the saved file.
func WithMode(mode fs.FileMode) SaveOption {
	return func(o *saveOptions) {
		o.mode = mode
	}
}

// Save writes the file with write. An existing file is left untouched unless overwrite is set.
// The content goes to a temporary file in the same directory first and is renamed into place
// only when write succeeds.
func (p AbsPath) Save(write func(w io.Writer) error, overwrite bool, opts ...SaveOption) (SaveResult, error) {
	options := saveOptions{mode: 0o644}
	for _, opt := range opts {
		opt(&options)
	}

	existed := p.Exists()
	if existed && !overwrite {
		return SaveSkipped, nil
	}
	if err := p.Parent().CreateDirAll(); err != nil {
		return SaveSkipped, err
	}

	tmp, err := os.CreateTemp(p.Parent().path, "."+p.Base()+".tmp-*")
	if err != nil {
		return SaveSkipped, fmt.Errorf("could not create file %s: %w", p.path, err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	if err := write(tmp); err != nil {
		tmp.Close()
		return SaveSkipped, fmt.Errorf("could not write to file %s: %w", p.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return SaveSkipped, fmt.Errorf("could not sync file %s: %w", p.path, err)
	}
	if err := tmp.Close(); err != nil {
		return SaveSkipped, fmt.Errorf("could not close file %s: %w", p.path, err)
	}
	if err := os.Chmod(tmpPath, options.mode); err != nil {
		return SaveSkipped, fmt.Errorf("could not set permissions of %s: %w", p.path, err)
	}
	if err := os.Rename(tmpPath, p.path); err != nil {
		return SaveSkipped, fmt.Errorf("could not save file %s: %w", p.path, err)
	}
	committed = true

	if existed {
		return SaveOverwritten, nil
	}
	return SaveCreated, nil
}

// SavePretty is Save with a "Saving X ... saved" line on the console. base shortens the displayed path.
func (p AbsPath) SavePretty(
	cnsl *console.Console,
	base AbsPath,
	write func(w io.Writer) error,
	overwrite bool,
	opts ...SaveOption,
) (SaveResult, error) {
	cnsl.Printf("Saving %s ... ", p.StripPrefix(base))
	result, err := p.Save(write, overwrite, opts...)
	if err != nil {
		cnsl.Println(cnsl.Styled("failed", color.FgRed))
		return result, err
	}
	cnsl.Println(result.String())
	return result, nil
}

// Load opens the file and passes it to read.
func (p AbsPath) Load(read func(r io.Reader) error) error {
	f, err := os.Open(p.path)
	if err != nil {
		return fmt.Errorf("could not open file %s: %w", p.path, err)
	}
	defer f.Close()
	if err := read(f); err != nil {
		return fmt.Errorf("could not read file %s: %w", p.path, err)
	}
	return nil
}

func (p AbsPath) LoadPretty(cnsl *console.Console, base AbsPath, read func(r io.Reader) error) error {
	cnsl.Printf("Loading %s ... ", p.StripPrefix(base))
	if err := p.Load(read); err != nil {
		cnsl.Println(cnsl.Styled("failed", color.FgRed))
		return err
	}
	cnsl.Println("loaded")
	return nil
}

// RemoveDirAll removes the directory with its content. It reports whether anything was removed.
func (p AbsPath) RemoveDirAll() (bool, error) {
	if !p.Exists() {
		return false, nil
	}
	if err := os.RemoveAll(p.path); err != nil {
		return false, fmt.Errorf("could not remove directory %s: %w", p.path, err)
	}
	return true, nil
}

func (p AbsPath) RemoveDirAllPretty(cnsl *console.Console, base AbsPath) (bool, error) {
	cnsl.Printf("Removing %s ... ", p.StripPrefix(base))
	removed, err := p.RemoveDirAll()
	printRemoveResult(cnsl, removed, err)
	return removed, err
}

// RemoveFile removes the file. It reports whether the file existed.
func (p AbsPath) RemoveFile() (bool, error) {
	err := os.Remove(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("could not remove file %s: %w", p.path, err)
	}
	return true, nil
}

func (p AbsPath) RemoveFilePretty(cnsl *console.Console, base AbsPath) (bool, error) {
	cnsl.Printf("Removing %s ... ", p.StripPrefix(base))
	removed, err := p.RemoveFile()
	printRemoveResult(cnsl, removed, err)
	return removed, err
}

func printRemoveResult(cnsl *console.Console, removed bool, err error) {
	switch {
	case err != nil:
		cnsl.Println(cnsl.Styled("failed", color.FgRed))
	case removed:
		cnsl.Println("removed")
	default:
		cnsl.Println("not existed")
	}
}

// MoveFrom moves src to p, creating the parent directory of p first.
func (p AbsPath) MoveFrom(src AbsPath) error {
	if err := p.Parent().CreateDirAll(); err != nil {
		return err
	}
	if err := utils.MoveDir(src.path, p.path); err != nil {
		return fmt.Errorf("could not move %s to %s: %w", src.path, p.path, err)
	}
	return nil
}

// ReadDir lists the entries of the directory as absolute paths in name order.
func (p AbsPath) ReadDir() ([]AbsPath, error) {
	entries, err := os.ReadDir(p.path)
	if err != nil {
		return nil, err
	}
	paths := make([]AbsPath, 0, len(entries))
	for _, entry := range entries {
		paths = append(paths, AbsPath{path: filepath.Join(p.path, entry.Name())})
	}
	return paths, nil
}
