package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	customErr "github.com/mini-maxit/acick/pkg/errors"
)

// AbsPath is a filesystem path that is guaranteed to be absolute.
// It is cleaned but symlinks are not resolved.
type AbsPath struct {
	path string
}

// New returns an AbsPath for p, rejecting relative paths.
func New(p string) (AbsPath, error) {
	if !filepath.IsAbs(p) {
		return AbsPath{}, fmt.Errorf("%w: %s", customErr.ErrRelativePath, p)
	}
	return AbsPath{path: filepath.Clean(p)}, nil
}

// MustNew is like New but panics on relative paths. Intended for constants.
func MustNew(p string) AbsPath {
	abs, err := New(p)
	if err != nil {
		panic(err)
	}
	return abs
}

// FromShellPath expands a leading '~' and $VAR or ${VAR} references before the absoluteness check.
func FromShellPath(s string) (AbsPath, error) {
	expanded, err := ExpandShell(s)
	if err != nil {
		return AbsPath{}, err
	}
	return New(expanded)
}

// Cwd returns the current working directory.
func Cwd() (AbsPath, error) {
	wd, err := os.Getwd()
	if err != nil {
		return AbsPath{}, fmt.Errorf("could not get current directory: %w", err)
	}
	return New(wd)
}

// ExpandShell expands '~' and environment variables in s. Referencing an unset variable is an error.
func ExpandShell(s string) (string, error) {
	if s == "~" || strings.HasPrefix(s, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not expand home directory: %w", err)
		}
		s = home + s[1:]
	}

	var missing []string
	expanded := os.Expand(s, func(name string) string {
		val, ok := os.LookupEnv(name)
		if !ok {
			missing = append(missing, name)
		}
		return val
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("could not expand %q: environment variable not found: %s",
			s, strings.Join(missing, ", "))
	}
	return expanded, nil
}

func (p AbsPath) String() string {
	return p.path
}

func (p AbsPath) IsZero() bool {
	return p.path == ""
}

// Join appends rel to the path. An absolute rel is treated as relative to p.
func (p AbsPath) Join(rel string) AbsPath {
	return AbsPath{path: filepath.Join(p.path, rel)}
}

// JoinExpand expands rel like FromShellPath. An absolute result replaces p.
func (p AbsPath) JoinExpand(rel string) (AbsPath, error) {
	expanded, err := ExpandShell(rel)
	if err != nil {
		return AbsPath{}, err
	}
	if filepath.IsAbs(expanded) {
		return New(expanded)
	}
	return p.Join(expanded), nil
}

// Parent returns the parent directory, or p itself for the filesystem root.
func (p AbsPath) Parent() AbsPath {
	return AbsPath{path: filepath.Dir(p.path)}
}

func (p AbsPath) Base() string {
	return filepath.Base(p.path)
}

// StripPrefix returns p relative to base for display. Paths outside base are returned unchanged.
func (p AbsPath) StripPrefix(base AbsPath) string {
	if base.IsZero() {
		return p.path
	}
	rel, err := filepath.Rel(base.path, p.path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return p.path
	}
	return rel
}

func (p AbsPath) Exists() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

func (p AbsPath) IsDir() bool {
	info, err := os.Stat(p.path)
	return err == nil && info.IsDir()
}

func (p AbsPath) IsFile() bool {
	info, err := os.Stat(p.path)
	return err == nil && info.Mode().IsRegular()
}

func (p AbsPath) CreateDirAll() error {
	if err := os.MkdirAll(p.path, 0o755); err != nil {
		return fmt.Errorf("could not create directory %s: %w", p.path, err)
	}
	return nil
}

// SearchDirContains walks up from p and returns the first directory containing fileName.
func (p AbsPath) SearchDirContains(fileName string) (AbsPath, bool) {
	dir := p
	for {
		if dir.Join(fileName).Exists() {
			return dir, true
		}
		parent := dir.Parent()
		if parent == dir {
			return AbsPath{}, false
		}
		dir = parent
	}
}
