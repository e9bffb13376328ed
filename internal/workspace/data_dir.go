package workspace

import (
	"fmt"
	"os"
	"runtime"

	"github.com/mini-maxit/acick/pkg/constants"
)

// DataDir returns the directory holding cookies, tokens and logs.
// It is $ACICK_DATA_DIR when set, otherwise the acick directory under the user data directory.
func DataDir() (AbsPath, error) {
	if dir := os.Getenv(constants.EnvDataDir); dir != "" {
		return FromShellPath(dir)
	}
	base, err := dataLocalDir()
	if err != nil {
		return AbsPath{}, err
	}
	return base.Join(constants.AppName), nil
}

func dataLocalDir() (AbsPath, error) {
	switch runtime.GOOS {
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return New(dir)
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return AbsPath{}, fmt.Errorf("could not get home directory: %w", err)
		}
		return New(home + "/Library/Application Support")
	default:
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			if abs, err := New(dir); err == nil {
				return abs, nil
			}
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AbsPath{}, fmt.Errorf("could not get home directory: %w", err)
	}
	abs, err := New(home)
	if err != nil {
		return AbsPath{}, err
	}
	return abs.Join(".local/share"), nil
}
