package dropbox

import (
	"fmt"
	"io"
	"strings"

	"github.com/mini-maxit/acick/internal/console"
	"github.com/mini-maxit/acick/internal/workspace"
	"github.com/mini-maxit/acick/pkg/constants"
	customErr "github.com/mini-maxit/acick/pkg/errors"
	"golang.org/x/oauth2"
)

const tokenFileMode = 0o600

// Authorization is the part of an OAuth token kept across runs.
type Authorization struct {
	RefreshToken string
}

// ParseAuthorization parses the single line format "{version}&{refresh_token}".
func ParseAuthorization(line string) (Authorization, error) {
	version, refreshToken, found := strings.Cut(strings.TrimRight(line, "\r\n"), "&")
	if !found || version != constants.DropboxTokenVersion || refreshToken == "" {
		return Authorization{}, customErr.ErrInvalidTokenFile
	}
	return Authorization{RefreshToken: refreshToken}, nil
}

func (a Authorization) String() string {
	return constants.DropboxTokenVersion + "&" + a.RefreshToken
}

// Token returns an expired token which makes the token source refresh on first use.
func (a Authorization) Token() *oauth2.Token {
	return &oauth2.Token{RefreshToken: a.RefreshToken}
}

// LoadAuthorization reads the token file. It reports false when the file does not exist.
func LoadAuthorization(path, base workspace.AbsPath, cnsl *console.Console) (Authorization, bool, error) {
	if !path.IsFile() {
		return Authorization{}, false, nil
	}
	var auth Authorization
	err := path.LoadPretty(cnsl, base, func(r io.Reader) error {
		b, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		auth, err = ParseAuthorization(string(b))
		return err
	})
	if err != nil {
		return Authorization{}, false, fmt.Errorf("could not load dropbox token from %s: %w", path, err)
	}
	return auth, true, nil
}

// SaveAuthorization atomically writes the token file readable only by the user.
func SaveAuthorization(auth Authorization, path, base workspace.AbsPath, cnsl *console.Console) error {
	_, err := path.SavePretty(cnsl, base, func(w io.Writer) error {
		_, err := io.WriteString(w, auth.String())
		return err
	}, true, workspace.WithMode(tokenFileMode))
	if err != nil {
		return fmt.Errorf("could not save dropbox token to %s: %w", path, err)
	}
	return nil
}
