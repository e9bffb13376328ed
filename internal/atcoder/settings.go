package atcoder

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mini-maxit/acick/internal/console"
	"github.com/mini-maxit/acick/pkg/constants"
	customErr "github.com/mini-maxit/acick/pkg/errors"
)

type SettingsPage struct {
	page
}

type SettingsPageBuilder struct {
	pages pages
}

// Build fetches the settings page. It redirects to the login page when the
// session holds no valid login.
func (b SettingsPageBuilder) Build(ctx context.Context, cnsl *console.Console) (*SettingsPage, error) {
	u, err := b.pages.resolve(constants.AtcoderSettingsPath)
	if err != nil {
		return nil, err
	}
	status, p, err := b.pages.fetch(ctx, u, cnsl)
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusOK:
		return &SettingsPage{page: *p}, nil
	case http.StatusFound:
		return nil, customErr.ErrInvalidCredentials
	default:
		return nil, fmt.Errorf("%w: %d from %s", customErr.ErrInvalidResponse, status, u)
	}
}
