package atcoder

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mini-maxit/acick/internal/console"
	"github.com/mini-maxit/acick/pkg/constants"
	customErr "github.com/mini-maxit/acick/pkg/errors"
)

type LoginPage struct {
	page
}

type LoginPageBuilder struct {
	pages pages
}

func (b LoginPageBuilder) Build(ctx context.Context, cnsl *console.Console) (*LoginPage, error) {
	u, err := b.pages.resolve(constants.AtcoderLoginPath)
	if err != nil {
		return nil, err
	}
	status, p, err := b.pages.fetch(ctx, u, cnsl)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: %d from %s", customErr.ErrInvalidResponse, status, u)
	}
	return &LoginPage{page: *p}, nil
}
