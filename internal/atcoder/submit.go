package atcoder

import (
	"context"

	"github.com/mini-maxit/acick/internal/console"
	"github.com/mini-maxit/acick/internal/scrape"
	"github.com/mini-maxit/acick/pkg/constants"
	"github.com/mini-maxit/acick/pkg/model"
)

const langOptionSelector = "#select-lang select option"

type SubmitPage struct {
	page
}

// LangID returns the id of the language displayed as langName in the submission form.
func (p *SubmitPage) LangID(langName string) (string, bool) {
	return scrape.ExtractLangID(p.root(), langOptionSelector, langName)
}

type SubmitPageBuilder struct {
	pages     pages
	contestID model.ContestID
}

func (b SubmitPageBuilder) Build(ctx context.Context, cnsl *console.Console) (*SubmitPage, error) {
	u, err := b.pages.contestURL(constants.AtcoderSubmitPath, b.contestID)
	if err != nil {
		return nil, err
	}
	p, err := b.pages.fetchRestricted(ctx, u, cnsl)
	if err != nil {
		return nil, err
	}
	return &SubmitPage{page: *p}, nil
}
