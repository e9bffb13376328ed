package atcoder

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mini-maxit/acick/internal/console"
	"github.com/mini-maxit/acick/internal/scrape"
	"github.com/mini-maxit/acick/internal/session"
	"github.com/mini-maxit/acick/pkg/constants"
	customErr "github.com/mini-maxit/acick/pkg/errors"
	"github.com/mini-maxit/acick/pkg/model"
)

// Header is implemented by every page rendering the site navigation bar.
type Header interface {
	IsLoggedIn() bool
	CurrentUser() (string, bool)
	ContestName() (string, bool)
}

// page holds a fetched document and the URL it was fetched from.
type page struct {
	url *url.URL
	doc *goquery.Document
}

func (p *page) URL() *url.URL {
	return p.url
}

func (p *page) root() *goquery.Selection {
	return p.doc.Selection
}

func (p *page) header() (*goquery.Selection, bool) {
	return scrape.FindFirst(p.root(), "nav")
}

func (p *page) IsLoggedIn() bool {
	nav, ok := p.header()
	if !ok {
		return false
	}
	_, ok = scrape.FindFirst(nav, "a.dropdown-toggle .glyphicon-cog")
	return ok
}

func (p *page) CurrentUser() (string, bool) {
	if !p.IsLoggedIn() {
		return "", false
	}
	nav, _ := p.header()
	toggles := nav.Find("a.dropdown-toggle")
	if toggles.Length() < 2 {
		return "", false
	}
	user := strings.TrimSpace(scrape.InnerText(toggles.Eq(1)))
	return user, user != ""
}

func (p *page) ContestName() (string, bool) {
	return scrape.FirstText(p.root(), ".contest-title")
}

func (p *page) CsrfToken() (string, error) {
	return scrape.ExtractCsrfToken(p.root())
}

// pages builds page URLs against the site base and fetches them through a session.
type pages struct {
	baseURL *url.URL
	session *session.Session
}

func (ps pages) resolve(path string) (*url.URL, error) {
	u, err := ps.baseURL.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("could not parse url path %s: %w", path, err)
	}
	return u, nil
}

func (ps pages) contestURL(format string, contestID model.ContestID, args ...string) (*url.URL, error) {
	escaped := []interface{}{url.PathEscape(contestID.String())}
	for _, a := range args {
		escaped = append(escaped, url.PathEscape(a))
	}
	return ps.resolve(fmt.Sprintf(format, escaped...))
}

func (ps pages) fetch(ctx context.Context, u *url.URL, cnsl *console.Console) (int, *page, error) {
	res, err := ps.session.Get(ctx, u.String()).RetrySend(cnsl)
	if err != nil {
		return 0, nil, err
	}
	doc, err := scrape.Parse(res.Body)
	if err != nil {
		return 0, nil, err
	}
	return res.StatusCode, &page{url: u, doc: doc}, nil
}

// fetchRestricted fetches a page only visible to logged in participants of a contest.
func (ps pages) fetchRestricted(ctx context.Context, u *url.URL, cnsl *console.Console) (*page, error) {
	status, p, err := ps.fetch(ctx, u, cnsl)
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusOK:
		return p, nil
	case status == http.StatusFound:
		return nil, customErr.ErrNotLoggedIn
	case status == http.StatusNotFound && alertContains(p, constants.AlertContestNotFound):
		return nil, customErr.ErrContestNotFound
	case status == http.StatusNotFound && alertContains(p, constants.AlertPermissionDenied):
		return nil, customErr.ErrNotParticipating
	default:
		return nil, fmt.Errorf("%w: %d from %s", customErr.ErrInvalidResponse, status, u)
	}
}

func alertContains(p *page, pattern string) bool {
	alert, ok := scrape.FindFirst(p.root(), ".alert-danger")
	if !ok {
		return false
	}
	return strings.Contains(scrape.InnerText(alert), pattern)
}
