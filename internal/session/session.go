package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	cookiejar "github.com/juju/persistent-cookiejar"
	"github.com/mini-maxit/acick/internal/config"
	"github.com/mini-maxit/acick/internal/console"
	"github.com/mini-maxit/acick/internal/logger"
	customErr "github.com/mini-maxit/acick/pkg/errors"
	"go.uber.org/zap"
)

// Session sends requests to a remote site with cookies persisted in a file.
// Redirects are never followed; the caller validates Location itself.
type Session struct {
	client *http.Client
	cfg    config.Session
	logger *zap.SugaredLogger
}

func New(cfg config.Session) *Session {
	return &Session{
		client: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		cfg:    cfg,
		logger: logger.NewNamedLogger("session"),
	}
}

func (s *Session) Config() config.Session {
	return s.cfg
}

// Get prepares a GET request to rawURL.
func (s *Session) Get(ctx context.Context, rawURL string) *RequestBuilder {
	return s.newRequest(ctx, http.MethodGet, rawURL, nil, "")
}

// PostForm prepares a POST request to rawURL with a url-encoded form body.
func (s *Session) PostForm(ctx context.Context, rawURL string, form url.Values) *RequestBuilder {
	return s.newRequest(ctx, http.MethodPost, rawURL, []byte(form.Encode()), "application/x-www-form-urlencoded")
}

func (s *Session) newRequest(ctx context.Context, method, rawURL string, body []byte, contentType string) *RequestBuilder {
	header := http.Header{}
	if s.cfg.UserAgent != "" {
		header.Set("User-Agent", s.cfg.UserAgent)
	}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return &RequestBuilder{
		session: s,
		ctx:     ctx,
		method:  method,
		rawURL:  rawURL,
		body:    body,
		header:  header,
	}
}

// RequestBuilder holds everything needed to rebuild the request on each attempt.
type RequestBuilder struct {
	session *Session
	ctx     context.Context
	method  string
	rawURL  string
	body    []byte
	header  http.Header
}

func (b *RequestBuilder) Header(key, value string) *RequestBuilder {
	b.header.Set(key, value)
	return b
}

func (b *RequestBuilder) build() (*http.Request, error) {
	var body io.Reader
	if b.body != nil {
		body = bytes.NewReader(b.body)
	}
	req, err := http.NewRequestWithContext(b.ctx, b.method, b.rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", customErr.ErrBuildRequest, err)
	}
	req.Header = b.header.Clone()
	return req, nil
}

// RetrySend sends the request, retrying transport failures and 5xx responses up to
// RetryLimit more times with RetryInterval between attempts. Every attempt is reported on cnsl.
// On exhaustion the error of the last attempt is returned wrapped in ErrRetryExhausted.
func (b *RequestBuilder) RetrySend(cnsl *console.Console) (*Response, error) {
	s := b.session
	traceID := uuid.NewString()

	jar, err := openJar(s.cfg.CookiesPath.String())
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt <= s.cfg.RetryLimit; attempt++ {
		if attempt > 0 {
			s.logger.Infof("Retrying %s %s in %s [attempt: %d, trace: %s]",
				b.method, b.rawURL, s.cfg.RetryInterval, attempt, traceID)
			if err := sleep(b.ctx, s.cfg.RetryInterval); err != nil {
				return nil, fmt.Errorf("%w: %w", customErr.ErrRetryExhausted, err)
			}
		}

		res, err := b.send(jar, cnsl)
		if err != nil {
			if isPermanent(err) {
				return nil, err
			}
			s.logger.Infof("Request failed: %s [trace: %s]", err, traceID)
			lastErr = err
			continue
		}
		if res.StatusCode >= http.StatusInternalServerError {
			lastErr = fmt.Errorf("%w: %s", customErr.ErrServerError, res.Status)
			s.logger.Infof("Received server error %s [trace: %s]", res.Status, traceID)
			continue
		}
		return res, nil
	}
	return nil, fmt.Errorf("%w: %w", customErr.ErrRetryExhausted, lastErr)
}

func (b *RequestBuilder) send(jar *cookiejar.Jar, cnsl *console.Console) (*Response, error) {
	s := b.session
	req, err := b.build()
	if err != nil {
		return nil, err
	}
	for _, c := range jar.Cookies(req.URL) {
		req.AddCookie(c)
	}

	cnsl.Printf("%-7s %s ... ", req.Method, req.URL)
	s.logger.Debugf("%s %s", req.Method, req.URL)
	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		cnsl.Println(cnsl.Styled("failed", color.FgRed))
		return nil, fmt.Errorf("%w: %w", customErr.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		cnsl.Println(cnsl.Styled("failed", color.FgRed))
		return nil, fmt.Errorf("%w: could not read response body: %w", customErr.ErrTransport, err)
	}
	cnsl.Println(styledStatus(cnsl, resp.Status, resp.StatusCode))
	s.logger.Infof("%s %s %s in %s", req.Method, req.URL, resp.Status, time.Since(start))

	if cookies := resp.Cookies(); len(cookies) > 0 {
		jar.SetCookies(req.URL, cookies)
		if err := saveJar(jar, s.cfg.CookiesPath.String()); err != nil {
			return nil, err
		}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       body,
		URL:        req.URL,
	}, nil
}

// openJar returns ErrCookieOpen when the cookie file cannot be reached and
// ErrCookieLoad when it exists but cannot be decoded.
func openJar(path string) (*cookiejar.Jar, error) {
	exists := true
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w %s: %w", customErr.ErrCookieOpen, path, err)
		}
		exists = false
	}
	jar, err := cookiejar.New(&cookiejar.Options{Filename: path})
	if err != nil {
		if exists {
			return nil, fmt.Errorf("%w %s: %w", customErr.ErrCookieLoad, path, err)
		}
		return nil, fmt.Errorf("%w %s: %w", customErr.ErrCookieOpen, path, err)
	}
	return jar, nil
}

func saveJar(jar *cookiejar.Jar, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("%w %s: %w", customErr.ErrCookieStore, path, err)
	}
	if err := jar.Save(); err != nil {
		return fmt.Errorf("%w %s: %w", customErr.ErrCookieStore, path, err)
	}
	return nil
}

// isPermanent reports whether retrying cannot help.
func isPermanent(err error) bool {
	for _, target := range []error{customErr.ErrBuildRequest, customErr.ErrCookieStore, context.Canceled} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func styledStatus(cnsl *console.Console, status string, code int) string {
	switch {
	case code >= 200 && code < 400:
		return cnsl.Styled(status, color.FgGreen)
	default:
		return cnsl.Styled(status, color.FgRed)
	}
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
	URL        *url.URL
}

// Location resolves the Location header against the request URL.
func (r *Response) Location() (*url.URL, error) {
	loc := strings.TrimSpace(r.Header.Get("Location"))
	if loc == "" {
		return nil, customErr.ErrMissingLocation
	}
	u, err := r.URL.Parse(loc)
	if err != nil {
		return nil, fmt.Errorf("could not parse location %q: %w", loc, err)
	}
	return u, nil
}
