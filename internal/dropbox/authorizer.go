package dropbox

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/mini-maxit/acick/internal/console"
	"github.com/mini-maxit/acick/internal/logger"
	"github.com/mini-maxit/acick/internal/web"
	"github.com/mini-maxit/acick/internal/workspace"
	"github.com/mini-maxit/acick/pkg/constants"
	customErr "github.com/mini-maxit/acick/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const stateAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Authorizer obtains an authorized Dropbox client with the PKCE code flow.
type Authorizer struct {
	appKey       string
	redirectPort int
	redirectPath string
	tokenPath    workspace.AbsPath
	endpoint     oauth2.Endpoint
	browser      web.Opener
	clientOpts   []ClientOption
	logger       *zap.SugaredLogger
}

type AuthorizerOption func(*Authorizer)

func WithRedirect(port int, path string) AuthorizerOption {
	return func(a *Authorizer) {
		a.redirectPort = port
		a.redirectPath = path
	}
}

func WithOAuthEndpoint(endpoint oauth2.Endpoint) AuthorizerOption {
	return func(a *Authorizer) {
		a.endpoint = endpoint
	}
}

func WithAuthBrowser(browser web.Opener) AuthorizerOption {
	return func(a *Authorizer) {
		a.browser = browser
	}
}

// WithClientOptions sets the options of the clients returned by LoadOrRequest.
func WithClientOptions(opts ...ClientOption) AuthorizerOption {
	return func(a *Authorizer) {
		a.clientOpts = opts
	}
}

func NewAuthorizer(appKey string, tokenPath workspace.AbsPath, opts ...AuthorizerOption) *Authorizer {
	logger := logger.NewNamedLogger("dropbox-authorizer")
	a := &Authorizer{
		appKey:       appKey,
		redirectPort: constants.DropboxRedirectPort,
		redirectPath: constants.DropboxRedirectPath,
		tokenPath:    tokenPath,
		endpoint: oauth2.Endpoint{
			AuthURL:   constants.DropboxAuthorizeURL,
			TokenURL:  constants.DropboxTokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
		browser: web.NewSystemBrowser(),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Authorizer) redirectURI() string {
	return fmt.Sprintf("http://localhost:%d%s", a.redirectPort, a.redirectPath)
}

func (a *Authorizer) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:    a.appKey,
		Endpoint:    a.endpoint,
		RedirectURL: a.redirectURI(),
	}
}

// LoadOrRequest returns a client authorized with accessToken when it is given.
// Otherwise the stored authorization is refreshed, and when there is none or the
// refresh fails the user is asked to authorize acick in the browser.
func (a *Authorizer) LoadOrRequest(ctx context.Context, accessToken string, cnsl *console.Console) (*Client, error) {
	if accessToken != "" {
		a.logger.Infof("Using access token given by the caller")
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
		return NewClient(oauth2.NewClient(ctx, ts), a.clientOpts...), nil
	}
	if a.appKey == "" {
		return nil, customErr.ErrMissingAppKey
	}

	cfg := a.oauthConfig()
	token, err := a.refreshStored(ctx, cfg, cnsl)
	if err != nil {
		return nil, err
	}
	if token == nil {
		token, err = a.requestToken(ctx, cfg, cnsl)
		if err != nil {
			return nil, fmt.Errorf("could not authorize acick on dropbox: %w", err)
		}
	}

	if token.RefreshToken != "" {
		if err := SaveAuthorization(Authorization{RefreshToken: token.RefreshToken}, a.tokenPath, workspace.AbsPath{}, cnsl); err != nil {
			return nil, err
		}
	} else {
		a.logger.Warnf("Dropbox returned no refresh token, authorization will not be kept")
	}
	return NewClient(cfg.Client(ctx, token), a.clientOpts...), nil
}

// refreshStored returns nil without error when there is no usable stored authorization.
func (a *Authorizer) refreshStored(ctx context.Context, cfg *oauth2.Config, cnsl *console.Console) (*oauth2.Token, error) {
	auth, ok, err := LoadAuthorization(a.tokenPath, workspace.AbsPath{}, cnsl)
	if err != nil || !ok {
		if err != nil {
			cnsl.Warn(err.Error())
		}
		return nil, nil
	}
	token, err := cfg.TokenSource(ctx, auth.Token()).Token()
	if err != nil {
		a.logger.Infof("Failed to refresh stored token: %v", err)
		cnsl.Warn("Could not refresh stored Dropbox authorization, requesting a new one")
		return nil, nil
	}
	return token, nil
}

func (a *Authorizer) requestToken(ctx context.Context, cfg *oauth2.Config, cnsl *console.Console) (*oauth2.Token, error) {
	state, err := randomState(constants.DropboxStateLen)
	if err != nil {
		return nil, err
	}
	verifier := oauth2.GenerateVerifier()
	authURL := cfg.AuthCodeURL(state,
		oauth2.S256ChallengeOption(verifier),
		oauth2.SetAuthURLParam("token_access_type", "offline"))

	code, err := serveCallback(ctx, a.redirectPort, a.redirectPath, state, func() {
		cnsl.Println("Authorize acick on Dropbox in your web browser.")
		web.OpenInBrowser(a.browser, authURL, cnsl)
	})
	if err != nil {
		return nil, err
	}

	token, err := cfg.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("could not get access token from dropbox: %w", err)
	}
	a.logger.Infof("Obtained new access token")
	return token, nil
}

func randomState(n int) (string, error) {
	b := make([]byte, n)
	limit := big.NewInt(int64(len(stateAlphabet)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("could not generate state: %w", err)
		}
		b[i] = stateAlphabet[idx.Int64()]
	}
	return string(b), nil
}
