package atcoder

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mini-maxit/acick/internal/console"
	"github.com/mini-maxit/acick/internal/logger"
	"github.com/mini-maxit/acick/internal/session"
	"github.com/mini-maxit/acick/internal/web"
	"github.com/mini-maxit/acick/pkg/constants"
	customErr "github.com/mini-maxit/acick/pkg/errors"
	"github.com/mini-maxit/acick/pkg/model"
	"go.uber.org/zap"
)

// Actor realizes user operations on AtCoder by sequencing page fetches and form posts.
type Actor interface {
	CurrentUser(ctx context.Context, cnsl *console.Console) (string, bool, error)
	Login(ctx context.Context, user, pass string, cnsl *console.Console) (bool, error)
	Fetch(ctx context.Context, contestID model.ContestID, problemID model.ProblemID, cnsl *console.Console) (model.Contest, []model.Problem, error)
	Submit(ctx context.Context, contestID model.ContestID, problem model.Problem, langNames []string, source string, cnsl *console.Console) (string, error)
	OpenProblemURL(contestID model.ContestID, problem model.Problem, cnsl *console.Console) error
	OpenSubmissionsURL(contestID model.ContestID, cnsl *console.Console) error
}

type actor struct {
	pages   pages
	browser web.Opener
	logger  *zap.SugaredLogger
}

type ActorOption func(*actor)

// WithBaseURL points the actor at another host serving the same pages.
func WithBaseURL(baseURL *url.URL) ActorOption {
	return func(a *actor) {
		a.pages.baseURL = baseURL
	}
}

func WithBrowser(browser web.Opener) ActorOption {
	return func(a *actor) {
		a.browser = browser
	}
}

func NewActor(sess *session.Session, opts ...ActorOption) Actor {
	logger := logger.NewNamedLogger("atcoder-actor")
	baseURL, _ := url.Parse(constants.AtcoderBaseURL)
	a := &actor{
		pages:   pages{baseURL: baseURL, session: sess},
		browser: web.NewSystemBrowser(),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *actor) problemURL(contestID model.ContestID, problem model.Problem) (*url.URL, error) {
	return a.pages.contestURL(constants.AtcoderTaskPath, contestID, problem.URLName)
}

func (a *actor) submissionsURL(contestID model.ContestID) (*url.URL, error) {
	return a.pages.contestURL(constants.AtcoderSubmissionsPath, contestID)
}

func (a *actor) CurrentUser(ctx context.Context, cnsl *console.Console) (string, bool, error) {
	loginPage, err := LoginPageBuilder{pages: a.pages}.Build(ctx, cnsl)
	if err != nil {
		return "", false, err
	}
	user, ok := loginPage.CurrentUser()
	return user, ok, nil
}

// Login logs in as user. It reports false when the session is already logged in as user.
func (a *actor) Login(ctx context.Context, user, pass string, cnsl *console.Console) (bool, error) {
	loginPage, err := LoginPageBuilder{pages: a.pages}.Build(ctx, cnsl)
	if err != nil {
		return false, err
	}
	if current, ok := loginPage.CurrentUser(); ok {
		if current != user {
			return false, fmt.Errorf("%w: %s", customErr.ErrLoggedInAsOther, current)
		}
		a.logger.Infof("Already logged in as %s", user)
		return false, nil
	}

	csrfToken, err := loginPage.CsrfToken()
	if err != nil {
		return false, err
	}
	form := url.Values{
		"csrf_token": {csrfToken},
		"username":   {user},
		"password":   {pass},
	}
	res, err := a.pages.session.PostForm(ctx, loginPage.URL().String(), form).RetrySend(cnsl)
	if err != nil {
		return false, err
	}
	if res.StatusCode != http.StatusFound {
		return false, fmt.Errorf("login rejected by service: %w: %s", customErr.ErrInvalidResponseCode, res.Status)
	}

	settingsPage, err := SettingsPageBuilder{pages: a.pages}.Build(ctx, cnsl)
	if err != nil {
		return false, err
	}
	current, ok := settingsPage.CurrentUser()
	switch {
	case !ok:
		return false, customErr.ErrLoginFailed
	case current != user:
		return false, fmt.Errorf("%w: %s", customErr.ErrLoggedInAsOther, current)
	}
	a.logger.Infof("Logged in as %s", user)
	return true, nil
}

// Fetch scrapes the contest and its problems with samples. An empty problemID fetches all problems.
func (a *actor) Fetch(
	ctx context.Context,
	contestID model.ContestID,
	problemID model.ProblemID,
	cnsl *console.Console,
) (model.Contest, []model.Problem, error) {
	tasksPage, err := TasksPageBuilder{pages: a.pages, contestID: contestID}.Build(ctx, cnsl)
	if err != nil {
		return model.Contest{}, nil, err
	}
	contestName, ok := tasksPage.ContestName()
	if !ok {
		return model.Contest{}, nil, customErr.ErrMissingContestName
	}
	extracted, err := tasksPage.ExtractProblems(cnsl)
	if err != nil {
		return model.Contest{}, nil, err
	}

	var problems []model.Problem
	for _, problem := range extracted {
		if problemID == "" || problem.ID.Equal(problemID) {
			problems = append(problems, problem)
		}
	}
	if len(problems) == 0 {
		if problemID != "" {
			return model.Contest{}, nil, fmt.Errorf("%w: %q in contest %s", customErr.ErrProblemNotFound, problemID, contestID)
		}
		return model.Contest{}, nil, fmt.Errorf("%w %s", customErr.ErrNoProblems, contestID)
	}

	tasksPrintPage, err := TasksPrintPageBuilder{pages: a.pages, contestID: contestID}.Build(ctx, cnsl)
	if err != nil {
		return model.Contest{}, nil, err
	}
	samplesMap, err := tasksPrintPage.ExtractSamplesMap()
	if err != nil {
		return model.Contest{}, nil, err
	}
	for i := range problems {
		samples, ok := samplesMap[problems[i].ID.Normalize()]
		if !ok {
			return model.Contest{}, nil, fmt.Errorf("%w: %s", customErr.ErrMissingSamples, problems[i].ID)
		}
		problems[i].Samples = samples
	}

	a.logger.Infof("Fetched %d problems of %s", len(problems), contestID)
	return model.NewContest(contestID, contestName), problems, nil
}

// Submit posts source as a solution of problem in the first of langNames the contest accepts.
// It returns the chosen language name.
func (a *actor) Submit(
	ctx context.Context,
	contestID model.ContestID,
	problem model.Problem,
	langNames []string,
	source string,
	cnsl *console.Console,
) (string, error) {
	submitPage, err := SubmitPageBuilder{pages: a.pages, contestID: contestID}.Build(ctx, cnsl)
	if err != nil {
		return "", err
	}

	var langName, langID string
	for _, name := range langNames {
		if id, ok := submitPage.LangID(name); ok {
			langName, langID = name, id
			break
		}
	}
	if langID == "" {
		return "", fmt.Errorf("%w from the given language list: %s",
			customErr.ErrNoAvailableLanguage, strings.Join(langNames, ", "))
	}

	csrfToken, err := submitPage.CsrfToken()
	if err != nil {
		return "", err
	}
	form := url.Values{
		"csrf_token":          {csrfToken},
		"data.TaskScreenName": {problem.URLName},
		"data.LanguageId":     {langID},
		"sourceCode":          {source},
	}
	res, err := a.pages.session.PostForm(ctx, submitPage.URL().String(), form).RetrySend(cnsl)
	if err != nil {
		return "", err
	}
	if err := a.validateSubmitResponse(res, contestID); err != nil {
		return "", fmt.Errorf("submission rejected by service: %w", err)
	}

	a.logger.Infof("Submitted %s of %s in %s", problem.ID, contestID, langName)
	return langName, nil
}

func (a *actor) validateSubmitResponse(res *session.Response, contestID model.ContestID) error {
	if res.StatusCode != http.StatusFound {
		return fmt.Errorf("%w: %s", customErr.ErrInvalidResponseCode, res.Status)
	}
	loc, err := res.Location()
	if err != nil {
		return err
	}
	expected, err := a.submissionsURL(contestID)
	if err != nil {
		return err
	}
	if loc.String() != expected.String() {
		return fmt.Errorf("%w: %s", customErr.ErrInvalidRedirect, loc)
	}
	return nil
}

func (a *actor) OpenProblemURL(contestID model.ContestID, problem model.Problem, cnsl *console.Console) error {
	u, err := a.problemURL(contestID, problem)
	if err != nil {
		return err
	}
	web.OpenInBrowser(a.browser, u.String(), cnsl)
	return nil
}

func (a *actor) OpenSubmissionsURL(contestID model.ContestID, cnsl *console.Console) error {
	u, err := a.submissionsURL(contestID)
	if err != nil {
		return err
	}
	web.OpenInBrowser(a.browser, u.String(), cnsl)
	return nil
}
