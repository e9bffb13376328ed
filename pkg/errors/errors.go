package errors

import "errors"

// Session errors.
var (
	ErrCookieOpen      = errors.New("could not open cookie storage")
	ErrCookieLoad      = errors.New("could not load cookies into request")
	ErrCookieStore     = errors.New("could not store cookies from response")
	ErrBuildRequest    = errors.New("could not build request")
	ErrTransport       = errors.New("could not send request")
	ErrServerError     = errors.New("received server error")
	ErrRetryExhausted  = errors.New("retry limit exhausted")
	ErrMissingLocation = errors.New("could not find location header")
)

// Scraping errors.
var (
	ErrMissingElement  = errors.New("could not find element")
	ErrMissingCsrf     = errors.New("could not extract csrf token")
	ErrEmptyCsrf       = errors.New("found empty csrf token")
	ErrInvalidDigits   = errors.New("could not parse digits")
	ErrInvalidResponse = errors.New("received invalid response")
)

// AtCoder errors.
var (
	ErrInvalidResponseCode = errors.New("received invalid response code")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrNotLoggedIn         = errors.New("user not logged in")
	ErrContestNotFound     = errors.New("could not find contest, check if the contest id is correct")
	ErrNotParticipating    = errors.New("found not participated or not started contest, participate in the contest and wait until the contest starts")
	ErrLoggedInAsOther     = errors.New("logged in as another user")
	ErrLoginFailed         = errors.New("failed to log in")
	ErrMissingContestName  = errors.New("could not extract contest name")
	ErrNoProblems          = errors.New("could not find any problems in contest")
	ErrProblemNotFound     = errors.New("could not find problem in contest")
	ErrMissingSamples      = errors.New("could not extract samples for problem")
	ErrNoAvailableLanguage = errors.New("could not find available language")
	ErrInvalidRedirect     = errors.New("found invalid redirection url")
	ErrNotSubmitted        = errors.New("not submitted")
	ErrEmptySource         = errors.New("found empty source file")
)

// Dropbox errors.
var (
	ErrMissingParameter      = errors.New("missing parameter")
	ErrInvalidParameter      = errors.New("invalid parameter")
	ErrInvalidTokenFile      = errors.New("invalid token file")
	ErrMissingAppKey         = errors.New("dropbox app key is not set")
	ErrDropboxAPI            = errors.New("dropbox api returned an error")
	ErrContestFolderNotFound = errors.New("could not find folder for the contest on dropbox")
	ErrInvalidTestcaseName   = errors.New("could not get testcase name from file name")
)

// Workspace and config errors.
var (
	ErrRelativePath       = errors.New("path is not absolute")
	ErrMissingTestcases   = errors.New("could not list testcase files, download testcase files first by `acick fetch --full`")
	ErrVersionMismatch    = errors.New("found mismatched version in config file")
	ErrConfigExists       = errors.New("config file already exists")
	ErrUnknownService     = errors.New("unknown service")
	ErrUnknownCompare     = errors.New("unknown compare")
	ErrInvalidDuration    = errors.New("invalid duration")
	ErrEmptyCommand       = errors.New("found empty command")
	ErrCompilationFailed  = errors.New("compilation failed")
	ErrNotAllAccepted     = errors.New("some samples were not accepted")
	ErrSampleNameNotFound = errors.New("could not find sample")
)
