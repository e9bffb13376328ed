package constants

import "time"

// Application identity.
const (
	AppName       = "acick"
	AppVersion    = "0.1.0"
	AppRepository = "https://github.com/mini-maxit/acick"
)

// AtCoder endpoints.
const (
	AtcoderBaseURL         = "https://atcoder.jp"
	AtcoderLoginPath       = "/login"
	AtcoderSettingsPath    = "/settings"
	AtcoderTasksPath       = "/contests/%s/tasks"
	AtcoderTasksPrintPath  = "/contests/%s/tasks_print"
	AtcoderSubmitPath      = "/contests/%s/submit"
	AtcoderTaskPath        = "/contests/%s/tasks/%s"
	AtcoderSubmissionsPath = "/contests/%s/submissions/me"
)

// AtCoder alert messages shown on 404 pages of restricted contests.
const (
	AlertContestNotFound  = "Contest not found."
	AlertPermissionDenied = "Permission denied."
)

// Session defaults.
const (
	DefaultSessionTimeout       = 30 * time.Second
	DefaultSessionRetryLimit    = 4
	DefaultSessionRetryInterval = 2 * time.Second
	CookiesFileName             = "cookies.json"
)

// Dropbox endpoints and the shared folder holding AtCoder testcases.
const (
	DropboxAuthorizeURL  = "https://www.dropbox.com/oauth2/authorize"
	DropboxTokenURL      = "https://api.dropboxapi.com/oauth2/token"
	DropboxAPIURL        = "https://api.dropboxapi.com/2"
	DropboxContentURL    = "https://content.dropboxapi.com/2"
	DropboxTestcasesURL  = "https://www.dropbox.com/sh/arnpe0ef5wds8cv/AAAk_SECQ2Nc6SVGii3rHX6Fa?dl=0"
	DropboxRedirectPort  = 4100
	DropboxRedirectPath  = "/oauth2/callback"
	DropboxStateLen      = 16
	DropboxTokenFileName = "dbx_token"
	DropboxTokenVersion  = "1"
)

// OAuth callback responses.
const (
	CallbackMessageSuccess  = "Successfully completed authorization. Go back to acick on your terminal."
	CallbackMessageMissing  = "Missing parameter: %s"
	CallbackMessageInvalid  = "Invalid parameter: %s"
	CallbackMessageNotFound = "Not Found"
	CallbackShutdownTimeout = 5 * time.Second
)

// Environment variables.
const (
	EnvContest           = "ACICK_CONTEST"
	EnvService           = "ACICK_SERVICE"
	EnvAssumeYes         = "ACICK_ASSUME_YES"
	EnvDataDir           = "ACICK_DATA_DIR"
	EnvLogDir            = "ACICK_LOG_DIR"
	EnvDropboxAppKey     = "ACICK_DBX_APP_KEY"
	EnvDropboxToken      = "ACICK_DBX_ACCESS_TOKEN"
	EnvUsernameFormat    = "ACICK_%s_USERNAME"
	EnvPasswordFormat    = "ACICK_%s_PASSWORD"
	DefaultContestID     = "arc100"
	DefaultServiceID     = "atcoder"
	ConfigFileName       = "acick.yaml"
	ProblemFileName      = "problem.yaml"
	DefaultJudgeTimeout  = 2 * time.Second
	ExecutorWaitDelay    = 100 * time.Millisecond
	LogFileName          = "acick.log"
	LogDirName           = "logs"
	TestcaseFileExt      = "txt"
	TestcaseInputDir     = "in"
	TestcaseOutputDir    = "out"
	DownloadTmpDirPrefix = "acick-testcases-"
)

// Download cache of testcase files.
const (
	CacheDirName      = "cache"
	CacheMetadataFile = "metadata.json"
	CacheTTL          = 7 * 24 * time.Hour
	CacheMaxEntries   = 10000
)

// Judge display.
const (
	DiffTitleExpected = "expected"
	DiffTitleActual   = "actual"
	PasswordMask      = "********"
)
