package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/coreos/go-semver/semver"
	"github.com/joho/godotenv"
	"github.com/mini-maxit/acick/internal/console"
	"github.com/mini-maxit/acick/internal/logger"
	"github.com/mini-maxit/acick/internal/workspace"
	"github.com/mini-maxit/acick/pkg/constants"
	customErr "github.com/mini-maxit/acick/pkg/errors"
	"github.com/mini-maxit/acick/pkg/model"
	"gopkg.in/yaml.v3"
)

const (
	defaultProblemPath  = "{{ .Service }}/{{ .Contest }}/{{ lower .Problem }}/problem.yaml"
	defaultTestcasesDir = "{{ .Service }}/{{ .Contest }}/{{ lower .Problem }}/testcases"
	defaultWorkingDir   = "{{ .Service }}/{{ .Contest }}/{{ lower .Problem }}"
	defaultSourcePath   = "{{ .Service }}/{{ .Contest }}/{{ lower .Problem }}/Main.cpp"
	defaultCompile      = "set -x && g++ -std=gnu++17 -O2 -o ./a.out ./Main.cpp"
	defaultRun          = "./a.out"
	defaultTemplate     = `/*
[{{ .Contest.ID }}] {{ .Problem.ID }} - {{ .Problem.Name }}
*/

#include <iostream>
using namespace std;

int main() {
    return 0;
}
`
)

// Body is the content of acick.yaml.
type Body struct {
	Version      string         `yaml:"version"`
	Shell        []string       `yaml:"shell"`
	ProblemPath  string         `yaml:"problem_path"`
	TestcasesDir string         `yaml:"testcases_dir"`
	Session      SessionConfig  `yaml:"session"`
	Services     ServicesConfig `yaml:"services"`
	Dropbox      DropboxConfig  `yaml:"dropbox"`
}

type SessionConfig struct {
	UserAgent     string         `yaml:"user_agent"`
	Timeout       model.Duration `yaml:"timeout"`
	RetryLimit    int            `yaml:"retry_limit"`
	RetryInterval model.Duration `yaml:"retry_interval"`
	// CookiesPath is shell expanded. Empty means cookies.json in the data directory.
	CookiesPath string `yaml:"cookies_path,omitempty"`
}

type ServicesConfig struct {
	Atcoder ServiceConfig `yaml:"atcoder"`
}

type ServiceConfig struct {
	LangNames  []string `yaml:"lang_names"`
	WorkingDir string   `yaml:"working_dir"`
	SourcePath string   `yaml:"source_path"`
	Compile    string   `yaml:"compile"`
	Run        string   `yaml:"run"`
	Template   string   `yaml:"template,omitempty"`
}

type DropboxConfig struct {
	AppKey string `yaml:"app_key,omitempty"`
	// TokenPath is shell expanded. Empty means dbx_token in the data directory.
	TokenPath string `yaml:"token_path,omitempty"`
}

// Config is the effective configuration of one command run.
type Config struct {
	ServiceID model.ServiceKind
	ContestID model.ContestID
	BaseDir   workspace.AbsPath
	Body      Body
}

func defaultShell() []string {
	bash, err := exec.LookPath("bash")
	if err != nil {
		bash = "bash"
	}
	return []string{bash, "-e", "-c", "{{ .Command }}"}
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		UserAgent:     fmt.Sprintf("%s-%s (%s)", constants.AppName, constants.AppVersion, constants.AppRepository),
		Timeout:       model.Duration(constants.DefaultSessionTimeout),
		RetryLimit:    constants.DefaultSessionRetryLimit,
		RetryInterval: model.Duration(constants.DefaultSessionRetryInterval),
	}
}

func DefaultServiceConfig(kind model.ServiceKind) ServiceConfig {
	switch kind {
	default:
		return ServiceConfig{
			LangNames:  []string{"C++ 20 (gcc 12.2)", "C++ (GCC 9.2.1)"},
			WorkingDir: defaultWorkingDir,
			SourcePath: defaultSourcePath,
			Compile:    defaultCompile,
			Run:        defaultRun,
			Template:   defaultTemplate,
		}
	}
}

func DefaultBody() Body {
	return Body{
		Version:      constants.AppVersion,
		Shell:        defaultShell(),
		ProblemPath:  defaultProblemPath,
		TestcasesDir: defaultTestcasesDir,
		Session:      DefaultSessionConfig(),
		Services: ServicesConfig{
			Atcoder: DefaultServiceConfig(model.ServiceAtcoder),
		},
	}
}

// LoadEnv loads .env from the working directory when present.
func LoadEnv() {
	logger := logger.NewNamedLogger("config")

	_, err := os.Stat(".env")
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warnf("failed to stat .env file with error: %v", err)
		}
		return
	}
	if err := godotenv.Load(".env"); err != nil {
		logger.Warnf("failed to load .env file with error: %v", err)
	}
}

// GenerateTo writes the default acick.yaml.
func GenerateTo(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "# Config file for %s (%s)\n", constants.AppName, constants.AppRepository); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(DefaultBody()); err != nil {
		return fmt.Errorf("could not write config: %w", err)
	}
	return enc.Close()
}

// Load finds acick.yaml in baseDir, or in the working directory or any of its parents when
// baseDir is zero. Without a config file the defaults are used with the working directory as base.
func Load(
	serviceID model.ServiceKind,
	contestID model.ContestID,
	baseDir workspace.AbsPath,
	cnsl *console.Console,
) (*Config, error) {
	logger := logger.NewNamedLogger("config")

	if baseDir.IsZero() {
		cwd, err := workspace.Cwd()
		if err != nil {
			return nil, err
		}
		found, ok := cwd.SearchDirContains(constants.ConfigFileName)
		if !ok {
			logger.Infof("config file not found from %s, using defaults", cwd)
			cnsl.Warn(fmt.Sprintf(
				"Could not find config file (%s) in %s or any of the parent directories, using default config. "+
					"Create config file by `acick init` command.",
				constants.ConfigFileName, cwd))
			return newConfig(serviceID, contestID, cwd, DefaultBody()), nil
		}
		cnsl.Printf("Found config file in base_dir: %s\n", found)
		baseDir = found
	}

	body := DefaultBody()
	err := baseDir.Join(constants.ConfigFileName).LoadPretty(cnsl, baseDir, func(r io.Reader) error {
		if err := yaml.NewDecoder(r).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("could not read config file as yaml: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := body.Validate(); err != nil {
		return nil, err
	}
	logger.Infof("loaded config from %s", baseDir)
	return newConfig(serviceID, contestID, baseDir, body), nil
}

func newConfig(serviceID model.ServiceKind, contestID model.ContestID, baseDir workspace.AbsPath, body Body) *Config {
	if appKey := os.Getenv(constants.EnvDropboxAppKey); appKey != "" {
		body.Dropbox.AppKey = appKey
	}
	return &Config{
		ServiceID: serviceID,
		ContestID: contestID,
		BaseDir:   baseDir,
		Body:      body,
	}
}

// Validate checks that the config file was written for a compatible version of acick.
func (b Body) Validate() error {
	current := semver.New(constants.AppVersion)
	required, err := semver.NewVersion(b.Version)
	if err != nil {
		return fmt.Errorf("could not parse version in config file %q: %w", b.Version, err)
	}
	compatible := required.Major == current.Major && !current.LessThan(*required)
	if required.Major == 0 {
		compatible = compatible && required.Minor == current.Minor
	}
	if !compatible {
		return fmt.Errorf(
			"%w\n    config version: %s\n    acick version : %s\n"+
				"Fix the config file so that it is compatible with the current version of acick",
			customErr.ErrVersionMismatch, required, current)
	}
	if b.Session.RetryLimit < 0 {
		return fmt.Errorf("invalid retry_limit in config file: %d", b.Session.RetryLimit)
	}
	return nil
}

// Service returns the config of the selected service.
func (c *Config) Service() ServiceConfig {
	switch c.ServiceID {
	default:
		return c.Body.Services.Atcoder
	}
}

// Session returns the session settings with paths resolved.
func (c *Config) Session() (Session, error) {
	cookiesPath, err := resolveDataPath(c.Body.Session.CookiesPath, constants.CookiesFileName)
	if err != nil {
		return Session{}, err
	}
	return Session{
		UserAgent:     c.Body.Session.UserAgent,
		Timeout:       c.Body.Session.Timeout.Std(),
		RetryLimit:    c.Body.Session.RetryLimit,
		RetryInterval: c.Body.Session.RetryInterval.Std(),
		CookiesPath:   cookiesPath,
	}, nil
}

// Session holds resolved session settings.
type Session struct {
	UserAgent     string
	Timeout       time.Duration
	RetryLimit    int
	RetryInterval time.Duration
	CookiesPath   workspace.AbsPath
}

// DropboxTokenPath returns the path of the stored Dropbox authorization.
func (c *Config) DropboxTokenPath() (workspace.AbsPath, error) {
	return resolveDataPath(c.Body.Dropbox.TokenPath, constants.DropboxTokenFileName)
}

func resolveDataPath(configured, fileName string) (workspace.AbsPath, error) {
	if configured != "" {
		return workspace.FromShellPath(configured)
	}
	dataDir, err := workspace.DataDir()
	if err != nil {
		return workspace.AbsPath{}, err
	}
	return dataDir.Join(fileName), nil
}

type configView struct {
	ServiceID model.ServiceKind `yaml:"service_id"`
	ContestID model.ContestID   `yaml:"contest_id"`
	BaseDir   string            `yaml:"base_dir"`
	Body      Body              `yaml:"body"`
}

// WriteYAML prints the effective configuration.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	view := configView{
		ServiceID: c.ServiceID,
		ContestID: c.ContestID,
		BaseDir:   c.BaseDir.String(),
		Body:      c.Body,
	}
	if err := enc.Encode(view); err != nil {
		return err
	}
	return enc.Close()
}
