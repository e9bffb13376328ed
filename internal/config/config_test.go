package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mini-maxit/acick/internal/config"
	"github.com/mini-maxit/acick/internal/console"
	"github.com/mini-maxit/acick/internal/workspace"
	customErr "github.com/mini-maxit/acick/pkg/errors"
	"github.com/mini-maxit/acick/pkg/model"
	"github.com/mini-maxit/acick/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func loadConfig(t *testing.T, yamlContent string) *config.Config {
	t.Helper()
	t.Setenv("ACICK_DATA_DIR", t.TempDir())
	dir := t.TempDir()
	tests.WriteFile(t, dir, "acick.yaml", yamlContent)
	cfg, err := config.Load(model.ServiceAtcoder, "arc100", workspace.MustNew(dir), console.NewSink())
	require.NoError(t, err)
	return cfg
}

func TestGenerateTo_DecodesToDefaults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, config.GenerateTo(&buf))

	var body config.Body
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &body))
	assert.Equal(t, config.DefaultBody(), body)
}

func TestLoad_FillsMissingKeysWithDefaults(t *testing.T) {
	cfg := loadConfig(t, "version: 0.1.0\nsession:\n  timeout: 10 sec\n  retry_limit: 1\n")

	assert.Equal(t, 10*time.Second, cfg.Body.Session.Timeout.Std())
	assert.Equal(t, 1, cfg.Body.Session.RetryLimit)
	assert.Equal(t, 2*time.Second, cfg.Body.Session.RetryInterval.Std())
	assert.Equal(t, config.DefaultServiceConfig(model.ServiceAtcoder), cfg.Service())
	assert.Contains(t, cfg.Body.Session.UserAgent, "acick-0.1.0")
}

func TestLoad_VersionMismatch(t *testing.T) {
	for _, version := range []string{"0.2.0", "1.0.0", "0.1.5"} {
		t.Run(version, func(t *testing.T) {
			dir := t.TempDir()
			tests.WriteFile(t, dir, "acick.yaml", "version: "+version+"\n")
			_, err := config.Load(model.ServiceAtcoder, "arc100", workspace.MustNew(dir), console.NewSink())
			assert.ErrorIs(t, err, customErr.ErrVersionMismatch)
		})
	}
}

func TestLoad_DropboxAppKeyFromEnv(t *testing.T) {
	t.Setenv("ACICK_DBX_APP_KEY", "from-env")
	cfg := loadConfig(t, "version: 0.1.0\ndropbox:\n  app_key: from-file\n")
	assert.Equal(t, "from-env", cfg.Body.Dropbox.AppKey)
}

func TestSession_ResolvesCookiesPath(t *testing.T) {
	cfg := loadConfig(t, "version: 0.1.0\n")
	session, err := cfg.Session()
	require.NoError(t, err)
	assert.Equal(t, "cookies.json", session.CookiesPath.Base())
	assert.Equal(t, 4, session.RetryLimit)

	t.Setenv("ACICK_TEST_COOKIES", "/tmp/acick-cookies")
	cfg.Body.Session.CookiesPath = "$ACICK_TEST_COOKIES/c.json"
	session, err = cfg.Session()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/acick-cookies/c.json", session.CookiesPath.String())
}

func TestExpand_CaseFunctions(t *testing.T) {
	ctx := config.ProblemContext{
		Service: model.NewService(model.ServiceAtcoder),
		Contest: model.NewContest("arc100", "AtCoder Regular Contest 100"),
		Problem: model.NewProblem("c", "LinearApproximation", "arc100_a", nil, nil, model.CompareDefault, nil),
	}

	tests := []struct {
		templ    string
		expected string
	}{
		{templ: "{{ .Service.ID }}/{{ .Contest.ID }}/{{ .Problem.ID }}", expected: "atcoder/arc100/C"},
		{templ: "{{ lower .Problem.ID }}", expected: "c"},
		{templ: "{{ upper .Contest.ID }}", expected: "ARC100"},
		{templ: "{{ snake .Problem.Name }}", expected: "linear_approximation"},
		{templ: "{{ kebab .Problem.Name }}", expected: "linear-approximation"},
		{templ: "{{ camel .Problem.Name }}", expected: "linearApproximation"},
		{templ: "{{ pascal .Service.ID }}", expected: "Atcoder"},
	}

	for _, tt := range tests {
		t.Run(tt.templ, func(t *testing.T) {
			got, err := config.Expand(tt.templ, ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)

			again, err := config.Expand(tt.templ, ctx)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestExpand_Errors(t *testing.T) {
	_, err := config.Expand("{{ .Undefined }}", config.CmdContext{Command: "echo"})
	assert.Error(t, err)

	_, err = config.Expand("{{ .Command", config.CmdContext{Command: "echo"})
	assert.Error(t, err)
}

func TestPaths(t *testing.T) {
	cfg := loadConfig(t, "version: 0.1.0\n")

	problemPath, err := cfg.ProblemAbsPath("c")
	require.NoError(t, err)
	assert.Equal(t, cfg.BaseDir.Join("atcoder/arc100/c/problem.yaml"), problemPath)

	testcasesDir, err := cfg.TestcasesAbsDir("C")
	require.NoError(t, err)
	assert.Equal(t, cfg.BaseDir.Join("atcoder/arc100/c/testcases"), testcasesDir)

	sourcePath, err := cfg.SourceAbsPath("C")
	require.NoError(t, err)
	assert.Equal(t, cfg.BaseDir.Join("atcoder/arc100/c/Main.cpp"), sourcePath)
}

func TestSaveAndLoadProblem(t *testing.T) {
	cfg := loadConfig(t, "version: 0.1.0\n")
	cnsl := console.NewBuffer("")
	problem := model.NewProblem("C", "Linear Approximation", "arc100_a",
		model.NewDuration(2*time.Second), nil, model.CompareDefault,
		[]model.Sample{model.NewSample("1", "5\n2 2 3 5 5\n", "2\n")})

	result, err := cfg.SaveProblem(problem, false, cnsl)
	require.NoError(t, err)
	assert.Equal(t, workspace.SaveCreated, result)

	loaded, err := cfg.LoadProblem("c", cnsl)
	require.NoError(t, err)
	assert.Equal(t, problem, loaded)

	assert.Contains(t, cnsl.Output(), "Saving atcoder/arc100/c/problem.yaml ... saved")
	assert.Contains(t, cnsl.Output(), "Loading atcoder/arc100/c/problem.yaml ... loaded")

	_, err = cfg.LoadProblem("D", cnsl)
	assert.Error(t, err)
}

func TestExpandAndSaveSource(t *testing.T) {
	cfg := loadConfig(t, "version: 0.1.0\n")
	cnsl := console.NewSink()
	service := model.NewService(model.ServiceAtcoder)
	contest := model.NewContest("arc100", "AtCoder Regular Contest 100")
	problem := model.NewProblem("C", "Linear Approximation", "arc100_a", nil, nil, model.CompareDefault, nil)

	_, err := cfg.ExpandAndSaveSource(service, contest, problem, false, cnsl)
	require.NoError(t, err)

	source, err := cfg.LoadSource("C", cnsl)
	require.NoError(t, err)
	assert.Contains(t, source, "[arc100] C - Linear Approximation")

	other := model.NewContest("arc101", "AtCoder Regular Contest 101")
	_, err = cfg.ExpandAndSaveSource(service, other, problem, false, cnsl)
	assert.Error(t, err)
}

func TestCommands(t *testing.T) {
	cfg := loadConfig(t, "version: 0.1.0\nshell: []\nservices:\n  atcoder:\n    lang_names: [\"Python (3.8.2)\"]\n"+
		"    working_dir: \"{{ .Service }}/{{ .Contest }}/{{ lower .Problem }}\"\n"+
		"    source_path: \"{{ .Service }}/{{ .Contest }}/{{ lower .Problem }}/main.py\"\n"+
		"    compile: \"python3 -m py_compile main.py\"\n"+
		"    run: \"python3 'main.py'\"\n")

	compile, err := cfg.CompileCommand("C")
	require.NoError(t, err)
	assert.Equal(t, []string{"python3", "-m", "py_compile", "main.py"}, compile.Args)
	assert.Equal(t, cfg.BaseDir.Join("atcoder/arc100/c").String(), compile.Dir)

	run, err := cfg.RunCommand("C")
	require.NoError(t, err)
	assert.Equal(t, []string{"python3", "main.py"}, run.Args)

	cfg.Body.Shell = []string{"/bin/sh", "-c", "{{ .Command }}"}
	run, err = cfg.RunCommand("C")
	require.NoError(t, err)
	assert.Equal(t, []string{"/bin/sh", "-c", "python3 'main.py'"}, run.Args)

	cfg.Body.Shell = nil
	cfg.Body.Services.Atcoder.Run = "   "
	_, err = cfg.RunCommand("C")
	assert.ErrorIs(t, err, customErr.ErrEmptyCommand)
}

func TestMoveTestcasesDir(t *testing.T) {
	cfg := loadConfig(t, "version: 0.1.0\n")
	src := t.TempDir()
	tests.WriteFile(t, src, "download/in/01.txt", "1\n")
	tests.WriteFile(t, cfg.BaseDir.String(), "atcoder/arc100/c/testcases/in/old.txt", "old\n")

	moved, err := cfg.MoveTestcasesDir("C", workspace.MustNew(filepath.Join(src, "download")), console.NewBuffer("n\n"))
	require.NoError(t, err)
	assert.False(t, moved)

	cnsl := console.NewBuffer("y\n")
	moved, err = cfg.MoveTestcasesDir("C", workspace.MustNew(filepath.Join(src, "download")), cnsl)
	require.NoError(t, err)
	assert.True(t, moved)

	dir := cfg.BaseDir.Join("atcoder/arc100/c/testcases")
	assert.True(t, dir.Join("in/01.txt").IsFile())
	assert.False(t, dir.Join("in/old.txt").Exists())
	_, err = os.Stat(filepath.Join(src, "download"))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteYAML(t *testing.T) {
	cfg := loadConfig(t, "version: 0.1.0\n")
	var buf bytes.Buffer
	require.NoError(t, cfg.WriteYAML(&buf))
	assert.Contains(t, buf.String(), "service_id: atcoder")
	assert.Contains(t, buf.String(), "contest_id: arc100")
	assert.Contains(t, buf.String(), "base_dir: "+cfg.BaseDir.String())
}
