package config

import (
	"fmt"
	"io"

	"github.com/google/shlex"
	"github.com/mini-maxit/acick/internal/console"
	"github.com/mini-maxit/acick/internal/workspace"
	customErr "github.com/mini-maxit/acick/pkg/errors"
	"github.com/mini-maxit/acick/pkg/model"
	"gopkg.in/yaml.v3"
)

func (c *Config) targetContext(problemID model.ProblemID) TargetContext {
	return TargetContext{Service: c.ServiceID, Contest: c.ContestID, Problem: problemID}
}

func (c *Config) expandToAbs(templ string, problemID model.ProblemID) (workspace.AbsPath, error) {
	expanded, err := Expand(templ, c.targetContext(problemID))
	if err != nil {
		return workspace.AbsPath{}, err
	}
	return c.BaseDir.JoinExpand(expanded)
}

func (c *Config) ProblemAbsPath(problemID model.ProblemID) (workspace.AbsPath, error) {
	return c.expandToAbs(c.Body.ProblemPath, problemID)
}

func (c *Config) TestcasesAbsDir(problemID model.ProblemID) (workspace.AbsPath, error) {
	return c.expandToAbs(c.Body.TestcasesDir, problemID)
}

func (c *Config) WorkingAbsDir(problemID model.ProblemID) (workspace.AbsPath, error) {
	return c.expandToAbs(c.Service().WorkingDir, problemID)
}

func (c *Config) SourceAbsPath(problemID model.ProblemID) (workspace.AbsPath, error) {
	return c.expandToAbs(c.Service().SourcePath, problemID)
}

// SaveProblem writes problem.yaml for the problem.
func (c *Config) SaveProblem(problem model.Problem, overwrite bool, cnsl *console.Console) (workspace.SaveResult, error) {
	path, err := c.ProblemAbsPath(problem.ID)
	if err != nil {
		return workspace.SaveSkipped, err
	}
	return path.SavePretty(cnsl, c.BaseDir, func(w io.Writer) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(problem); err != nil {
			return fmt.Errorf("could not save problem as yaml: %w", err)
		}
		return enc.Close()
	}, overwrite)
}

// LoadProblem reads problem.yaml saved by SaveProblem.
func (c *Config) LoadProblem(problemID model.ProblemID, cnsl *console.Console) (model.Problem, error) {
	path, err := c.ProblemAbsPath(problemID)
	if err != nil {
		return model.Problem{}, err
	}
	var problem model.Problem
	err = path.LoadPretty(cnsl, c.BaseDir, func(r io.Reader) error {
		return yaml.NewDecoder(r).Decode(&problem)
	})
	if err != nil {
		return model.Problem{}, fmt.Errorf("could not load problem file, fetch problem data first by `acick fetch` command: %w", err)
	}
	if !problem.ID.Equal(problemID) {
		return model.Problem{}, fmt.Errorf("found mismatching problem id in problem file: %s", problem.ID)
	}
	return problem, nil
}

// ExpandAndSaveSource renders the source template of the service for the problem.
// It returns SaveSkipped without writing when no template is configured.
func (c *Config) ExpandAndSaveSource(
	service model.Service,
	contest model.Contest,
	problem model.Problem,
	overwrite bool,
	cnsl *console.Console,
) (workspace.SaveResult, error) {
	if service.ID != c.ServiceID || !contest.ID.Equal(c.ContestID) {
		return workspace.SaveSkipped, fmt.Errorf("found mismatching service id or contest id")
	}
	templ := c.Service().Template
	if templ == "" {
		return workspace.SaveSkipped, nil
	}
	source, err := Expand(templ, ProblemContext{Service: service, Contest: contest, Problem: problem})
	if err != nil {
		return workspace.SaveSkipped, err
	}
	path, err := c.SourceAbsPath(problem.ID)
	if err != nil {
		return workspace.SaveSkipped, err
	}
	return path.SavePretty(cnsl, c.BaseDir, func(w io.Writer) error {
		_, err := io.WriteString(w, source)
		return err
	}, overwrite)
}

// LoadSource reads the source file of the problem.
func (c *Config) LoadSource(problemID model.ProblemID, cnsl *console.Console) (string, error) {
	path, err := c.SourceAbsPath(problemID)
	if err != nil {
		return "", err
	}
	var source string
	err = path.LoadPretty(cnsl, c.BaseDir, func(r io.Reader) error {
		b, err := io.ReadAll(r)
		source = string(b)
		return err
	})
	return source, err
}

// MoveTestcasesDir moves downloaded testcases from src into the testcases directory of the problem.
// An existing directory is replaced only after confirmation. It reports whether the move happened.
func (c *Config) MoveTestcasesDir(problemID model.ProblemID, src workspace.AbsPath, cnsl *console.Console) (bool, error) {
	dst, err := c.TestcasesAbsDir(problemID)
	if err != nil {
		return false, err
	}
	if dst.Exists() {
		msg := fmt.Sprintf("remove existing testcases dir %s?", dst.StripPrefix(c.BaseDir))
		ok, err := cnsl.Confirm(msg, false)
		if err != nil || !ok {
			return false, err
		}
		if _, err := dst.RemoveDirAllPretty(cnsl, c.BaseDir); err != nil {
			return false, err
		}
	}
	cnsl.Printf("Moving testcases to %s ... ", dst.StripPrefix(c.BaseDir))
	if err := dst.MoveFrom(src); err != nil {
		cnsl.Println("failed")
		return false, err
	}
	cnsl.Println("moved")
	return true, nil
}

// CompileCommand returns the compile command of the service for the problem.
func (c *Config) CompileCommand(problemID model.ProblemID) (model.Command, error) {
	return c.command(c.Service().Compile, problemID)
}

// RunCommand returns the command executing the compiled solution of the problem.
func (c *Config) RunCommand(problemID model.ProblemID) (model.Command, error) {
	return c.command(c.Service().Run, problemID)
}

func (c *Config) command(templ string, problemID model.ProblemID) (model.Command, error) {
	cmd, err := Expand(templ, c.targetContext(problemID))
	if err != nil {
		return model.Command{}, fmt.Errorf("could not expand command template: %w", err)
	}
	args, err := c.ShellArgs(cmd)
	if err != nil {
		return model.Command{}, err
	}
	dir, err := c.WorkingAbsDir(problemID)
	if err != nil {
		return model.Command{}, err
	}
	return model.Command{Args: args, Dir: dir.String()}, nil
}

// ShellArgs wraps cmd with the configured shell. Without a shell, cmd is split into words directly.
func (c *Config) ShellArgs(cmd string) ([]string, error) {
	var (
		args []string
		err  error
	)
	if len(c.Body.Shell) == 0 {
		args, err = shlex.Split(cmd)
		if err != nil {
			return nil, fmt.Errorf("could not split command %q: %w", cmd, err)
		}
	} else {
		args, err = ExpandAll(c.Body.Shell, CmdContext{Command: cmd})
		if err != nil {
			return nil, fmt.Errorf("could not expand shell template: %w", err)
		}
	}
	if len(args) == 0 || args[0] == "" {
		return nil, customErr.ErrEmptyCommand
	}
	return args, nil
}
