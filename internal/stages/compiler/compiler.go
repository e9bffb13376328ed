package compiler

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/mini-maxit/acick/internal/console"
	"github.com/mini-maxit/acick/internal/logger"
	customErr "github.com/mini-maxit/acick/pkg/errors"
	"github.com/mini-maxit/acick/pkg/model"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=../../../tests/mocks/compiler_mock.go -package=mocks . Compiler

// Compiler builds the solution with the compile command configured for the service.
type Compiler interface {
	Compile(ctx context.Context, cmd model.Command, cnsl *console.Console) error
}

type compiler struct {
	logger *zap.SugaredLogger
}

func NewCompiler() Compiler {
	logger := logger.NewNamedLogger("compiler")
	return &compiler{logger: logger}
}

// Compile runs cmd with its output shown on cnsl. A non-zero exit fails with ErrCompilationFailed.
func (c *compiler) Compile(ctx context.Context, cmd model.Command, cnsl *console.Console) error {
	if len(cmd.Args) == 0 || cmd.Args[0] == "" {
		return customErr.ErrEmptyCommand
	}

	cnsl.Println("Compiling ...")
	c.logger.Infof("Compiling with %s in %s", cmd, cmd.Dir)

	proc := exec.CommandContext(ctx, cmd.Args[0], cmd.Args[1:]...)
	proc.Dir = cmd.Dir
	proc.Stdout = cnsl
	proc.Stderr = cnsl

	start := time.Now()
	if err := proc.Run(); err != nil {
		c.logger.Errorf("Error during compilation. %s", err)
		return fmt.Errorf("%w: %w", customErr.ErrCompilationFailed, err)
	}
	c.logger.Infof("Compilation successful in %s", time.Since(start))
	return nil
}
