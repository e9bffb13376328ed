package verifier

import (
	"time"

	"github.com/mini-maxit/acick/internal/logger"
	"github.com/mini-maxit/acick/pkg/constants"
	"github.com/mini-maxit/acick/pkg/model"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=../../../tests/mocks/verifier_mock.go -package=mocks . Verifier

// Verifier compares the output of a run that exited normally with the expected output.
type Verifier interface {
	Evaluate(sampleName, expected, actual string, elapsed time.Duration, compare model.Compare) Status
}

type verifier struct {
	logger *zap.SugaredLogger
}

func NewVerifier() Verifier {
	logger := logger.NewNamedLogger("verifier")
	return &verifier{logger: logger}
}

// Evaluate returns AC when every line pair matches under compare and WA otherwise.
func (v *verifier) Evaluate(sampleName, expected, actual string, elapsed time.Duration, compare model.Compare) Status {
	diff := NewTextDiff(constants.DiffTitleExpected, constants.DiffTitleActual, expected, actual, compare)
	if diff.AnyMismatch {
		v.logger.Debugf("Output of %s differs from the expected output", sampleName)
		return NewWA(sampleName, elapsed, diff)
	}
	return NewAC(sampleName, elapsed, diff)
}
