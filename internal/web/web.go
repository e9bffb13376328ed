package web

import (
	"fmt"
	"io"

	"github.com/mini-maxit/acick/internal/console"
	"github.com/mini-maxit/acick/internal/logger"
	"github.com/pkg/browser"
)

// Opener opens URLs for the user.
type Opener interface {
	Open(url string) error
}

type systemBrowser struct{}

// NewSystemBrowser returns an Opener launching the default browser of the host.
func NewSystemBrowser() Opener {
	return systemBrowser{}
}

func (systemBrowser) Open(url string) error {
	// The launched process inherits stdout, which would mix with console output.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return browser.OpenURL(url)
}

// OpenInBrowser opens url with opener. Failures are only reported as warnings.
func OpenInBrowser(opener Opener, url string, cnsl *console.Console) {
	logger := logger.NewNamedLogger("web")

	cnsl.Printf("Opening %s in browser ...\n", url)
	if err := opener.Open(url); err != nil {
		logger.Infof("Failed to open %s in browser: %v", url, err)
		cnsl.Warn(fmt.Sprintf("Could not open %s in browser: %v", url, err))
		return
	}
	logger.Infof("Opened %s in browser", url)
}
