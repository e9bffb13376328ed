package dropbox

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mini-maxit/acick/internal/logger"
	"github.com/mini-maxit/acick/pkg/constants"
)

const (
	codeParam  = "code"
	stateParam = "state"
)

// NewCallbackHandler accepts the OAuth redirect at path and publishes the
// authorization code on codes. Only the first code is kept.
func NewCallbackHandler(path, state string, codes chan<- string) http.Handler {
	r := chi.NewRouter()
	r.Get(path, func(w http.ResponseWriter, req *http.Request) {
		query := req.URL.Query()
		code := query.Get(codeParam)
		if code == "" {
			http.Error(w, fmt.Sprintf(constants.CallbackMessageMissing, codeParam), http.StatusBadRequest)
			return
		}
		if !query.Has(stateParam) {
			http.Error(w, fmt.Sprintf(constants.CallbackMessageMissing, stateParam), http.StatusBadRequest)
			return
		}
		if query.Get(stateParam) != state {
			http.Error(w, fmt.Sprintf(constants.CallbackMessageInvalid, stateParam), http.StatusBadRequest)
			return
		}
		select {
		case codes <- code:
		default:
		}
		_, _ = w.Write([]byte(constants.CallbackMessageSuccess))
	})
	notFound := func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, constants.CallbackMessageNotFound, http.StatusNotFound)
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)
	return r
}

// serveCallback runs the callback server on 127.0.0.1:port until the first code
// arrives or ctx is done. started is called once the port is bound.
func serveCallback(ctx context.Context, port int, path, state string, started func()) (string, error) {
	logger := logger.NewNamedLogger("dropbox-callback")

	ln, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(port)))
	if err != nil {
		return "", fmt.Errorf("could not start callback server: %w", err)
	}
	codes := make(chan string, 1)
	srv := &http.Server{Handler: NewCallbackHandler(path, state, codes)}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()
	logger.Infof("Waiting for authorization code on %s%s", ln.Addr(), path)
	started()

	var code string
	select {
	case code = <-codes:
	case err = <-serveErr:
		if err == nil {
			err = http.ErrServerClosed
		}
	case <-ctx.Done():
		err = ctx.Err()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.CallbackShutdownTimeout)
	defer cancel()
	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Infof("Failed to shut down callback server: %v", shutdownErr)
	}
	if err != nil {
		return "", fmt.Errorf("could not receive authorization code: %w", err)
	}
	logger.Infof("Received authorization code")
	return code, nil
}
