package dropbox_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mini-maxit/acick/internal/dropbox"
	"github.com/stretchr/testify/assert"
)

func TestCallbackHandler(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		target   string
		status   int
		body     string
		wantCode bool
	}{
		{name: "Valid", method: http.MethodGet, target: "/path?code=test_code&state=test_state", status: http.StatusOK, body: "Successfully completed authorization", wantCode: true},
		{name: "Missing code", method: http.MethodGet, target: "/path", status: http.StatusBadRequest, body: "Missing parameter: code"},
		{name: "Missing state", method: http.MethodGet, target: "/path?code=test_code", status: http.StatusBadRequest, body: "Missing parameter: state"},
		{name: "Invalid state", method: http.MethodGet, target: "/path?code=test_code&state=invalid_state", status: http.StatusBadRequest, body: "Invalid parameter: state"},
		{name: "Invalid path", method: http.MethodGet, target: "/invalid_path?code=test_code&state=test_state", status: http.StatusNotFound, body: "Not Found"},
		{name: "Invalid method", method: http.MethodPost, target: "/path?code=test_code&state=test_state", status: http.StatusNotFound, body: "Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codes := make(chan string, 1)
			handler := dropbox.NewCallbackHandler("/path", "test_state", codes)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tt.method, "http://localhost:4100"+tt.target, nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.True(t, strings.HasPrefix(rec.Body.String(), tt.body), rec.Body.String())
			if tt.wantCode {
				assert.Equal(t, "test_code", <-codes)
			} else {
				assert.Empty(t, codes)
			}
		})
	}
}

func TestCallbackHandler_KeepsFirstCode(t *testing.T) {
	codes := make(chan string, 1)
	handler := dropbox.NewCallbackHandler("/path", "s", codes)

	for _, code := range []string{"first", "second"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/path?code="+code+"&state=s", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, "first", <-codes)
}
