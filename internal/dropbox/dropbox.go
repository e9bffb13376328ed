package dropbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/mini-maxit/acick/internal/logger"
	"github.com/mini-maxit/acick/pkg/constants"
	customErr "github.com/mini-maxit/acick/pkg/errors"
	"go.uber.org/zap"
)

const (
	tagFile   = "file"
	tagFolder = "folder"
)

// Metadata describes an entry of a Dropbox folder.
type Metadata struct {
	Tag         string `json:".tag"`
	Name        string `json:"name"`
	PathLower   string `json:"path_lower,omitempty"`
	PathDisplay string `json:"path_display,omitempty"`
	ID          string `json:"id,omitempty"`
	Size        uint64 `json:"size,omitempty"`
	Rev         string `json:"rev,omitempty"`
	ContentHash string `json:"content_hash,omitempty"`
}

func (m Metadata) IsFile() bool {
	return m.Tag == tagFile
}

func (m Metadata) IsFolder() bool {
	return m.Tag == tagFolder
}

type sharedLink struct {
	URL string `json:"url"`
}

type listFolderArg struct {
	Path       string      `json:"path"`
	SharedLink *sharedLink `json:"shared_link,omitempty"`
}

type listFolderContinueArg struct {
	Cursor string `json:"cursor"`
}

type listFolderResult struct {
	Entries []Metadata `json:"entries"`
	Cursor  string     `json:"cursor"`
	HasMore bool       `json:"has_more"`
}

type getSharedLinkFileArg struct {
	URL  string `json:"url"`
	Path string `json:"path,omitempty"`
}

// Client calls the Dropbox HTTP API with an authorized http.Client.
type Client struct {
	httpClient *http.Client
	apiURL     string
	contentURL string
	logger     *zap.SugaredLogger
}

type ClientOption func(*Client)

// WithEndpoints replaces the API and content hosts.
func WithEndpoints(apiURL, contentURL string) ClientOption {
	return func(c *Client) {
		c.apiURL = strings.TrimRight(apiURL, "/")
		c.contentURL = strings.TrimRight(contentURL, "/")
	}
}

// NewClient wraps httpClient, which is expected to add the bearer token to every request.
func NewClient(httpClient *http.Client, opts ...ClientOption) *Client {
	logger := logger.NewNamedLogger("dropbox")
	c := &Client{
		httpClient: httpClient,
		apiURL:     constants.DropboxAPIURL,
		contentURL: constants.DropboxContentURL,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListFolder lists all entries under path, following cursors while more entries exist.
// A non-empty sharedLinkURL makes path relative to the shared folder.
func (c *Client) ListFolder(ctx context.Context, path, sharedLinkURL string) ([]Metadata, error) {
	arg := listFolderArg{Path: path}
	if sharedLinkURL != "" {
		arg.SharedLink = &sharedLink{URL: sharedLinkURL}
	}
	var res listFolderResult
	if err := c.rpc(ctx, "/files/list_folder", arg, &res); err != nil {
		return nil, fmt.Errorf("could not list folder %q: %w", path, err)
	}
	entries := res.Entries
	for res.HasMore {
		cursor := res.Cursor
		res = listFolderResult{}
		if err := c.rpc(ctx, "/files/list_folder/continue", listFolderContinueArg{Cursor: cursor}, &res); err != nil {
			return nil, fmt.Errorf("could not continue listing folder %q: %w", path, err)
		}
		entries = append(entries, res.Entries...)
	}
	c.logger.Debugf("Listed %d entries in %q", len(entries), path)
	return entries, nil
}

func (c *Client) ListAllFolders(ctx context.Context, path, sharedLinkURL string) ([]Metadata, error) {
	return c.listFiltered(ctx, path, sharedLinkURL, Metadata.IsFolder)
}

func (c *Client) ListAllFiles(ctx context.Context, path, sharedLinkURL string) ([]Metadata, error) {
	return c.listFiltered(ctx, path, sharedLinkURL, Metadata.IsFile)
}

func (c *Client) listFiltered(ctx context.Context, path, sharedLinkURL string, keep func(Metadata) bool) ([]Metadata, error) {
	entries, err := c.ListFolder(ctx, path, sharedLinkURL)
	if err != nil {
		return nil, err
	}
	filtered := make([]Metadata, 0, len(entries))
	for _, e := range entries {
		if keep(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

// GetSharedLinkFile streams the content of the file at path in the shared folder.
// The caller closes the returned reader.
func (c *Client) GetSharedLinkFile(ctx context.Context, sharedLinkURL, path string) (io.ReadCloser, error) {
	arg, err := apiArg(getSharedLinkFileArg{URL: sharedLinkURL, Path: path})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.contentURL+"/sharing/get_shared_link_file", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", customErr.ErrBuildRequest, err)
	}
	req.Header.Set("Dropbox-API-Arg", arg)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", customErr.ErrTransport, err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, apiError(resp)
	}
	return resp.Body, nil
}

func (c *Client) rpc(ctx context.Context, endpoint string, arg, result interface{}) error {
	body, err := json.Marshal(arg)
	if err != nil {
		return fmt.Errorf("%w: %w", customErr.ErrBuildRequest, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", customErr.ErrBuildRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", customErr.ErrTransport, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("could not decode response of %s: %w", endpoint, err)
	}
	return nil
}

func apiError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("%w: %s: %s", customErr.ErrDropboxAPI, resp.Status, strings.TrimSpace(string(b)))
}

// apiArg encodes v for the Dropbox-API-Arg header, which only allows ASCII.
func apiArg(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %w", customErr.ErrBuildRequest, err)
	}
	var sb strings.Builder
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		b = b[size:]
		if r < utf8.RuneSelf {
			sb.WriteRune(r)
			continue
		}
		if r > 0xFFFF {
			r1, r2 := utf16.EncodeRune(r)
			fmt.Fprintf(&sb, `\u%04x\u%04x`, r1, r2)
			continue
		}
		fmt.Fprintf(&sb, `\u%04x`, r)
	}
	return sb.String(), nil
}
