package atcoder

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/mini-maxit/acick/internal/console"
	"github.com/mini-maxit/acick/internal/dropbox"
	"github.com/mini-maxit/acick/internal/logger"
	"github.com/mini-maxit/acick/internal/storage"
	"github.com/mini-maxit/acick/internal/workspace"
	"github.com/mini-maxit/acick/pkg/constants"
	customErr "github.com/mini-maxit/acick/pkg/errors"
	"github.com/mini-maxit/acick/pkg/model"
	"github.com/mini-maxit/acick/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultDownloadConcurrency = 8

//go:generate mockgen -destination=../../tests/mocks/atcoder_mock.go -package=mocks . TestcaseSource,TestcaseMover

// TestcaseSource lists and downloads files of the shared testcase archive.
type TestcaseSource interface {
	ListAllFolders(ctx context.Context, path, sharedLinkURL string) ([]dropbox.Metadata, error)
	ListAllFiles(ctx context.Context, path, sharedLinkURL string) ([]dropbox.Metadata, error)
	GetSharedLinkFile(ctx context.Context, sharedLinkURL, path string) (io.ReadCloser, error)
}

// TestcaseMover places a downloaded testcases directory into the workspace.
type TestcaseMover interface {
	MoveTestcasesDir(problemID model.ProblemID, src workspace.AbsPath, cnsl *console.Console) (bool, error)
}

// FullFetcher downloads the complete testcases of contest problems.
type FullFetcher interface {
	FetchFull(ctx context.Context, contestID model.ContestID, problems []model.Problem, mover TestcaseMover, cnsl *console.Console) error
}

type fullFetcher struct {
	source        TestcaseSource
	cache         storage.DownloadCache
	sharedLinkURL string
	tmpRoot       string
	concurrency   int
	logger        *zap.SugaredLogger
}

type FullFetcherOption func(*fullFetcher)

func WithSharedLinkURL(url string) FullFetcherOption {
	return func(f *fullFetcher) {
		f.sharedLinkURL = url
	}
}

// WithDownloadCache reuses files downloaded by earlier runs when their revision is unchanged.
func WithDownloadCache(cache storage.DownloadCache) FullFetcherOption {
	return func(f *fullFetcher) {
		f.cache = cache
	}
}

// WithTempDir sets where testcases are downloaded before being moved into the workspace.
func WithTempDir(dir string) FullFetcherOption {
	return func(f *fullFetcher) {
		f.tmpRoot = dir
	}
}

func WithConcurrency(n int) FullFetcherOption {
	return func(f *fullFetcher) {
		if n > 0 {
			f.concurrency = n
		}
	}
}

func NewFullFetcher(source TestcaseSource, opts ...FullFetcherOption) FullFetcher {
	logger := logger.NewNamedLogger("atcoder-full")
	f := &fullFetcher{
		source:        source,
		sharedLinkURL: constants.DropboxTestcasesURL,
		tmpRoot:       os.TempDir(),
		concurrency:   defaultDownloadConcurrency,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type testcaseFile struct {
	inout storage.InOut
	meta  dropbox.Metadata
}

func (f *fullFetcher) FetchFull(
	ctx context.Context,
	contestID model.ContestID,
	problems []model.Problem,
	mover TestcaseMover,
	cnsl *console.Console,
) error {
	cnsl.Println("Downloading testcase files from Dropbox ...")

	folders, err := f.source.ListAllFolders(ctx, "", f.sharedLinkURL)
	if err != nil {
		return fmt.Errorf("could not list contest folders on dropbox: %w", err)
	}
	var folderName string
	for _, folder := range folders {
		if model.ContestID(folder.Name).Equal(contestID) {
			folderName = folder.Name
			break
		}
	}
	if folderName == "" {
		return fmt.Errorf("%w: %s", customErr.ErrContestFolderNotFound, contestID)
	}
	f.logger.Infof("Found folder %s for contest %s", folderName, contestID)

	for _, problem := range problems {
		if err := f.fetchProblem(ctx, folderName, problem, mover, cnsl); err != nil {
			return err
		}
	}
	return nil
}

// fetchProblem downloads into a fresh temp dir so that a failed download never reaches the workspace.
func (f *fullFetcher) fetchProblem(
	ctx context.Context,
	folderName string,
	problem model.Problem,
	mover TestcaseMover,
	cnsl *console.Console,
) error {
	tmpDir, err := workspace.New(filepath.Join(f.tmpRoot, constants.DownloadTmpDirPrefix+uuid.NewString()))
	if err != nil {
		return fmt.Errorf("could not create temp dir for downloading testcase files: %w", err)
	}
	if err := tmpDir.CreateDirAll(); err != nil {
		return fmt.Errorf("could not create temp dir for downloading testcase files: %w", err)
	}
	defer func() {
		if err := utils.RemoveIO(tmpDir.String(), true, false); err != nil {
			f.logger.Warnf("Failed to remove temp dir %s: %v", tmpDir, err)
		}
	}()

	files, err := f.listTestcaseFiles(ctx, folderName, problem)
	if err != nil {
		return err
	}
	var totalSize uint64
	for _, file := range files {
		totalSize += file.meta.Size
	}
	f.logger.Infof("Downloading %d files (%s) for problem %s", len(files), humanize.IBytes(totalSize), problem.ID)

	writer := storage.NewTestcaseWriter(tmpDir)
	pb := cnsl.NewProgressBar(int64(totalSize), problem.ID.String())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)
	for _, file := range files {
		g.Go(func() error {
			if err := f.download(gctx, folderName, problem, file, writer); err != nil {
				return err
			}
			return pb.Add64(int64(file.meta.Size))
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("could not download testcases of problem %s: %w", problem.ID, err)
	}
	if err := pb.Finish(); err != nil {
		f.logger.Infof("Failed to finish progress bar: %v", err)
	}

	_, err = mover.MoveTestcasesDir(problem.ID, tmpDir, cnsl)
	return err
}

func (f *fullFetcher) listTestcaseFiles(ctx context.Context, folderName string, problem model.Problem) ([]testcaseFile, error) {
	listed := make([][]dropbox.Metadata, len(storage.InOuts))

	g, gctx := errgroup.WithContext(ctx)
	for i, inout := range storage.InOuts {
		g.Go(func() error {
			dir := path.Join("/", folderName, problem.ID.String(), inout.String())
			files, err := f.source.ListAllFiles(gctx, dir, f.sharedLinkURL)
			if err != nil {
				return fmt.Errorf("could not list testcase files on dropbox: %w", err)
			}
			listed[i] = files
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var files []testcaseFile
	for i, inout := range storage.InOuts {
		for _, meta := range listed[i] {
			files = append(files, testcaseFile{inout: inout, meta: meta})
		}
	}
	return files, nil
}

func (f *fullFetcher) download(
	ctx context.Context,
	folderName string,
	problem model.Problem,
	file testcaseFile,
	writer storage.TestcaseWriter,
) error {
	dbxPath := path.Join("/", folderName, problem.ID.String(), file.inout.String(), file.meta.Name)
	key := storage.CacheKey{Path: dbxPath, Rev: file.meta.Rev}

	if f.cache != nil && file.meta.Rev != "" {
		if cached, ok := f.cache.GetCachedFile(key); ok {
			_, err := writer.Store(file.inout, file.meta.Name, cached)
			return err
		}
	}

	r, err := f.source.GetSharedLinkFile(ctx, f.sharedLinkURL, dbxPath)
	if err != nil {
		return err
	}
	defer r.Close()

	dest, err := writer.Write(file.inout, file.meta.Name, r)
	if err != nil {
		return err
	}
	if f.cache != nil && file.meta.Rev != "" {
		if err := f.cache.CacheFile(key, dest); err != nil {
			f.logger.Warnf("Failed to cache %s: %v", dbxPath, err)
		}
	}
	return nil
}
