package scanner

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sambabib/webcompat/pkg/aggregator"
	"github.com/sambabib/webcompat/pkg/assets"
	"github.com/sambabib/webcompat/pkg/catalog"
	"github.com/sambabib/webcompat/pkg/compat"
	"github.com/sambabib/webcompat/pkg/detector"
	"github.com/sambabib/webcompat/pkg/fetcher"
	"github.com/sambabib/webcompat/pkg/logger"
	"github.com/sambabib/webcompat/pkg/report"
)

// ErrTargetNotDirectory is returned when a directory scan is pointed at something else.
var ErrTargetNotDirectory = errors.New("scan target is not a directory")

const (
	DefaultFileBatchSize  = 10
	DefaultAssetBatchSize = 6
)

// Options control batching, exclusion and report construction.
type Options struct {
	FileBatchSize  int
	AssetBatchSize int
	Exclude        func(relPath string) bool // nil excludes nothing
	Targets        compat.Targets
	Now            func() time.Time // report clock, defaults to time.Now
}

// Scanner runs scan sessions against directories or URLs.
// Each scan gets its own aggregator; only the catalog and rules are shared.
type Scanner struct {
	catalog   *catalog.Catalog
	detectors *detector.Set
	client    fetcher.Client
	opts      Options
}

// New creates a Scanner. client may be nil if only directory scans are used.
func New(cat *catalog.Catalog, detectors *detector.Set, client fetcher.Client, opts Options) *Scanner {
	if opts.FileBatchSize <= 0 {
		opts.FileBatchSize = DefaultFileBatchSize
	}
	if opts.AssetBatchSize <= 0 {
		opts.AssetBatchSize = DefaultAssetBatchSize
	}
	return &Scanner{
		catalog:   cat,
		detectors: detectors,
		client:    client,
		opts:      opts,
	}
}

// NewDefault creates a Scanner with the built-in catalog and rules.
func NewDefault(client fetcher.Client, opts Options) (*Scanner, error) {
	cat := catalog.Default()
	detectors, err := detector.NewSet(cat)
	if err != nil {
		return nil, err
	}
	return New(cat, detectors, client, opts), nil
}

// session is the state of one scan; it is discarded once the report is built
type session struct {
	scanner *Scanner
	agg     *aggregator.Aggregator
}

func (s *Scanner) newSession() *session {
	return &session{scanner: s, agg: aggregator.New()}
}

// analyze runs the detectors over one content unit and records the hits under location.
func (ss *session) analyze(content, location string) {
	features := ss.scanner.detectors.DetectLocation(content, location)
	if len(features) > 0 {
		logger.Debugf("%s: %v", location, features)
	}
	ss.agg.RecordAll(features, location)
}

func (ss *session) report(project string) *report.ScanReport {
	return report.Build(ss.agg.Snapshot(), ss.scanner.catalog, project, report.Options{
		Targets: ss.scanner.opts.Targets,
		Now:     ss.scanner.opts.Now,
	})
}

// ScanDirectory scans every html, css and js file under root.
// Files that cannot be read are logged and skipped.
func (s *Scanner) ScanDirectory(ctx context.Context, root string) (*report.ScanReport, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}

	files, err := Enumerate(absRoot, s.opts.Exclude)
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}
	logger.Infof("Scanning %d files in %s", len(files), absRoot)

	ss := s.newSession()
	err = runBatches(ctx, files, s.opts.FileBatchSize, func(_ context.Context, rel string) {
		content, err := os.ReadFile(filepath.Join(absRoot, filepath.FromSlash(rel)))
		if err != nil {
			logger.Errorf("Error processing %s: %v", rel, err)
			return
		}
		ss.analyze(string(content), rel)
	}, func(done int) {
		logger.Debugf("Scanned %d/%d files", done, len(files))
	})
	if err != nil {
		return nil, err
	}

	logger.Infof("Scanned %d files", len(files))
	return ss.report(filepath.Base(absRoot)), nil
}

// ScanURL fetches a page, analyzes it and then the stylesheets and scripts it links to.
// Failing to fetch the page is fatal; failing to fetch a linked asset is only logged.
func (s *Scanner) ScanURL(ctx context.Context, pageURL string) (*report.ScanReport, error) {
	if s.client == nil {
		return nil, errors.New("url scan requires an http client")
	}

	logger.Infof("Fetching %s", pageURL)
	page, err := s.client.Get(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to scan URL: %w", err)
	}

	ss := s.newSession()
	ss.analyze(page.Body, pageURL)

	linked, err := assets.Extract(pageURL, page.Body)
	if err != nil {
		logger.Warnf("Asset extraction failed: %v", err)
		linked = nil
	}

	if len(linked) > 0 {
		logger.Infof("Fetching %d linked assets", len(linked))
		err = runBatches(ctx, linked, s.opts.AssetBatchSize, func(ctx context.Context, asset string) {
			resp, err := s.client.Get(ctx, asset)
			if err != nil {
				logger.Warnf("Failed to fetch asset %s: %v", asset, err)
				return
			}
			ss.analyze(resp.Body, asset)
		}, func(done int) {
			logger.Debugf("Fetched %d/%d assets", done, len(linked))
		})
		if err != nil {
			return nil, err
		}
	}

	logger.Infof("URL scanned")
	return ss.report(projectLabel(pageURL)), nil
}

func projectLabel(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return pageURL
	}
	return u.Host
}

// runBatches calls fn for every item, running up to size calls concurrently and waiting
// for each batch to finish before starting the next. It stops early if ctx is done.
func runBatches(ctx context.Context, items []string, size int, fn func(ctx context.Context, item string), progress func(done int)) error {
	for start := 0; start < len(items); start += size {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(start+size, len(items))

		g, gctx := errgroup.WithContext(ctx)
		for _, item := range items[start:end] {
			item := item
			g.Go(func() error {
				fn(gctx, item)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		if progress != nil {
			progress(end)
		}
	}
	return ctx.Err()
}
