package scanner

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sambabib/webcompat/pkg/aggregator"
	"github.com/sambabib/webcompat/pkg/catalog"
	"github.com/sambabib/webcompat/pkg/compat"
	"github.com/sambabib/webcompat/pkg/fetcher"
)

// writeProject creates files (relative path -> content) in a fresh temporary directory.
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "webcompat-scan-")
	require.NoError(t, err, "Failed to create temp directory")
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	for name, content := range files {
		path := filepath.Join(tempDir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return tempDir
}

func newTestScanner(t *testing.T, client fetcher.Client, opts Options) *Scanner {
	t.Helper()
	s, err := NewDefault(client, opts)
	require.NoError(t, err)
	return s
}

var testProject = map[string]string{
	"index.html": strings.Join([]string{
		"<!DOCTYPE html>",
		"<html>",
		"<head>",
		"  <title>Test Page</title>",
		`  <link rel="stylesheet" href="styles.css">`,
		"</head>",
		"<body>",
		`  <div class="grid-container">`,
		`    <div class="grid-item">Item 1</div>`,
		"  </div>",
		`  <script type="module" src="app.js"></script>`,
		"</body>",
		"</html>",
	}, "\n"),
	"styles.css": strings.Join([]string{
		".grid-container {",
		"  display: grid;",
		"  grid-template-columns: 1fr 1fr;",
		"}",
		".flex-container {",
		"  display: flex;",
		"}",
	}, "\n"),
	"app.js": "// Simple JavaScript file\nconsole.log(\"Hello, world!\");",
}

func TestScanDirectory_EndToEnd(t *testing.T) {
	dir := writeProject(t, testProject)
	s := newTestScanner(t, nil, Options{})

	r, err := s.ScanDirectory(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Base(dir), r.Project)
	assert.ElementsMatch(t, []string{catalog.CSSGrid, catalog.Flexbox, catalog.JSESModules}, r.FeatureIDs())
	assert.Equal(t, []string{catalog.Flexbox, catalog.CSSGrid, catalog.JSESModules}, r.FeatureIDs(), "baseline features first, then by name")

	for _, f := range r.Features {
		assert.GreaterOrEqual(t, f.Count, 1, f.ID)
		assert.NotContains(t, f.Locations, "app.js", "plain js file must not contribute")
	}

	grid, ok := r.Feature(catalog.CSSGrid)
	require.True(t, ok)
	assert.Equal(t, "baseline", grid.Status)
	assert.Equal(t, []string{"styles.css"}, grid.Locations)

	esm, _ := r.Feature(catalog.JSESModules)
	assert.Equal(t, []string{"index.html"}, esm.Locations)
}

func TestScanDirectory_NestedPathsAndScopes(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"src/components/Card.tsx":   "export default function Card(p) { return p?.title ?? '' }",
		"src/styles/card.scss":      ".card { position: sticky; container-type: inline-size; }",
		"src/styles/theme.less":     "@base: #fff; .a:has(> img) { color: @base }",
		"public/legacy.htm":         `<script type="importmap">{}</script>`,
		"docs/notes.md":             "display: grid",
		"src/styles/sticky-in.js":   "const css = 'position: sticky'",
		"node_modules/lib/index.js": "export { x }",
	})
	s := newTestScanner(t, nil, Options{Exclude: func(rel string) bool {
		return strings.HasPrefix(rel, "node_modules")
	}})

	r, err := s.ScanDirectory(context.Background(), dir)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		catalog.JSESModules,
		catalog.JSOptionalChaining,
		catalog.JSNullishCoalescing,
		catalog.CSSPositionSticky,
		catalog.CSSContainerQueries,
		catalog.CSSHasPseudo,
		catalog.JSImportMaps,
	}, r.FeatureIDs())

	sticky, _ := r.Feature(catalog.CSSPositionSticky)
	assert.Equal(t, []string{"src/styles/card.scss"}, sticky.Locations, "sticky in a js string is not a css hit")

	esm, _ := r.Feature(catalog.JSESModules)
	assert.Equal(t, []string{"src/components/Card.tsx"}, esm.Locations, "excluded directories are skipped")
}

func TestScanDirectory_TruncatesLocations(t *testing.T) {
	files := map[string]string{}
	for i := 0; i < 23; i++ {
		files[fmt.Sprintf("css/part%02d.css", i)] = ".x { display:flex }"
	}
	dir := writeProject(t, files)
	s := newTestScanner(t, nil, Options{FileBatchSize: 4})

	r, err := s.ScanDirectory(context.Background(), dir)
	require.NoError(t, err)

	flex, ok := r.Feature(catalog.Flexbox)
	require.True(t, ok)
	assert.Equal(t, 23, flex.Count)
	require.Len(t, flex.Locations, aggregator.MaxLocations+1)
	assert.Equal(t, aggregator.TruncationSentinel, flex.Locations[aggregator.MaxLocations])
}

func TestScanDirectory_UnreadableFileIsSkipped(t *testing.T) {
	dir := writeProject(t, testProject)
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing.css"), filepath.Join(dir, "broken.css")))

	s := newTestScanner(t, nil, Options{})
	r, err := s.ScanDirectory(context.Background(), dir)
	require.NoError(t, err)
	assert.Len(t, r.Features, 3)
}

func TestScanDirectory_WithTargets(t *testing.T) {
	dir := writeProject(t, testProject)
	fixed := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	s := newTestScanner(t, nil, Options{
		Targets: compat.Targets{"chrome": "50"},
		Now:     func() time.Time { return fixed },
	})

	r, err := s.ScanDirectory(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-18T12:00:00.000Z", r.Timestamp)

	grid, _ := r.Feature(catalog.CSSGrid)
	require.Len(t, grid.Targets, 1)
	assert.Equal(t, compat.Unsupported, grid.Targets[0].Status)

	flex, _ := r.Feature(catalog.Flexbox)
	assert.Equal(t, compat.Supported, flex.Targets[0].Status)
}

func TestScanDirectory_Errors(t *testing.T) {
	s := newTestScanner(t, nil, Options{})

	_, err := s.ScanDirectory(context.Background(), filepath.Join(os.TempDir(), "webcompat-does-not-exist"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	dir := writeProject(t, testProject)
	_, err = s.ScanDirectory(context.Background(), filepath.Join(dir, "styles.css"))
	assert.ErrorIs(t, err, ErrTargetNotDirectory)
}

func TestScanDirectory_Cancelled(t *testing.T) {
	dir := writeProject(t, testProject)
	s := newTestScanner(t, nil, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.ScanDirectory(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEnumerate_Order(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"b.js":       "",
		"a.ts":       "",
		"z.css":      "",
		"index.html": "",
		"about.htm":  "",
		"README.md":  "",
		"sub/c.less": "",
		"sub/d.jsx":  "",
		"image.png":  "",
	})
	files, err := Enumerate(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"about.htm", "index.html", "sub/c.less", "z.css", "a.ts", "b.js", "sub/d.jsx"}, files)
}

// assetServer serves a page linking a stylesheet, a module script and a missing script.
func assetServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/index.html", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head>
<link rel="stylesheet" href="/static/site.css">
<script type="importmap">{"imports": {}}</script>
</head><body>
<script type="module" src="/static/app.js"></script>
<script src="/static/missing.js"></script>
</body></html>`)
	})
	mux.HandleFunc("/static/site.css", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "nav { position: sticky } .g { display:grid }")
	})
	mux.HandleFunc("/static/app.js", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "import { h } from './h.js'; const t = cfg?.title;")
	})
	mux.HandleFunc("/static/missing.js", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	return httptest.NewServer(mux)
}

func TestScanURL_PageAndAssets(t *testing.T) {
	server := assetServer(t)
	defer server.Close()

	s := newTestScanner(t, fetcher.NewHTTPClient(5*time.Second, ""), Options{AssetBatchSize: 2})
	pageURL := server.URL + "/index.html"

	r, err := s.ScanURL(context.Background(), pageURL)
	require.NoError(t, err, "a missing asset must not fail the scan")

	assert.Equal(t, strings.TrimPrefix(server.URL, "http://"), r.Project)
	assert.ElementsMatch(t, []string{
		catalog.JSImportMaps,
		catalog.JSESModules,
		catalog.CSSPositionSticky,
		catalog.CSSGrid,
		catalog.JSOptionalChaining,
	}, r.FeatureIDs())

	esm, _ := r.Feature(catalog.JSESModules)
	assert.ElementsMatch(t, []string{pageURL, server.URL + "/static/app.js"}, esm.Locations)
	assert.Equal(t, 2, esm.Count)

	grid, _ := r.Feature(catalog.CSSGrid)
	assert.Equal(t, []string{server.URL + "/static/site.css"}, grid.Locations)
}

func TestScanURL_PrimaryFailureIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	s := newTestScanner(t, fetcher.NewHTTPClient(time.Second, ""), Options{})
	_, err := s.ScanURL(context.Background(), server.URL)
	require.Error(t, err)

	var fe *fetcher.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusInternalServerError, fe.StatusCode)
}

// stubClient serves canned bodies and fails for anything else.
type stubClient map[string]string

func (c stubClient) Get(_ context.Context, url string) (*fetcher.Response, error) {
	body, ok := c[url]
	if !ok {
		return nil, &fetcher.FetchError{URL: url, Err: errors.New("connection refused")}
	}
	return &fetcher.Response{URL: url, StatusCode: http.StatusOK, Body: body}, nil
}

func TestScanURL_PageWithoutExtension(t *testing.T) {
	client := stubClient{
		"https://example.com/":        `<script type="module" src="main.js"></script><div style="display: flex">`,
		"https://example.com/main.js": "export default 1",
	}
	s := newTestScanner(t, client, Options{})

	r, err := s.ScanURL(context.Background(), "https://example.com/")
	require.NoError(t, err)
	assert.Equal(t, "example.com", r.Project)

	// the page itself has no extension, so only type-agnostic rules apply to it
	esm, _ := r.Feature(catalog.JSESModules)
	assert.Equal(t, []string{"https://example.com/main.js"}, esm.Locations)
	flex, _ := r.Feature(catalog.Flexbox)
	assert.Equal(t, []string{"https://example.com/"}, flex.Locations)
}

func TestScanURL_RequiresClient(t *testing.T) {
	s := newTestScanner(t, nil, Options{})
	_, err := s.ScanURL(context.Background(), "https://example.com/")
	assert.Error(t, err)
}
