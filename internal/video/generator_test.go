package video

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"highlight-video-gen/internal"
	"highlight-video-gen/internal/logging"
	"highlight-video-gen/internal/media"
)

type fakeFetcher struct {
	files map[string][]byte // locator -> file content
	errs  map[string]error
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, rawURL, destDir string) (string, error) {
	f.calls = append(f.calls, rawURL)
	if err := f.errs[rawURL]; err != nil {
		return "", err
	}
	dest := filepath.Join(destDir, fmt.Sprintf("dl-%d.mp4", len(f.calls)))
	if err := os.WriteFile(dest, f.files[rawURL], 0o644); err != nil {
		return "", err
	}
	return dest, nil
}

type fakeTranscoder struct {
	normalized []string // output paths in call order
	extracted  []string
	manifests  []string // manifest contents captured at concat time

	extractErrs    map[string]error // keyed by input path
	extractFailAll bool
	concatErr      error
}

func (t *fakeTranscoder) Normalize(_ context.Context, _, output string, _ media.Profile) error {
	t.normalized = append(t.normalized, output)
	return os.WriteFile(output, []byte("normalized"), 0o644)
}

func (t *fakeTranscoder) ExtractClip(_ context.Context, input string, _, _ float64, output string) error {
	if t.extractFailAll {
		return errors.New("extract failed")
	}
	if err := t.extractErrs[input]; err != nil {
		return err
	}
	t.extracted = append(t.extracted, output)
	return os.WriteFile(output, []byte("clip"), 0o644)
}

func (t *fakeTranscoder) Concatenate(_ context.Context, listPath, output string) error {
	data, err := os.ReadFile(listPath)
	if err != nil {
		return err
	}
	t.manifests = append(t.manifests, string(data))
	if t.concatErr != nil {
		return t.concatErr
	}
	return os.WriteFile(output, []byte("final"), 0o644)
}

type fakeProber struct {
	defaultDur float64
	durations  map[string]float64 // by path, falls back to defaultDur
	errs       map[string]error
}

func (p *fakeProber) Duration(_ context.Context, path string) (float64, error) {
	if err := p.errs[path]; err != nil {
		return 0, err
	}
	if d, ok := p.durations[path]; ok {
		return d, nil
	}
	return p.defaultDur, nil
}

func testConfig(t *testing.T) internal.Config {
	t.Helper()
	return internal.Config{
		OutputDuration: 8,
		InputDir:       t.TempDir(),
		TempDir:        t.TempDir(),
		OutputDir:      t.TempDir(),
		AspectRatio:    "9-16",
	}
}

func newTestGenerator(t *testing.T, cfg internal.Config, fetch Fetcher, enc Transcoder, probe DurationProber) *Generator {
	t.Helper()
	log, err := logging.New(filepath.Join(t.TempDir(), "errors.log"))
	require.NoError(t, err)
	t.Cleanup(func() { log.Close() })
	return NewGenerator(cfg, fetch, enc, probe, log, rand.New(rand.NewPCG(7, 13)))
}

// seedPool drops n placeholder assets into one ratio partition.
func seedPool(t *testing.T, cfg internal.Config, ratio string, n int) []string {
	t.Helper()
	dir := filepath.Join(cfg.InputDir, ratio)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	paths := make([]string, 0, n)
	for i := 0; i < n; i++ {
		p := filepath.Join(dir, fmt.Sprintf("asset%02d.mp4", i))
		require.NoError(t, os.WriteFile(p, []byte(fmt.Sprintf("asset-%d", i)), 0o644))
		paths = append(paths, p)
	}
	return paths
}

func writeURLList(t *testing.T, urls ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "video-urls.txt")
	var content string
	for _, u := range urls {
		content += u + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func tempFileCount(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	count := 0
	for _, e := range entries {
		if e.Type().IsRegular() {
			count++
		}
	}
	return count
}

func TestRunEndToEnd(t *testing.T) {
	cfg := testConfig(t)
	cfg.OutputDuration = 1
	fetch := &fakeFetcher{files: map[string][]byte{
		"https://example.com/a.mp4": []byte("content-a"),
		"https://example.com/b.mp4": []byte("content-b"),
	}}
	cfg.VideoURLsFile = writeURLList(t, "https://example.com/a.mp4", "https://example.com/b.mp4")
	enc := &fakeTranscoder{}
	probe := &fakeProber{defaultDur: 10}

	g := newTestGenerator(t, cfg, fetch, enc, probe)
	artifact, err := g.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, filepath.Join(cfg.OutputDir, "output.mp4"), artifact.Path)
	require.FileExists(t, artifact.Path)
	require.Greater(t, artifact.Duration, 1.0)
	require.GreaterOrEqual(t, artifact.ClipCount, 1)

	// Two distinct sources, two ratios each.
	require.Len(t, enc.normalized, 4)

	// Scratch area must be clean after a full run.
	require.Zero(t, tempFileCount(t, cfg.TempDir))
}

func TestRunPropagatesEmptyPool(t *testing.T) {
	cfg := testConfig(t)
	cfg.VideoURLsFile = writeURLList(t) // no usable urls, nothing to ingest
	cfg.DownloadURLs = true

	g := newTestGenerator(t, cfg, &fakeFetcher{}, &fakeTranscoder{}, &fakeProber{defaultDur: 10})
	_, err := g.Run(context.Background())
	require.ErrorIs(t, err, ErrEmptyPool)
}
