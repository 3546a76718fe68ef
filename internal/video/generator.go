package video

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"time"

	"highlight-video-gen/internal"
	"highlight-video-gen/internal/logging"
	"highlight-video-gen/internal/media"
	"highlight-video-gen/internal/model"
)

// Fetcher materializes a remote locator as a local file in destDir.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL, destDir string) (string, error)
}

// Transcoder covers the three ffmpeg operations the pipeline needs.
type Transcoder interface {
	Normalize(ctx context.Context, input, output string, profile media.Profile) error
	ExtractClip(ctx context.Context, input string, start, duration float64, output string) error
	Concatenate(ctx context.Context, listPath, output string) error
}

// DurationProber reports a media file's duration in seconds.
type DurationProber interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// Generator runs the whole highlight pipeline: ingest sources into the
// pool, sample random clips from one aspect-ratio partition, and
// concatenate them into the final video.
type Generator struct {
	cfg   internal.Config
	fetch Fetcher
	enc   Transcoder
	probe DurationProber
	log   *logging.Logger
	rnd   *rand.Rand
}

// NewGenerator wires the pipeline. rnd may be nil, in which case a
// time-seeded source is used; tests pass a fixed seed instead.
func NewGenerator(cfg internal.Config, fetch Fetcher, enc Transcoder, probe DurationProber, log *logging.Logger, rnd *rand.Rand) *Generator {
	if rnd == nil {
		now := uint64(time.Now().UnixNano())
		rnd = rand.New(rand.NewPCG(now, now>>17))
	}
	return &Generator{cfg: cfg, fetch: fetch, enc: enc, probe: probe, log: log, rnd: rnd}
}

// Run executes one full generation pass and returns the final artifact.
// Whatever happens, the scratch area is left clean.
func (g *Generator) Run(ctx context.Context) (*model.OutputArtifact, error) {
	defer g.clearTempFiles()

	if err := g.EnsureSources(ctx); err != nil {
		return nil, err
	}

	clips, err := g.SampleClips(ctx, g.cfg.AspectRatio, float64(g.cfg.OutputDuration))
	if err != nil {
		return nil, err
	}

	outputPath := filepath.Join(g.cfg.OutputDir, "output.mp4")
	return g.Assemble(ctx, clips, outputPath)
}

// PoolAssets lists the normalized sources available for one ratio.
func (g *Generator) PoolAssets(ratio string) []model.MediaAsset {
	files, _ := filepath.Glob(filepath.Join(g.cfg.InputDir, ratio, "*.mp4"))
	assets := make([]model.MediaAsset, 0, len(files))
	for _, f := range files {
		assets = append(assets, model.MediaAsset{
			Path:        f,
			ContentID:   strings.TrimSuffix(filepath.Base(f), ".mp4"),
			AspectRatio: ratio,
		})
	}
	return assets
}
