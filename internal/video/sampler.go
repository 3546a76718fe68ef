package video

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"highlight-video-gen/internal/model"
)

var (
	// ErrEmptyPool means the requested ratio has no normalized sources at all.
	ErrEmptyPool = errors.New("no sources in pool for requested aspect ratio")

	// ErrInsufficientMaterial means every source was tried and the
	// accumulated clips still fall short of the target duration.
	ErrInsufficientMaterial = errors.New("pool exhausted before reaching target duration")
)

const (
	// Sources shorter than this cannot yield the minimum extractable clip.
	minSourceDuration = 2.0

	minClipDuration = 1.0
	maxClipDuration = 2.0
)

// SampleClips draws sources from the ratio's pool without replacement
// and cuts one random sub-clip from each until the accumulated duration
// exceeds target. Probe and extraction failures discard the candidate;
// the loop only fails once every source has been tried.
func (g *Generator) SampleClips(ctx context.Context, ratio string, target float64) ([]model.ClipSelection, error) {
	assets := g.PoolAssets(ratio)
	if len(assets) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyPool, ratio)
	}

	tried := make(map[string]bool, len(assets))
	var clips []model.ClipSelection
	total := 0.0

	for total <= target {
		if len(tried) == len(assets) {
			return nil, fmt.Errorf("%w: tried all %d sources, reached %.2fs of %.2fs",
				ErrInsufficientMaterial, len(assets), total, target)
		}

		asset := assets[g.rnd.IntN(len(assets))]
		if tried[asset.Path] {
			// Redraw; does not count as an attempt.
			continue
		}
		tried[asset.Path] = true

		duration, err := g.probe.Duration(ctx, asset.Path)
		if err != nil {
			g.log.Warnf("sampler: probe %s failed: %v", asset.Path, err)
			continue
		}
		if duration < minSourceDuration {
			g.log.Infof("sampler: source %s too short (%.2fs), skipping", asset.ContentID, duration)
			continue
		}

		start := g.rnd.Float64() * (duration - minSourceDuration)
		clipDuration := minClipDuration + g.rnd.Float64()*(maxClipDuration-minClipDuration)
		outputPath := filepath.Join(g.cfg.TempDir, fmt.Sprintf("clip_%d.mp4", len(clips)+1))

		if err := g.enc.ExtractClip(ctx, asset.Path, start, clipDuration, outputPath); err != nil {
			g.log.Errorf("sampler: extract from %s failed: %v", asset.ContentID, err)
			continue
		}

		total += clipDuration
		clips = append(clips, model.ClipSelection{
			SourcePath:  asset.Path,
			StartOffset: start,
			Duration:    clipDuration,
			OutputPath:  outputPath,
		})
	}

	g.log.Infof("sampler: selected %d clips totalling %.2fs (target %.2fs)", len(clips), total, target)
	return clips, nil
}
