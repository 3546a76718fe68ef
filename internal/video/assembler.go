package video

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"

	"highlight-video-gen/internal/model"
)

// Assemble shuffles the clips and concatenates them into outputPath.
// The clip files and the manifest are transient: they are removed before
// this returns, whether the concatenation succeeded or not. A failed
// concatenation is fatal; there is no fallback for the final step.
func (g *Generator) Assemble(ctx context.Context, clips []model.ClipSelection, outputPath string) (*model.OutputArtifact, error) {
	plan := g.buildPlan(clips)
	manifestPath := filepath.Join(g.cfg.TempDir, "concat_list.txt")

	defer func() {
		for _, c := range plan.Clips {
			os.Remove(c.OutputPath)
		}
		os.Remove(manifestPath)
	}()

	if err := writeManifest(manifestPath, plan); err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}

	if err := g.enc.Concatenate(ctx, manifestPath, outputPath); err != nil {
		return nil, fmt.Errorf("assemble: final concatenation failed: %w", err)
	}

	g.log.Infof("assemble: wrote %s (%d clips, %.2fs)", outputPath, len(plan.Clips), plan.TotalDuration)
	return &model.OutputArtifact{
		Path:      outputPath,
		Duration:  plan.TotalDuration,
		ClipCount: len(plan.Clips),
		CreatedAt: time.Now(),
	}, nil
}

// buildPlan fixes the final clip order. The shuffle deliberately
// decouples output order from selection order.
func (g *Generator) buildPlan(clips []model.ClipSelection) model.AssemblyPlan {
	shuffled := make([]model.ClipSelection, len(clips))
	copy(shuffled, clips)
	g.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return model.AssemblyPlan{
		Clips: shuffled,
		TotalDuration: lo.SumBy(clips, func(c model.ClipSelection) float64 {
			return c.Duration
		}),
	}
}

// writeManifest emits the concat-demuxer file list, one absolute path
// per clip in final order.
func writeManifest(path string, plan model.AssemblyPlan) error {
	var b strings.Builder
	for _, c := range plan.Clips {
		abs, err := filepath.Abs(c.OutputPath)
		if err != nil {
			return fmt.Errorf("resolve clip path %s: %w", c.OutputPath, err)
		}
		fmt.Fprintf(&b, "file '%s'\n", abs)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	return nil
}
