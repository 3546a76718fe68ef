package video

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/lo"

	"highlight-video-gen/internal"
	"highlight-video-gen/internal/media"
	"highlight-video-gen/internal/sources"
)

// EnsureSources populates the pool from the configured URL list. When
// every aspect-ratio partition already has assets and no re-download is
// forced, the whole step is skipped. Individual download or transcode
// failures are logged and skipped; only an unusable configuration aborts
// the run.
func (g *Generator) EnsureSources(ctx context.Context) error {
	if !g.cfg.DownloadURLs && g.poolSatisfied() {
		g.log.Infof("ingest: pool already populated for all ratios, skipping download")
		return nil
	}

	urls, err := sources.ReadURLList(g.cfg.VideoURLsFile)
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	g.log.Infof("ingest: processing %d source urls", len(urls))

	for _, url := range urls {
		if _, err := g.fetch.Fetch(ctx, url, g.cfg.TempDir); err != nil {
			g.log.Warnf("ingest: unable to download %s: %v", url, err)
		}
	}

	// Everything sitting in the scratch area counts as a materialized
	// source, including files dropped there by hand.
	downloads := g.scratchFiles()
	g.log.Infof("ingest: normalizing %d downloaded files", len(downloads))

	for _, local := range downloads {
		if err := g.normalizeIntoPool(ctx, local); err != nil {
			return err
		}
	}

	g.clearTempFiles()
	return nil
}

// normalizeIntoPool files one downloaded source under every configured
// ratio, keyed by content so identical bytes never get transcoded twice.
func (g *Generator) normalizeIntoPool(ctx context.Context, local string) error {
	id, err := media.FileContentID(local)
	if err != nil {
		g.log.Warnf("ingest: hash %s failed: %v", local, err)
		return nil
	}

	for _, ratio := range internal.AspectRatios {
		profile, err := media.ProfileFor(ratio)
		if err != nil {
			return err
		}

		dir := filepath.Join(g.cfg.InputDir, ratio)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ingest: create pool dir %s: %w", dir, err)
		}

		dest := filepath.Join(dir, id+".mp4")
		if _, err := os.Stat(dest); err == nil {
			g.log.Infof("ingest: %s already normalized for %s", id, ratio)
			continue
		}

		if err := g.enc.Normalize(ctx, local, dest, profile); err != nil {
			g.log.Errorf("ingest: normalize %s for %s failed: %v", local, ratio, err)
			continue
		}
		g.log.Infof("ingest: pooled %s as %s/%s.mp4", local, ratio, id)
	}
	return nil
}

func (g *Generator) poolSatisfied() bool {
	return lo.EveryBy(internal.AspectRatios, func(ratio string) bool {
		return len(g.PoolAssets(ratio)) > 0
	})
}
