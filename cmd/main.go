package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"highlight-video-gen/internal"
	"highlight-video-gen/internal/logging"
	"highlight-video-gen/internal/media"
	"highlight-video-gen/internal/s3"
	"highlight-video-gen/internal/scheduler"
	"highlight-video-gen/internal/sources"
	"highlight-video-gen/internal/video"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (try multiple paths)
	envPaths := []string{".env", "../.env"}
	for _, path := range envPaths {
		_ = godotenv.Load(path)
	}

	log, err := logging.New("errors.log")
	if err != nil {
		panic(err)
	}
	defer log.Close()

	cfg, err := internal.LoadConfig()
	if err != nil {
		log.Errorf("config: %v", err)
		os.Exit(1)
	}
	if err := cfg.EnsureDirs(); err != nil {
		log.Errorf("setup: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Stop on SIGINT/SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Infof("shutdown signal received")
		cancel()
	}()

	ffm := media.NewFFmpeg(log)
	gen := video.NewGenerator(cfg, sources.NewFetcher(log), ffm, ffm, log, nil)

	runOnce := func(ctx context.Context) error {
		artifact, err := gen.Run(ctx)
		if err != nil {
			return err
		}
		log.Infof("generated %s (%d clips, %.2fs)", artifact.Path, artifact.ClipCount, artifact.Duration)

		if !cfg.PublishEnabled() {
			return nil
		}
		client, err := s3.New(cfg)
		if err != nil {
			return fmt.Errorf("s3 init: %w", err)
		}
		key := fmt.Sprintf("%shighlight-%d.mp4", cfg.S3KeyPrefix, time.Now().Unix())
		if err := client.PutFile(ctx, key, artifact.Path, "video/mp4"); err != nil {
			return fmt.Errorf("publish %s: %w", key, err)
		}
		log.Infof("published artifact to s3://%s/%s", cfg.S3Bucket, key)
		return nil
	}

	if cfg.GenerateSchedule == "" {
		if err := runOnce(ctx); err != nil {
			log.Error(err)
			os.Exit(1)
		}
		return
	}

	// Scheduled mode: generate once right away, then on the cron schedule.
	if err := runOnce(ctx); err != nil {
		log.Error(err)
	}
	svc := scheduler.New(cfg.GenerateSchedule, runOnce, log)
	if err := svc.Run(ctx); err != nil {
		log.Errorf("scheduler stopped: %v", err)
	}
}
