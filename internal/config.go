package internal

import (
	"fmt"
	"os"
	"strconv"

	"github.com/samber/lo"
)

// AspectRatios is the closed set of pool partitions every source is
// normalized into. The values double as directory names under InputDir.
var AspectRatios = []string{"9-16", "1-1"}

type Config struct {
	OutputDuration int // target length of the final video, seconds

	InputDir  string // durable pool of normalized sources
	TempDir   string // scratch area for downloads and clips
	OutputDir string // final artifact location

	DownloadURLs  bool   // force re-fetch even when the pool is populated
	VideoURLsFile string // newline-delimited list of https:// locators
	AspectRatio   string // which pool partition the final video is cut from

	// GenerateSchedule is a cron expression. When set, the process stays
	// up and regenerates the highlight on that schedule instead of
	// exiting after one run.
	GenerateSchedule string

	// Optional S3-compatible publishing of the output artifact.
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3KeyPrefix string
}

func LoadConfig() (Config, error) {
	cfg := Config{
		OutputDuration: 8,
		InputDir:       "./input",
		TempDir:        "./temp",
		OutputDir:      "./output",
		VideoURLsFile:  "./video-urls.txt",
		AspectRatio:    "9-16",

		GenerateSchedule: os.Getenv("GENERATE_SCHEDULE"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    os.Getenv("S3_REGION"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3AccessKey: firstNonEmpty(os.Getenv("S3_ACCESS_KEY"), os.Getenv("S3_ACCESS_KEY_ID")),
		S3SecretKey: firstNonEmpty(os.Getenv("S3_SECRET_ACCESS_KEY"), os.Getenv("S3_SECRET_ACCESS_KEY_ID")),
		S3KeyPrefix: "highlights/",
	}

	if v := os.Getenv("OUTPUT_DURATION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.OutputDuration = n
		}
	}
	if v := os.Getenv("INPUT_DIR"); v != "" {
		cfg.InputDir = v
	}
	if v := os.Getenv("TEMP_DIR"); v != "" {
		cfg.TempDir = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("VIDEO_URLS"); v != "" {
		cfg.VideoURLsFile = v
	}
	if v := os.Getenv("ASPECT_RATIO"); v != "" {
		cfg.AspectRatio = v
	}
	if v := os.Getenv("DOWNLOAD_URLS"); v != "" {
		cfg.DownloadURLs = v != "false" && v != "0"
	}
	if v := os.Getenv("S3_KEY_PREFIX"); v != "" {
		cfg.S3KeyPrefix = v
	}

	if !lo.Contains(AspectRatios, cfg.AspectRatio) {
		return cfg, fmt.Errorf("ASPECT_RATIO %q is not supported (want one of %v)", cfg.AspectRatio, AspectRatios)
	}
	if cfg.S3Endpoint != "" {
		if cfg.S3Region == "" || cfg.S3Bucket == "" || cfg.S3AccessKey == "" || cfg.S3SecretKey == "" {
			return cfg, fmt.Errorf("S3_ENDPOINT is set but S3_REGION/S3_BUCKET/S3_ACCESS_KEY/S3_SECRET_ACCESS_KEY are incomplete")
		}
	}
	return cfg, nil
}

// PublishEnabled reports whether the final artifact should also be
// uploaded to object storage.
func (c Config) PublishEnabled() bool {
	return c.S3Endpoint != ""
}

// EnsureDirs creates the input, temp and output directories if missing.
func (c Config) EnsureDirs() error {
	for _, dir := range []string{c.InputDir, c.TempDir, c.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
	}
	return nil
}

func firstNonEmpty(v ...string) string {
	for _, s := range v {
		if s != "" {
			return s
		}
	}
	return ""
}
