package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kkdai/youtube/v2"
	"github.com/mowshon/moviego"
	"github.com/samber/lo"

	"highlight-video-gen/internal/logging"
)

// Fetcher materializes remote video locators as local files in a
// scratch directory. YouTube links go through the youtube client, any
// other https:// locator is a plain download. Failures are per-locator;
// the caller decides whether to continue the batch.
type Fetcher struct {
	log  *logging.Logger
	http *http.Client
	yt   youtube.Client
}

func NewFetcher(log *logging.Logger) *Fetcher {
	return &Fetcher{
		log:  log,
		http: &http.Client{Timeout: 10 * time.Minute},
	}
}

// ReadURLList extracts locators from a newline-delimited file. Only
// lines prefixed https:// are recognized; everything else is treated as
// a comment.
func ReadURLList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read url list %s: %w", path, err)
	}
	lines := strings.Split(string(data), "\n")
	return lo.FilterMap(lines, func(line string, _ int) (string, bool) {
		line = strings.TrimSpace(line)
		return line, strings.HasPrefix(line, "https://")
	}), nil
}

// Fetch downloads one locator into destDir and returns the local path.
// The downloaded file is sanity checked before being handed back; a file
// the decoder cannot open is removed and reported as a fetch failure.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, destDir string) (string, error) {
	var (
		path string
		err  error
	)
	if isYouTubeURL(rawURL) {
		path, err = f.fetchYouTube(ctx, rawURL, destDir)
	} else {
		path, err = f.fetchHTTP(ctx, rawURL, destDir)
	}
	if err != nil {
		return "", err
	}

	if _, err := safeLoadVideo(path); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("downloaded file from %s is not a readable video: %w", rawURL, err)
	}
	return path, nil
}

func (f *Fetcher) fetchYouTube(ctx context.Context, rawURL, destDir string) (string, error) {
	video, err := f.yt.GetVideoContext(ctx, rawURL)
	if err != nil {
		return "", fmt.Errorf("youtube metadata for %s: %w", rawURL, err)
	}

	// Muxed formats carry both streams; the first one is the best quality.
	formats := video.Formats.WithAudioChannels()
	if len(formats) == 0 {
		return "", fmt.Errorf("no muxed formats for %s", rawURL)
	}
	format := &formats[0]

	stream, _, err := f.yt.GetStreamContext(ctx, video, format)
	if err != nil {
		return "", fmt.Errorf("youtube stream for %s: %w", rawURL, err)
	}
	defer stream.Close()

	dest := filepath.Join(destDir, fmt.Sprintf("yt-%s.mp4", video.ID))
	if err := writeStream(dest, stream); err != nil {
		return "", err
	}
	f.log.Infof("sources: downloaded youtube video %s to %s", video.ID, dest)
	return dest, nil
}

func (f *Fetcher) fetchHTTP(ctx context.Context, rawURL, destDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := f.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return "", fmt.Errorf("http %d for %s", resp.StatusCode, rawURL)
	}

	dest := filepath.Join(destDir, fmt.Sprintf("dl-%d.mp4", time.Now().UnixNano()))
	if err := writeStream(dest, resp.Body); err != nil {
		return "", err
	}
	f.log.Infof("sources: downloaded %s to %s", rawURL, dest)
	return dest, nil
}

func writeStream(dest string, r io.Reader) error {
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	defer out.Close()
	if _, err := io.Copy(out, r); err != nil {
		os.Remove(dest)
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return nil
}

func isYouTubeURL(rawURL string) bool {
	return strings.Contains(rawURL, "youtube.com/") || strings.Contains(rawURL, "youtu.be/")
}

// safeLoadVideo wraps moviego.Load to catch panics from the library.
func safeLoadVideo(path string) (vid moviego.Video, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("moviego.Load panicked: %v", r)
		}
	}()
	vid, err = moviego.Load(path)
	return
}
