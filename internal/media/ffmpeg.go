package media

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"highlight-video-gen/internal/logging"
)

// ffmpegSem limits the number of concurrent ffmpeg processes to 1 to avoid
// "pthread_create() failed: Resource temporarily unavailable" under heavy load.
var ffmpegSem = make(chan struct{}, 1)

// FFmpeg shells out to the ffmpeg/ffprobe binaries. It implements the
// transcoder and duration-probe capabilities consumed by the video
// pipeline.
type FFmpeg struct {
	log *logging.Logger

	// Timeout caps a single ffmpeg invocation.
	Timeout time.Duration
}

func NewFFmpeg(log *logging.Logger) *FFmpeg {
	return &FFmpeg{log: log, Timeout: 10 * time.Minute}
}

// Normalize transcodes input to fill the profile's canvas, audio copied
// unchanged. The result is written to a temp path next to output and
// renamed into place, so a crashed run never leaves a partial file that
// a later existence check would trust as complete.
func (f *FFmpeg) Normalize(ctx context.Context, input, output string, profile Profile) error {
	tmp := output + ".part.mp4"
	defer os.Remove(tmp)

	err := f.run(ctx,
		"-i", input,
		"-vf", profile.FilterGraph(),
		"-c:a", "copy",
		"-y",
		tmp,
	)
	if err != nil {
		return fmt.Errorf("normalize %s to %s: %w", input, profile.Name, err)
	}
	if err := os.Rename(tmp, output); err != nil {
		return fmt.Errorf("move %s into pool: %w", tmp, err)
	}
	return nil
}

// ExtractClip cuts [start, start+duration) out of input, re-encoded to
// the fixed clip profile. The constant frame rate normalizes timing
// drift across heterogeneous sources so the later concat is frame
// accurate; audio is stripped.
func (f *FFmpeg) ExtractClip(ctx context.Context, input string, start, duration float64, output string) error {
	err := f.run(ctx,
		"-ss", formatSeconds(start),
		"-i", input,
		"-t", formatSeconds(duration),
		"-an",
		"-vf", "fps=30",
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "23",
		"-pix_fmt", "yuv420p",
		"-y",
		output,
	)
	if err != nil {
		return fmt.Errorf("extract clip from %s: %w", input, err)
	}
	return nil
}

// Concatenate joins the clips listed in the concat-demuxer manifest into
// one file, re-encoded with the same profile the clips were cut with.
func (f *FFmpeg) Concatenate(ctx context.Context, listPath, output string) error {
	err := f.run(ctx,
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "23",
		"-pix_fmt", "yuv420p",
		"-an",
		"-y",
		output,
	)
	if err != nil {
		return fmt.Errorf("concatenate %s: %w", listPath, err)
	}
	return nil
}

func (f *FFmpeg) run(ctx context.Context, args ...string) error {
	// Only one ffmpeg process at a time to avoid exhausting system threads.
	ffmpegSem <- struct{}{}
	defer func() { <-ffmpegSem }()

	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()

	full := append([]string{"-hide_banner", "-loglevel", "error"}, args...)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "ffmpeg", full...)
	cmd.Stderr = &stderr

	f.log.Infof("ffmpeg: %v", args)
	if err := cmd.Run(); err != nil {
		errMsg := stderr.String()
		if errMsg == "" {
			errMsg = err.Error()
		}
		return fmt.Errorf("ffmpeg: %s", errMsg)
	}

	// The last argument is always the output path; verify it was created.
	out := full[len(full)-1]
	if _, err := os.Stat(out); err != nil {
		return fmt.Errorf("ffmpeg did not create output file %s: %w", out, err)
	}
	return nil
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 3, 64)
}
