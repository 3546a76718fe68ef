package media

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/tidwall/gjson"
)

// probeTimeout caps a single ffprobe invocation so an unresponsive
// subprocess cannot stall the whole run.
const probeTimeout = 30 * time.Second

// Duration returns the container duration of a media file in seconds.
func (f *FFmpeg) Duration(ctx context.Context, path string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	dur := gjson.GetBytes(out, "format.duration")
	if !dur.Exists() || dur.Float() <= 0 {
		return 0, fmt.Errorf("ffprobe %s: no usable duration in output", path)
	}
	return dur.Float(), nil
}
