package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileFor(t *testing.T) {
	vertical, err := ProfileFor("9-16")
	require.NoError(t, err)
	assert.Equal(t, 1080, vertical.Width)
	assert.Equal(t, 1920, vertical.Height)

	square, err := ProfileFor("1-1")
	require.NoError(t, err)
	assert.Equal(t, 1080, square.Width)
	assert.Equal(t, 1080, square.Height)
}

func TestProfileForUnknownRatio(t *testing.T) {
	_, err := ProfileFor("16-9")
	require.Error(t, err)
	_, err = ProfileFor("")
	require.Error(t, err)
}

func TestFilterGraphVertical(t *testing.T) {
	p, err := ProfileFor("9-16")
	require.NoError(t, err)
	graph := p.FilterGraph()

	assert.Contains(t, graph, "split[original][copy]")
	assert.Contains(t, graph, "scale=1080:1920")
	assert.Contains(t, graph, `boxblur=luma_radius=min(1080\,1920)/20:luma_power=1`)
	assert.Contains(t, graph, "if(gt(a,9/16),1080,-2)")
	assert.Contains(t, graph, "overlay=(W-w)/2:(H-h)/2,setsar=1")
}

func TestFilterGraphSquare(t *testing.T) {
	p, err := ProfileFor("1-1")
	require.NoError(t, err)
	graph := p.FilterGraph()

	assert.Contains(t, graph, "scale=1080:1080")
	assert.Contains(t, graph, "if(gt(a,1),1080,-2)")
	assert.Contains(t, graph, "if(gt(a,1),-2,1080)")
}
