package media

import "fmt"

// Profile is one target frame shape a source gets normalized into.
type Profile struct {
	Name   string
	Width  int
	Height int
}

var profiles = map[string]Profile{
	"9-16": {Name: "9-16", Width: 1080, Height: 1920},
	"1-1":  {Name: "1-1", Width: 1080, Height: 1080},
}

// ProfileFor resolves an aspect-ratio name to its canvas dimensions.
// Unknown names are a configuration error.
func ProfileFor(ratio string) (Profile, error) {
	p, ok := profiles[ratio]
	if !ok {
		return Profile{}, fmt.Errorf("unsupported aspect ratio %q", ratio)
	}
	return p, nil
}

// FilterGraph builds the normalization graph: the source is split, one
// copy is scaled to fill the whole canvas and blurred, the other is
// scaled to fit inside it, then overlaid centered on the blurred fill.
func (p Profile) FilterGraph() string {
	return fmt.Sprintf(
		"split[original][copy];"+
			"[copy]scale=%d:%d,boxblur=luma_radius=min(%d\\,%d)/20:luma_power=1[blurred];"+
			"[original]scale='if(gt(a,%s),%d,-2)':'if(gt(a,%s),-2,%d)'[scaled];"+
			"[blurred][scaled]overlay=(W-w)/2:(H-h)/2,setsar=1",
		p.Width, p.Height,
		p.Width, p.Height,
		p.aspectExpr(), p.Width,
		p.aspectExpr(), p.Height,
	)
}

// aspectExpr is the a > w/h comparison value used to decide whether the
// fitted copy is width-bound or height-bound.
func (p Profile) aspectExpr() string {
	if p.Width == p.Height {
		return "1"
	}
	return fmt.Sprintf("%d/%d", p.Width, p.Height)
}
