package render

import (
	"image"

	"github.com/disintegration/gift"
)

// PostProcess softens and upscales a rendered frame. Blur is a Gaussian
// sigma in source pixels (0 disables it); Scale is a nearest-neighbour
// upscale factor (values <= 1 disable it).
type PostProcess struct {
	Blur  float32
	Scale int
}

// Enabled reports whether Apply would change the image.
func (p PostProcess) Enabled() bool {
	return p.Blur > 0 || p.Scale > 1
}

// Apply runs the configured filters. The source is returned unchanged when
// no filter is enabled.
func (p PostProcess) Apply(src *image.RGBA) *image.RGBA {
	if !p.Enabled() {
		return src
	}

	g := gift.New()
	if p.Blur > 0 {
		g.Add(gift.GaussianBlur(p.Blur))
	}
	if p.Scale > 1 {
		b := src.Bounds()
		g.Add(gift.Resize(b.Dx()*p.Scale, b.Dy()*p.Scale, gift.NearestNeighborResampling))
	}

	dst := image.NewRGBA(g.Bounds(src.Bounds()))
	g.Draw(dst, src)
	return dst
}
