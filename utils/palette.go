package utils

import (
	"github.com/lucasb-eyer/go-colorful"
)

//Palette - colour ramp over the shade field, blended in Lab space between
//evenly spaced stops
type Palette struct {
	Stops []colorful.Color
}

//Dense water is deep blue, the sparse surface fades to foam
var DefaultPalette = NewPalette("#08306b", "#2171b5", "#6baed6", "#deebf7")

//Background of the container, dark green
var Background = colorful.Color{R: 0, G: 0.25, B: 0}

//NewPalette builds a ramp from hex stops. Unparseable stops are skipped.
func NewPalette(hex ...string) Palette {
	p := Palette{}
	for _, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			continue
		}
		p.Stops = append(p.Stops, c)
	}
	return p
}

//At - colour for t in [0,1], t is clamped
func (p Palette) At(t float32) colorful.Color {
	switch len(p.Stops) {
	case 0:
		return colorful.Color{}
	case 1:
		return p.Stops[0]
	}

	if !(t > 0) {
		return p.Stops[0]
	}
	if t >= 1 {
		return p.Stops[len(p.Stops)-1]
	}

	segments := float64(len(p.Stops) - 1)
	pos := float64(t) * segments
	i := int(pos)
	return p.Stops[i].BlendLab(p.Stops[i+1], pos-float64(i)).Clamped()
}

//RGB - float channels in [0,1] for the GL vertex stream
func (p Palette) RGB(t float32) (float32, float32, float32) {
	c := p.At(t)
	return float32(c.R), float32(c.G), float32(c.B)
}

//RGB255 - byte channels for terminal colours
func (p Palette) RGB255(t float32) (uint8, uint8, uint8) {
	return p.At(t).RGB255()
}
