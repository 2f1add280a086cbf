package utils

import (
	"fmt"
	"unsafe"

	F "diesel.com/sph2d/fluid"
)

//Presentation helpers shared by the viewers. Nothing here touches simulation
//state, every function reads the particle slice and writes caller buffers.

//Floats per particle in a packed vertex stream: x, y, r, g, b
const VertexStride = 5

//DensityShade maps every particle to -rho normalised into [0,1] across the
//slice: the densest particle gets 0 and the sparsest 1. dst is reused when it
//has the capacity.
func DensityShade(particles []F.Particle, dst []float32) []float32 {
	if cap(dst) < len(particles) {
		dst = make([]float32, len(particles))
	}
	dst = dst[:len(particles)]
	for i := range particles {
		dst[i] = -particles[i].Rho
	}
	Normalize(dst)
	return dst
}

//Normalize rescales values in place to [0,1] by their min and max. A flat field
//(max == min) maps to all zeros.
func Normalize(values []float32) {
	if len(values) == 0 {
		return
	}
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	span := max - min
	for i := range values {
		if span == 0 {
			values[i] = 0
			continue
		}
		values[i] = (values[i] - min) / span
	}
}

//PackVertices interleaves position and palette colour per particle into dst
//(VertexStride floats each), ready for a GL array buffer.
func PackVertices(dst []float32, particles []F.Particle, shades []float32, palette Palette) []float32 {
	n := len(particles) * VertexStride
	if cap(dst) < n {
		dst = make([]float32, n)
	}
	dst = dst[:n]

	for i := range particles {
		shade := float32(0)
		if i < len(shades) {
			shade = shades[i]
		}
		r, g, b := palette.RGB(shade)
		k := i * VertexStride
		dst[k] = particles[i].X[0]
		dst[k+1] = particles[i].X[1]
		dst[k+2] = r
		dst[k+3] = g
		dst[k+4] = b
	}

	return dst
}

//TransferVertexData streams a packed float buffer into mapped graphics memory.
//The target must hold at least len(data) floats.
func TransferVertexData(graphicsPtr unsafe.Pointer, data []float32) error {
	if graphicsPtr == nil {
		return fmt.Errorf("no valid pointer to graphics memory")
	}
	if len(data) == 0 {
		return nil
	}

	stream := unsafe.Slice((*float32)(graphicsPtr), len(data))
	copy(stream, data)
	return nil
}
