package app

import (
	V "diesel.com/sph2d/vector"
	"github.com/go-gl/mathgl/mgl32"
)

//Viewport mapping between the domain (origin bottom-left, y up) and the window
//(origin top-left, y down). The window height is fixed and the width follows the
//domain aspect ratio, so one pixel is domainHeight/windowHeight world units on
//both axes.

//WindowSize - window pixel size for a domain
func WindowSize(width float32, height float32, windowHeight int) (int, int) {
	return int(width / height * float32(windowHeight)), windowHeight
}

//CursorToWorld converts a window cursor position into domain coordinates
func CursorToWorld(x float64, y float64, domainHeight float32, windowHeight int) V.Vec2 {
	scale := domainHeight / float32(windowHeight)
	return V.Vec2{float32(x) * scale, float32(float64(windowHeight)-y) * scale}
}

//Projection - orthographic projection of the whole domain
func Projection(width float32, height float32) mgl32.Mat4 {
	return mgl32.Ortho2D(0, width, 0, height)
}

//ParticleRadius - drawn disc radius, half the kernel radius
func ParticleRadius(kernelRadius float32) float32 {
	return 0.5 * kernelRadius
}
