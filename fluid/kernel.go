package fluid

import "math"

const PI = math.Pi

//Kernel holds the normalisation constants of the three smoothing kernels used
//by the solver. All of them depend on the kernel radius h only and are derived
//once per Parameters.
//
//  density   W(r)    = Poly6 * (h² - r²)³
//  pressure  ∇W(r)   = SpikyGrad * (h - r)²   (SpikyGrad is negative)
//  viscosity ∇²W(r)  = ViscLap * (h - r)
//
//Every kernel is zero outside the support r >= h.
type Kernel struct {
	H         float32 //Kernel radius
	H2        float32 //Kernel radius squared, compared against r² in the density pass
	Poly6     float32
	SpikyGrad float32
	ViscLap   float32
}

//Precompute derives the kernel constants of a parameter set. Mass and the other
//fields do not enter.
func Precompute(p Parameters) Kernel {
	return InitKernel(p.KernelRadius)
}

//InitKernel - kernel constants for radius h. The poly6 denominator is 65, not
//the textbook 64.
func InitKernel(radius float32) Kernel {
	h := float64(radius)
	h6 := math.Pow(h, 6)
	h9 := math.Pow(h, 9)

	return Kernel{
		H:         radius,
		H2:        radius * radius,
		Poly6:     float32(315.0 / (65.0 * PI * h9)),
		SpikyGrad: float32(-45.0 / (PI * h6)),
		ViscLap:   float32(45.0 / (PI * h6)),
	}
}

//Density - poly6 weight for a squared distance r2
func (K *Kernel) Density(r2 float32) float32 {
	if r2 >= K.H2 {
		return 0.0
	}
	x := K.H2 - r2
	return K.Poly6 * x * x * x
}

//PressureGrad - spiky gradient magnitude at distance r
func (K *Kernel) PressureGrad(r float32) float32 {
	if r >= K.H {
		return 0.0
	}
	x := K.H - r
	return K.SpikyGrad * x * x
}

//ViscosityLap - viscosity laplacian at distance r
func (K *Kernel) ViscosityLap(r float32) float32 {
	if r >= K.H {
		return 0.0
	}
	return K.ViscLap * (K.H - r)
}
