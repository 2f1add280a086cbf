package config

//ExampleFile documents every key with its default value. Parsing it yields
//Default() apart from Seed, which is fixed here for reproducible runs.
const ExampleFile = `# sph2d run configuration. Every key is optional.

[Fluid]
# World acceleration in screen units per second squared
GravityX = 0
GravityY = -117600
# Equation of state p = GasConstant * (rho - RestDensity)
RestDensity = 1000
GasConstant = 2000
# Interaction cutoff h, also the lattice spacing and twice the wall margin
KernelRadius = 16
Mass = 65
Viscosity = 250
TimeStep = 0.0008
# Container, origin at the bottom-left corner
Width = 500
Height = 500

[Lattice]
Columns = 20
Rows = 20
OriginX = 150
OriginY = 150
# Horizontal jitter range, drawn per particle
Jitter = 1
# 0 seeds the jitter from the clock
Seed = 1

[View]
# Window height in pixels, the width follows Width/Height
WindowHeight = 500
FPS = 60
# Rebuild the simulation when this file changes
Watch = false
# Pointer drag: squared pick radius and velocity kick
ImpulseRadius2 = 50
ImpulseStrength = 20000
`
