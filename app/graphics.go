package app

//OpenGL Windowing Calls and Structs
import (
	"fmt"
	"strings"

	F "diesel.com/sph2d/fluid"
	G "diesel.com/sph2d/geometry"
	U "diesel.com/sph2d/utils"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.2/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

//Attribute locations shared by the shaders and the VAOs
const (
	DSL_DISC   = 0 //Unit disc vertex
	DSL_CENTER = 1 //Per instance particle position
	DSL_COLOR  = 2 //Per instance colour

	DiscDetail = 20 //Fan segments per particle disc
)

//Both draws use one program: the outline feeds its corners as disc vertices
//with a zero center and a unit radius.
const vertexShader = `#version 410 core
layout(location = 0) in vec2 disc;
layout(location = 1) in vec2 center;
layout(location = 2) in vec3 color;
uniform mat4 projection;
uniform float radius;
out vec3 fragColor;
void main() {
	fragColor = color;
	gl_Position = projection * vec4(center + disc * radius, 0.0, 1.0);
}
` + "\x00"

const fragmentShader = `#version 410 core
in vec3 fragColor;
out vec4 outColor;
void main() {
	outColor = vec4(fragColor, 1.0);
}
` + "\x00"

type AppWindow struct {
	Width  int
	Height int
	Name   string
}

//DieselContext - GL objects of the viewer
type DieselContext struct {
	PrgID         uint32
	VAO           [2]uint32 //particles, outline
	VBO           [3]uint32 //disc mesh, instances, outline
	ProjShaderLoc int32
	RadiusLoc     int32
	Proj          mgl32.Mat4
	DiscCount     int32
	OutlineCount  int32
	Capacity      int //Particles the instance buffer holds
	GLFWindow     *glfw.Window
	Palette       U.Palette
	shades        []float32
	vertices      []float32
}

//InitGLFW creates a fixed size 4.1 core window and makes its context current
func InitGLFW(a *AppWindow) (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Wrap(err, "glfw init")
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(a.Width, a.Height, a.Name, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Wrap(err, "creating window")
	}
	window.MakeContextCurrent()
	return window, nil
}

//InitOpenGL compiles the program and allocates buffers sized for the simulation
func InitOpenGL(sim *F.Simulation, window *glfw.Window) (*DieselContext, error) {
	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(err, "gl init")
	}
	logrus.WithField("version", gl.GoStr(gl.GetString(gl.VERSION))).Info("OpenGL ready")

	vtx, err := compileShader(vertexShader, gl.VERTEX_SHADER)
	if err != nil {
		return nil, err
	}
	frg, err := compileShader(fragmentShader, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, err
	}

	prog, err := linkProgram(vtx, frg)
	if err != nil {
		return nil, err
	}

	dsl := &DieselContext{
		PrgID:     prog,
		GLFWindow: window,
		Palette:   U.DefaultPalette,
	}
	dsl.ProjShaderLoc = gl.GetUniformLocation(prog, gl.Str("projection\x00"))
	dsl.RadiusLoc = gl.GetUniformLocation(prog, gl.Str("radius\x00"))

	MakeVAO(sim, dsl)
	return dsl, nil
}

//MakeVAO - disc mesh plus an instance stream for the particles, and the
//container outline
func MakeVAO(sim *F.Simulation, dsl *DieselContext) {
	gl.GenBuffers(3, &dsl.VBO[0])
	gl.GenVertexArrays(2, &dsl.VAO[0])

	disc := G.Disc(DiscDetail)
	dsl.DiscCount = int32(len(disc))

	gl.BindVertexArray(dsl.VAO[0])
	gl.BindBuffer(gl.ARRAY_BUFFER, dsl.VBO[0])
	gl.BufferData(gl.ARRAY_BUFFER, len(disc)*2*4, gl.Ptr(&disc[0][0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(DSL_DISC)
	gl.VertexAttribPointer(DSL_DISC, 2, gl.FLOAT, false, 0, nil)

	stride := int32(U.VertexStride * 4)
	dsl.Resize(sim.Len())
	gl.BindBuffer(gl.ARRAY_BUFFER, dsl.VBO[1])
	gl.EnableVertexAttribArray(DSL_CENTER)
	gl.VertexAttribPointer(DSL_CENTER, 2, gl.FLOAT, false, stride, nil)
	gl.VertexAttribDivisor(DSL_CENTER, 1)
	gl.EnableVertexAttribArray(DSL_COLOR)
	gl.VertexAttribPointer(DSL_COLOR, 3, gl.FLOAT, false, stride, gl.PtrOffset(2*4))
	gl.VertexAttribDivisor(DSL_COLOR, 1)

	//Outline: only the corner attribute comes from a buffer
	gl.BindVertexArray(dsl.VAO[1])
	gl.BindBuffer(gl.ARRAY_BUFFER, dsl.VBO[2])
	gl.EnableVertexAttribArray(DSL_DISC)
	gl.VertexAttribPointer(DSL_DISC, 2, gl.FLOAT, false, 0, nil)
	gl.BindVertexArray(0)

	dsl.Rebind(sim)
}

//Rebind uploads the container outline and projection of a (possibly rebuilt)
//simulation and grows the instance buffer when needed
func (dsl *DieselContext) Rebind(sim *F.Simulation) {
	outline := sim.Domain().Outline()
	dsl.OutlineCount = int32(len(outline))
	gl.BindBuffer(gl.ARRAY_BUFFER, dsl.VBO[2])
	gl.BufferData(gl.ARRAY_BUFFER, len(outline)*2*4, gl.Ptr(&outline[0][0]), gl.STATIC_DRAW)

	if sim.Len() > dsl.Capacity {
		dsl.Resize(sim.Len())
	}
	dsl.Proj = Projection(sim.Width(), sim.Height())
}

//Resize reallocates the instance buffer for n particles
func (dsl *DieselContext) Resize(n int) {
	dsl.Capacity = n
	size := n * U.VertexStride * 4
	if size == 0 {
		size = U.VertexStride * 4
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, dsl.VBO[1])
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.DYNAMIC_DRAW)
}

//Draw renders one frame of the current particle state
func Draw(sim *F.Simulation, dsl *DieselContext) error {
	particles := sim.Particles()
	if len(particles) > dsl.Capacity {
		dsl.Resize(len(particles))
	}

	dsl.shades = U.DensityShade(particles, dsl.shades)
	dsl.vertices = U.PackVertices(dsl.vertices, particles, dsl.shades, dsl.Palette)

	bg := U.Background
	gl.ClearColor(float32(bg.R), float32(bg.G), float32(bg.B), 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(dsl.PrgID)
	gl.UniformMatrix4fv(dsl.ProjShaderLoc, 1, false, &dsl.Proj[0])

	//Container
	gl.BindVertexArray(dsl.VAO[1])
	gl.Uniform1f(dsl.RadiusLoc, 1)
	gl.VertexAttrib2f(DSL_CENTER, 0, 0)
	gl.VertexAttrib3f(DSL_COLOR, 0.6, 0.8, 0.6)
	gl.DrawArrays(gl.LINE_LOOP, 0, dsl.OutlineCount)

	if len(particles) > 0 {
		gl.BindBuffer(gl.ARRAY_BUFFER, dsl.VBO[1])
		ptr := gl.MapBufferRange(gl.ARRAY_BUFFER, 0, len(dsl.vertices)*4, gl.MAP_WRITE_BIT|gl.MAP_INVALIDATE_BUFFER_BIT)
		if err := U.TransferVertexData(ptr, dsl.vertices); err != nil {
			return errors.Wrap(err, "mapping particle buffer")
		}
		gl.UnmapBuffer(gl.ARRAY_BUFFER)

		gl.BindVertexArray(dsl.VAO[0])
		gl.Uniform1f(dsl.RadiusLoc, ParticleRadius(sim.Parameters().KernelRadius))
		gl.DrawArraysInstanced(gl.TRIANGLES, 0, dsl.DiscCount, int32(len(particles)))
	}

	gl.BindVertexArray(0)
	dsl.GLFWindow.SwapBuffers()
	return checkGL()
}

//Release frees the GL objects
func (dsl *DieselContext) Release() {
	gl.DeleteVertexArrays(2, &dsl.VAO[0])
	gl.DeleteBuffers(3, &dsl.VBO[0])
	gl.DeleteProgram(dsl.PrgID)
}

func checkGL() error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("GL error 0x%x", code)
	}
	return nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("GLSL Shader failed to compile: %v", log)
	}
	return shader, nil
}

func linkProgram(shaders ...uint32) (uint32, error) {
	prog := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(prog, s)
	}
	gl.LinkProgram(prog)
	for _, s := range shaders {
		gl.DeleteShader(s)
	}

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(prog, logLength, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("GLSL program failed to link: %v", log)
	}
	return prog, nil
}
