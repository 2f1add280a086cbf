package app

//Manages the fluid scene: window, render loop timing, pointer input and resets
import (
	"runtime"
	"time"

	"diesel.com/sph2d/config"
	F "diesel.com/sph2d/fluid"
	U "diesel.com/sph2d/utils"
	V "diesel.com/sph2d/vector"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.2/glfw"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

//Seconds between frame rate reports
const ReportInterval = 5.0

//Frame timing of the viewer
type AnimationTimer struct {
	AppStart   time.Time //Time the loop started
	LastReport time.Time //Last frame rate report
	Frames     int       //Frames since LastReport
}

//Tick counts a frame and returns the frame rate once per interval
func (a *AnimationTimer) Tick(now time.Time, interval float64) (float64, bool) {
	a.Frames++
	elapsed := now.Sub(a.LastReport).Seconds()
	if elapsed < interval {
		return 0, false
	}
	fps := float64(a.Frames) / elapsed
	a.Frames = 0
	a.LastReport = now
	return fps, true
}

//Viewer - interactive OpenGL front end. It owns the simulation and steps it
//once per frame on the locked main thread.
type Viewer struct {
	Config  config.Config
	Path    string //Config file, watched when View.Watch is set
	Sim     *F.Simulation
	Pointer Pointer
	Paused  bool
	Anim    AnimationTimer
	Context *DieselContext
	log     *logrus.Entry
	step    bool
}

func NewViewer(c config.Config, path string) (*Viewer, error) {
	sim, err := c.Build()
	if err != nil {
		return nil, err
	}
	return &Viewer{
		Config: c,
		Path:   path,
		Sim:    sim,
		log:    logrus.WithField("viewer", "gl"),
	}, nil
}

//Run opens the window and drives the render loop until the window closes or
//the process is interrupted. Returns the error that stopped the simulation.
func (v *Viewer) Run() error {
	//Done is deferred first so an interrupt waits for the GL teardown below
	sd := U.NewShutdown()
	sd.Bind()
	defer sd.Done()

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	w, h := WindowSize(v.Sim.Width(), v.Sim.Height(), v.Config.View.WindowHeight)
	window, err := InitGLFW(&AppWindow{w, h, "sph2d"})
	if err != nil {
		return err
	}
	defer glfw.Terminate()

	dsl, err := InitOpenGL(v.Sim, window)
	if err != nil {
		return err
	}
	defer dsl.Release()
	v.Context = dsl
	v.bindInput(window)

	reloadC := make(chan config.Config, 1)
	if v.Config.View.Watch && v.Path != "" {
		stop, err := WatchConfig(v.Path, reloadC)
		if err != nil {
			return err
		}
		defer stop()
	}

	v.Anim = AnimationTimer{AppStart: time.Now(), LastReport: time.Now()}
	v.log.WithFields(logrus.Fields{"particles": v.Sim.Len(), "window": [2]int{w, h}}).Info("viewer started")

	fpsTicker := time.NewTicker(time.Second / time.Duration(v.Config.View.FPS))
	defer fpsTicker.Stop()
	for {
		select {
		case <-sd.Exiting():
			return nil
		case c := <-reloadC:
			if err := v.Reset(c); err != nil {
				v.log.WithError(err).Warn("reload rejected")
			}
		case t := <-fpsTicker.C:
			if window.ShouldClose() {
				sd.Exit()
				continue
			}
			glfw.PollEvents()
			if err := v.frame(t); err != nil {
				return err
			}
		}
	}
}

//frame - pointer drag, one step, draw
func (v *Viewer) frame(now time.Time) error {
	if from, to, ok := v.Pointer.Frame(); ok {
		n := v.Sim.Drag(from, to, float32(v.Config.View.ImpulseRadius2), float32(v.Config.View.ImpulseStrength))
		v.log.WithFields(logrus.Fields{"at": V.String(to), "particles": n}).Debug("drag")
	}

	if !v.Paused || v.step {
		v.step = false
		if err := v.Sim.Update(); err != nil {
			v.log.WithError(err).Error("simulation diverged")
			return err
		}
	}

	if err := Draw(v.Sim, v.Context); err != nil {
		return errors.Wrap(err, "draw")
	}

	if fps, ok := v.Anim.Tick(now, ReportInterval); ok {
		s := v.Sim.Stats()
		v.log.WithFields(logrus.Fields{
			"fps":     fps,
			"step":    s.Step,
			"t":       s.Time,
			"kinetic": s.KineticEnergy,
			"rho":     s.MeanDensity,
		}).Info("frame rate")
	}
	return nil
}

//Reset rebuilds the simulation from c. The old simulation is kept when c is
//invalid.
func (v *Viewer) Reset(c config.Config) error {
	sim, err := c.Build()
	if err != nil {
		return err
	}
	v.Config = c
	v.Sim = sim
	v.Pointer = Pointer{Pressed: v.Pointer.Pressed}

	if v.Context != nil {
		v.Context.Rebind(sim)
		w, h := WindowSize(sim.Width(), sim.Height(), c.View.WindowHeight)
		v.Context.GLFWindow.SetSize(w, h)
		fw, fh := v.Context.GLFWindow.GetFramebufferSize()
		gl.Viewport(0, 0, int32(fw), int32(fh))
	}
	v.log.WithField("particles", sim.Len()).Info("simulation reset")
	return nil
}

func (v *Viewer) bindInput(window *glfw.Window) {
	window.SetCursorPosCallback(func(w *glfw.Window, x float64, y float64) {
		v.Pointer.Move(CursorToWorld(x, y, v.Sim.Height(), v.Config.View.WindowHeight))
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button == glfw.MouseButtonLeft {
			v.Pointer.Pressed = action != glfw.Release
		}
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape, glfw.KeyQ:
			w.SetShouldClose(true)
		case glfw.KeySpace:
			v.Paused = !v.Paused
		case glfw.KeyS:
			v.step = true
		case glfw.KeyR:
			if err := v.Reset(v.Config); err != nil {
				v.log.WithError(err).Warn("reset failed")
			}
		case glfw.KeyTab:
			s := v.Sim.Stats()
			v.log.WithFields(logrus.Fields{"step": s.Step, "t": s.Time}).Info("simulation time")
		}
	})
}
