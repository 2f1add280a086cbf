package console

import (
	"fmt"
	"time"

	F "diesel.com/sph2d/fluid"
	U "diesel.com/sph2d/utils"
	V "diesel.com/sph2d/vector"
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

//Terminal front end: the domain is squeezed onto the character grid above a
//one line status bar. Each cell shows whether it holds particles, coloured by
//the mean density shade of the particles in it.

const particleRune = '●'

//Options of the terminal viewer
type Options struct {
	FPS             int
	ImpulseRadius2  float32
	ImpulseStrength float32
}

func DefaultOptions() Options {
	return Options{FPS: 30, ImpulseRadius2: F.ImpulseRadius2, ImpulseStrength: F.ImpulseStrength}
}

//Console owns a simulation and a tcell screen
type Console struct {
	Screen  tcell.Screen
	Options Options
	Sim     *F.Simulation
	Paused  bool
	Palette U.Palette

	build    func() (*F.Simulation, error)
	shutdown *U.Shutdown
	log      *logrus.Entry
	step     bool
	dragging bool
	last     V.Vec2

	width, height int //Screen size
	cells         []int
	shade         []float32
	shades        []float32
}

//New builds the first simulation. build is called again on every reset.
func New(screen tcell.Screen, build func() (*F.Simulation, error), opts Options) (*Console, error) {
	sim, err := build()
	if err != nil {
		return nil, err
	}
	c := &Console{
		Screen:  screen,
		Options: opts,
		Sim:     sim,
		Palette: U.DefaultPalette,
		build:    build,
		shutdown: U.NewShutdown(),
		log:      logrus.WithField("viewer", "term"),
	}
	c.resize()
	return c, nil
}

func (c *Console) resize() {
	c.width, c.height = c.Screen.Size()
	n := c.width * c.fieldRows()
	if n < 0 {
		n = 0
	}
	c.cells = make([]int, n)
	c.shade = make([]float32, n)
}

func (c *Console) fieldRows() int {
	if c.height < 2 {
		return 0
	}
	return c.height - 1
}

//WorldToCell - grid cell of a domain position, false outside the field
func (c *Console) WorldToCell(x V.Vec2) (int, int, bool) {
	rows := c.fieldRows()
	if c.width == 0 || rows == 0 {
		return 0, 0, false
	}
	col := int(x[0] / c.Sim.Width() * float32(c.width))
	row := rows - 1 - int(x[1]/c.Sim.Height()*float32(rows))
	if col < 0 || row < 0 || col >= c.width || row >= rows {
		return 0, 0, false
	}
	return col, row, true
}

//CellToWorld - domain position of a cell center
func (c *Console) CellToWorld(col int, row int) V.Vec2 {
	rows := c.fieldRows()
	if c.width == 0 || rows == 0 {
		return V.Zero
	}
	x := (float32(col) + 0.5) / float32(c.width) * c.Sim.Width()
	y := (float32(rows-row) - 0.5) / float32(rows) * c.Sim.Height()
	return V.Vec2{x, y}
}

//Count - particles drawn into a cell by the last Draw
func (c *Console) Count(col int, row int) int {
	if col < 0 || row < 0 || col >= c.width || row >= c.fieldRows() {
		return 0
	}
	return c.cells[row*c.width+col]
}

//Status - the bottom line
func (c *Console) Status() string {
	s := c.Sim.Stats()
	state := ""
	if c.Paused {
		state = " PAUSED"
	}
	return fmt.Sprintf("step %d t=%.4fs n=%d rho %.4g..%.4g%s  [space] pause [s] step [r] reset [q] quit",
		s.Step, s.Time, s.Particles, s.MinDensity, s.MaxDensity, state)
}

//Draw renders the current state and shows it
func (c *Console) Draw() {
	for i := range c.cells {
		c.cells[i] = 0
		c.shade[i] = 0
	}

	particles := c.Sim.Particles()
	c.shades = U.DensityShade(particles, c.shades)
	for i := range particles {
		col, row, ok := c.WorldToCell(particles[i].X)
		if !ok {
			continue
		}
		k := row*c.width + col
		c.cells[k]++
		c.shade[k] += c.shades[i]
	}

	c.Screen.Clear()
	bg := U.Background
	r, g, b := bg.RGB255()
	base := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
	rows := c.fieldRows()
	for row := 0; row < rows; row++ {
		for col := 0; col < c.width; col++ {
			k := row*c.width + col
			if c.cells[k] == 0 {
				c.Screen.SetContent(col, row, ' ', nil, base)
				continue
			}
			r, g, b := c.Palette.RGB255(c.shade[k] / float32(c.cells[k]))
			style := base.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
			c.Screen.SetContent(col, row, particleRune, nil, style)
		}
	}

	status := []rune(c.Status())
	for col := 0; col < c.width; col++ {
		ch := ' '
		if col < len(status) {
			ch = status[col]
		}
		c.Screen.SetContent(col, c.height-1, ch, nil, tcell.StyleDefault.Reverse(true))
	}
	c.Screen.Show()
}

//Tick advances one frame unless paused
func (c *Console) Tick() error {
	if c.Paused && !c.step {
		return nil
	}
	c.step = false
	return c.Sim.Update()
}

//HandleEvent reacts to input, false means quit
func (c *Console) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			return c.handleRune(ev.Rune())
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		if ev.Buttons()&tcell.Button1 == 0 {
			c.dragging = false
			return true
		}
		world := c.CellToWorld(x, y)
		if c.dragging {
			n := c.Sim.Drag(c.last, world, c.Options.ImpulseRadius2, c.Options.ImpulseStrength)
			c.log.WithFields(logrus.Fields{"at": V.String(world), "particles": n}).Debug("drag")
		}
		c.last = world
		c.dragging = true

	case *tcell.EventResize:
		c.Screen.Sync()
		c.resize()
	}
	return true
}

func (c *Console) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case ' ', 'p':
		c.Paused = !c.Paused
	case 's':
		c.step = true
	case 'r':
		if err := c.Reset(); err != nil {
			c.log.WithError(err).Warn("reset failed")
		}
	}
	return true
}

//Reset replaces the simulation with a freshly built one
func (c *Console) Reset() error {
	sim, err := c.build()
	if err != nil {
		return errors.Wrap(err, "reset")
	}
	c.Sim = sim
	c.dragging = false
	c.log.WithField("particles", sim.Len()).Info("simulation reset")
	return nil
}

//Run drives the loop until quit or interrupt. The screen must be initialised
//and is finalised on return.
func (c *Console) Run() error {
	sd := c.shutdown
	sd.Bind()
	defer sd.Done()
	defer c.Screen.Fini()
	c.Screen.EnableMouse()

	eventC := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := c.Screen.PollEvent()
			if ev == nil {
				return
			}
			eventC <- ev
		}
	}()

	fps := c.Options.FPS
	if fps <= 0 {
		fps = DefaultOptions().FPS
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-sd.Exiting():
			return nil
		case ev := <-eventC:
			if !c.HandleEvent(ev) {
				sd.Exit()
			}
		case <-ticker.C:
			if err := c.Tick(); err != nil {
				c.Draw()
				c.log.WithError(err).Error("simulation diverged")
				return err
			}
			c.Draw()
		}
	}
}
