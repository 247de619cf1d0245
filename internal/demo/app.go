package demo

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/nexus/event"
)

// App owns the terminal, the bus, and the frame loop. Each tick it
// dispatches a Tick event, drains the bus with one Process call, and
// renders the resulting state.
type App struct {
	cfg    Config
	bus    *event.Bus
	world  *World
	screen tcell.Screen

	watcher *ConfigWatcher
	script  *Script
	input   *event.Sender

	frame    uint64
	failures int
	quit     chan struct{}
}

// Options configures a demo App.
type Options struct {
	ConfigPath string
	ScriptPath string // overrides the config's script entry
	Seed       int64
}

// New builds the app: bus, world, optional config watcher and Lua hook.
func New(opts Options) (*App, error) {
	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	bus := event.New()
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	a := &App{
		cfg:   cfg,
		bus:   bus,
		world: NewWorld(bus, cfg, seed),
		input: event.NewSender(bus, "input"),
		quit:  make(chan struct{}),
	}

	if opts.ConfigPath != "" {
		w, err := WatchConfig(opts.ConfigPath, bus)
		if err != nil {
			a.Shutdown()
			return nil, err
		}
		a.watcher = w
	}

	scriptPath := opts.ScriptPath
	if scriptPath == "" {
		scriptPath = cfg.Script
	}
	if scriptPath != "" {
		s, err := LoadScript(scriptPath, bus)
		if err != nil {
			a.Shutdown()
			return nil, err
		}
		a.script = s
	}

	return a, nil
}

// Run enters the frame loop and blocks until quit or context cancel.
func (a *App) Run(ctx context.Context) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	a.screen = screen
	defer screen.Fini()
	screen.HideCursor()

	go a.pollInput()

	ticker := time.NewTicker(time.Duration(a.cfg.TickMS) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-a.quit:
			return nil
		case <-ticker.C:
			a.tick(ctx)
		}
	}
}

// tick advances one frame: dispatch, process, render.
func (a *App) tick(ctx context.Context) {
	a.frame++
	a.bus.Dispatch(Tick{Frame: a.frame})

	report := a.bus.Process(ctx)
	a.failures += len(report.Failures)

	a.render(report)
}

// pollInput translates terminal events into bus events. It runs on its
// own goroutine; Dispatch is the thread-safe boundary.
func (a *App) pollInput() {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return // screen finalized
		}
		switch tev := ev.(type) {
		case *tcell.EventKey:
			switch tev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				close(a.quit)
				return
			case tcell.KeyUp:
				a.input.Emit(PlayerMoved{DY: -1})
			case tcell.KeyDown:
				a.input.Emit(PlayerMoved{DY: 1})
			case tcell.KeyLeft:
				a.input.Emit(PlayerMoved{DX: -1})
			case tcell.KeyRight:
				a.input.Emit(PlayerMoved{DX: 1})
			case tcell.KeyRune:
				if tev.Rune() == 'q' {
					close(a.quit)
					return
				}
			}
		case *tcell.EventResize:
			a.screen.Sync()
		}
	}
}

var (
	styleDefault = tcell.StyleDefault
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleDead    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

func (a *App) render(report event.Report) {
	s := a.screen
	s.Clear()

	p := a.world.Player

	// Arena border.
	for x := 0; x <= a.cfg.ArenaWidth+1; x++ {
		s.SetContent(x, 0, '-', nil, styleDim)
		s.SetContent(x, a.cfg.ArenaHeight+1, '-', nil, styleDim)
	}
	for y := 1; y <= a.cfg.ArenaHeight; y++ {
		s.SetContent(0, y, '|', nil, styleDim)
		s.SetContent(a.cfg.ArenaWidth+1, y, '|', nil, styleDim)
	}

	// Player.
	glyph, style := '@', stylePlayer
	if !p.Alive {
		glyph, style = 'x', styleDead
	}
	s.SetContent(p.X+1, p.Y+1, glyph, nil, style)

	// Status line.
	stats := a.bus.Stats()
	status := fmt.Sprintf("hp %d/%d  enemies %d  frame %d  events %d  failures %d  [arrows move, q quits]",
		p.HP, p.MaxHP, a.world.Spawner.Enemies(), a.frame, stats.EventsDispatched, a.failures)
	drawText(s, 0, a.cfg.ArenaHeight+2, styleDefault, status)

	// Combat log.
	for i, line := range a.world.Log.Lines() {
		drawText(s, 0, a.cfg.ArenaHeight+4+i, styleDim, line)
	}

	s.Show()
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range text {
		s.SetContent(x+i, y, r, nil, style)
	}
}

// Shutdown releases everything the app owns.
func (a *App) Shutdown() {
	if a.script != nil {
		a.script.Close()
		a.script = nil
	}
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
	if a.world != nil {
		a.world.Close()
	}
}
