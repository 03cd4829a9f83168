package cli

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"scaleview/internal/store"
	"scaleview/pkg/anim"
	"scaleview/pkg/geom"
	"scaleview/pkg/gesture"
	"scaleview/pkg/raster"
	"scaleview/pkg/viewport"
)

// DefaultFrame is the tick interval of a simulation.
const DefaultFrame = 16 * time.Millisecond

// maxSettleFrames bounds "settle" in case a script keeps an animation alive.
const maxSettleFrames = 10000

// Simulator replays gesture scripts against an engine on a manual clock.
//
// A script has one command per line; blank lines and lines starting with
// '#' are skipped:
//
//	size W H [L T R B]    viewport size and optional padding
//	content W H           content size
//	clear                 remove the content
//	down                  start of a touch
//	scale-begin           start of a pinch
//	pinch X Y FACTOR      scale around (X, Y)
//	drag DX DY            drag distance, previous minus current
//	fling VX VY           finger velocity in px/s
//	doubletap X Y
//	zoom in|out
//	pan left|right|up|down
//	reset
//	tick [N] [MS]         advance N frames of MS milliseconds
//	settle                tick until every animation is done
//	save                  remember the current transform
//	restore               restore the remembered transform
//	print                 print the transform
//	expect scale|tx|ty V [TOL]
type Simulator struct {
	Engine *gesture.Engine
	Clock  *anim.ManualClock
	Frame  time.Duration
	// Trace prints the transform after every executed line.
	Trace bool

	out   io.Writer
	line  int
	saved *gesture.SavedState
}

// NewSimulator creates a simulator writing its output to w.
func NewSimulator(w io.Writer, opts ...gesture.Option) *Simulator {
	clock := anim.NewManualClock(time.Unix(0, 0))
	return &Simulator{
		Engine: gesture.New(append(opts, gesture.WithClock(clock))...),
		Clock:  clock,
		Frame:  DefaultFrame,
		out:    w,
	}
}

// Run executes every line of r.
func (s *Simulator) Run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s.line++
		text := strings.TrimSpace(sc.Text())
		if err := s.Exec(text); err != nil {
			return fmt.Errorf("line %d: %w", s.line, err)
		}
		if s.Trace && text != "" && !strings.HasPrefix(text, "#") {
			fmt.Fprintf(s.out, "%-24s ", text)
			printState(s.out, s.Engine)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	return nil
}

// Exec executes one script line.
func (s *Simulator) Exec(line string) error {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	e := s.Engine

	switch cmd {
	case "size":
		v, err := floats(args, 2, 6)
		if err != nil {
			return fmt.Errorf("size: %w", err)
		}
		var p viewport.Padding
		if len(v) == 6 {
			p = viewport.Padding{Left: v[2], Top: v[3], Right: v[4], Bottom: v[5]}
		} else if len(v) != 2 {
			return fmt.Errorf("size: want 2 or 6 numbers")
		}
		if v[0] < 0 || v[1] < 0 || p.Left < 0 || p.Top < 0 || p.Right < 0 || p.Bottom < 0 {
			return fmt.Errorf("size: negative value")
		}
		e.SetViewportSize(v[0], v[1], p)
	case "content":
		v, err := floats(args, 2, 2)
		if err != nil {
			return fmt.Errorf("content: %w", err)
		}
		if v[0] <= 0 || v[1] <= 0 {
			return fmt.Errorf("content: size must be positive")
		}
		e.SetContent(v[0], v[1])
	case "clear":
		e.ClearContent()
	case "down":
		e.OnDown()
	case "scale-begin":
		e.OnScaleBegin()
	case "pinch":
		v, err := floats(args, 3, 3)
		if err != nil {
			return fmt.Errorf("pinch: %w", err)
		}
		e.OnScale(geom.Pt(v[0], v[1]), v[2])
	case "drag":
		v, err := floats(args, 2, 2)
		if err != nil {
			return fmt.Errorf("drag: %w", err)
		}
		e.OnDrag(v[0], v[1])
	case "fling":
		v, err := floats(args, 2, 2)
		if err != nil {
			return fmt.Errorf("fling: %w", err)
		}
		e.OnFling(v[0], v[1])
	case "doubletap":
		v, err := floats(args, 2, 2)
		if err != nil {
			return fmt.Errorf("doubletap: %w", err)
		}
		e.OnDoubleTap(geom.Pt(v[0], v[1]))
	case "zoom":
		return s.zoom(args)
	case "pan":
		return s.pan(args)
	case "reset":
		e.ResetTranslateScale()
	case "tick":
		return s.tick(args)
	case "settle":
		for n := 0; n < maxSettleFrames; n++ {
			s.Clock.Advance(s.Frame)
			if !e.Tick() {
				return nil
			}
		}
		return fmt.Errorf("settle: still animating after %d frames", maxSettleFrames)
	case "save":
		st := e.SaveState()
		s.saved = &st
	case "restore":
		if s.saved == nil {
			return fmt.Errorf("restore: nothing saved")
		}
		e.RestoreState(*s.saved)
	case "print":
		printState(s.out, e)
	case "expect":
		return s.expect(args)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func (s *Simulator) zoom(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("zoom: want in or out")
	}
	switch args[0] {
	case "in":
		s.Engine.ZoomIn()
	case "out":
		s.Engine.ZoomOut()
	default:
		return fmt.Errorf("zoom: want in or out, got %q", args[0])
	}
	return nil
}

func (s *Simulator) pan(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("pan: want a direction")
	}
	switch args[0] {
	case "left":
		s.Engine.PanLeft()
	case "right":
		s.Engine.PanRight()
	case "up":
		s.Engine.PanUp()
	case "down":
		s.Engine.PanDown()
	default:
		return fmt.Errorf("pan: unknown direction %q", args[0])
	}
	return nil
}

func (s *Simulator) tick(args []string) error {
	n, frame := 1, s.Frame
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 0 {
			return fmt.Errorf("tick: bad count %q", args[0])
		}
		n = v
	}
	if len(args) > 1 {
		ms, err := strconv.ParseFloat(args[1], 64)
		if err != nil || ms <= 0 {
			return fmt.Errorf("tick: bad interval %q", args[1])
		}
		frame = time.Duration(ms * float64(time.Millisecond))
	}
	for i := 0; i < n; i++ {
		s.Clock.Advance(frame)
		s.Engine.Tick()
	}
	return nil
}

func (s *Simulator) expect(args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("expect: want NAME VALUE [TOLERANCE]")
	}
	v, err := floats(args[1:], 1, 2)
	if err != nil {
		return fmt.Errorf("expect: %w", err)
	}
	want, tol := v[0], 1e-6
	if len(v) == 2 {
		tol = v[1]
	}

	var got float64
	switch args[0] {
	case "scale":
		got = s.Engine.Scale()
	case "min":
		got = s.Engine.MinScale()
	case "tx":
		got = s.Engine.Translation().X
	case "ty":
		got = s.Engine.Translation().Y
	default:
		return fmt.Errorf("expect: unknown value %q", args[0])
	}
	if d := got - want; d > tol || d < -tol {
		return fmt.Errorf("expect %s = %g, got %g", args[0], want, got)
	}
	return nil
}

func floats(args []string, minN, maxN int) ([]float64, error) {
	if len(args) < minN || len(args) > maxN {
		if minN == maxN {
			return nil, fmt.Errorf("want %d numbers, got %d", minN, len(args))
		}
		return nil, fmt.Errorf("want %d to %d numbers, got %d", minN, maxN, len(args))
	}
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", a)
		}
		out[i] = v
	}
	return out, nil
}

// Simulate runs a gesture script file.
func Simulate(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	fs.SetOutput(w)
	var c common
	c.register(fs)
	imagePath := fs.String("image", "", "image supplying the content size and the rendered frame")
	output := fs.String("o", "", "render the final frame to this PNG")
	trace := fs.Bool("trace", false, "print the transform after every line")
	statePath := fs.String("state", "", "state file: restore the view of -image before the script, save it after")

	scriptPath, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	cfg, size, err := c.setup()
	if err != nil {
		return err
	}

	var img image.Image
	if *imagePath != "" {
		if img, _, err = raster.DecodeFile(*imagePath); err != nil {
			return err
		}
	}

	if *statePath != "" && *imagePath == "" {
		return fmt.Errorf("-state needs -image")
	}

	f, err := os.Open(scriptPath)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	sim := NewSimulator(w, cfg.Options()...)
	sim.Trace = *trace
	fitView(sim.Engine, size, img)

	var st *store.Store
	if *statePath != "" {
		if st, err = store.Open(*statePath); err != nil {
			return err
		}
		saved, err := st.Get(store.Key(*imagePath))
		switch {
		case errors.Is(err, store.ErrNotFound):
		case err != nil:
			return err
		default:
			sim.Engine.RestoreState(saved)
		}
	}

	if err := sim.Run(f); err != nil {
		return err
	}
	printState(w, sim.Engine)

	if st != nil {
		if err := st.Put(store.Key(*imagePath), sim.Engine.SaveState()); err != nil {
			return err
		}
	}

	if *output != "" {
		if img == nil {
			return fmt.Errorf("-o needs -image")
		}
		frame := newRenderer(cfg, img).Render(sim.Engine)
		if err := raster.SavePNG(*output, frame); err != nil {
			return err
		}
		fmt.Fprintf(w, "✓ Saved %s\n", *output)
	}
	return nil
}
