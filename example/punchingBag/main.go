// Command punchingBag drives the clavicle/bag contact model without a host
// simulation. It writes
//
//   - force_sweep.csv, force_time.png and force_penetration.png: the
//     smoothed force along a synthetic cubic penetration history;
//   - strike.csv and strike_force.png: a kinematic strike where the bag
//     swings into the clavicle sphere and back out, evaluated by a Rig.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tackling "github.com/AndreaBraschi/tackling-msk"
	"github.com/AndreaBraschi/tackling-msk/actor"
	"github.com/AndreaBraschi/tackling-msk/force"
	"github.com/AndreaBraschi/tackling-msk/geometry"
	"github.com/AndreaBraschi/tackling-msk/trajectory"
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Knots of the synthetic penetration history: separated, in contact,
// deepest, released.
var (
	knotTimes       = []float64{0, 0.3, 0.5, 1}
	knotPenetration = []float64{-0.01, 0.003, 0.007, 0.000025}
)

const (
	sweepRate = 5.0 // m/s

	strikeDuration = 0.5  // s
	startGap       = 0.3  // sphere centre to bag axis at rest (m)
	peakIndent     = 0.01 // m
)

func main() {
	out := flag.String("out", "output/punching_bag", "output directory")
	samples := flag.Int("samples", 121, "samples along each history")
	k := flag.Float64("k", tackling.BagStiffness, "contact stiffness")
	c := flag.Float64("c", tackling.BagDamping, "contact damping")
	offset := flag.String("sphere-offset", "-0.05,0.015,0.1", "sphere centre in the clavicle frame (x,y,z)")
	workers := flag.Int("workers", 1, "rig workers")
	flag.Parse()

	center, err := parseVec3(*offset)
	if err != nil {
		log.Fatalf("-sphere-offset: %v", err)
	}

	cfg := tackling.PunchingBagConfig()
	cfg.Force = force.DefaultParams(*k, *c)
	cfg.Pairs[0].Sphere.Center = center
	cfg.Workers = *workers
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.Fatalf("cannot create output dir: %v", err)
	}

	log.Printf("Sweeping %d samples of the synthetic history...", *samples)
	if err := sweep(*out, *samples, cfg); err != nil {
		log.Fatalf("sweep: %v", err)
	}

	log.Printf("Simulating strike...")
	if err := strike(*out, *samples, cfg); err != nil {
		log.Fatalf("strike: %v", err)
	}

	log.Printf("Done.")
}

func parseVec3(s string) (mgl64.Vec3, error) {
	fields := strings.Split(s, ",")
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return mgl64.Vec3{}, err
		}
		values[i] = v
	}
	return geometry.Vec3FromSlice(values)
}

func sweep(out string, samples int, cfg tackling.ContactGeometryConfig) error {
	history, err := trajectory.FitCubic(knotTimes, knotPenetration)
	if err != nil {
		return err
	}
	ts, err := trajectory.Linspace(knotTimes[0], knotTimes[len(knotTimes)-1], samples)
	if err != nil {
		return err
	}
	xs := history.Sample(ts)

	pair := cfg.Pairs[0]
	radius, err := force.EffectiveRadius(pair.Sphere.Radius, pair.Cylinder.Radius)
	if err != nil {
		return err
	}

	fs := make([]float64, len(xs))
	rates := make([]float64, len(xs))
	for i, x := range xs {
		rates[i] = sweepRate
		fs[i], err = force.SmoothHuntCrossley(x, sweepRate, radius, cfg.Force)
		if err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
	}

	if err := writeCSV(filepath.Join(out, "force_sweep.csv"),
		[]string{"t", "penetration", "rate", "force"}, [][]float64{ts, xs, rates, fs}); err != nil {
		return err
	}
	if err := saveLinePlot(filepath.Join(out, "force_time.png"), "Scalar force over time", "time (s)", "force (N)", ts, fs); err != nil {
		return err
	}
	return saveLinePlot(filepath.Join(out, "force_penetration.png"), "Force vs. penetration", "penetration (m)", "force (N)", xs, fs)
}

// strike swings the bag along -X into the sphere and back:
// x(t) = x0 - A·sin(πt/T), reaching peakIndent at t = T/2.
func strike(out string, samples int, cfg tackling.ContactGeometryConfig) error {
	pair := cfg.Pairs[0]

	scene := tackling.NewScene()
	clavicle := actor.NewBody(string(pair.SphereBody), actor.NewTransform())
	bag := actor.NewBody(string(pair.CylinderBody), actor.Transform{
		Position: pair.Sphere.Center.Add(mgl64.Vec3{startGap, -pair.Sphere.Center.Y(), 0}),
		Rotation: mgl64.QuatIdent(),
	})
	if err := scene.AddBody(clavicle); err != nil {
		return err
	}
	if err := scene.AddBody(bag); err != nil {
		return err
	}

	rig, err := tackling.NewRig(cfg)
	if err != nil {
		return err
	}
	rig.Events.Subscribe(tackling.CONTACT_ENTER, func(e tackling.Event) {
		log.Printf("contact: %s enters at x=%.5f m", e.(tackling.ContactEnterEvent).State.Pair, e.(tackling.ContactEnterEvent).State.Penetration)
	})
	rig.Events.Subscribe(tackling.CONTACT_EXIT, func(e tackling.Event) {
		log.Printf("contact: %s exits", e.(tackling.ContactExitEvent).Pair)
	})
	rig.Events.Subscribe(tackling.CONTACT_FAILED, func(e tackling.Event) {
		log.Printf("contact: %v", e.(tackling.ContactFailedEvent).State.Err)
	})

	amplitude := startGap - pair.Cylinder.Radius - pair.Sphere.Radius + peakIndent
	speed := amplitude * math.Pi / strikeDuration
	dt := strikeDuration / float64(samples-1)

	var ts, xs, rates, fs, gaps []float64
	for i := 0; i < samples; i++ {
		t := float64(i) * dt
		bag.Velocity = mgl64.Vec3{-speed * math.Cos(math.Pi*t/strikeDuration), 0, 0}

		state := rig.Step(scene)[0]
		if state.Err == nil {
			ts = append(ts, t)
			xs = append(xs, state.Penetration)
			rates = append(rates, state.PenetrationRate)
			fs = append(fs, state.Force)
			gaps = append(gaps, state.CapClearance)
		}

		scene.Advance(dt)
	}

	if err := writeCSV(filepath.Join(out, "strike.csv"),
		[]string{"t", "penetration", "rate", "force", "cap_clearance"}, [][]float64{ts, xs, rates, fs, gaps}); err != nil {
		return err
	}
	return saveLinePlot(filepath.Join(out, "strike_force.png"), "Strike force over time", "time (s)", "force (N)", ts, fs)
}

func writeCSV(filename string, header []string, cols [][]float64) error {
	n := len(cols[0])
	for _, c := range cols {
		if len(c) != n {
			return fmt.Errorf("CSV %s: column size mismatch", filename)
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("CSV: cannot open %s: %w", filename, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("CSV: cannot write header: %w", err)
	}
	row := make([]string, len(cols))
	for r := 0; r < n; r++ {
		for c := range cols {
			row[c] = strconv.FormatFloat(cols[c][r], 'g', 10, 64)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("CSV: cannot write row %d: %w", r, err)
		}
	}
	w.Flush()

	return w.Error()
}

func saveLinePlot(filename, title, xlabel, ylabel string, xs, ys []float64) error {
	if len(xs) != len(ys) || len(xs) == 0 {
		return fmt.Errorf("plot %s: invalid data", filename)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(2)
	p.Add(line)

	return p.Save(8*vg.Inch, 6*vg.Inch, filename)
}
