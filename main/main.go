package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"runtime/pprof"
	"strings"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/phil-mansfield/curvefit"
	"github.com/phil-mansfield/curvefit/io"
	"github.com/phil-mansfield/curvefit/math/fit"
	"github.com/phil-mansfield/curvefit/render"
)

type FileGroup struct {
	log, prof *os.File
}

func (fg *FileGroup) Close() {
	if fg.log != nil {
		log.SetOutput(os.Stderr)
		err := fg.log.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	if fg.prof != nil {
		pprof.StopCPUProfile()
		err := fg.prof.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}
}

func main() {
	var (
		fitFile, exampleConfig string
	)
	vars := map[string]*string{
		"Fit":           &fitFile,
		"ExampleConfig": &exampleConfig,
	}

	flag.StringVar(
		&fitFile, "Fit", "",
		"Configuration file for [Fit] mode.",
	)
	flag.StringVar(
		&exampleConfig,
		"ExampleConfig", "", "Prints an example configuration file of the "+
			"specified type to stdout. The only accepted argument is 'Fit'.",
	)

	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch modeName {
	case "Fit":
		con, err := io.ReadFitConfig(fitFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		if err := runFit(con); err != nil {
			log.Fatal(err.Error())
		}
	case "ExampleConfig":
		switch exampleConfig {
		case "Fit":
			fmt.Println(io.ExampleFitFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. The only recognized " +
					"argument is 'Fit'.",
			)
		}
	default:
		panic("Impossible")
	}
}

func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but curvefit "+
				"only accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

// setupFiles redirects logging and starts profiling if the config asks for
// it.
func setupFiles(con *io.FitConfig) *FileGroup {
	fg := &FileGroup{}
	if con.ValidLogFile() {
		f, err := os.Create(con.LogFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		log.SetOutput(f)
		fg.log = f
	}

	if con.ValidProfileFile() {
		f, err := os.Create(con.ProfileFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal(err.Error())
		}
		fg.prof = f
	}
	return fg
}

// runFit runs fitMain with the config's log and profile files open. They are
// closed before returning, since callers exit through log.Fatal, which skips
// deferred calls.
func runFit(con *io.FitConfig) error {
	fg := setupFiles(con)
	err := fitMain(con)
	fg.Close()
	return err
}

func fitMain(con *io.FitConfig) error {
	methods, err := con.Methods()
	if err != nil {
		return err
	}

	samples, err := io.ReadSamples(
		con.Input, con.XColumn, con.YColumn, con.DateX,
	)
	if err != nil {
		return err
	}
	log.Printf("Read %d samples from %s", len(samples), con.Input)

	opts := con.Options()
	results := []*curvefit.Result{}
	for _, m := range methods {
		res, err := curvefit.Fit(m, samples, opts)
		if err != nil {
			// One method failing (e.g. a spline with a single sample) shouldn't
			// stop the others.
			log.Printf("%s failed: %s", m, err.Error())
			continue
		}
		report(res, samples, con.Eval)
		results = append(results, res)
	}

	if len(results) == 0 {
		return fmt.Errorf("Every method failed on %s.", con.Input)
	}

	lo, hi := samples.Range()
	if con.ValidOutput() {
		xs := grid(lo, hi, con.CurvePoints)
		curves := make([]io.Curve, len(results))
		for i, res := range results {
			curves[i] = io.Curve{Name: res.Method.String(), Ys: gridEval(res, xs)}
		}
		if err := io.WriteCurves(con.Output, xs, curves); err != nil {
			return err
		}
		log.Printf("Wrote %d curves to %s", len(curves), con.Output)
	}

	if con.ValidPlotFile() {
		curves := make([]render.Curve, len(results))
		for i, res := range results {
			xs, ys := res.Curve(lo, hi, con.CurvePoints)
			curves[i] = render.Curve{Name: res.Method.String(), Xs: xs, Ys: ys}
		}
		if err := render.PlotFits(con.PlotFile, samples, curves); err != nil {
			return err
		}
		plt.Execute()
		log.Printf("Plotted %d curves to %s", len(curves), con.PlotFile)
	}

	return nil
}

func report(res *curvefit.Result, samples curvefit.SampleSet, evals []float64) {
	fmt.Printf("%s:\n", res.Method)
	if res.Coeffs.Basis != curvefit.NoBasis {
		fmt.Printf("    y = %s\n", res.Coeffs)
	}
	if res.Method.IsIterative() {
		fmt.Printf("    %s after %d iterations\n", res.Status, res.Iterations)
	}
	if !math.IsNaN(res.Cond) {
		fmt.Printf("    condition number = %.4g\n", res.Cond)
	}
	if p, ok := res.Coeffs.Poly(); ok && res.Method.IsFit() {
		xs, ys := samples.XYs()
		fmt.Printf("    SSR = %.6g\n", fit.SSR(xs, ys, p))
	}

	for _, x := range evals {
		y, err := res.Eval(x)
		if err != nil {
			fmt.Printf("    f(%g) = (%s)\n", x, err.Error())
		} else {
			fmt.Printf("    f(%g) = %.6g\n", x, y)
		}
	}
}

func grid(lo, hi float64, n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	xs[n-1] = hi
	return xs
}

// gridEval evaluates res at every x, using NaN wherever it can't be
// evaluated.
func gridEval(res *curvefit.Result, xs []float64) []float64 {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		y, err := res.Eval(x)
		if err != nil {
			y = math.NaN()
		}
		ys[i] = y
	}
	return ys
}
