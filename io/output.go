package io

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Curve is one fitted function sampled on a grid.
type Curve struct {
	Name string
	Ys   []float64
}

// WriteCurves writes a text table with xs in the first column and one column
// per curve after it. The header line names the columns, and points a curve
// couldn't be evaluated at should be NaN. The file can be read back with
// ReadSamples.
func WriteCurves(fname string, xs []float64, curves []Curve) error {
	for _, c := range curves {
		if len(c.Ys) != len(xs) {
			return fmt.Errorf(
				"Curve '%s' has %d points, but the grid has %d.",
				c.Name, len(c.Ys), len(xs),
			)
		}
	}

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	names := make([]string, len(curves))
	for i := range curves {
		names[i] = curves[i].Name
	}
	fmt.Fprintf(w, "# x %s\n", strings.Join(names, " "))

	for i, x := range xs {
		fmt.Fprintf(w, "%.10g", x)
		for _, c := range curves {
			fmt.Fprintf(w, " %.10g", c.Ys[i])
		}
		fmt.Fprintln(w)
	}

	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}
