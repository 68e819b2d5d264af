package io

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/phil-mansfield/table"

	"github.com/phil-mansfield/curvefit"
)

// ErrBadDate is returned when an x value can't be read as a YYYYMMDD date.
var ErrBadDate = errors.New("io: not a YYYYMMDD date")

// ReadSamples reads the samples in columns xCol and yCol of a text table.
// Rows where either value is NaN or infinite are dropped. If dateX is true,
// x values are read as YYYYMMDD dates and converted to Unix milliseconds.
func ReadSamples(
	fname string, xCol, yCol int, dateX bool,
) (curvefit.SampleSet, error) {
	cols, err := table.ReadTable(fname, []int{xCol, yCol}, nil)
	if err != nil {
		return nil, err
	}
	xs, ys := cols[0], cols[1]

	samples := curvefit.NewSampleSet(xs, ys).Clean()
	if !dateX {
		return samples, nil
	}

	for i := range samples {
		ms, err := DateMillis(samples[i].X)
		if err != nil {
			return nil, fmt.Errorf("%s, row %d: %w", fname, i, err)
		}
		samples[i].X = ms
	}
	return samples, nil
}

// DateMillis converts a date written as the number YYYYMMDD into
// milliseconds since the Unix epoch, taking the date to start at midnight
// UTC.
func DateMillis(yyyymmdd float64) (float64, error) {
	if yyyymmdd != math.Trunc(yyyymmdd) || yyyymmdd < 0 {
		return 0, fmt.Errorf("%w: %g", ErrBadDate, yyyymmdd)
	}

	n := int(yyyymmdd)
	year, month, day := n/10000, (n/100)%100, n%100
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, fmt.Errorf("%w: %d", ErrBadDate, n)
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes Feb 30 to Mar 2 and so on. Don't allow that.
	if t.Day() != day {
		return 0, fmt.Errorf("%w: %d", ErrBadDate, n)
	}
	return float64(t.UnixNano() / int64(time.Millisecond)), nil
}
