// Package datainput is the data-entry collaborator of the identification
// methods: it writes the CSV template a method publishes through its
// InputLayout and reads a filled-in template back into samples plus the
// applied step magnitude.
package datainput

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/luizn22/auto-control-tools/internal/plant"
)

var ErrBadLayout = errors.New("datainput: layout mismatch")

// WriteLayout creates a CSV template containing only the header row of
// the given fields. The engineer fills it in with measurements.
func WriteLayout(path string, fields []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()
	return w.Write(fields)
}

// ReadOptions loosen the layout requirements the way the identification
// workflow allows: a known constant sampling interval makes the time
// column optional, a known step magnitude makes the input column
// optional.
type ReadOptions struct {
	SampleTime float64 // constant sampling interval, 0 = read times from the file
	StepSignal float64 // applied step magnitude, 0 = derive from the input column
}

// Read parses a filled-in template against the method's field list and
// returns the samples and the step magnitude. When the step magnitude is
// not forced it is taken as the largest-magnitude value of the input
// column, which for step-test data is the step level itself.
func Read(path string, fields []string, opts ReadOptions) ([]plant.Sample, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("datainput: %w", err)
	}
	if len(rows) < 2 {
		return nil, 0, fmt.Errorf("%w: no data rows in %s", ErrBadLayout, path)
	}

	col := map[string]int{}
	for i, name := range rows[0] {
		col[name] = i
	}
	idx := func(name string) (int, bool) {
		i, ok := col[name]
		return i, ok
	}

	timeCol, hasTime := idx("time")
	if !hasTime && opts.SampleTime <= 0 {
		return nil, 0, fmt.Errorf("%w: missing time column and no sample time given", ErrBadLayout)
	}
	inputCol, hasInput := idx("input")
	if !hasInput && opts.StepSignal == 0 {
		return nil, 0, fmt.Errorf("%w: missing input column and no step signal given", ErrBadLayout)
	}
	outputCol, hasOutput := idx("output")
	if !hasOutput {
		return nil, 0, fmt.Errorf("%w: missing output column", ErrBadLayout)
	}
	for _, name := range fields {
		if _, ok := col[name]; !ok && name != "time" && name != "input" {
			return nil, 0, fmt.Errorf("%w: missing column %q", ErrBadLayout, name)
		}
	}

	samples := make([]plant.Sample, 0, len(rows)-1)
	step := opts.StepSignal
	for n, row := range rows[1:] {
		out, err := strconv.ParseFloat(row[outputCol], 64)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: bad output value on row %d: %v", ErrBadLayout, n+2, err)
		}
		t := float64(n) * opts.SampleTime
		if hasTime && opts.SampleTime <= 0 {
			if t, err = strconv.ParseFloat(row[timeCol], 64); err != nil {
				return nil, 0, fmt.Errorf("%w: bad time value on row %d: %v", ErrBadLayout, n+2, err)
			}
		}
		if hasInput && opts.StepSignal == 0 {
			u, err := strconv.ParseFloat(row[inputCol], 64)
			if err != nil {
				return nil, 0, fmt.Errorf("%w: bad input value on row %d: %v", ErrBadLayout, n+2, err)
			}
			if math.Abs(u) > math.Abs(step) {
				step = u
			}
		}
		samples = append(samples, plant.Sample{Time: t, Output: out})
	}
	if step == 0 {
		return nil, 0, fmt.Errorf("%w: input column holds no step", ErrBadLayout)
	}
	return samples, step, nil
}
