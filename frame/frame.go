package frame

import (
	"fmt"
	"math"
	"strings"
)

// Column is a single named feature column.
type Column struct {
	Name string
	Data []float64
}

// Frame is an ordered collection of equal-length columns.
// The zero value is an empty frame with zero rows.
type Frame struct {
	cols []Column
}

// New creates a Frame from the given columns.
// Returns an error if column lengths differ.
func New(cols ...Column) (Frame, error) {
	if len(cols) == 0 {
		return Frame{}, nil
	}
	rows := len(cols[0].Data)
	for _, c := range cols[1:] {
		if len(c.Data) != rows {
			return Frame{}, fmt.Errorf("frame: column %q has %d rows, expected %d", c.Name, len(c.Data), rows)
		}
	}
	out := make([]Column, len(cols))
	copy(out, cols)
	return Frame{cols: out}, nil
}

// MustNew is like New but panics on mismatched column lengths.
// Intended for literals in tests and examples.
func MustNew(cols ...Column) Frame {
	f, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return f
}

// NumRows returns the number of rows in the frame.
func (f Frame) NumRows() int {
	if len(f.cols) == 0 {
		return 0
	}
	return len(f.cols[0].Data)
}

// NumCols returns the number of columns in the frame.
func (f Frame) NumCols() int { return len(f.cols) }

// Names returns the column names in order.
func (f Frame) Names() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.Name
	}
	return names
}

// Columns returns the columns in order. The slice is shared; callers must
// not modify it.
func (f Frame) Columns() []Column { return f.cols }

// Column returns the first column with the given name.
func (f Frame) Column(name string) (Column, bool) {
	for _, c := range f.cols {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Select returns a new frame containing only the named columns, in the
// requested order. Returns an error for unknown names.
func (f Frame) Select(names ...string) (Frame, error) {
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		c, ok := f.Column(name)
		if !ok {
			return Frame{}, fmt.Errorf("frame: unknown column %q", name)
		}
		cols = append(cols, c)
	}
	return Frame{cols: cols}, nil
}

// Rows returns a new frame containing the rows at the given indices,
// in the requested order.
func (f Frame) Rows(idx []int) (Frame, error) {
	n := f.NumRows()
	cols := make([]Column, len(f.cols))
	for i, c := range f.cols {
		data := make([]float64, len(idx))
		for j, r := range idx {
			if r < 0 || r >= n {
				return Frame{}, fmt.Errorf("frame: row index %d out of range [0,%d)", r, n)
			}
			data[j] = c.Data[r]
		}
		cols[i] = Column{Name: c.Name, Data: data}
	}
	return Frame{cols: cols}, nil
}

// Clone returns a deep copy of the frame.
func (f Frame) Clone() Frame {
	cols := make([]Column, len(f.cols))
	for i, c := range f.cols {
		data := make([]float64, len(c.Data))
		copy(data, c.Data)
		cols[i] = Column{Name: c.Name, Data: data}
	}
	return Frame{cols: cols}
}

// Concat joins frames column-wise in argument order. Duplicate column names
// are permitted; order is preserved. Returns an error if row counts differ.
func Concat(frames ...Frame) (Frame, error) {
	var cols []Column
	rows := -1
	for _, f := range frames {
		if f.NumCols() == 0 {
			continue
		}
		if rows == -1 {
			rows = f.NumRows()
		} else if f.NumRows() != rows {
			return Frame{}, fmt.Errorf("frame: cannot concat %d rows with %d rows", f.NumRows(), rows)
		}
		cols = append(cols, f.cols...)
	}
	return Frame{cols: cols}, nil
}

// String renders a short structural summary, e.g. "Frame(3 cols x 100 rows: a, b, c)".
func (f Frame) String() string {
	return fmt.Sprintf("Frame(%d cols x %d rows: %s)", f.NumCols(), f.NumRows(), strings.Join(f.Names(), ", "))
}

// IsNaN reports whether v is a missing value marker.
func IsNaN(v float64) bool { return math.IsNaN(v) }
