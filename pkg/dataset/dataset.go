package dataset

import (
	"fmt"
	"maps"
	"math"
	"strings"

	"gorgonia.org/tensor"
)

// Row is one record of the table. Index is the row's identity in the original
// table and survives duplication.
type Row struct {
	Index  int
	Fields map[string]any
}

func (r Row) clone() Row {
	return Row{Index: r.Index, Fields: maps.Clone(r.Fields)}
}

// Dataset is a read-only view over the original rows and the label columns.
type Dataset struct {
	rows    []Row
	targets []string
	labels  [][]float64
	counts  []float64
}

func New(rows []Row, targets []string) (*Dataset, error) {
	if len(targets) == 0 {
		return nil, schemaf("", -1, "target list is empty")
	}
	if len(rows) == 0 {
		return nil, schemaf("", -1, "dataset has no rows")
	}

	seen := make(map[string]struct{}, len(targets))
	for _, name := range targets {
		if _, ok := seen[name]; ok {
			return nil, schemaf(name, -1, "listed more than once in targets")
		}
		seen[name] = struct{}{}
	}

	d := &Dataset{
		rows:    make([]Row, len(rows)),
		targets: append([]string(nil), targets...),
		labels:  make([][]float64, len(rows)),
	}

	flat := make([]float64, 0, len(rows)*len(targets))
	for i, row := range rows {
		d.rows[i] = row.clone()
		d.labels[i] = make([]float64, len(targets))
		for j, name := range targets {
			v, ok := row.Fields[name]
			if !ok {
				return nil, schemaf(name, row.Index, "missing label field")
			}
			label, ok := CoerceLabel(v)
			if !ok {
				return nil, schemaf(name, row.Index, "value %v is not a binary label", v)
			}
			d.labels[i][j] = label
			flat = append(flat, label)
		}
	}

	counts, err := columnSums(flat, len(rows), len(targets))
	if err != nil {
		return nil, fmt.Errorf("error summing label columns: %w", err)
	}
	d.counts = counts

	return d, nil
}

func columnSums(flat []float64, rows, cols int) ([]float64, error) {
	m := tensor.New(tensor.WithShape(rows, cols), tensor.WithBacking(flat))
	s, err := m.Sum(0)
	if err != nil {
		return nil, err
	}
	switch v := s.Data().(type) {
	case []float64:
		return append([]float64(nil), v...), nil
	case float64:
		return []float64{v}, nil
	default:
		return nil, fmt.Errorf("unexpected tensor data %T", v)
	}
}

// CoerceLabel converts a field value to 0 or 1. It reports false for values
// that are not a binary label.
func CoerceLabel(v any) (float64, bool) {
	var f float64
	switch v := v.(type) {
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case float32:
		f = float64(v)
	case float64:
		f = v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "1.0", "true":
			return 1, true
		case "0", "0.0", "false":
			return 0, true
		default:
			return 0, false
		}
	default:
		return 0, false
	}
	if math.IsNaN(f) || (f != 0 && f != 1) {
		return 0, false
	}
	return f, true
}

func (d *Dataset) Len() int { return len(d.rows) }

func (d *Dataset) Targets() []string { return append([]string(nil), d.targets...) }

// Row returns a copy of the i-th original row.
func (d *Dataset) Row(i int) Row { return d.rows[i].clone() }

func (d *Dataset) Rows() []Row {
	out := make([]Row, len(d.rows))
	for i, row := range d.rows {
		out[i] = row.clone()
	}
	return out
}

// Labels returns the label vector of the i-th row, ordered like Targets.
func (d *Dataset) Labels(i int) []float64 { return d.labels[i] }

// Counts returns the positive count of every label over the whole dataset.
func (d *Dataset) Counts() []float64 { return append([]float64(nil), d.counts...) }

// CountsOf returns the positive counts over the rows at the given positions.
// Positions may repeat.
func (d *Dataset) CountsOf(indices []int) []float64 {
	out := make([]float64, len(d.targets))
	for _, i := range indices {
		for j, v := range d.labels[i] {
			out[j] += v
		}
	}
	return out
}

// Columns returns the field names present on the first row, labels first and
// the remaining fields in sorted order.
func (d *Dataset) Columns() []string {
	return columnsOf(d.rows, d.targets)
}

// Index returns the identity of the i-th original row.
func (d *Dataset) Index(i int) int { return d.rows[i].Index }
