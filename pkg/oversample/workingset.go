package oversample

import "github.com/grexie/oversample/pkg/dataset"

// WorkingSet is the growing collection being balanced. It stores positions
// into the original dataset and keeps the label counts up to date so a
// candidate is scored without summing the whole set.
type WorkingSet struct {
	ds        *dataset.Dataset
	positions []int
	counts    []float64
	scratch   []float64
}

func NewWorkingSet(ds *dataset.Dataset) *WorkingSet {
	ws := &WorkingSet{
		ds:        ds,
		positions: make([]int, ds.Len()),
		counts:    ds.Counts(),
		scratch:   make([]float64, len(ds.Targets())),
	}
	for i := range ws.positions {
		ws.positions[i] = i
	}
	return ws
}

func (ws *WorkingSet) Len() int { return len(ws.positions) }

func (ws *WorkingSet) Counts() []float64 { return append([]float64(nil), ws.counts...) }

func (ws *WorkingSet) Score() float64 { return Dispersion(ws.counts) }

// ScoreWith scores the set as if the row at position were appended.
func (ws *WorkingSet) ScoreWith(position int) float64 {
	copy(ws.scratch, ws.counts)
	for j, v := range ws.ds.Labels(position) {
		ws.scratch[j] += v
	}
	return Dispersion(ws.scratch)
}

func (ws *WorkingSet) Append(position int) {
	ws.positions = append(ws.positions, position)
	for j, v := range ws.ds.Labels(position) {
		ws.counts[j] += v
	}
}

// Positions returns the original position behind every row, in order.
func (ws *WorkingSet) Positions() []int { return append([]int(nil), ws.positions...) }

// Indices returns the identity of every row, in order.
func (ws *WorkingSet) Indices() []int {
	out := make([]int, len(ws.positions))
	for i, p := range ws.positions {
		out[i] = ws.ds.Index(p)
	}
	return out
}

// Rows copies every row out of the set.
func (ws *WorkingSet) Rows() []dataset.Row {
	out := make([]dataset.Row, len(ws.positions))
	for i, p := range ws.positions {
		out[i] = ws.ds.Row(p)
	}
	return out
}
