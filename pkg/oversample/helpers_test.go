package oversample

import (
	"fmt"
	"testing"

	"github.com/grexie/oversample/pkg/dataset"
	"github.com/stretchr/testify/require"
)

type datasetRow []int

func newTestDataset(t *testing.T, labels []datasetRow) *dataset.Dataset {
	t.Helper()
	rows := make([]dataset.Row, len(labels))
	targets := []string{}
	for j := range labels[0] {
		targets = append(targets, fmt.Sprintf("y%d", j+1))
	}
	for i, l := range labels {
		fields := map[string]any{}
		for j, v := range l {
			fields[targets[j]] = v
		}
		rows[i] = dataset.Row{Index: i, Fields: fields}
	}
	ds, err := dataset.New(rows, targets)
	require.NoError(t, err)
	return ds
}
