package db

import (
	"net/url"
	"testing"
	"time"

	"github.com/grexie/oversample/pkg/oversample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRowFromDocument(t *testing.T) {
	row, err := rowFromDocument(4, bson.M{"_id": primitive.NewObjectID(), "y1": int32(1), "x": "a.jpg"})
	require.NoError(t, err)
	assert.Equal(t, 4, row.Index)
	assert.Equal(t, map[string]any{"y1": int32(1), "x": "a.jpg"}, row.Fields)

	row, err = rowFromDocument(0, bson.M{"index": int64(17), "y1": true})
	require.NoError(t, err)
	assert.Equal(t, 17, row.Index)
	assert.NotContains(t, row.Fields, "index")

	_, err = rowFromDocument(0, bson.M{"index": "seventeen"})
	assert.Error(t, err)
}

func TestDatabaseName(t *testing.T) {
	u, _ := url.Parse("mongodb://localhost:27017/labels")
	assert.Equal(t, "labels", databaseName(u))
	u, _ = url.Parse("mongodb://localhost:27017")
	assert.Equal(t, "oversample", databaseName(u))
}

func TestNewRunSummary(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	tr := oversample.Trace{
		RunID:   "abc",
		Targets: []string{"a", "b"},
		State:   oversample.Exhausted,
		History: []oversample.IterationRecord{
			{Iteration: 0, Accepted: &oversample.TrialResult{Score: 0.5}},
			{Iteration: 1},
		},
		Indices: []int{0, 1, 1},
	}
	s := NewRunSummary(tr, now)
	assert.Equal(t, "EXHAUSTED", s.State)
	assert.True(t, s.Stalled)
	assert.Equal(t, 1, s.Accepted)
	assert.Equal(t, []float64{0.5}, s.Scores)
	assert.Equal(t, 3, s.Rows)
	assert.Equal(t, now, s.CreatedAt)
}
