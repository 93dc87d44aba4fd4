package db

import (
	"context"
	"time"

	"github.com/grexie/oversample/pkg/oversample"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const RunsCollection = "runs"

type RunSummary struct {
	RunID         string    `bson:"run_id"`
	Targets       []string  `bson:"targets"`
	Seed          int64     `bson:"seed"`
	MaxIterations int       `bson:"max_iterations"`
	MaxTries      int       `bson:"max_tries"`
	State         string    `bson:"state"`
	Stalled       bool      `bson:"stalled"`
	Accepted      int       `bson:"accepted"`
	Initial       float64   `bson:"initial"`
	Final         float64   `bson:"final"`
	Before        []float64 `bson:"before"`
	After         []float64 `bson:"after"`
	Scores        []float64 `bson:"scores"`
	Rows          int       `bson:"rows"`
	CreatedAt     time.Time `bson:"created_at"`
}

func NewRunSummary(tr oversample.Trace, now time.Time) RunSummary {
	return RunSummary{
		RunID:         tr.RunID,
		Targets:       tr.Targets,
		Seed:          int64(tr.Seed),
		MaxIterations: tr.MaxIterations,
		MaxTries:      tr.MaxTries,
		State:         tr.State.String(),
		Stalled:       tr.Stalled(),
		Accepted:      tr.Accepted(),
		Initial:       tr.Initial,
		Final:         tr.Final,
		Before:        tr.Before,
		After:         tr.After,
		Scores:        tr.Scores(),
		Rows:          len(tr.Indices),
		CreatedAt:     now,
	}
}

// SaveRun upserts the summary of a run into the runs collection.
func SaveRun(ctx context.Context, db *mongo.Database, tr oversample.Trace) error {
	if err := EnsureIndex(db, ctx, RunsCollection, mongo.IndexModel{
		Keys:    bson.D{{Key: "run_id", Value: 1}},
		Options: options.Index().SetName("run_id_unique").SetUnique(true),
	}); err != nil {
		return err
	}

	summary := NewRunSummary(tr, time.Now().UTC())
	_, err := WithTransaction(db, ctx, func(ctx context.Context) (any, error) {
		return db.Collection(RunsCollection).ReplaceOne(ctx,
			bson.M{"run_id": summary.RunID},
			summary,
			options.Replace().SetUpsert(true),
		)
	})
	return err
}
