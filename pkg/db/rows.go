package db

import (
	"context"
	"fmt"

	"github.com/grexie/oversample/pkg/dataset"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LoadRows reads every document of a collection in _id order. A numeric
// "index" field becomes the row identity, otherwise the document ordinal does.
func LoadRows(ctx context.Context, db *mongo.Database, collectionName string) ([]dataset.Row, error) {
	cur, err := db.Collection(collectionName).Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error querying %s: %w", collectionName, err)
	}
	defer cur.Close(ctx)

	rows := []dataset.Row{}
	for n := 0; cur.Next(ctx); n++ {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("error decoding %s document %d: %w", collectionName, n, err)
		}
		if row, err := rowFromDocument(n, doc); err != nil {
			return nil, fmt.Errorf("%s document %d: %w", collectionName, n, err)
		} else {
			rows = append(rows, row)
		}
	}

	return rows, cur.Err()
}

func rowFromDocument(n int, doc bson.M) (dataset.Row, error) {
	row := dataset.Row{Index: n, Fields: make(map[string]any, len(doc))}
	for k, v := range doc {
		switch k {
		case "_id":
			continue
		case dataset.IndexColumn:
			switch idx := v.(type) {
			case int32:
				row.Index = int(idx)
			case int64:
				row.Index = int(idx)
			case float64:
				row.Index = int(idx)
			default:
				return row, fmt.Errorf("index %v is not a number", v)
			}
		default:
			row.Fields[k] = v
		}
	}
	return row, nil
}
