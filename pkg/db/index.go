package db

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"reflect"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureIndex(db *mongo.Database, ctx context.Context, collectionName string, model mongo.IndexModel) error {
	if model.Options == nil || model.Options.Name == nil {
		return fmt.Errorf("must provide a name for index")
	}
	expectedName := *model.Options.Name

	idxs := db.Collection(collectionName).Indexes()

	cur, err := idxs.List(ctx)
	if err != nil {
		return fmt.Errorf("unable to list indexes: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var d bson.M
		if err := cur.Decode(&d); err != nil {
			return fmt.Errorf("unable to decode bson index document: %w", err)
		}
		if name, ok := d["name"].(string); ok && name == expectedName {
			return nil
		}
	}

	_, err = idxs.CreateOne(ctx, model)
	return err
}

// ConnectMongo connects to MONGO_URL. The database name comes from the URL
// path and defaults to "oversample".
func ConnectMongo(ctx context.Context) (*mongo.Database, error) {
	registry := bson.NewRegistry()
	registry.RegisterTypeMapEntry(0x03, reflect.TypeOf(bson.M{}))

	mongoUrl := os.Getenv("MONGO_URL")
	if mongoUrl == "" {
		mongoUrl = "mongodb://localhost:27017/oversample"
	}

	uri, err := url.Parse(mongoUrl)
	if err != nil {
		return nil, err
	}

	if client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoUrl).SetRegistry(registry)); err != nil {
		return nil, err
	} else {
		return client.Database(databaseName(uri)), nil
	}
}

func databaseName(uri *url.URL) string {
	if name := strings.Trim(uri.Path, "/"); name != "" {
		return name
	}
	return "oversample"
}
