package db

import (
	"context"
	"os"

	"go.mongodb.org/mongo-driver/mongo"
)

// WithTransaction runs callback in a session transaction when the deployment
// supports it (MONGO_SUPPORTS_TRANSACTIONS=true), otherwise directly.
func WithTransaction(db *mongo.Database, ctx context.Context, callback func(ctx context.Context) (any, error)) (any, error) {
	if os.Getenv("MONGO_SUPPORTS_TRANSACTIONS") != "true" {
		return callback(ctx)
	}

	session, err := db.Client().StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	return session.WithTransaction(ctx, func(ctx mongo.SessionContext) (any, error) {
		return callback(ctx)
	})
}
