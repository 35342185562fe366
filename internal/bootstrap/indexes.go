package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
)

// EnsureIndexes creates the indexes the repositories rely on. Username and
// email uniqueness is enforced here, at the storage layer; the service's
// pre-checks only exist to produce friendlier conflict messages.
func EnsureIndexes(db *mongo.Database, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("username_1"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_1"),
		},
	}
	if _, err := db.Collection("users").Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}

	commentIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "postId", Value: 1}},
			Options: options.Index().SetName("postId_1"),
		},
	}
	if _, err := db.Collection("comments").Indexes().CreateMany(ctx, commentIndexes); err != nil {
		return fmt.Errorf("create comment indexes: %w", err)
	}

	logger.Info("indexes ensured",
		zap.Strings("collections", []string{"users", "comments"}),
	)
	return nil
}
