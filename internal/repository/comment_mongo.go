package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/domain"
)

const commentsCollection = "comments"

// MongoCommentRepo persists comment documents in MongoDB.
type MongoCommentRepo struct {
	coll *mongo.Collection
}

func NewMongoCommentRepo(db *mongo.Database) *MongoCommentRepo {
	return &MongoCommentRepo{coll: db.Collection(commentsCollection)}
}

func (r *MongoCommentRepo) Find(ctx context.Context) ([]domain.Comment, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoCommentRepo) FindByPost(ctx context.Context, postID string) ([]domain.Comment, error) {
	oid, err := bson.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.find(ctx, bson.M{"postId": oid})
}

func (r *MongoCommentRepo) find(ctx context.Context, filter bson.M) ([]domain.Comment, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	comments := []domain.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *MongoCommentRepo) FindByID(ctx context.Context, id string) (domain.Comment, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return domain.Comment{}, ErrNotFound
	}

	var comment domain.Comment
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&comment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Comment{}, ErrNotFound
	}
	if err != nil {
		return domain.Comment{}, err
	}
	return comment, nil
}

func (r *MongoCommentRepo) Create(ctx context.Context, comment domain.Comment) (domain.Comment, error) {
	now := time.Now().UTC()
	comment.ID = bson.NewObjectID()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, comment); err != nil {
		return domain.Comment{}, err
	}
	return comment, nil
}

func (r *MongoCommentRepo) Update(ctx context.Context, id, content string) (domain.Comment, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return domain.Comment{}, ErrNotFound
	}

	var comment domain.Comment
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"content": content, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&comment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Comment{}, ErrNotFound
	}
	if err != nil {
		return domain.Comment{}, err
	}
	return comment, nil
}

// Delete removes a comment and returns the deleted document.
func (r *MongoCommentRepo) Delete(ctx context.Context, id string) (domain.Comment, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return domain.Comment{}, ErrNotFound
	}

	var comment domain.Comment
	err = r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&comment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Comment{}, ErrNotFound
	}
	if err != nil {
		return domain.Comment{}, err
	}
	return comment, nil
}
