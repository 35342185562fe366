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

const postsCollection = "posts"

// MongoPostRepo persists post documents in MongoDB.
type MongoPostRepo struct {
	coll *mongo.Collection
}

func NewMongoPostRepo(db *mongo.Database) *MongoPostRepo {
	return &MongoPostRepo{coll: db.Collection(postsCollection)}
}

func (r *MongoPostRepo) Find(ctx context.Context) ([]domain.Post, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoPostRepo) FindBySender(ctx context.Context, senderID int64) ([]domain.Post, error) {
	return r.find(ctx, bson.M{"sender.id": senderID})
}

func (r *MongoPostRepo) find(ctx context.Context, filter bson.M) ([]domain.Post, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	posts := []domain.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *MongoPostRepo) FindByID(ctx context.Context, id string) (domain.Post, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return domain.Post{}, ErrNotFound
	}

	var post domain.Post
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Post{}, ErrNotFound
	}
	if err != nil {
		return domain.Post{}, err
	}
	return post, nil
}

func (r *MongoPostRepo) Create(ctx context.Context, post domain.Post) (domain.Post, error) {
	now := time.Now().UTC()
	post.ID = bson.NewObjectID()
	post.CreatedAt = now
	post.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, post); err != nil {
		return domain.Post{}, err
	}
	return post, nil
}

// Update applies the provided fields and returns the updated document.
func (r *MongoPostRepo) Update(ctx context.Context, id string, update domain.PostUpdate) (domain.Post, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return domain.Post{}, ErrNotFound
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Content != nil {
		set["content"] = *update.Content
	}
	if update.SenderID != nil {
		set["sender.id"] = *update.SenderID
	}
	if update.SenderName != nil {
		set["sender.name"] = *update.SenderName
	}

	var post domain.Post
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Post{}, ErrNotFound
	}
	if err != nil {
		return domain.Post{}, err
	}
	return post, nil
}
