package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/domain"
)

const usersCollection = "users"

// MongoUserRepo persists user documents in MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo builds the repository on top of the given database.
func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{coll: db.Collection(usersCollection)}
}

func (r *MongoUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepo) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *MongoUserRepo) FindByID(ctx context.Context, id string) (domain.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return domain.User{}, ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoUserRepo) findOne(ctx context.Context, filter bson.M) (domain.User, error) {
	var user domain.User
	err := r.coll.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.User{}, ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Create inserts a new user. Unique-index violations on username or email
// surface as a field-named DuplicateKeyError.
func (r *MongoUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	now := time.Now().UTC()
	user.ID = bson.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.RefreshTokens == nil {
		user.RefreshTokens = []string{}
	}

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.User{}, &DuplicateKeyError{Field: duplicateField(err)}
		}
		return domain.User{}, err
	}
	return user, nil
}

// Save persists the whole user document. Last write wins; concurrent
// refreshes against the same account are not serialized here.
func (r *MongoUserRepo) Save(ctx context.Context, user domain.User) error {
	user.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// duplicateField extracts the conflicting field from a duplicate-key write
// error by matching the violated index name. Matching on the bare field word
// would misfire when the duplicate value itself contains it, e.g. an email
// of "username@x.com".
func duplicateField(err error) string {
	messages := []string{err.Error()}
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, we := range writeErr.WriteErrors {
			messages = append(messages, we.Message)
		}
	}

	for _, msg := range messages {
		switch {
		case strings.Contains(msg, "index: username_1"):
			return "username"
		case strings.Contains(msg, "index: email_1"):
			return "email"
		}
	}
	return "unknown"
}
