package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Sender identifies the author embedded in posts and comments.
type Sender struct {
	ID   int64  `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}

// Post is a user-authored article.
type Post struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title     string        `bson:"title" json:"title"`
	Content   string        `bson:"content" json:"content"`
	Sender    Sender        `bson:"sender" json:"sender"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// PostUpdate carries the fields of a partial post update. Nil fields are
// left untouched.
type PostUpdate struct {
	Title      *string
	Content    *string
	SenderID   *int64
	SenderName *string
}

// Empty reports whether the update carries no fields at all.
func (p PostUpdate) Empty() bool {
	return p.Title == nil && p.Content == nil && p.SenderID == nil && p.SenderName == nil
}
