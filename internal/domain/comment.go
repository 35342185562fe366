package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Comment is attached to a post. Sender holds the commenting user's id.
type Comment struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	PostID    bson.ObjectID `bson:"postId" json:"postId"`
	Content   string        `bson:"content" json:"content"`
	Sender    bson.ObjectID `bson:"sender" json:"sender"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}
