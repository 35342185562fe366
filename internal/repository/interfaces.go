package repository

import (
	"context"

	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/domain"
)

// UserRepository is the credential store adapter. Load and save are
// atomic per document; uniqueness of username and email is enforced by the
// storage layer's indexes.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindByID(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
	Save(ctx context.Context, user domain.User) error
}

// PostRepository exposes persistence for posts.
type PostRepository interface {
	Find(ctx context.Context) ([]domain.Post, error)
	FindBySender(ctx context.Context, senderID int64) ([]domain.Post, error)
	FindByID(ctx context.Context, id string) (domain.Post, error)
	Create(ctx context.Context, post domain.Post) (domain.Post, error)
	Update(ctx context.Context, id string, update domain.PostUpdate) (domain.Post, error)
}

// CommentRepository exposes persistence for comments.
type CommentRepository interface {
	Find(ctx context.Context) ([]domain.Comment, error)
	FindByID(ctx context.Context, id string) (domain.Comment, error)
	FindByPost(ctx context.Context, postID string) ([]domain.Comment, error)
	Create(ctx context.Context, comment domain.Comment) (domain.Comment, error)
	Update(ctx context.Context, id, content string) (domain.Comment, error)
	Delete(ctx context.Context, id string) (domain.Comment, error)
}
