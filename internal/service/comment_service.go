package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/domain"
	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/repository"
)

// CreateCommentInput carries the raw comment creation fields. The ids are
// validated here before touching the store.
type CreateCommentInput struct {
	PostID  string
	Content string
	Sender  string
}

// CommentService handles comment CRUD. Creation checks that the target post
// exists, so it depends on the post repository as well.
type CommentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
	logger   *zap.Logger
	tracer   trace.Tracer
}

func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository, logger *zap.Logger) *CommentService {
	return &CommentService{
		comments: comments,
		posts:    posts,
		logger:   logger,
		tracer:   otel.Tracer("github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/service"),
	}
}

func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (domain.Comment, error) {
	ctx, span := s.startSpan(ctx, "CommentService.Create")
	defer span.End()

	if in.PostID == "" || strings.TrimSpace(in.Content) == "" || in.Sender == "" {
		return domain.Comment{}, newError("invalid_request",
			"Missing required fields: postId, content, sender are required",
			http.StatusBadRequest)
	}
	if fields := validateCommentContent(in.Content); len(fields) > 0 {
		return domain.Comment{}, errValidation(fields)
	}

	postID, err := bson.ObjectIDFromHex(in.PostID)
	if err != nil {
		return domain.Comment{}, newError("invalid_request", "Invalid postId", http.StatusBadRequest)
	}
	sender, err := bson.ObjectIDFromHex(in.Sender)
	if err != nil {
		return domain.Comment{}, newError("invalid_request", "Invalid sender", http.StatusBadRequest)
	}

	if _, err := s.posts.FindByID(ctx, in.PostID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Comment{}, newError("not_found", "Post not found", http.StatusNotFound)
		}
		span.RecordError(err)
		return domain.Comment{}, fmt.Errorf("check post exists: %w", err)
	}

	created, err := s.comments.Create(ctx, domain.Comment{
		PostID:  postID,
		Content: in.Content,
		Sender:  sender,
	})
	if err != nil {
		span.RecordError(err)
		return domain.Comment{}, fmt.Errorf("create comment: %w", err)
	}

	s.logger.Info("comment created",
		zap.String("comment_id", created.ID.Hex()),
		zap.String("post_id", created.PostID.Hex()),
	)
	return created, nil
}

func (s *CommentService) List(ctx context.Context) ([]domain.Comment, error) {
	ctx, span := s.startSpan(ctx, "CommentService.List")
	defer span.End()

	comments, err := s.comments.Find(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (s *CommentService) Get(ctx context.Context, id string) (domain.Comment, error) {
	ctx, span := s.startSpan(ctx, "CommentService.Get")
	defer span.End()

	comment, err := s.comments.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Comment{}, newError("not_found", "Comment not found", http.StatusNotFound)
	}
	if err != nil {
		span.RecordError(err)
		return domain.Comment{}, fmt.Errorf("load comment: %w", err)
	}
	return comment, nil
}

func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]domain.Comment, error) {
	ctx, span := s.startSpan(ctx, "CommentService.ListByPost")
	defer span.End()

	if _, err := bson.ObjectIDFromHex(postID); err != nil {
		return nil, newError("invalid_request", "Invalid postId", http.StatusBadRequest)
	}

	comments, err := s.comments.FindByPost(ctx, postID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list comments by post: %w", err)
	}
	return comments, nil
}

func (s *CommentService) Update(ctx context.Context, id, content string) (domain.Comment, error) {
	ctx, span := s.startSpan(ctx, "CommentService.Update")
	defer span.End()

	// Existence is checked before content validation so an unknown id gets
	// 404 even when the body is empty.
	if _, err := s.comments.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Comment{}, newError("not_found", "Comment not found", http.StatusNotFound)
		}
		span.RecordError(err)
		return domain.Comment{}, fmt.Errorf("load comment: %w", err)
	}

	if strings.TrimSpace(content) == "" {
		return domain.Comment{}, newError("invalid_request",
			"Missing required fields: content is required",
			http.StatusBadRequest)
	}
	if fields := validateCommentContent(content); len(fields) > 0 {
		return domain.Comment{}, errValidation(fields)
	}

	comment, err := s.comments.Update(ctx, id, content)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Comment{}, newError("not_found", "Comment not found", http.StatusNotFound)
	}
	if err != nil {
		span.RecordError(err)
		return domain.Comment{}, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, id string) (domain.Comment, error) {
	ctx, span := s.startSpan(ctx, "CommentService.Delete")
	defer span.End()

	comment, err := s.comments.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Comment{}, newError("not_found", "Comment not found", http.StatusNotFound)
	}
	if err != nil {
		span.RecordError(err)
		return domain.Comment{}, fmt.Errorf("delete comment: %w", err)
	}
	return comment, nil
}

// validateCommentContent enforces the comment schema's length cap. Emptiness
// is a structural error handled before this runs.
func validateCommentContent(content string) []string {
	if len(content) > 500 {
		return []string{"content cannot exceed 500 characters"}
	}
	return nil
}

func (s *CommentService) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if s == nil || s.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return s.tracer.Start(ctx, name)
}
