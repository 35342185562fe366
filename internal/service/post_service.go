package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/domain"
	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/repository"
)

// PostService handles post CRUD on top of the post repository.
type PostService struct {
	posts  repository.PostRepository
	logger *zap.Logger
	tracer trace.Tracer
}

func NewPostService(posts repository.PostRepository, logger *zap.Logger) *PostService {
	return &PostService{
		posts:  posts,
		logger: logger,
		tracer: otel.Tracer("github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/service"),
	}
}

func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	ctx, span := s.startSpan(ctx, "PostService.List")
	defer span.End()

	posts, err := s.posts.Find(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (s *PostService) ListBySender(ctx context.Context, senderID int64) ([]domain.Post, error) {
	ctx, span := s.startSpan(ctx, "PostService.ListBySender")
	defer span.End()

	posts, err := s.posts.FindBySender(ctx, senderID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list posts by sender: %w", err)
	}
	return posts, nil
}

func (s *PostService) Get(ctx context.Context, id string) (domain.Post, error) {
	ctx, span := s.startSpan(ctx, "PostService.Get")
	defer span.End()

	post, err := s.posts.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Post{}, newError("not_found", "Post not found", http.StatusNotFound)
	}
	if err != nil {
		span.RecordError(err)
		return domain.Post{}, fmt.Errorf("load post: %w", err)
	}
	return post, nil
}

// Create requires title, content, and a sender with both id and name.
func (s *PostService) Create(ctx context.Context, post domain.Post) (domain.Post, error) {
	ctx, span := s.startSpan(ctx, "PostService.Create")
	defer span.End()

	if strings.TrimSpace(post.Title) == "" || strings.TrimSpace(post.Content) == "" ||
		post.Sender.ID == 0 || strings.TrimSpace(post.Sender.Name) == "" {
		return domain.Post{}, newError("invalid_request",
			"Missing required fields: title, content, and sender (with id and name) are required",
			http.StatusBadRequest)
	}

	if fields := validatePostFields(&post.Title, &post.Content); len(fields) > 0 {
		return domain.Post{}, errValidation(fields)
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		span.RecordError(err)
		return domain.Post{}, fmt.Errorf("create post: %w", err)
	}

	s.logger.Info("post created", zap.String("post_id", created.ID.Hex()), zap.Int64("sender_id", created.Sender.ID))
	return created, nil
}

// Update applies a partial update; at least one field must be provided.
func (s *PostService) Update(ctx context.Context, id string, update domain.PostUpdate) (domain.Post, error) {
	ctx, span := s.startSpan(ctx, "PostService.Update")
	defer span.End()

	if update.Empty() {
		return domain.Post{}, newError("invalid_request",
			"At least one field (title, content, or sender) must be provided for update",
			http.StatusBadRequest)
	}

	if fields := validatePostFields(update.Title, update.Content); len(fields) > 0 {
		return domain.Post{}, errValidation(fields)
	}

	post, err := s.posts.Update(ctx, id, update)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Post{}, newError("not_found", "Post not found", http.StatusNotFound)
	}
	if err != nil {
		span.RecordError(err)
		return domain.Post{}, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

// validatePostFields enforces the schema length rules on whichever fields
// are present. Nil means the field is untouched by the operation.
func validatePostFields(title, content *string) []string {
	var fields []string

	if title != nil {
		trimmed := strings.TrimSpace(*title)
		switch {
		case len(trimmed) < 3:
			fields = append(fields, "Title must be at least 3 characters")
		case len(trimmed) > 200:
			fields = append(fields, "Title cannot exceed 200 characters")
		}
	}

	if content != nil {
		if len(strings.TrimSpace(*content)) < 10 {
			fields = append(fields, "Content must be at least 10 characters")
		}
	}

	return fields
}

func (s *PostService) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if s == nil || s.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return s.tracer.Start(ctx, name)
}
