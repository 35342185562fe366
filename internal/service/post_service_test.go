package service_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/domain"
	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/service"
)

func newTestPostService() (*service.PostService, *memoryPostRepo) {
	posts := newMemoryPostRepo()
	return service.NewPostService(posts, zap.NewNop()), posts
}

func TestCreatePostRequiresAllFields(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestPostService()

	incomplete := []domain.Post{
		{Content: "c", Sender: domain.Sender{ID: 1, Name: "n"}},
		{Title: "t", Sender: domain.Sender{ID: 1, Name: "n"}},
		{Title: "t", Content: "c", Sender: domain.Sender{Name: "n"}},
		{Title: "t", Content: "c", Sender: domain.Sender{ID: 1}},
	}
	for _, post := range incomplete {
		_, err := svc.Create(ctx, post)
		var svcErr *service.Error
		require.ErrorAs(t, err, &svcErr)
		require.Equal(t, http.StatusBadRequest, svcErr.Status)
		require.Equal(t, "Missing required fields: title, content, and sender (with id and name) are required", svcErr.Message)
	}

	created, err := svc.Create(ctx, domain.Post{
		Title:   "First post",
		Content: "content long enough to pass",
		Sender:  domain.Sender{ID: 1, Name: "n"},
	})
	require.NoError(t, err)
	require.False(t, created.ID.IsZero())
}

func TestCreatePostReportsLengthViolations(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestPostService()

	_, err := svc.Create(ctx, domain.Post{
		Title:   "ab",
		Content: "short",
		Sender:  domain.Sender{ID: 1, Name: "n"},
	})
	var svcErr *service.Error
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, http.StatusBadRequest, svcErr.Status)
	require.Equal(t, "Validation error", svcErr.Message)
	require.Equal(t, []string{
		"Title must be at least 3 characters",
		"Content must be at least 10 characters",
	}, svcErr.Fields)

	_, err = svc.Create(ctx, domain.Post{
		Title:   strings.Repeat("x", 201),
		Content: "content long enough to pass",
		Sender:  domain.Sender{ID: 1, Name: "n"},
	})
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, []string{"Title cannot exceed 200 characters"}, svcErr.Fields)
}

func TestUpdatePostValidatesProvidedFields(t *testing.T) {
	ctx := context.Background()
	svc, posts := newTestPostService()
	post := posts.add(domain.Post{Title: "First post", Content: "content long enough", Sender: domain.Sender{ID: 1, Name: "n"}})

	title := "ab"
	_, err := svc.Update(ctx, post.ID.Hex(), domain.PostUpdate{Title: &title})
	var svcErr *service.Error
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, "Validation error", svcErr.Message)
	require.Equal(t, []string{"Title must be at least 3 characters"}, svcErr.Fields)

	// A field the update leaves untouched is not revalidated.
	content := "replacement content long enough"
	updated, err := svc.Update(ctx, post.ID.Hex(), domain.PostUpdate{Content: &content})
	require.NoError(t, err)
	require.Equal(t, content, updated.Content)
}

func TestGetPostNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestPostService()

	_, err := svc.Get(ctx, bson.NewObjectID().Hex())
	var svcErr *service.Error
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, http.StatusNotFound, svcErr.Status)
	require.Equal(t, "Post not found", svcErr.Message)
}

func TestUpdatePostRejectsEmptyUpdate(t *testing.T) {
	ctx := context.Background()
	svc, posts := newTestPostService()
	post := posts.add(domain.Post{Title: "t", Content: "c", Sender: domain.Sender{ID: 1, Name: "n"}})

	_, err := svc.Update(ctx, post.ID.Hex(), domain.PostUpdate{})
	var svcErr *service.Error
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, http.StatusBadRequest, svcErr.Status)
	require.Equal(t, "At least one field (title, content, or sender) must be provided for update", svcErr.Message)
}

func TestUpdatePostAppliesPartialUpdate(t *testing.T) {
	ctx := context.Background()
	svc, posts := newTestPostService()
	post := posts.add(domain.Post{Title: "before", Content: "c", Sender: domain.Sender{ID: 1, Name: "n"}})

	title := "after"
	updated, err := svc.Update(ctx, post.ID.Hex(), domain.PostUpdate{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "after", updated.Title)
	require.Equal(t, "c", updated.Content)
	require.Equal(t, int64(1), updated.Sender.ID)

	_, err = svc.Update(ctx, bson.NewObjectID().Hex(), domain.PostUpdate{Title: &title})
	var svcErr *service.Error
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, http.StatusNotFound, svcErr.Status)
}

func TestListPostsBySender(t *testing.T) {
	ctx := context.Background()
	svc, posts := newTestPostService()
	posts.add(domain.Post{Title: "a", Content: "c", Sender: domain.Sender{ID: 1, Name: "n"}})
	posts.add(domain.Post{Title: "b", Content: "c", Sender: domain.Sender{ID: 1, Name: "n"}})
	posts.add(domain.Post{Title: "c", Content: "c", Sender: domain.Sender{ID: 2, Name: "m"}})

	mine, err := svc.ListBySender(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 2)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
}
