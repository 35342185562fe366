package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/domain"
	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/service"
)

// PostHandler exposes the post CRUD endpoints.
type PostHandler struct {
	Posts  *service.PostService
	Logger *zap.Logger
}

func NewPostHandler(posts *service.PostService, logger *zap.Logger) *PostHandler {
	return &PostHandler{Posts: posts, Logger: logger}
}

type senderRequest struct {
	ID   *int64  `json:"id"`
	Name *string `json:"name"`
}

type createPostRequest struct {
	Title   string         `json:"title"`
	Content string         `json:"content"`
	Sender  *senderRequest `json:"sender"`
}

type updatePostRequest struct {
	Title   *string        `json:"title"`
	Content *string        `json:"content"`
	Sender  *senderRequest `json:"sender"`
}

// List returns all posts, or only those by a sender when the senderId query
// parameter is present.
func (h *PostHandler) List(c *gin.Context) {
	if raw := c.Query("senderId"); raw != "" {
		senderID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid senderId"})
			return
		}
		posts, err := h.Posts.ListBySender(c.Request.Context(), senderID)
		if err != nil {
			respondResourceError(c, h.Logger, "list posts by sender failed", err)
			return
		}
		respondData(c, http.StatusOK, "Posts by sender "+raw+" retrieved successfully", posts)
		return
	}

	posts, err := h.Posts.List(c.Request.Context())
	if err != nil {
		respondResourceError(c, h.Logger, "list posts failed", err)
		return
	}
	respondData(c, http.StatusOK, "Posts retrieved successfully", posts)
}

func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.Posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondResourceError(c, h.Logger, "get post failed", err)
		return
	}
	respondData(c, http.StatusOK, "Post retrieved successfully", post)
}

func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Missing required fields: title, content, and sender (with id and name) are required",
		})
		return
	}

	post := domain.Post{Title: req.Title, Content: req.Content}
	if req.Sender != nil {
		if req.Sender.ID != nil {
			post.Sender.ID = *req.Sender.ID
		}
		if req.Sender.Name != nil {
			post.Sender.Name = *req.Sender.Name
		}
	}

	created, err := h.Posts.Create(c.Request.Context(), post)
	if err != nil {
		respondResourceError(c, h.Logger, "create post failed", err)
		return
	}
	respondData(c, http.StatusOK, "Post created successfully", created)
}

func (h *PostHandler) Update(c *gin.Context) {
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	update := domain.PostUpdate{Title: req.Title, Content: req.Content}
	if req.Sender != nil {
		update.SenderID = req.Sender.ID
		update.SenderName = req.Sender.Name
	}

	post, err := h.Posts.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		respondResourceError(c, h.Logger, "update post failed", err)
		return
	}
	respondData(c, http.StatusOK, "Post updated successfully", post)
}
