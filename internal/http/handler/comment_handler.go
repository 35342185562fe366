package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/service"
)

// CommentHandler exposes the comment CRUD endpoints.
type CommentHandler struct {
	Comments *service.CommentService
	Logger   *zap.Logger
}

func NewCommentHandler(comments *service.CommentService, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{Comments: comments, Logger: logger}
}

type createCommentRequest struct {
	PostID  string `json:"postId"`
	Content string `json:"content"`
	Sender  string `json:"sender"`
}

type updateCommentRequest struct {
	Content string `json:"content"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Missing required fields: postId, content, sender are required",
		})
		return
	}

	comment, err := h.Comments.Create(c.Request.Context(), service.CreateCommentInput{
		PostID:  req.PostID,
		Content: req.Content,
		Sender:  req.Sender,
	})
	if err != nil {
		respondResourceError(c, h.Logger, "create comment failed", err)
		return
	}
	respondData(c, http.StatusOK, "Comment created successfully", comment)
}

func (h *CommentHandler) List(c *gin.Context) {
	comments, err := h.Comments.List(c.Request.Context())
	if err != nil {
		respondResourceError(c, h.Logger, "list comments failed", err)
		return
	}
	respondData(c, http.StatusOK, "Comments retrieved successfully", comments)
}

func (h *CommentHandler) Get(c *gin.Context) {
	comment, err := h.Comments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondResourceError(c, h.Logger, "get comment failed", err)
		return
	}
	respondData(c, http.StatusOK, "Comment retrieved successfully", comment)
}

func (h *CommentHandler) ListByPost(c *gin.Context) {
	postID := c.Param("postId")
	comments, err := h.Comments.ListByPost(c.Request.Context(), postID)
	if err != nil {
		respondResourceError(c, h.Logger, "list comments by post failed", err)
		return
	}
	respondData(c, http.StatusOK, "Comments for post "+postID+" retrieved successfully", comments)
}

func (h *CommentHandler) Update(c *gin.Context) {
	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	comment, err := h.Comments.Update(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		respondResourceError(c, h.Logger, "update comment failed", err)
		return
	}
	respondData(c, http.StatusOK, "Comment updated successfully", comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	comment, err := h.Comments.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondResourceError(c, h.Logger, "delete comment failed", err)
		return
	}
	respondData(c, http.StatusOK, "Comment deleted successfully", comment)
}
