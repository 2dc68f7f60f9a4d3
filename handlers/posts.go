package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"beu/models"
	"beu/services/post"

	"github.com/gin-gonic/gin"
)

const maxPhotoBytes = 10 << 20

type PostHandler struct {
	Service post.PostService
}

func NewPostHandler(svc post.PostService) *PostHandler {
	return &PostHandler{Service: svc}
}

// ListHandler handles GET /api/posts.
func (h *PostHandler) ListHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var filter models.PostFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query", "message": err.Error()})
		return
	}
	posts, err := h.Service.List(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err, "Failed to list posts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetHandler handles GET /api/posts/:id.
func (h *PostHandler) GetHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	p, err := h.Service.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Post not available")
		return
	}
	c.JSON(http.StatusOK, p)
}

// CreateHandler handles multipart POST /api/posts with optional "before"
// and "after" photo parts.
func (h *PostHandler) CreateHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	in := post.NewPost{
		Caption:    c.PostForm("caption"),
		ProviderID: c.PostForm("provider_id"),
	}
	for _, part := range []struct {
		field string
		dst   **post.Photo
	}{{"before", &in.Before}, {"after", &in.After}} {
		fh, err := c.FormFile(part.field)
		if err == http.ErrMissingFile {
			continue
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid upload", "message": err.Error()})
			return
		}
		f, err := openPhoto(fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid upload", "message": err.Error()})
			return
		}
		defer f.Close()
		*part.dst = &post.Photo{Filename: fh.Filename, Body: f}
	}

	created, err := h.Service.Create(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, err, "Failed to create post")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func openPhoto(fh *multipart.FileHeader) (multipart.File, error) {
	if fh.Size > maxPhotoBytes {
		return nil, fmt.Errorf("%s exceeds %d MB", fh.Filename, maxPhotoBytes>>20)
	}
	return fh.Open()
}

func (h *PostHandler) setLiked(c *gin.Context, liked bool) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if err := h.Service.SetLiked(c.Request.Context(), userID, id, liked); err != nil {
		respondError(c, err, "Failed to update like")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "is_liked": liked})
}

// LikeHandler handles POST /api/posts/:id/like.
func (h *PostHandler) LikeHandler(c *gin.Context) { h.setLiked(c, true) }

// UnlikeHandler handles DELETE /api/posts/:id/like.
func (h *PostHandler) UnlikeHandler(c *gin.Context) { h.setLiked(c, false) }

// CommentsHandler handles GET /api/posts/:id/comments.
func (h *PostHandler) CommentsHandler(c *gin.Context) {
	comments, err := h.Service.Comments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load comments")
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// CommentHandler handles POST /api/posts/:id/comments.
func (h *PostHandler) CommentHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	comment, err := h.Service.Comment(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to add comment")
		return
	}
	c.JSON(http.StatusCreated, comment)
}
