package public

import (
	"errors"
	"strconv"

	handlershared "github.com/modish-shop/modish/internal/http/handlers/shared"
	"github.com/modish-shop/modish/internal/http/response"
	"github.com/modish-shop/modish/internal/service"

	"github.com/gin-gonic/gin"
)

// CreatePostRequest 发布动态请求
type CreatePostRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}

// GetPosts 动态列表（公开）
func (h *Handler) GetPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	posts, total, err := h.PostService.List(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch posts", err)
		return
	}

	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	response.SuccessWithPage(c, gin.H{"posts": posts}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// GetPost 动态详情（公开）
func (h *Handler) GetPost(c *gin.Context) {
	rawID := c.Param("id")
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid post id", nil)
		return
	}

	post, err := h.PostService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "post not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to fetch post", err)
		return
	}

	response.Success(c, gin.H{"post": post})
}

// CreatePost 发布动态（登录用户）
func (h *Handler) CreatePost(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	post, err := h.PostService.Create(service.CreatePostInput{
		UserID:   uid,
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidPostTitle) {
			respondError(c, response.CodeBadRequest, "post title required", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to create post", err)
		return
	}

	response.SuccessWithMsg(c, "post created", gin.H{"post": post})
}
