package service

import (
	"strings"
	"time"

	"github.com/modish-shop/modish/internal/models"
	"github.com/modish-shop/modish/internal/repository"
)

// PostService 穿搭动态服务
type PostService struct {
	postRepo repository.PostRepository
}

// NewPostService 创建动态服务
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// CreatePostInput 发布动态输入
type CreatePostInput struct {
	UserID   uint
	Title    string
	Content  string
	ImageURL string
}

// Create 发布动态
func (s *PostService) Create(input CreatePostInput) (*models.Post, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrInvalidPostTitle
	}

	now := time.Now()
	post := &models.Post{
		UserID:      input.UserID,
		Title:       title,
		Content:     strings.TrimSpace(input.Content),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetByID 动态详情
func (s *PostService) GetByID(id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil || !post.IsPublished {
		return nil, ErrNotFound
	}
	return post, nil
}

// List 已发布动态列表
func (s *PostService) List(page, pageSize int) ([]models.Post, int64, error) {
	return s.postRepo.List(repository.PostListFilter{
		Page:          page,
		PageSize:      pageSize,
		OnlyPublished: true,
	})
}
