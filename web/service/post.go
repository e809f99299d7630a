// Package service implements the application services between the
// controllers and the repositories: posts, registration and authentication.
package service

import (
	"microblog/database/model"
	"microblog/database/repo"
	"microblog/logger"

	"gorm.io/gorm"
)

// PostService creates and reads posts. It performs no validation of its own:
// blank fields and bad author references are left for the storage
// constraints to reject, so a failed create always surfaces as a constraint
// violation.
type PostService struct {
	posts *repo.PostRepo
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{posts: repo.NewPostRepo(db)}
}

// CreatePost inserts a new post by the given author. The repository writes
// empty fields as NULL, so every required-field failure arrives here as the
// storage layer's constraint violation.
func (s *PostService) CreatePost(title string, body string, authorId int) (*model.Post, error) {
	post, err := s.posts.Create(title, body, authorId)
	if err != nil {
		logger.Warning("create post rejected:", err)
		return nil, err
	}
	logger.Infof("post %d created: %s", post.Id, post.Title)
	return post, nil
}

// ListPosts returns every post, newest first.
func (s *PostService) ListPosts() ([]model.Post, error) {
	return s.posts.List()
}

// GetPost returns the post with the given id, or a NotFoundError.
func (s *PostService) GetPost(id int) (*model.Post, error) {
	return s.posts.Find(id)
}
