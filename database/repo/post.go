// Package repo provides one repository per persisted entity. Repositories
// are thin: they translate between gorm and the application's error kinds
// and leave every integrity rule to the storage constraints.
package repo

import (
	"errors"
	"time"

	"microblog/database/model"
	"microblog/util/common"

	"gorm.io/gorm"
)

// PostRepo persists and reads posts.
type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db: db}
}

// Create inserts a post. Empty title, empty body and a zero author id are
// written as NULL so the NOT NULL constraints are the single validator; any
// constraint violation propagates untranslated.
func (r *PostRepo) Create(title string, body string, authorId int) (*model.Post, error) {
	values := map[string]any{
		"title":      nullIfEmpty(title),
		"body":       nullIfEmpty(body),
		"author_id":  nullIfZero(authorId),
		"created_at": time.Now().UTC(),
	}
	if err := r.db.Model(&model.Post{}).Create(values).Error; err != nil {
		return nil, err
	}

	post := &model.Post{}
	if err := r.db.Where("title = ?", title).First(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// List returns every post newest first. Ties on the timestamp fall back to
// descending id, so the result is always exact reverse insertion order.
func (r *PostRepo) List() ([]model.Post, error) {
	var posts []model.Post
	err := r.db.Model(&model.Post{}).
		Order("created_at DESC, id DESC").
		Find(&posts).
		Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Find returns the post with the given id, or a NotFoundError.
func (r *PostRepo) Find(id int) (*model.Post, error) {
	post := &model.Post{}
	err := r.db.Where("id = ?", id).First(post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &common.NotFoundError{Entity: "post", Key: id}
		}
		return nil, err
	}
	return post, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullIfZero(n int) any {
	if n == 0 {
		return nil
	}
	return n
}
