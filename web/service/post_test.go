package service

import (
	"testing"

	"microblog/database"
	"microblog/util/common"
)

func TestCreatePostAppearsFirst(t *testing.T) {
	db := setupDB(t)
	authorId := mustRegister(t, db, "author", "pw", "author@example.com")
	posts := NewPostService(db)

	existing, err := posts.ListPosts()
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(existing) != 0 {
		t.Fatalf("expected empty blog, got %d posts", len(existing))
	}

	post, err := posts.CreatePost("A Blog Title", "A Blog Body", authorId)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if post.Id == 0 {
		t.Error("created post has no id")
	}
	if post.CreatedAt.IsZero() {
		t.Error("created post has no timestamp")
	}

	all, err := posts.ListPosts()
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 post, got %d", len(all))
	}
	if all[0].Title != "A Blog Title" || all[0].Body != "A Blog Body" {
		t.Errorf("unexpected first post: %+v", all[0])
	}
	if all[0].AuthorId != authorId {
		t.Errorf("post author = %d, want %d", all[0].AuthorId, authorId)
	}
}

func TestCreatePostConstraintViolations(t *testing.T) {
	db := setupDB(t)
	authorId := mustRegister(t, db, "author", "pw", "author@example.com")
	posts := NewPostService(db)

	tests := []struct {
		name     string
		title    string
		body     string
		authorId int
	}{
		{name: "blank title", title: "", body: "some body", authorId: authorId},
		{name: "blank body", title: "some title", body: "", authorId: authorId},
		{name: "missing author", title: "other title", body: "some body", authorId: 0},
		{name: "nonexistent author", title: "third title", body: "some body", authorId: 9999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := posts.CreatePost(tt.title, tt.body, tt.authorId)
			if err == nil {
				t.Fatal("expected a constraint violation, got nil")
			}
			if !database.IsConstraintViolation(err) {
				t.Errorf("expected a constraint violation, got %v", err)
			}
		})
	}

	all, err := posts.ListPosts()
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("no rows should have been persisted, got %d", len(all))
	}
}

func TestListPostsNewestFirst(t *testing.T) {
	db := setupDB(t)
	authorId := mustRegister(t, db, "author", "pw", "author@example.com")
	posts := NewPostService(db)

	for _, title := range []string{"Blog 1", "Blog 2", "Blog 3"} {
		if _, err := posts.CreatePost(title, "body of "+title, authorId); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}

	all, err := posts.ListPosts()
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	want := []string{"Blog 3", "Blog 2", "Blog 1"}
	if len(all) != len(want) {
		t.Fatalf("expected %d posts, got %d", len(want), len(all))
	}
	for i, title := range want {
		if all[i].Title != title {
			t.Errorf("posts[%d] = %q, want %q", i, all[i].Title, title)
		}
	}
}

func TestGetPost(t *testing.T) {
	db := setupDB(t)
	authorId := mustRegister(t, db, "author", "pw", "author@example.com")
	posts := NewPostService(db)

	created, err := posts.CreatePost("A Blog Title", "A Blog Body", authorId)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	got, err := posts.GetPost(created.Id)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if got.Title != created.Title || got.Body != created.Body {
		t.Errorf("got %+v, want %+v", got, created)
	}
}

func TestGetPostNotFound(t *testing.T) {
	db := setupDB(t)
	posts := NewPostService(db)

	_, err := posts.GetPost(4)
	if err == nil {
		t.Fatal("expected an error for a missing post")
	}
	if !common.IsNotFoundError(err) {
		t.Errorf("expected a not-found error, got %v", err)
	}
	if database.IsConstraintViolation(err) {
		t.Error("a missing post must not be a constraint violation")
	}
}
