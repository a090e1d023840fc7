package handlers_test

import (
	"context"
	"io"
	"sort"

	"feedboard/models"
	"feedboard/services"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Minimal in-memory stores for exercising the HTTP surface.

type memUsers struct {
	users map[primitive.ObjectID]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[primitive.ObjectID]*models.User)}
}

func (s *memUsers) Insert(_ context.Context, user *models.User) error {
	u := *user
	s.users[user.ID] = &u
	return nil
}

func (s *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, services.ErrNotFound
}

func (s *memUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (s *memUsers) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) error {
	u, ok := s.users[id]
	if !ok {
		return services.ErrNotFound
	}
	u.Status = status
	return nil
}

func (s *memUsers) PushPost(_ context.Context, userID, postID primitive.ObjectID) error {
	u, ok := s.users[userID]
	if !ok {
		return services.ErrNotFound
	}
	u.Posts = append(u.Posts, postID)
	return nil
}

func (s *memUsers) PullPost(_ context.Context, userID, postID primitive.ObjectID) error {
	u, ok := s.users[userID]
	if !ok {
		return services.ErrNotFound
	}
	kept := u.Posts[:0]
	for _, p := range u.Posts {
		if p != postID {
			kept = append(kept, p)
		}
	}
	u.Posts = kept
	return nil
}

type memPosts struct {
	posts map[primitive.ObjectID]*models.Post
}

func newMemPosts() *memPosts {
	return &memPosts{posts: make(map[primitive.ObjectID]*models.Post)}
}

func (s *memPosts) Insert(_ context.Context, post *models.Post) error {
	p := *post
	s.posts[post.ID] = &p
	return nil
}

func (s *memPosts) FindByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (s *memPosts) Update(_ context.Context, post *models.Post) error {
	if _, ok := s.posts[post.ID]; !ok {
		return services.ErrNotFound
	}
	p := *post
	s.posts[post.ID] = &p
	return nil
}

func (s *memPosts) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := s.posts[id]; !ok {
		return services.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *memPosts) Page(_ context.Context, page, perPage int) ([]models.Post, int64, error) {
	all := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	start := (page - 1) * perPage
	if start >= len(all) {
		return []models.Post{}, int64(len(all)), nil
	}
	end := start + perPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

type memImages struct {
	saved   int
	removed []string
}

func (s *memImages) Save(_ context.Context, r io.Reader, filename string) (string, error) {
	io.Copy(io.Discard, r)
	s.saved++
	return "images/img-" + filename, nil
}

func (s *memImages) Remove(_ context.Context, ref string) error {
	s.removed = append(s.removed, ref)
	return nil
}

type memBroadcaster struct {
	actions []string
}

func (b *memBroadcaster) PostCreated(models.Post) { b.actions = append(b.actions, "create") }
func (b *memBroadcaster) PostUpdated(models.Post) { b.actions = append(b.actions, "update") }
func (b *memBroadcaster) PostDeleted(string)      { b.actions = append(b.actions, "delete") }
