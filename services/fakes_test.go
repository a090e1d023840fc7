package services_test

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"feedboard/models"
	"feedboard/services"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]models.User)}
}

func (s *fakeUserStore) Insert(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = *user
	return nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			copy := u
			return &copy, nil
		}
	}
	return nil, services.ErrNotFound
}

func (s *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	copy := u
	return &copy, nil
}

func (s *fakeUserStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return services.ErrNotFound
	}
	u.Status = status
	s.users[id] = u
	return nil
}

func (s *fakeUserStore) PushPost(_ context.Context, userID, postID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return services.ErrNotFound
	}
	u.Posts = append(u.Posts, postID)
	s.users[userID] = u
	return nil
}

func (s *fakeUserStore) PullPost(_ context.Context, userID, postID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
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
	s.users[userID] = u
	return nil
}

type fakePostStore struct {
	mu        sync.Mutex
	posts     map[primitive.ObjectID]models.Post
	insertErr error
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: make(map[primitive.ObjectID]models.Post)}
}

func (s *fakePostStore) Insert(_ context.Context, post *models.Post) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[post.ID] = *post
	return nil
}

func (s *fakePostStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	copy := p
	return &copy, nil
}

func (s *fakePostStore) Update(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[post.ID]; !ok {
		return services.ErrNotFound
	}
	s.posts[post.ID] = *post
	return nil
}

func (s *fakePostStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return services.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *fakePostStore) Page(_ context.Context, page, perPage int) ([]models.Post, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		all = append(all, p)
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

type fakeImageStore struct {
	mu      sync.Mutex
	next    int
	saved   []string
	removed []string
	saveErr error
}

func (s *fakeImageStore) Save(_ context.Context, r io.Reader, filename string) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	io.Copy(io.Discard, r)
	s.next++
	ref := fmt.Sprintf("images/%d-%s", s.next, filename)
	s.saved = append(s.saved, ref)
	return ref, nil
}

func (s *fakeImageStore) Remove(_ context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, ref)
	return nil
}

type fakeBroadcaster struct {
	mu      sync.Mutex
	created []models.Post
	updated []models.Post
	deleted []string
}

func (b *fakeBroadcaster) PostCreated(post models.Post) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.created = append(b.created, post)
}

func (b *fakeBroadcaster) PostUpdated(post models.Post) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.updated = append(b.updated, post)
}

func (b *fakeBroadcaster) PostDeleted(postID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deleted = append(b.deleted, postID)
}

func (b *fakeBroadcaster) events() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.created) + len(b.updated) + len(b.deleted)
}
