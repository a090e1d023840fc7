package services

import (
	"context"
	"errors"
	"io"

	"feedboard/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned by stores when no record matches the query.
var ErrNotFound = errors.New("record not found")

// UserStore persists user records.
type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
	PushPost(ctx context.Context, userID, postID primitive.ObjectID) error
	PullPost(ctx context.Context, userID, postID primitive.ObjectID) error
}

// PostStore persists post records.
type PostStore interface {
	Insert(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// Page returns one page of posts ordered by creation time descending,
	// plus the total post count. Pages are 1-based; a page past the end
	// yields an empty slice.
	Page(ctx context.Context, page, perPage int) ([]models.Post, int64, error)
}

// ImageStore saves uploaded images and removes stale ones. Save returns
// the reference (path or URL) recorded on the post.
type ImageStore interface {
	Save(ctx context.Context, r io.Reader, filename string) (string, error)
	Remove(ctx context.Context, ref string) error
}

// Broadcaster pushes post change events to connected clients. Calls are
// fire-and-forget: implementations must never block or fail the request.
type Broadcaster interface {
	PostCreated(post models.Post)
	PostUpdated(post models.Post)
	PostDeleted(postID string)
}
