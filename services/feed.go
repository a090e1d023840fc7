package services

import (
	"context"
	"errors"
	"io"
	"time"

	"feedboard/apperror"
	"feedboard/models"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostsPerPage is the fixed feed page size.
const PostsPerPage = 2

// Feed implements the paginated post feed with image storage and change
// broadcasting.
type Feed struct {
	posts  PostStore
	users  UserStore
	images ImageStore
	events Broadcaster
}

func NewFeed(posts PostStore, users UserStore, images ImageStore, events Broadcaster) *Feed {
	return &Feed{posts: posts, users: users, images: images, events: events}
}

// List returns one page of posts, newest first, with each creator
// resolved to an id + name summary, plus the total post count. Pages are
// 1-based; a page past the end is empty, not an error.
func (s *Feed) List(ctx context.Context, page int) ([]models.Post, int64, error) {
	if page < 1 {
		page = 1
	}

	posts, total, err := s.posts.Page(ctx, page, PostsPerPage)
	if err != nil {
		return nil, 0, apperror.Wrap(apperror.Internal, "Failed to fetch posts.", err)
	}

	// Creator is a weak reference; resolve it per read and tolerate a
	// missing user rather than failing the page.
	creators := make(map[primitive.ObjectID]*models.Creator)
	for i := range posts {
		id := posts[i].CreatorID
		if _, ok := creators[id]; !ok {
			creators[id] = s.resolveCreator(ctx, id)
		}
		posts[i].Creator = creators[id]
	}
	return posts, total, nil
}

// Create stores the image, persists the post, appends it to the
// creator's post set and broadcasts a create event.
//
// The insert and the back-reference update are separate single-document
// writes; a crash between them leaves a post without its owner
// back-reference. Known gap, matching the store's consistency model.
func (s *Feed) Create(ctx context.Context, creatorID, title, content string, image io.Reader, imageName string) (*models.Post, error) {
	if image == nil {
		return nil, apperror.New(apperror.Validation, "No image provided.")
	}

	cid, err := primitive.ObjectIDFromHex(creatorID)
	if err != nil {
		return nil, apperror.New(apperror.NotFound, "User not found.")
	}
	user, err := s.users.FindByID(ctx, cid)
	if errors.Is(err, ErrNotFound) {
		return nil, apperror.New(apperror.NotFound, "User not found.")
	}
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "Database error.", err)
	}

	imageURL, err := s.images.Save(ctx, image, imageName)
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "Failed to store image.", err)
	}

	now := time.Now()
	post := &models.Post{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Content:   content,
		ImageURL:  imageURL,
		CreatorID: cid,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.posts.Insert(ctx, post); err != nil {
		return nil, apperror.Wrap(apperror.Internal, "Failed to create post.", err)
	}
	if err := s.users.PushPost(ctx, cid, post.ID); err != nil {
		return nil, apperror.Wrap(apperror.Internal, "Failed to update user posts.", err)
	}

	post.Creator = &models.Creator{ID: user.ID.Hex(), Name: user.Name}
	s.events.PostCreated(*post)
	return post, nil
}

// Get returns a single post.
func (s *Feed) Get(ctx context.Context, postID string) (*models.Post, error) {
	return s.findPost(ctx, postID)
}

// Update overwrites a post's title, content and image reference. Only
// the creator may update. A new image replaces the stored one; without a
// new upload the kept reference from the request body is used. The old
// image is removed best-effort when the reference changes.
func (s *Feed) Update(ctx context.Context, postID, requesterID, title, content string, image io.Reader, imageName, keepImageURL string) (*models.Post, error) {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.CreatorID.Hex() != requesterID {
		return nil, apperror.New(apperror.Authorization, "Not authorized!")
	}

	imageURL := keepImageURL
	if image != nil {
		imageURL, err = s.images.Save(ctx, image, imageName)
		if err != nil {
			return nil, apperror.Wrap(apperror.Internal, "Failed to store image.", err)
		}
	}
	if imageURL == "" {
		return nil, apperror.New(apperror.Validation, "No file picked.")
	}

	if imageURL != post.ImageURL {
		s.clearImage(ctx, post.ImageURL)
	}

	post.Title = title
	post.Content = content
	post.ImageURL = imageURL
	post.UpdatedAt = time.Now()

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, apperror.Wrap(apperror.Internal, "Failed to update post.", err)
	}

	post.Creator = s.resolveCreator(ctx, post.CreatorID)
	s.events.PostUpdated(*post)
	return post, nil
}

// Delete removes a post, its stored image (best-effort) and the
// back-reference on the owning user, then broadcasts a delete event.
// Only the creator may delete.
func (s *Feed) Delete(ctx context.Context, postID, requesterID string) error {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.CreatorID.Hex() != requesterID {
		return apperror.New(apperror.Authorization, "Not authorized!")
	}

	s.clearImage(ctx, post.ImageURL)

	if err := s.posts.Delete(ctx, post.ID); err != nil {
		return apperror.Wrap(apperror.Internal, "Failed to delete post.", err)
	}
	if err := s.users.PullPost(ctx, post.CreatorID, post.ID); err != nil {
		return apperror.Wrap(apperror.Internal, "Failed to update user posts.", err)
	}

	s.events.PostDeleted(post.ID.Hex())
	return nil
}

func (s *Feed) findPost(ctx context.Context, postID string) (*models.Post, error) {
	id, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, apperror.New(apperror.NotFound, "Could not find post.")
	}
	post, err := s.posts.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperror.New(apperror.NotFound, "Could not find post.")
	}
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "Database error.", err)
	}
	return post, nil
}

func (s *Feed) resolveCreator(ctx context.Context, id primitive.ObjectID) *models.Creator {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return &models.Creator{ID: id.Hex(), Name: "Unknown"}
	}
	return &models.Creator{ID: user.ID.Hex(), Name: user.Name}
}

// clearImage is non-critical cleanup; failures are logged, never
// propagated.
func (s *Feed) clearImage(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := s.images.Remove(ctx, ref); err != nil {
		log.WithField("image", ref).Warnf("failed to remove image: %v", err)
	}
}
