package database

import (
	"context"
	"errors"

	"feedboard/models"
	"feedboard/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserStore is the Mongo-backed services.UserStore.
type UserStore struct {
	coll *mongo.Collection
}

func NewUserStore(db *DB) *UserStore {
	return &UserStore{coll: db.Users}
}

func (s *UserStore) Insert(ctx context.Context, user *models.User) error {
	_, err := s.coll.InsertOne(ctx, user)
	return err
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (s *UserStore) PushPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$push": bson.M{"posts": postID}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (s *UserStore) PullPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$pull": bson.M{"posts": postID}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}
