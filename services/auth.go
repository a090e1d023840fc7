package services

import (
	"context"
	"errors"
	"time"

	"feedboard/apperror"
	"feedboard/models"
	"feedboard/token"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is deliberately above the library default to slow brute force.
const bcryptCost = 12

// Auth implements signup, login and status management.
type Auth struct {
	users  UserStore
	tokens *token.Issuer
}

func NewAuth(users UserStore, tokens *token.Issuer) *Auth {
	return &Auth{users: users, tokens: tokens}
}

// Signup creates a user with a hashed password and the default status.
func (s *Auth) Signup(ctx context.Context, email, name, password string) (string, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return "", apperror.Wrap(apperror.Internal, "Database error.", err)
	}
	if existing != nil {
		return "", apperror.New(apperror.Conflict, "Email already in use.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", apperror.Wrap(apperror.Internal, "Failed to hash password.", err)
	}

	user := &models.User{
		ID:           primitive.NewObjectID(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Status:       models.DefaultStatus,
		Posts:        []primitive.ObjectID{},
		CreatedAt:    time.Now(),
	}

	if err := s.users.Insert(ctx, user); err != nil {
		return "", apperror.Wrap(apperror.Internal, "Failed to create user.", err)
	}
	return user.ID.Hex(), nil
}

// Login verifies credentials and issues a session token. The error never
// reveals whether the email or the password was wrong.
func (s *Auth) Login(ctx context.Context, email, password string) (string, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return "", "", apperror.New(apperror.Authentication, "Invalid email or password.")
	}
	if err != nil {
		return "", "", apperror.Wrap(apperror.Internal, "Database error.", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", apperror.New(apperror.Authentication, "Invalid email or password.")
	}

	tok, err := s.tokens.Issue(user.Email, user.ID.Hex())
	if err != nil {
		return "", "", apperror.Wrap(apperror.Internal, "Failed to generate token.", err)
	}
	return tok, user.ID.Hex(), nil
}

// Status returns the user's status text.
func (s *Auth) Status(ctx context.Context, userID string) (string, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Status, nil
}

// UpdateStatus overwrites the user's status text.
func (s *Auth) UpdateStatus(ctx context.Context, userID, status string) error {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return apperror.New(apperror.NotFound, "User not found.")
	}

	err = s.users.UpdateStatus(ctx, id, status)
	if errors.Is(err, ErrNotFound) {
		return apperror.New(apperror.NotFound, "User not found.")
	}
	if err != nil {
		return apperror.Wrap(apperror.Internal, "Failed to update status.", err)
	}
	return nil
}

func (s *Auth) findUser(ctx context.Context, userID string) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperror.New(apperror.NotFound, "User not found.")
	}
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperror.New(apperror.NotFound, "User not found.")
	}
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "Database error.", err)
	}
	return user, nil
}
