package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultStatus is assigned to every user on signup.
const DefaultStatus = "I am new!"

type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Email        string               `bson:"email" json:"email"`
	PasswordHash string               `bson:"password" json:"-"`
	Name         string               `bson:"name" json:"name"`
	Status       string               `bson:"status" json:"status"`
	Posts        []primitive.ObjectID `bson:"posts" json:"posts"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
}
