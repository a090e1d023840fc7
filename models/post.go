package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	ImageURL  string             `bson:"imageUrl" json:"imageUrl"`
	CreatorID primitive.ObjectID `bson:"creator" json:"creatorId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
	Creator   *Creator           `bson:"-" json:"creator,omitempty"` // Populated in response only
}

// Creator is the denormalized author summary attached to responses and
// broadcast events.
type Creator struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}
