package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is an append-only message from a handyman to a user.
type Notification struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	HandymanID string             `bson:"handymanId" json:"handymanId"`
	UserID     string             `bson:"userId" json:"userId"`
	Content    string             `bson:"notification_content" json:"notification_content"`
	DateSent   time.Time          `bson:"date_sent" json:"date_sent"`
}

// NotificationView is the rendered notification returned to the user.
type NotificationView struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}
