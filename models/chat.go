package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatSender tags which side of a thread wrote a message.
type ChatSender string

const (
	SenderHandyman ChatSender = "handy"
	SenderUser     ChatSender = "user"
)

// ChatMessage is one append-only message in a booking thread.
type ChatMessage struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	BookingID  string             `bson:"booking_id" json:"booking_id"`
	HandymanID string             `bson:"handyman_id" json:"handyman_id"`
	UserID     string             `bson:"user_id" json:"user_id"`
	Sender     ChatSender         `bson:"sender" json:"sender"`
	Contents   string             `bson:"contents" json:"contents"`
	DateSent   time.Time          `bson:"date_sent" json:"date_sent"`
}

// SendMessageRequest is the body of both send-message routes.
type SendMessageRequest struct {
	Contents   string `json:"contents"`
	HandymanID string `json:"handyman_id"`
	UserID     string `json:"user_id"`
	BookingID  string `json:"booking_id"`
}

// InboxRow summarizes the newest message of one thread. The other party's
// name is always reported in the userFirstName/userLastName fields.
type InboxRow struct {
	UserID        string    `json:"user_id"`
	HandymanID    string    `json:"handyman_id"`
	BookingID     string    `json:"booking_id"`
	LastMessage   string    `json:"last_message"`
	UserFirstName string    `json:"userFirstName,omitempty"`
	UserLastName  string    `json:"userLastName,omitempty"`
	DateSent      time.Time `json:"date_sent"`
}

// ConversationMessage is a chat message enriched with the other party's name.
type ConversationMessage struct {
	ID              primitive.ObjectID `json:"_id"`
	BookingID       string             `json:"booking_id"`
	HandymanID      string             `json:"handyman_id"`
	UserID          string             `json:"user_id"`
	Sender          ChatSender         `json:"sender"`
	Contents        string             `json:"contents"`
	DateSent        time.Time          `json:"date_sent"`
	UserDetails     *PartyName         `json:"user_details,omitempty"`
	HandymanDetails *PartyName         `json:"handyMan_details,omitempty"`
}
