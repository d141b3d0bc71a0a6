package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a customer account that requests bookings.
type User struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FirstName          string             `bson:"fname" json:"fname"`
	LastName           string             `bson:"lname" json:"lname"`
	Username           string             `bson:"username" json:"username"`
	PasswordHash       string             `bson:"password" json:"-"`
	DateOfBirth        time.Time          `bson:"dateOfBirth" json:"dateOfBirth"`
	Contact            string             `bson:"contact" json:"contact"`
	Address            string             `bson:"address,omitempty" json:"address,omitempty"`
	Images             []string           `bson:"images" json:"images"`
	DataPrivacyConsent bool               `bson:"dataPrivacyConsent" json:"dataPrivacyConsent"`
	Status             AccountStatus      `bson:"accounts_status" json:"accounts_status"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Name returns the user's display name.
func (u *User) Name() PartyName {
	return PartyName{FirstName: u.FirstName, LastName: u.LastName}
}

// UserRegistrationRequest is the body of POST /register.
type UserRegistrationRequest struct {
	FirstName          string   `json:"fname"`
	LastName           string   `json:"lname"`
	Username           string   `json:"username"`
	Password           string   `json:"password"`
	DateOfBirth        string   `json:"dateOfBirth"`
	Contact            string   `json:"contact"`
	Address            string   `json:"address"`
	Images             []string `json:"images"`
	DataPrivacyConsent bool     `json:"dataPrivacyConsent"`
}

// LoginRequest is the body of both login routes.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserProfile is the public view returned on login.
type UserProfile struct {
	ID          string        `json:"_id"`
	Username    string        `json:"username"`
	FirstName   string        `json:"fname"`
	LastName    string        `json:"lname"`
	Contact     string        `json:"contact"`
	Address     string        `json:"address,omitempty"`
	DateOfBirth time.Time     `json:"dateOfBirth"`
	Images      []string      `json:"images"`
	Status      AccountStatus `json:"accounts_status"`
}

// Profile builds the public view of the user.
func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:          u.ID.Hex(),
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Contact:     u.Contact,
		Address:     u.Address,
		DateOfBirth: u.DateOfBirth,
		Images:      nonNil(u.Images),
		Status:      u.Status,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
