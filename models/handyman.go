package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Handyman is a service provider account. Only verified handymen are publicly listed.
type Handyman struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FirstName          string             `bson:"fname" json:"fname"`
	LastName           string             `bson:"lname" json:"lname"`
	Username           string             `bson:"username" json:"username"`
	PasswordHash       string             `bson:"password" json:"-"`
	DateOfBirth        time.Time          `bson:"dateOfBirth" json:"dateOfBirth"`
	Contact            string             `bson:"contact" json:"contact"`
	Address            string             `bson:"address" json:"address"`
	Specialization     []string           `bson:"specialization" json:"specialization"`
	IDImages           []string           `bson:"idImages" json:"idImages"`
	CertificatesImages []string           `bson:"certificatesImages" json:"certificatesImages"`
	DataPrivacyConsent bool               `bson:"dataPrivacyConsent" json:"dataPrivacyConsent"`
	Status             AccountStatus      `bson:"accounts_status" json:"accounts_status"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Name returns the handyman's display name.
func (h *Handyman) Name() PartyName {
	return PartyName{FirstName: h.FirstName, LastName: h.LastName}
}

// HandymanRegistrationRequest is the body of POST /register-handyman.
type HandymanRegistrationRequest struct {
	FirstName          string   `json:"fname"`
	LastName           string   `json:"lname"`
	Username           string   `json:"username"`
	Password           string   `json:"password"`
	DateOfBirth        string   `json:"dateOfBirth"`
	Contact            string   `json:"contact"`
	Address            string   `json:"address"`
	Specialization     []string `json:"specialization"`
	IDImages           []string `json:"idImages"`
	CertificatesImages []string `json:"certificatesImages"`
	DataPrivacyConsent bool     `json:"dataPrivacyConsent"`
}

// HandymanProfile is the public view returned on login.
type HandymanProfile struct {
	ID                 string        `json:"id"`
	FirstName          string        `json:"fname"`
	LastName           string        `json:"lname"`
	Username           string        `json:"username"`
	DateOfBirth        time.Time     `json:"dateOfBirth"`
	Contact            string        `json:"contact"`
	Address            string        `json:"address"`
	Specialization     []string      `json:"specialization"`
	IDImages           []string      `json:"idImages"`
	CertificatesImages []string      `json:"certificatesImages"`
	DataPrivacyConsent bool          `json:"dataPrivacyConsent"`
	Status             AccountStatus `json:"accounts_status"`
}

// Profile builds the public view of the handyman.
func (h *Handyman) Profile() HandymanProfile {
	return HandymanProfile{
		ID:                 h.ID.Hex(),
		FirstName:          h.FirstName,
		LastName:           h.LastName,
		Username:           h.Username,
		DateOfBirth:        h.DateOfBirth,
		Contact:            h.Contact,
		Address:            h.Address,
		Specialization:     nonNil(h.Specialization),
		IDImages:           nonNil(h.IDImages),
		CertificatesImages: nonNil(h.CertificatesImages),
		DataPrivacyConsent: h.DataPrivacyConsent,
		Status:             h.Status,
	}
}

// StatusUpdateRequest is the body of the admin status routes.
type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}
