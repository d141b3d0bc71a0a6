package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingRequested BookingStatus = "requested"
	BookingAccepted  BookingStatus = "accepted"
	BookingDeclined  BookingStatus = "declined"
)

// bookingTransitions lists the allowed next states for each state.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingRequested: {BookingAccepted, BookingDeclined},
}

// CanTransition reports whether a booking may move from s to next.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseBookingStatus validates a raw status value read from storage or a request.
func ParseBookingStatus(raw string) (BookingStatus, error) {
	switch s := BookingStatus(raw); s {
	case BookingRequested, BookingAccepted, BookingDeclined:
		return s, nil
	}
	return "", fmt.Errorf("unknown booking status %q", raw)
}

// Booking is a service request from a user to a handyman. Party ids are loose references.
type Booking struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID         string             `bson:"userId" json:"userId"`
	HandymanID     string             `bson:"handymanId" json:"handymanId"`
	ServiceDetails string             `bson:"serviceDetails" json:"serviceDetails"`
	DateOfService  time.Time          `bson:"dateOfService" json:"dateOfService"`
	UrgentRequest  bool               `bson:"urgentRequest" json:"urgentRequest"`
	Images         []string           `bson:"images" json:"images"`
	Status         BookingStatus      `bson:"status" json:"status"`
	WorkflowID     string             `bson:"workflowId,omitempty" json:"-"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// BookingRequest is the body of POST /api/bookings. Extra display fields the
// mobile client sends (handymanName, phone, city, ...) are ignored.
type BookingRequest struct {
	UserID         string   `json:"userId"`
	HandymanID     string   `json:"handymanId"`
	ServiceDetails string   `json:"serviceDetails"`
	DateOfService  string   `json:"dateOfService"`
	UrgentRequest  bool     `json:"urgentRequest"`
	Images         []string `json:"images"`
}

// AcceptBookingRequest is the body of POST /accept-booking.
type AcceptBookingRequest struct {
	BookingID      string `json:"bookingId" binding:"required"`
	HandymanID     string `json:"handymanId" binding:"required"`
	UserID         string `json:"userId" binding:"required"`
	ServiceDetails string `json:"serviceDetails"`
	Name           string `json:"name"`
	Contact        string `json:"contact"`
	Address        string `json:"address"`
	DateOfService  string `json:"dateOfService"`
}

// DeclineBookingRequest is the body of POST /decline-booking.
type DeclineBookingRequest struct {
	BookingID  string `json:"bookingId" binding:"required"`
	HandymanID string `json:"handymanId" binding:"required"`
	UserID     string `json:"userId" binding:"required"`
}

// RequestedProfile is a requested booking joined with the requesting user.
type RequestedProfile struct {
	BookingID      string   `json:"bookingId"`
	UserID         string   `json:"userId"`
	Name           string   `json:"name"`
	Address        string   `json:"address"`
	Contact        string   `json:"contact"`
	ServiceDetails string   `json:"serviceDetails"`
	DateOfService  string   `json:"dateOfService"`
	UrgentRequest  bool     `json:"urgentRequest"`
	ServiceImages  []string `json:"serviceImages"`
	Images         []string `json:"images"`
}
