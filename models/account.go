package models

import "fmt"

// AccountStatus is the verification state of a user or handyman account.
type AccountStatus string

const (
	AccountPending   AccountStatus = "pending"
	AccountVerified  AccountStatus = "verified"
	AccountRejected  AccountStatus = "rejected"
	AccountSuspended AccountStatus = "suspended"
)

// PartyKind names the two identity kinds in the system.
type PartyKind string

const (
	KindUser     PartyKind = "user"
	KindHandyman PartyKind = "handyman"
)

// ValidFor reports whether the status is allowed for the given account kind.
// Users cannot be suspended.
func (s AccountStatus) ValidFor(kind PartyKind) bool {
	switch s {
	case AccountPending, AccountVerified, AccountRejected:
		return true
	case AccountSuspended:
		return kind == KindHandyman
	}
	return false
}

// ParseAccountStatus validates a raw status value for the given kind.
func ParseAccountStatus(raw string, kind PartyKind) (AccountStatus, error) {
	s := AccountStatus(raw)
	if !s.ValidFor(kind) {
		return "", fmt.Errorf("invalid %s account status %q", kind, raw)
	}
	return s, nil
}

// PartyName is the display name of a resolved party.
type PartyName struct {
	FirstName string `bson:"fname" json:"fname"`
	LastName  string `bson:"lname" json:"lname"`
}

// Full joins first and last name with a single space.
func (n PartyName) Full() string {
	return n.FirstName + " " + n.LastName
}

// Principal is the caller identity attached to a request.
type Principal struct {
	ID            string
	Kind          PartyKind
	Authenticated bool
}

// Anonymous is the principal used when no valid token was presented.
var Anonymous = Principal{}

// Is reports whether the principal is the authenticated party with the given id and kind.
func (p Principal) Is(kind PartyKind, id string) bool {
	return p.Authenticated && p.Kind == kind && p.ID == id
}
