package utils

import "handyhelp/models"

// Authorize checks that the caller acts as the given party. It passes every
// principal when enforcement is off.
func Authorize(p models.Principal, enforce bool, kind models.PartyKind, id string) error {
	if !enforce {
		return nil
	}
	if !p.Authenticated {
		return UnauthorizedError("Authentication required")
	}
	if !p.Is(kind, id) {
		return ForbiddenError("Not allowed to act for this " + string(kind))
	}
	return nil
}
