package user

import "handyhelp/utils"

// ErrInvalidCredentials is returned for both unknown usernames and wrong passwords.
var ErrInvalidCredentials = utils.AuthError("Invalid username or password")

// ErrMissingFields is returned when a required registration field is absent.
var ErrMissingFields = utils.ValidationError("Missing required fields")
