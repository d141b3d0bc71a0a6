package utils

// ProfilesCacheKey holds the cached list of verified handymen.
const ProfilesCacheKey = "profiles:verified"

// ProfilesGenerationKey counts invalidations of ProfilesCacheKey.
const ProfilesGenerationKey = "profiles:verified:gen"

// InboxPreviewLength is how many characters of the last message an inbox row shows.
const InboxPreviewLength = 25

const (
	AcceptedNotification = "Accepted your booking!"
	DeclinedNotification = "Your booking has been declined!"
)
