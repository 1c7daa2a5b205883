package constants

// Session / context keys
const (
	SessionCookieName = "task_session"
	ContextKeyUserID  = "user_id"
)

// Pagination
const (
	// MessagePageSize is fixed; the message index always returns 5 per page.
	MessagePageSize = 5
	MinPage         = 1
)

// Auth
const (
	MinPasswordLength = 8
)
