package handler

// Error codes attached to status events and terminal results
const (
	Success             = "SUCCESS"
	InvalidRequest      = "INVALID_REQUEST"
	InternalServerError = "INTERNAL_SERVER_ERROR"
)
