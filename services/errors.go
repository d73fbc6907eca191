package services

import "errors"

// Every operation fails synchronously with one of these; handlers map
// them onto HTTP status codes. They mark precondition violations, not
// transient faults, so nothing here is retried.
var (
	ErrNotFound          = errors.New("not found")
	ErrNotRegistered     = errors.New("user not registered")
	ErrInvalidAmount     = errors.New("points must be between 1 and 100")
	ErrInsufficientFunds = errors.New("not enough points")
	ErrInvalidState      = errors.New("request is not in the required state")
	ErrSelfClaim         = errors.New("owner cannot claim own request")
	ErrForbidden         = errors.New("only the claimant can confirm")
	ErrUnauthorized      = errors.New("unauthorized")
)
