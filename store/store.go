package store

import (
	"errors"
	"time"

	"like-exchange-system/models"
)

// ErrNotFound is returned by lookups when no matching record exists.
// Implementations translate their own not-found errors into this one.
var ErrNotFound = errors.New("record not found")

// Store is the persistence boundary shared by the ledger and the
// request state machine. Every mutating service operation runs inside
// Atomic so that a transition and its point movement commit together
// or not at all.
type Store interface {
	UserByExternalID(externalID int64) (*models.User, error)
	CreateUser(u *models.User) error
	SaveUser(u *models.User) error

	RequestByID(id uint) (*models.ExchangeRequest, error)
	CreateRequest(r *models.ExchangeRequest) error
	SaveRequest(r *models.ExchangeRequest) error

	// OpenRequests returns open requests ordered by creation time
	// descending, ties broken by ascending id.
	OpenRequests() ([]models.ExchangeRequest, error)

	// ClaimedBefore returns requests still sitting in claimed state
	// that were created before cutoff.
	ClaimedBefore(cutoff time.Time) ([]models.ExchangeRequest, error)

	// Atomic runs fn against a transactional view of the store.
	// If fn returns an error, no mutation made inside it is kept.
	// Nested calls join the surrounding transaction.
	Atomic(fn func(Store) error) error
}
