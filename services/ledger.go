package services

import (
	"crypto/subtle"
	"errors"
	"log"
	"time"

	"like-exchange-system/models"
	"like-exchange-system/store"

	"github.com/google/uuid"
)

// LedgerService owns user accounts and their point balances. Balances
// never go below zero: the only way down is debit, and debit is
// guarded. The admin secret is injected from the environment and
// compared in constant time.
type LedgerService struct {
	Store       store.Store
	adminSecret string
}

func NewLedgerService(st store.Store, adminSecret string) *LedgerService {
	return &LedgerService{Store: st, adminSecret: adminSecret}
}

// Register creates the user on first sight and is a no-op afterwards.
// The bool reports whether a new account was created.
func (s *LedgerService) Register(externalID int64, displayName string) (*models.User, bool, error) {
	var u *models.User
	var created bool
	err := s.Store.Atomic(func(tx store.Store) error {
		existing, err := tx.UserByExternalID(externalID)
		if err == nil {
			u = existing
			return nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		fresh := &models.User{
			ID:          uuid.NewString(),
			ExternalID:  externalID,
			DisplayName: displayName,
			Points:      0,
			CreatedAt:   time.Now().UTC(),
		}
		if err := tx.CreateUser(fresh); err != nil {
			return err
		}
		u = fresh
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return u, created, nil
}

func (s *LedgerService) GetProfile(externalID int64) (*models.User, error) {
	u, err := s.Store.UserByExternalID(externalID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	return u, err
}

func (s *LedgerService) GetBalance(externalID int64) (int64, error) {
	u, err := s.GetProfile(externalID)
	if err != nil {
		return 0, err
	}
	return u.Points, nil
}

// AdminAdjustBalance grants or removes points out of band. Negative
// deltas go through the debit guard, so even an admin cannot push a
// balance below zero.
func (s *LedgerService) AdminAdjustBalance(externalID int64, delta int64, secret string) error {
	if subtle.ConstantTimeCompare([]byte(secret), []byte(s.adminSecret)) != 1 {
		return ErrUnauthorized
	}
	err := s.Store.Atomic(func(tx store.Store) error {
		u, err := tx.UserByExternalID(externalID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if delta < 0 {
			return debit(tx, u, -delta)
		}
		return credit(tx, u, delta)
	})
	if err == nil {
		log.Printf("[Ledger] admin adjusted balance of user %d by %+d", externalID, delta)
	}
	return err
}

// debit reduces a balance, refusing to overdraw. Callers must be
// inside a store.Atomic block.
func debit(tx store.Store, u *models.User, amount int64) error {
	if u.Points < amount {
		return ErrInsufficientFunds
	}
	u.Points -= amount
	return tx.SaveUser(u)
}

// credit increases a balance; no upper bound. Callers must be inside
// a store.Atomic block.
func credit(tx store.Store, u *models.User, amount int64) error {
	u.Points += amount
	return tx.SaveUser(u)
}
