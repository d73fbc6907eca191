package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"like-exchange-system/models"
	"like-exchange-system/store"
)

// Stake bounds for a single exchange request.
const (
	MinPoints = 1
	MaxPoints = 100
)

// ExchangeService drives the open → claimed → completed lifecycle.
// Every transition and its point movement run inside one store.Atomic
// block, so a request can never change state without the matching
// ledger effect.
type ExchangeService struct {
	Store store.Store
}

func NewExchangeService(st store.Store) *ExchangeService {
	return &ExchangeService{Store: st}
}

// Create stakes points on a new request. The owner is debited
// immediately; the stake is held by the request record until a
// claimant confirms. There is no cancel or refund path.
func (s *ExchangeService) Create(ownerID int64, targetUID, region, proofURL string, points int64) (*models.ExchangeRequest, error) {
	if points < MinPoints || points > MaxPoints {
		return nil, ErrInvalidAmount
	}
	var req *models.ExchangeRequest
	err := s.Store.Atomic(func(tx store.Store) error {
		owner, err := tx.UserByExternalID(ownerID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotRegistered
		}
		if err != nil {
			return err
		}
		if err := debit(tx, owner, points); err != nil {
			return err
		}
		r := &models.ExchangeRequest{
			OwnerID:         ownerID,
			TargetUID:       targetUID,
			Region:          strings.ToUpper(region),
			ProofURL:        proofURL,
			PointsRequested: points,
			Status:          models.RequestStatusOpen,
			CreatedAt:       time.Now().UTC(),
		}
		if err := tx.CreateRequest(r); err != nil {
			return err
		}
		req = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[Exchange] request %d created by user %d, %d points staked", req.ID, ownerID, points)
	return req, nil
}

// ListOpen returns open requests, most recent first, ascending id on
// identical timestamps.
func (s *ExchangeService) ListOpen() ([]models.ExchangeRequest, error) {
	return s.Store.OpenRequests()
}

// Claim reserves an open request for the claimant. No points move
// here; claiming only grants the right to confirm later.
func (s *ExchangeService) Claim(claimantID int64, requestID uint) error {
	err := s.Store.Atomic(func(tx store.Store) error {
		r, err := tx.RequestByID(requestID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if r.Status != models.RequestStatusOpen {
			return ErrInvalidState
		}
		claimant, err := tx.UserByExternalID(claimantID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotRegistered
		}
		if err != nil {
			return err
		}
		if claimant.ExternalID == r.OwnerID {
			return ErrSelfClaim
		}
		by := claimant.ExternalID
		r.Status = models.RequestStatusClaimed
		r.ClaimedBy = &by
		return tx.SaveRequest(r)
	})
	if err == nil {
		log.Printf("[Exchange] request %d claimed by user %d", requestID, claimantID)
	}
	return err
}

// Confirm settles a claimed request: the recorded claimant presents
// proof, the request completes, and the escrowed stake is credited to
// the claimant in the same transaction.
func (s *ExchangeService) Confirm(claimantID int64, requestID uint, claimProofURL string) error {
	err := s.Store.Atomic(func(tx store.Store) error {
		r, err := tx.RequestByID(requestID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if r.Status != models.RequestStatusClaimed {
			return ErrInvalidState
		}
		claimant, err := tx.UserByExternalID(claimantID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotRegistered
		}
		if err != nil {
			return err
		}
		if r.ClaimedBy == nil || *r.ClaimedBy != claimant.ExternalID {
			return ErrForbidden
		}
		now := time.Now().UTC()
		r.Status = models.RequestStatusCompleted
		r.ClaimProofURL = &claimProofURL
		r.CompletedAt = &now
		if err := tx.SaveRequest(r); err != nil {
			return err
		}
		return credit(tx, claimant, r.PointsRequested)
	})
	if err == nil {
		log.Printf("[Exchange] request %d completed, points awarded to user %d", requestID, claimantID)
	}
	return err
}
