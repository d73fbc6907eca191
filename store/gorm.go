package store

import (
	"errors"
	"time"

	"like-exchange-system/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Gorm is the Postgres-backed store. Inside Atomic it reads user and
// request rows with SELECT ... FOR UPDATE so that concurrent
// transitions on the same row serialize at the database.
type Gorm struct {
	db   *gorm.DB
	inTx bool
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (s *Gorm) Atomic(fn func(Store) error) error {
	if s.inTx {
		return fn(s)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Gorm{db: tx, inTx: true})
	})
}

// locked applies a row lock when running inside a transaction.
func (s *Gorm) locked() *gorm.DB {
	if s.inTx {
		return s.db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return s.db
}

func (s *Gorm) UserByExternalID(externalID int64) (*models.User, error) {
	var u models.User
	if err := s.locked().Where("external_id = ?", externalID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *Gorm) CreateUser(u *models.User) error {
	// Concurrent duplicate registrations land on the unique index;
	// DoNothing keeps register idempotent under that race.
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_id"}},
		DoNothing: true,
	}).Create(u).Error
}

func (s *Gorm) SaveUser(u *models.User) error {
	return s.db.Save(u).Error
}

func (s *Gorm) RequestByID(id uint) (*models.ExchangeRequest, error) {
	var r models.ExchangeRequest
	if err := s.locked().First(&r, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (s *Gorm) CreateRequest(r *models.ExchangeRequest) error {
	return s.db.Create(r).Error
}

func (s *Gorm) SaveRequest(r *models.ExchangeRequest) error {
	return s.db.Save(r).Error
}

func (s *Gorm) OpenRequests() ([]models.ExchangeRequest, error) {
	var reqs []models.ExchangeRequest
	err := s.db.
		Where("status = ?", models.RequestStatusOpen).
		Order("created_at DESC, id ASC").
		Find(&reqs).Error
	return reqs, err
}

func (s *Gorm) ClaimedBefore(cutoff time.Time) ([]models.ExchangeRequest, error) {
	var reqs []models.ExchangeRequest
	err := s.db.
		Where("status = ? AND created_at < ?", models.RequestStatusClaimed, cutoff).
		Order("created_at ASC").
		Find(&reqs).Error
	return reqs, err
}
