package store

import (
	"sort"
	"sync"
	"time"

	"like-exchange-system/models"
)

// Memory is a mutex-serialized in-memory store. It backs tests and
// local development without Postgres; one process-wide lock gives the
// same serializable ordering the Gorm store gets from row locks.
type Memory struct {
	mu        sync.Mutex
	users     map[int64]models.User
	requests  map[uint]models.ExchangeRequest
	nextReqID uint
}

func NewMemory() *Memory {
	return &Memory{
		users:    make(map[int64]models.User),
		requests: make(map[uint]models.ExchangeRequest),
	}
}

func (m *Memory) Atomic(fn func(Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Snapshot for rollback so a failed fn leaves no partial mutation.
	usersSnap := make(map[int64]models.User, len(m.users))
	for k, v := range m.users {
		usersSnap[k] = v
	}
	reqsSnap := make(map[uint]models.ExchangeRequest, len(m.requests))
	for k, v := range m.requests {
		reqsSnap[k] = v
	}
	idSnap := m.nextReqID

	if err := fn(&memTx{m}); err != nil {
		m.users = usersSnap
		m.requests = reqsSnap
		m.nextReqID = idSnap
		return err
	}
	return nil
}

func (m *Memory) UserByExternalID(externalID int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memTx{m}).UserByExternalID(externalID)
}

func (m *Memory) CreateUser(u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memTx{m}).CreateUser(u)
}

func (m *Memory) SaveUser(u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memTx{m}).SaveUser(u)
}

func (m *Memory) RequestByID(id uint) (*models.ExchangeRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memTx{m}).RequestByID(id)
}

func (m *Memory) CreateRequest(r *models.ExchangeRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memTx{m}).CreateRequest(r)
}

func (m *Memory) SaveRequest(r *models.ExchangeRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memTx{m}).SaveRequest(r)
}

func (m *Memory) OpenRequests() ([]models.ExchangeRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memTx{m}).OpenRequests()
}

func (m *Memory) ClaimedBefore(cutoff time.Time) ([]models.ExchangeRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memTx{m}).ClaimedBefore(cutoff)
}

// memTx is the view handed to Atomic callbacks; the caller already
// holds the store lock. Values are copied in and out of the maps so
// callers never hold aliases into store state.
type memTx struct {
	m *Memory
}

func (t *memTx) Atomic(fn func(Store) error) error {
	return fn(t) // join the surrounding transaction
}

func (t *memTx) UserByExternalID(externalID int64) (*models.User, error) {
	u, ok := t.m.users[externalID]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (t *memTx) CreateUser(u *models.User) error {
	if _, ok := t.m.users[u.ExternalID]; ok {
		return nil // same DoNothing semantics as the unique index path
	}
	t.m.users[u.ExternalID] = *u
	return nil
}

func (t *memTx) SaveUser(u *models.User) error {
	t.m.users[u.ExternalID] = *u
	return nil
}

func (t *memTx) RequestByID(id uint) (*models.ExchangeRequest, error) {
	r, ok := t.m.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (t *memTx) CreateRequest(r *models.ExchangeRequest) error {
	t.m.nextReqID++
	r.ID = t.m.nextReqID
	t.m.requests[r.ID] = *r
	return nil
}

func (t *memTx) SaveRequest(r *models.ExchangeRequest) error {
	t.m.requests[r.ID] = *r
	return nil
}

func (t *memTx) OpenRequests() ([]models.ExchangeRequest, error) {
	var reqs []models.ExchangeRequest
	for _, r := range t.m.requests {
		if r.Status == models.RequestStatusOpen {
			reqs = append(reqs, r)
		}
	}
	sort.Slice(reqs, func(i, j int) bool {
		if !reqs[i].CreatedAt.Equal(reqs[j].CreatedAt) {
			return reqs[i].CreatedAt.After(reqs[j].CreatedAt)
		}
		return reqs[i].ID < reqs[j].ID
	})
	return reqs, nil
}

func (t *memTx) ClaimedBefore(cutoff time.Time) ([]models.ExchangeRequest, error) {
	var reqs []models.ExchangeRequest
	for _, r := range t.m.requests {
		if r.Status == models.RequestStatusClaimed && r.CreatedAt.Before(cutoff) {
			reqs = append(reqs, r)
		}
	}
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].CreatedAt.Before(reqs[j].CreatedAt) })
	return reqs, nil
}
