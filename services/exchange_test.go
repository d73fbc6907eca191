package services

import (
	"fmt"
	"sync"
	"testing"

	"like-exchange-system/models"
	"like-exchange-system/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture registers owner (id 1, 50 points) and claimant (id 2).
func newExchange(t *testing.T) (*ExchangeService, *LedgerService) {
	t.Helper()
	st := store.NewMemory()
	ledger := NewLedgerService(st, testSecret)
	exchange := NewExchangeService(st)

	for _, id := range []int64{1, 2} {
		_, _, err := ledger.Register(id, "")
		require.NoError(t, err)
	}
	require.NoError(t, ledger.AdminAdjustBalance(1, 50, testSecret))
	return exchange, ledger
}

func TestCreateStakesPoints(t *testing.T) {
	exchange, ledger := newExchange(t)

	req, err := exchange.Create(1, "2476897412", "ind", "https://example.com/proof", 30)
	require.NoError(t, err)

	assert.Equal(t, models.RequestStatusOpen, req.Status)
	assert.Equal(t, int64(30), req.PointsRequested)
	assert.Equal(t, "IND", req.Region, "region is normalized to uppercase")
	assert.Nil(t, req.ClaimedBy)
	assert.Nil(t, req.ClaimProofURL)
	assert.Nil(t, req.CompletedAt)

	balance, err := ledger.GetBalance(1)
	require.NoError(t, err)
	assert.Equal(t, int64(20), balance, "stake leaves the owner balance at creation")
}

func TestCreateValidation(t *testing.T) {
	exchange, ledger := newExchange(t)

	t.Run("points out of range", func(t *testing.T) {
		_, err := exchange.Create(1, "uid", "IND", "https://example.com/p", 0)
		assert.ErrorIs(t, err, ErrInvalidAmount)
		_, err = exchange.Create(1, "uid", "IND", "https://example.com/p", 101)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("owner not registered", func(t *testing.T) {
		_, err := exchange.Create(999, "uid", "IND", "https://example.com/p", 10)
		assert.ErrorIs(t, err, ErrNotRegistered)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		_, err := exchange.Create(2, "uid", "IND", "https://example.com/p", 10)
		assert.ErrorIs(t, err, ErrInsufficientFunds)

		// failed create must not leave a request behind
		open, listErr := exchange.ListOpen()
		require.NoError(t, listErr)
		assert.Empty(t, open)
		balance, balErr := ledger.GetBalance(2)
		require.NoError(t, balErr)
		assert.Equal(t, int64(0), balance)
	})
}

func TestListOpenOnlyOpen(t *testing.T) {
	exchange, _ := newExchange(t)

	first, err := exchange.Create(1, "uid-1", "IND", "https://example.com/1", 10)
	require.NoError(t, err)
	second, err := exchange.Create(1, "uid-2", "BR", "https://example.com/2", 10)
	require.NoError(t, err)

	require.NoError(t, exchange.Claim(2, first.ID))

	open, err := exchange.ListOpen()
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, second.ID, open[0].ID)
}

func TestClaimLifecycle(t *testing.T) {
	exchange, _ := newExchange(t)
	req, err := exchange.Create(1, "uid", "IND", "https://example.com/p", 30)
	require.NoError(t, err)

	t.Run("unknown request", func(t *testing.T) {
		assert.ErrorIs(t, exchange.Claim(2, 9999), ErrNotFound)
	})

	t.Run("unregistered claimant", func(t *testing.T) {
		assert.ErrorIs(t, exchange.Claim(999, req.ID), ErrNotRegistered)
	})

	t.Run("owner cannot claim own request", func(t *testing.T) {
		assert.ErrorIs(t, exchange.Claim(1, req.ID), ErrSelfClaim)
	})

	t.Run("claim records claimant", func(t *testing.T) {
		require.NoError(t, exchange.Claim(2, req.ID))

		claimed, err := exchange.Store.RequestByID(req.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RequestStatusClaimed, claimed.Status)
		require.NotNil(t, claimed.ClaimedBy)
		assert.Equal(t, int64(2), *claimed.ClaimedBy)
	})

	t.Run("second claim fails", func(t *testing.T) {
		assert.ErrorIs(t, exchange.Claim(2, req.ID), ErrInvalidState)
	})
}

func TestConfirmSettles(t *testing.T) {
	exchange, ledger := newExchange(t)
	req, err := exchange.Create(1, "uid", "IND", "https://example.com/p", 30)
	require.NoError(t, err)

	t.Run("confirm before claim", func(t *testing.T) {
		err := exchange.Confirm(2, req.ID, "https://example.com/done")
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	require.NoError(t, exchange.Claim(2, req.ID))

	t.Run("only claimant can confirm", func(t *testing.T) {
		err := exchange.Confirm(1, req.ID, "https://example.com/done")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("settlement", func(t *testing.T) {
		require.NoError(t, exchange.Confirm(2, req.ID, "https://example.com/done"))

		done, err := exchange.Store.RequestByID(req.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RequestStatusCompleted, done.Status)
		require.NotNil(t, done.ClaimProofURL)
		assert.Equal(t, "https://example.com/done", *done.ClaimProofURL)
		require.NotNil(t, done.CompletedAt)

		claimantBalance, err := ledger.GetBalance(2)
		require.NoError(t, err)
		assert.Equal(t, int64(30), claimantBalance)

		ownerBalance, err := ledger.GetBalance(1)
		require.NoError(t, err)
		assert.Equal(t, int64(20), ownerBalance, "owner paid once at creation, nothing more")
	})

	t.Run("double confirm fails", func(t *testing.T) {
		err := exchange.Confirm(2, req.ID, "https://example.com/again")
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestConcurrentClaimsOneWinner(t *testing.T) {
	st := store.NewMemory()
	ledger := NewLedgerService(st, testSecret)
	exchange := NewExchangeService(st)

	for id := int64(1); id <= 11; id++ {
		_, _, err := ledger.Register(id, fmt.Sprintf("user-%d", id))
		require.NoError(t, err)
	}
	require.NoError(t, ledger.AdminAdjustBalance(1, 100, testSecret))
	req, err := exchange.Create(1, "uid", "IND", "https://example.com/p", 50)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]error, 10)
	for i := 0; i < 10; i++ {
		claimant := int64(i + 2)
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			results[slot] = exchange.Claim(claimant, req.ID)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, ErrInvalidState)
		}
	}
	assert.Equal(t, 1, winners, "exactly one concurrent claim may win")

	claimed, err := st.RequestByID(req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusClaimed, claimed.Status)
	require.NotNil(t, claimed.ClaimedBy)
}
