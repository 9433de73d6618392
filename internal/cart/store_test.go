package cart

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sid = "session-1"

func TestAddItemMergesQuantitiesForSameProduct(t *testing.T) {
	s := NewStore()
	defer s.Close()

	s.AddItem(sid, Item{ProductID: "xx99", Name: "XX99 Mark II", Price: 2000, Quantity: 1})
	c := s.AddItem(sid, Item{ProductID: "xx99", Name: "XX99 Mark II", Price: 2000, Quantity: 1})

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, 4000.0, c.Total())
}

func TestAddItemNeverDuplicatesLines(t *testing.T) {
	s := NewStore()
	defer s.Close()

	adds := []struct {
		id  string
		qty int
	}{
		{"zx9", 1}, {"yx1", 2}, {"zx9", 3}, {"yx1", 1}, {"zx9", 1},
	}
	var c Cart
	for _, a := range adds {
		c = s.AddItem(sid, Item{ProductID: a.id, Price: 100, Quantity: a.qty})
	}

	require.Len(t, c.Items, 2)
	byID := map[string]int{}
	for _, it := range c.Items {
		byID[it.ProductID] = it.Quantity
	}
	assert.Equal(t, 5, byID["zx9"])
	assert.Equal(t, 3, byID["yx1"])
}

func TestAddItemPreservesInsertionOrder(t *testing.T) {
	s := NewStore()
	defer s.Close()

	s.AddItem(sid, Item{ProductID: "a", Price: 1, Quantity: 1})
	s.AddItem(sid, Item{ProductID: "b", Price: 1, Quantity: 1})
	c := s.AddItem(sid, Item{ProductID: "a", Price: 1, Quantity: 1})

	require.Len(t, c.Items, 2)
	assert.Equal(t, "a", c.Items[0].ProductID)
	assert.Equal(t, "b", c.Items[1].ProductID)
}

func TestTotalIsSumOfPriceTimesQuantity(t *testing.T) {
	s := NewStore()
	defer s.Close()

	s.AddItem(sid, Item{ProductID: "zx9", Price: 4500, Quantity: 2})
	s.AddItem(sid, Item{ProductID: "yx1", Price: 599, Quantity: 3})

	assert.Equal(t, 4500*2+599*3.0, s.Total(sid))
}

func TestUpdateQuantityClampsToMinimumOne(t *testing.T) {
	s := NewStore()
	defer s.Close()

	s.AddItem(sid, Item{ProductID: "zx7", Price: 3500, Quantity: 4})

	for _, q := range []int{0, -1, -99} {
		c, err := s.UpdateQuantity(sid, "zx7", q)
		require.NoError(t, err)
		require.Len(t, c.Items, 1)
		assert.Equal(t, 1, c.Items[0].Quantity, "quantity %d should clamp to 1", q)
	}
}

func TestUpdateQuantityUnknownItem(t *testing.T) {
	s := NewStore()
	defer s.Close()

	_, err := s.UpdateQuantity(sid, "nope", 2)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemoveItemDropsTheLine(t *testing.T) {
	s := NewStore()
	defer s.Close()

	s.AddItem(sid, Item{ProductID: "zx7", Price: 3500, Quantity: 1})
	s.AddItem(sid, Item{ProductID: "yx1", Price: 599, Quantity: 1})

	c, err := s.RemoveItem(sid, "zx7")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "yx1", c.Items[0].ProductID)

	_, err = s.RemoveItem(sid, "zx7")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestClearIsIdempotent(t *testing.T) {
	s := NewStore()
	defer s.Close()

	s.AddItem(sid, Item{ProductID: "zx7", Price: 3500, Quantity: 1})

	s.Clear(sid)
	assert.True(t, s.Get(sid).Empty())

	s.Clear(sid)
	assert.True(t, s.Get(sid).Empty())
	assert.Equal(t, 0.0, s.Total(sid))
}

func TestGetReturnsDetachedCopy(t *testing.T) {
	s := NewStore()
	defer s.Close()

	s.AddItem(sid, Item{ProductID: "zx7", Price: 3500, Quantity: 1})

	c := s.Get(sid)
	c.Items[0].Quantity = 99

	assert.Equal(t, 1, s.Get(sid).Items[0].Quantity)
}

func TestSessionsAreIsolated(t *testing.T) {
	s := NewStore()
	defer s.Close()

	s.AddItem("a", Item{ProductID: "zx7", Price: 3500, Quantity: 1})
	s.AddItem("b", Item{ProductID: "yx1", Price: 599, Quantity: 2})

	assert.Equal(t, 3500.0, s.Total("a"))
	assert.Equal(t, 1198.0, s.Total("b"))
}

func TestConcurrentAddsMergeCorrectly(t *testing.T) {
	s := NewStore()
	defer s.Close()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddItem(sid, Item{ProductID: "xx99", Price: 2000, Quantity: 1})
		}()
	}
	wg.Wait()

	c := s.Get(sid)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 50, c.Items[0].Quantity)
}

func TestExpireSessionsDropsIdleCarts(t *testing.T) {
	s := NewStore()
	defer s.Close()

	s.AddItem(sid, Item{ProductID: "zx7", Price: 3500, Quantity: 1})

	s.mu.Lock()
	s.carts[sid].lastActive = s.carts[sid].lastActive.Add(-2 * SessionTTL)
	s.mu.Unlock()

	s.expireSessions()
	assert.True(t, s.Get(sid).Empty())
}

func TestExpireSessionsNotifiesHook(t *testing.T) {
	s := NewStore()
	defer s.Close()

	var expired []string
	s.OnExpire(func(sessionID string) { expired = append(expired, sessionID) })

	s.AddItem("stale", Item{ProductID: "zx7", Price: 3500, Quantity: 1})
	s.AddItem("fresh", Item{ProductID: "yx1", Price: 599, Quantity: 1})

	s.mu.Lock()
	s.carts["stale"].lastActive = s.carts["stale"].lastActive.Add(-2 * SessionTTL)
	s.mu.Unlock()

	s.expireSessions()
	assert.Equal(t, []string{"stale"}, expired)
}
