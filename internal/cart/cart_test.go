package cart

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/butchery-shop/internal/cache"
	"github.com/MikeMC777/butchery-shop/internal/product"
)

var steak = product.Product{ID: 1, Name: "Steak", Price: "10.00", Quantity: 5}

func TestAdd_SameProductIncrements(t *testing.T) {
	for n := 1; n <= 6; n++ {
		var c Cart
		for i := 0; i < n; i++ {
			require.NoError(t, c.Add(steak))
		}
		require.Len(t, c.Lines, 1)
		assert.Equal(t, n, c.Lines[0].Quantity)
	}
}

func TestAdd_OutOfStockRefused(t *testing.T) {
	var c Cart
	err := c.Add(product.Product{ID: 9, Name: "Liver", Price: "3.00", Quantity: 0})
	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.True(t, c.IsEmpty())
}

func TestRemove(t *testing.T) {
	var c Cart
	ribs := product.Product{ID: 2, Name: "Ribs", Price: "15.50", Quantity: 3}
	require.NoError(t, c.Add(steak))
	require.NoError(t, c.Add(steak))
	require.NoError(t, c.Add(ribs))

	// absent id is a no-op
	c.Remove(42)
	assert.Equal(t, 2, c.Len())

	// present id drops the whole line regardless of quantity
	c.Remove(steak.ID)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, ribs.ID, c.Lines[0].Product.ID)
	assert.Equal(t, []int{2}, c.ProductIDs())
}

func TestSteakScenario(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add(steak))
	assert.Equal(t, "$10.00", FormatMoney(c.Total()))

	require.NoError(t, c.Add(steak))
	assert.Equal(t, 2, c.Lines[0].Quantity)
	assert.Equal(t, "$20.00", FormatMoney(c.Total()))

	c.Remove(steak.ID)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, "$0.00", FormatMoney(c.Total()))
}

func TestTotal_SumOfLines(t *testing.T) {
	lines := []Line{
		{Product: product.Product{ID: 1, Price: "10.00"}, Quantity: 3},
		{Product: product.Product{ID: 2, Price: "0.10"}, Quantity: 3},
		{Product: product.Product{ID: 3, Price: "15.5"}, Quantity: 1},
	}
	assert.Equal(t, "45.80", Total(lines).StringFixed(2))

	// no drift from recomputation
	assert.True(t, Total(lines).Equal(Total(lines)))

	// unparseable price counts as zero
	lines = append(lines, Line{Product: product.Product{ID: 4, Price: "n/a"}, Quantity: 2})
	assert.Equal(t, "45.80", Total(lines).StringFixed(2))
}

func TestProductIDs_DistinctInOrder(t *testing.T) {
	var c Cart
	ribs := product.Product{ID: 2, Name: "Ribs", Price: "15.50", Quantity: 3}
	require.NoError(t, c.Add(ribs))
	require.NoError(t, c.Add(steak))
	require.NoError(t, c.Add(ribs))
	assert.Equal(t, []int{2, 1}, c.ProductIDs())
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewStore(cache.NewMemory(), time.Hour)

	c, err := s.Load(ctx, "visitor")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	require.NoError(t, c.Add(steak))
	require.NoError(t, s.Save(ctx, "visitor", c))

	got, err := s.Load(ctx, "visitor")
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, steak, got.Lines[0].Product)

	got.Clear()
	require.NoError(t, s.Save(ctx, "visitor", got))
	again, err := s.Load(ctx, "visitor")
	require.NoError(t, err)
	assert.True(t, again.IsEmpty())
}

func TestStore_CorruptPayload(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemory()
	require.NoError(t, mem.Set(ctx, "cart:v", []byte("{"), 0))

	_, err := NewStore(mem, time.Hour).Load(ctx, "v")
	require.Error(t, err)
}
