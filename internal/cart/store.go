package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MikeMC777/butchery-shop/internal/cache"
)

// Store keeps one cart per visitor id. A missing cart loads as empty.
type Store struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewStore(c cache.Cache, ttl time.Duration) *Store {
	return &Store{cache: c, ttl: ttl}
}

func key(id string) string { return "cart:" + id }

func (s *Store) Load(ctx context.Context, id string) (*Cart, error) {
	raw, err := s.cache.Get(ctx, key(id))
	if errors.Is(err, cache.ErrMiss) {
		return &Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	var c Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return &c, nil
}

// Save refreshes the TTL on every write. An empty cart is deleted instead.
func (s *Store) Save(ctx context.Context, id string, c *Cart) error {
	if c.IsEmpty() {
		return s.Delete(ctx, id)
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.cache.Set(ctx, key(id), raw, s.ttl); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.cache.Delete(ctx, key(id)); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
