// internal/application/cart_store.go
package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/mahabubulhasibshawon/glamour-storefront/internal/domain"
	"github.com/mahabubulhasibshawon/glamour-storefront/internal/ports"
)

const CartStorageKey = "beauty-cart"

// CartStore owns the working cart. Every mutation is written through to
// storage before the call returns.
type CartStore struct {
	mu      sync.Mutex
	cart    domain.Cart
	storage ports.StoragePort
	logger  *slog.Logger
	subs    subscribers[domain.Cart]
}

func NewCartStore(ctx context.Context, storage ports.StoragePort, logger *slog.Logger) *CartStore {
	s := &CartStore{storage: storage, logger: logger}
	s.cart = s.load(ctx)
	return s
}

// load never fails: anything unreadable becomes an empty cart.
func (s *CartStore) load(ctx context.Context) domain.Cart {
	empty := domain.Cart{Items: []domain.CartLineItem{}}
	raw, found, err := s.storage.Get(ctx, CartStorageKey)
	if err != nil {
		s.logger.Warn("failed to read stored cart", slog.String("error", err.Error()))
		return empty
	}
	if !found {
		return empty
	}
	var cart domain.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		s.logger.Warn("discarding malformed stored cart", slog.String("error", err.Error()))
		return empty
	}
	return normalizeCart(cart)
}

// normalizeCart drops unusable entries and merges duplicate product ids,
// keeping first-seen order.
func normalizeCart(cart domain.Cart) domain.Cart {
	out := domain.Cart{Items: make([]domain.CartLineItem, 0, len(cart.Items)), OwnerID: cart.OwnerID}
	index := make(map[string]int, len(cart.Items))
	for _, item := range cart.Items {
		if item.ProductID == "" || item.Quantity < 1 || item.UnitPrice < 0 {
			continue
		}
		if i, ok := index[item.ProductID]; ok {
			out.Items[i].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(out.Items)
		out.Items = append(out.Items, item)
	}
	return out
}

func (s *CartStore) AddItem(ctx context.Context, product domain.Product) {
	if product.ID == "" {
		s.logger.Warn("ignoring product without id")
		return
	}
	s.mutate(ctx, func(cart *domain.Cart) {
		for i := range cart.Items {
			if cart.Items[i].ProductID == product.ID {
				cart.Items[i].Quantity++
				return
			}
		}
		cart.Items = append(cart.Items, domain.CartLineItem{
			ProductID: product.ID,
			Title:     product.Name,
			UnitPrice: product.Price,
			Quantity:  1,
			ImageRef:  product.Image,
		})
	})
}

func (s *CartStore) RemoveItem(ctx context.Context, productID string) {
	s.mutate(ctx, func(cart *domain.Cart) {
		kept := cart.Items[:0]
		for _, item := range cart.Items {
			if item.ProductID != productID {
				kept = append(kept, item)
			}
		}
		cart.Items = kept
	})
}

func (s *CartStore) SetQuantity(ctx context.Context, productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(ctx, productID)
		return
	}
	s.mutate(ctx, func(cart *domain.Cart) {
		for i := range cart.Items {
			if cart.Items[i].ProductID == productID {
				cart.Items[i].Quantity = quantity
				return
			}
		}
	})
}

func (s *CartStore) Clear(ctx context.Context) {
	s.mutate(ctx, func(cart *domain.Cart) {
		cart.Items = []domain.CartLineItem{}
	})
}

func (s *CartStore) SetOwner(ctx context.Context, userID string) {
	s.mutate(ctx, func(cart *domain.Cart) {
		cart.OwnerID = userID
	})
}

func (s *CartStore) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return subtotalOf(s.cart.Items).InexactFloat64()
}

func (s *CartStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, item := range s.cart.Items {
		count += item.Quantity
	}
	return count
}

func (s *CartStore) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cart.Items) == 0
}

// Snapshot returns a copy the caller may keep.
func (s *CartStore) Snapshot() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCart(s.cart)
}

func (s *CartStore) Items() []domain.CartLineItem {
	return s.Snapshot().Items
}

// Subscribe registers fn to receive a snapshot after every mutation.
func (s *CartStore) Subscribe(fn func(domain.Cart)) (unsubscribe func()) {
	return s.subs.add(fn)
}

func (s *CartStore) mutate(ctx context.Context, apply func(cart *domain.Cart)) {
	s.mu.Lock()
	apply(&s.cart)
	snapshot := copyCart(s.cart)
	s.persist(ctx, snapshot)
	s.mu.Unlock()

	s.subs.notify(snapshot)
}

func (s *CartStore) persist(ctx context.Context, cart domain.Cart) {
	data, err := json.Marshal(cart)
	if err != nil {
		s.logger.Error("failed to encode cart", slog.String("error", err.Error()))
		return
	}
	if err := s.storage.Set(ctx, CartStorageKey, data); err != nil {
		s.logger.Error("failed to persist cart",
			slog.String("error", err.Error()),
			slog.Int("items", len(cart.Items)),
		)
	}
}

func copyCart(cart domain.Cart) domain.Cart {
	items := make([]domain.CartLineItem, len(cart.Items))
	copy(items, cart.Items)
	return domain.Cart{Items: items, OwnerID: cart.OwnerID}
}
