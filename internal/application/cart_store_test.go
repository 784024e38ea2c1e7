// internal/application/cart_store_test.go
package application

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/mahabubulhasibshawon/glamour-storefront/internal/domain"
	"github.com/mahabubulhasibshawon/glamour-storefront/internal/ports"
)

var (
	facial   = domain.Product{ID: "p1", Name: "Gold Facial", Price: 500, Image: "/img/facial.jpg"}
	pedicure = domain.Product{ID: "p2", Name: "Spa Pedicure", Price: 699}
	hairSpa  = domain.Product{ID: "p3", Name: "Hair Spa", Price: 899.5}
)

func TestCartStore_AddItemMergesByProductID(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, newMemStorage(), discardLogger())

	adds := []domain.Product{facial, pedicure, facial, hairSpa, facial, pedicure}
	for _, p := range adds {
		store.AddItem(ctx, p)
	}

	items := store.Items()
	want := []struct {
		id  string
		qty int
	}{{"p1", 3}, {"p2", 2}, {"p3", 1}}
	if len(items) != len(want) {
		t.Fatalf("got %d line items, want %d", len(items), len(want))
	}
	for i, w := range want {
		if items[i].ProductID != w.id || items[i].Quantity != w.qty {
			t.Errorf("item %d = %s x%d, want %s x%d", i, items[i].ProductID, items[i].Quantity, w.id, w.qty)
		}
	}
	if items[0].Title != "Gold Facial" || items[0].UnitPrice != 500 || items[0].ImageRef != "/img/facial.jpg" {
		t.Errorf("line item copied wrong fields: %+v", items[0])
	}
}

func TestCartStore_AddItemWithoutIDIsIgnored(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	store := NewCartStore(ctx, storage, discardLogger())

	store.AddItem(ctx, domain.Product{Name: "Nameless"})

	if !store.IsEmpty() {
		t.Error("expected cart to stay empty")
	}
	if storage.writes != 0 {
		t.Errorf("expected no writes, got %d", storage.writes)
	}
}

func TestCartStore_SetQuantity(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		quantity int
		wantQty  map[string]int
	}{
		{name: "Replace quantity", id: "p1", quantity: 5, wantQty: map[string]int{"p1": 5, "p2": 1}},
		{name: "Zero removes", id: "p1", quantity: 0, wantQty: map[string]int{"p2": 1}},
		{name: "Negative removes", id: "p2", quantity: -3, wantQty: map[string]int{"p1": 1}},
		{name: "Unknown id is a no-op", id: "p9", quantity: 4, wantQty: map[string]int{"p1": 1, "p2": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := NewCartStore(ctx, newMemStorage(), discardLogger())
			store.AddItem(ctx, facial)
			store.AddItem(ctx, pedicure)

			store.SetQuantity(ctx, tt.id, tt.quantity)

			items := store.Items()
			if len(items) != len(tt.wantQty) {
				t.Fatalf("got %d items, want %d", len(items), len(tt.wantQty))
			}
			for _, item := range items {
				if tt.wantQty[item.ProductID] != item.Quantity {
					t.Errorf("%s quantity = %d, want %d", item.ProductID, item.Quantity, tt.wantQty[item.ProductID])
				}
			}
		})
	}
}

func TestCartStore_SetQuantityZeroEqualsRemove(t *testing.T) {
	ctx := context.Background()
	a := NewCartStore(ctx, newMemStorage(), discardLogger())
	b := NewCartStore(ctx, newMemStorage(), discardLogger())
	for _, s := range []*CartStore{a, b} {
		s.AddItem(ctx, facial)
		s.AddItem(ctx, pedicure)
	}

	a.SetQuantity(ctx, "p1", 0)
	b.RemoveItem(ctx, "p1")

	if len(a.Items()) != 1 || len(b.Items()) != 1 || a.Items()[0] != b.Items()[0] {
		t.Errorf("setQuantity(0) = %+v, removeItem = %+v", a.Items(), b.Items())
	}
}

func TestCartStore_RemoveAbsentIsNoOp(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, newMemStorage(), discardLogger())
	store.AddItem(ctx, facial)

	store.RemoveItem(ctx, "missing")

	if store.Count() != 1 {
		t.Errorf("Count() = %d, want 1", store.Count())
	}
}

func TestCartStore_TotalAndCount(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, newMemStorage(), discardLogger())

	if store.Total() != 0 || store.Count() != 0 {
		t.Fatalf("empty cart total/count = %v/%d, want 0/0", store.Total(), store.Count())
	}

	store.AddItem(ctx, facial)
	store.AddItem(ctx, facial)
	store.AddItem(ctx, hairSpa)

	if got := store.Total(); got != 1899.5 {
		t.Errorf("Total() = %v, want 1899.5", got)
	}
	if got := store.Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}

	store.Clear(ctx)
	if !store.IsEmpty() || store.Total() != 0 {
		t.Errorf("cart not empty after Clear: %+v", store.Items())
	}
}

func TestCartStore_PersistsAndReloads(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	store := NewCartStore(ctx, storage, discardLogger())
	store.AddItem(ctx, facial)
	store.AddItem(ctx, pedicure)
	store.SetQuantity(ctx, "p2", 4)
	store.SetOwner(ctx, "user-1")

	reloaded := NewCartStore(ctx, storage, discardLogger())

	got, want := reloaded.Snapshot(), store.Snapshot()
	if got.OwnerID != want.OwnerID || len(got.Items) != len(want.Items) {
		t.Fatalf("reloaded cart = %+v, want %+v", got, want)
	}
	for i := range want.Items {
		if got.Items[i] != want.Items[i] {
			t.Errorf("item %d = %+v, want %+v", i, got.Items[i], want.Items[i])
		}
	}

	raw, _ := storage.raw(CartStorageKey)
	var wire map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		t.Fatalf("stored cart is not JSON: %v", err)
	}
	if _, ok := wire["products"]; !ok {
		t.Errorf("stored cart missing products key: %s", raw)
	}
	if string(wire["userId"]) != `"user-1"` {
		t.Errorf("stored userId = %s", wire["userId"])
	}
}

func TestCartStore_LoadNormalizesStoredCart(t *testing.T) {
	tests := []struct {
		name      string
		stored    string
		wantItems []domain.CartLineItem
	}{
		{
			name:      "Malformed JSON",
			stored:    `{"products": [`,
			wantItems: nil,
		},
		{
			name:      "Wrong shape",
			stored:    `"just a string"`,
			wantItems: nil,
		},
		{
			name:   "Drops invalid and merges duplicates",
			stored: `{"products":[{"productId":"p1","title":"A","price":10,"quantity":1},{"productId":"","price":5,"quantity":1},{"productId":"p2","price":5,"quantity":0},{"productId":"p1","title":"A","price":10,"quantity":2}]}`,
			wantItems: []domain.CartLineItem{
				{ProductID: "p1", Title: "A", UnitPrice: 10, Quantity: 3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := newMemStorage()
			storage.data[CartStorageKey] = []byte(tt.stored)

			store := NewCartStore(context.Background(), storage, discardLogger())

			items := store.Items()
			if len(items) != len(tt.wantItems) {
				t.Fatalf("got %d items, want %d: %+v", len(items), len(tt.wantItems), items)
			}
			for i := range items {
				if items[i] != tt.wantItems[i] {
					t.Errorf("item %d = %+v, want %+v", i, items[i], tt.wantItems[i])
				}
			}
		})
	}
}

func TestCartStore_StorageFailuresKeepMemoryState(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	storage.failReads = true
	store := NewCartStore(ctx, storage, discardLogger())

	storage.failWrites = true
	store.AddItem(ctx, facial)

	if store.Count() != 1 {
		t.Errorf("Count() = %d, want 1 after failed write", store.Count())
	}
}

func TestCartStore_WritesThroughOnEveryMutation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockStorage := ports.NewMockStoragePort(ctrl)
	mockStorage.EXPECT().Get(gomock.Any(), CartStorageKey).Return(nil, false, nil)
	mockStorage.EXPECT().Set(gomock.Any(), CartStorageKey, gomock.Any()).Return(nil).Times(5)

	store := NewCartStore(ctx, mockStorage, discardLogger())
	store.AddItem(ctx, facial)
	store.AddItem(ctx, facial)
	store.SetQuantity(ctx, "p1", 7)
	store.RemoveItem(ctx, "p1")
	store.Clear(ctx)
}

func TestCartStore_Subscribe(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, newMemStorage(), discardLogger())

	var counts []int
	unsubscribe := store.Subscribe(func(cart domain.Cart) {
		n := 0
		for _, item := range cart.Items {
			n += item.Quantity
		}
		counts = append(counts, n)
	})

	store.AddItem(ctx, facial)
	store.AddItem(ctx, facial)
	unsubscribe()
	store.AddItem(ctx, facial)

	if len(counts) != 2 || counts[0] != 1 || counts[1] != 2 {
		t.Errorf("observed counts = %v, want [1 2]", counts)
	}
}
