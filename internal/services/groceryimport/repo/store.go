package repo

import (
	"context"
	"slices"

	"grocer/internal/core/normalize"
	perr "grocer/internal/platform/errors"
	"grocer/internal/platform/jsonfile"
	"grocer/internal/services/groceryimport/domain"

	"github.com/google/uuid"
)

// itemNamespace seeds UUIDv5 item ids so an id is a pure function of the canonical identity key
var itemNamespace = uuid.MustParse("4a6f7e21-93c4-5b0e-8d2f-1e6c0b9a7d35")

// ItemID returns the stable id for a canonical name
func ItemID(canonicalName string) string {
	return uuid.NewSHA1(itemNamespace, []byte(identityKey(canonicalName))).String()
}

// identityKey is the canonical identity key, or the name's own bytes when folding
// leaves nothing (a title made only of format characters, say)
func identityKey(name string) string {
	if k := normalize.Key(name); k != "" {
		return k
	}
	return name
}

// Store is the in-memory item set backed by items.json
type Store struct {
	path  string
	items []domain.Item
	byKey map[string]int // canonical identity key -> index
	byID  map[string]int
}

// OpenStore loads items from path; a missing file is an empty store
func OpenStore(path string) (*Store, error) {
	var items []domain.Item
	if _, err := jsonfile.Load(path, &items); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeStorageIO, "load purchase store")
	}
	s := &Store{path: path, byKey: map[string]int{}, byID: map[string]int{}}
	for _, it := range items {
		if it.ID == "" {
			it.ID = ItemID(it.CanonicalName)
		}
		if it.Purchases == nil {
			it.Purchases = []domain.Purchase{}
		}
		s.index(it)
	}
	return s, nil
}

func (s *Store) index(it domain.Item) int {
	i := len(s.items)
	s.items = append(s.items, it)
	if k := identityKey(it.CanonicalName); k != "" {
		if _, dup := s.byKey[k]; !dup {
			s.byKey[k] = i
		}
	}
	s.byID[it.ID] = i
	return i
}

// Len returns the number of items
func (s *Store) Len() int { return len(s.items) }

// UpsertItem finds the item with the same canonical identity or creates it.
// A new item keeps the canonical name exactly as given. Non-empty incoming attributes fill or replace stored ones; empty ones never clear them
func (s *Store) UpsertItem(identity domain.NormalizedTitle, asin string) (string, bool) {
	if i, ok := s.byKey[identityKey(identity.CanonicalName)]; ok {
		it := &s.items[i]
		merge(&it.Category, identity.Category)
		merge(&it.Brand, identity.Brand)
		merge(&it.UnitSize, identity.UnitSize)
		merge(&it.ASIN, asin)
		return it.ID, false
	}
	i := s.index(domain.Item{
		ID:            ItemID(identity.CanonicalName),
		CanonicalName: identity.CanonicalName,
		Category:      identity.Category,
		Brand:         identity.Brand,
		UnitSize:      identity.UnitSize,
		ASIN:          asin,
		Purchases:     []domain.Purchase{},
	})
	return s.items[i].ID, true
}

func merge(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// AppendPurchase adds p to the item's history in arrival order
func (s *Store) AppendPurchase(id string, p domain.Purchase) error {
	i, ok := s.byID[id]
	if !ok {
		return perr.NotFoundf("item %s not found", id)
	}
	s.items[i].Purchases = append(s.items[i].Purchases, p)
	return nil
}

// Find returns a copy of the item with id
func (s *Store) Find(id string) (domain.Item, bool) {
	i, ok := s.byID[id]
	if !ok {
		return domain.Item{}, false
	}
	return clone(s.items[i]), true
}

// Items returns a deep copy of all items in storage order
func (s *Store) Items() []domain.Item {
	out := make([]domain.Item, len(s.items))
	for i, it := range s.items {
		out[i] = clone(it)
	}
	return out
}

// Flush persists every item atomically
func (s *Store) Flush(_ context.Context) error {
	if err := jsonfile.Save(s.path, s.items); err != nil {
		return perr.Wrap(err, perr.ErrorCodeStorageIO, "persist purchase store")
	}
	return nil
}

func clone(it domain.Item) domain.Item {
	it.Purchases = slices.Clone(it.Purchases)
	return it
}
