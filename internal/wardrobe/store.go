// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

package wardrobe

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/garderobe-app/garderobe/internal/models"
)

// Key prefixes for BadgerDB storage.
const (
	itemKeyPrefix   = "item:"
	hamperKeyPrefix = "hamper:"
)

// ErrItemNotFound indicates a lookup for an absent item.
var ErrItemNotFound = errors.New("wardrobe item not found")

// Store persists wardrobe item snapshots and laundry hamper records in
// BadgerDB. Items are keyed "item:{owner}:{id}" so per-owner listings are
// a single prefix scan; hamper membership is keyed "hamper:{owner}:{id}".
type Store struct {
	db *badger.DB
}

// NewStore creates a store on an open Badger handle. The caller owns the
// handle's lifecycle.
func NewStore(db *badger.DB) *Store {
	return &Store{db: db}
}

// Open opens a Badger database at path and wraps it in a Store. An empty
// path opens an in-memory database, used by tests.
func Open(path string) (*Store, func() error, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("open wardrobe store: %w", err)
	}
	return NewStore(db), db.Close, nil
}

// PutItem stores or replaces an item snapshot.
func (s *Store) PutItem(ctx context.Context, item *models.WardrobeItem) error {
	if item.ID == "" || item.OwnerID == "" {
		return errors.New("item id and owner id are required")
	}

	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(itemKey(item.OwnerID, item.ID), data)
	})
}

// GetItem retrieves one item snapshot.
func (s *Store) GetItem(ctx context.Context, ownerID, itemID string) (*models.WardrobeItem, error) {
	var item models.WardrobeItem

	err := s.db.View(func(txn *badger.Txn) error {
		entry, err := txn.Get(itemKey(ownerID, itemID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrItemNotFound
		}
		if err != nil {
			return fmt.Errorf("get item: %w", err)
		}
		return entry.Value(func(val []byte) error {
			return json.Unmarshal(val, &item)
		})
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes an item snapshot and its hamper record, if any.
func (s *Store) DeleteItem(ctx context.Context, ownerID, itemID string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(itemKey(ownerID, itemID)); err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		if err := txn.Delete(hamperKey(ownerID, itemID)); err != nil {
			return fmt.Errorf("delete hamper record: %w", err)
		}
		return nil
	})
}

// ItemsByOwner returns all item snapshots for an owner, ordered by item
// ID so repeated calls over an unchanged wardrobe are deterministic.
// Implements the recommendation engine's ItemProvider.
func (s *Store) ItemsByOwner(ctx context.Context, ownerID string) ([]models.WardrobeItem, error) {
	var items []models.WardrobeItem

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		prefix := []byte(itemKeyPrefix + ownerID + ":")
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var item models.WardrobeItem
				if err := json.Unmarshal(val, &item); err != nil {
					return fmt.Errorf("unmarshal item: %w", err)
				}
				items = append(items, item)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// SetCleanliness updates the laundry state of an item in place.
func (s *Store) SetCleanliness(ctx context.Context, ownerID, itemID string, state models.Cleanliness) error {
	item, err := s.GetItem(ctx, ownerID, itemID)
	if err != nil {
		return err
	}
	item.Cleanliness = state
	return s.PutItem(ctx, item)
}

// AddToHamper records that an item is physically in the laundry hamper.
// The hamper record excludes the item from recommendations even before
// its cleanliness flag is updated.
func (s *Store) AddToHamper(ctx context.Context, ownerID, itemID string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(hamperKey(ownerID, itemID), []byte{1})
	})
}

// RemoveFromHamper clears an item's hamper record.
func (s *Store) RemoveFromHamper(ctx context.Context, ownerID, itemID string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(hamperKey(ownerID, itemID))
	})
}

// HamperedItemIDs returns the exclusion set for an owner. Implements the
// recommendation engine's LaundryProvider.
func (s *Store) HamperedItemIDs(ctx context.Context, ownerID string) (map[string]struct{}, error) {
	ids := make(map[string]struct{})

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		prefix := []byte(hamperKeyPrefix + ownerID + ":")
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			ids[key[len(prefix):]] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Ping verifies the underlying database is open and readable. Used by
// the readiness endpoint.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.View(func(_ *badger.Txn) error {
		return ctx.Err()
	})
}

func itemKey(ownerID, itemID string) []byte {
	return []byte(itemKeyPrefix + ownerID + ":" + itemID)
}

func hamperKey(ownerID, itemID string) []byte {
	return []byte(hamperKeyPrefix + ownerID + ":" + itemID)
}
