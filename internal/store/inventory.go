package store

import "github.com/ashfall-game/survival-client/internal/models"

// InventoryStats are aggregate counts over the current inventory, recomputed
// from scratch on every call. Caching belongs to the derived-stats layer.
type InventoryStats struct {
	TotalItems  int64
	FoodItems   int64
	CountByRare map[string]int64
}

// SetInventory replaces the inventory wholesale.
func (s *Store) SetInventory(items []models.InventoryItem) {
	s.mutate(func() {
		s.inventory = append([]models.InventoryItem(nil), items...)
		s.versions.Inventory++
	})
}

// AddItem appends the item, or sums quantities in place when an entry with
// the same material id already exists.
func (s *Store) AddItem(item models.InventoryItem) {
	s.mutate(func() {
		for i := range s.inventory {
			if s.inventory[i].Material.ID == item.Material.ID {
				s.inventory[i].Quantity += item.Quantity
				s.versions.Inventory++
				return
			}
		}
		s.inventory = append(s.inventory, item)
		s.versions.Inventory++
	})
}

// UpdateItem applies a partial update to the item with the given material id.
// Unknown ids are a no-op.
func (s *Store) UpdateItem(materialID int64, patch models.InventoryItemPatch) {
	s.mutate(func() {
		for i := range s.inventory {
			if s.inventory[i].Material.ID == materialID {
				if patch.Quantity != nil {
					s.inventory[i].Quantity = *patch.Quantity
				}
				s.versions.Inventory++
				return
			}
		}
	})
}

// RemoveItem deletes the item with the given material id. Unknown ids are a
// no-op.
func (s *Store) RemoveItem(materialID int64) {
	s.mutate(func() {
		for i := range s.inventory {
			if s.inventory[i].Material.ID == materialID {
				s.inventory = append(s.inventory[:i], s.inventory[i+1:]...)
				s.versions.Inventory++
				return
			}
		}
	})
}

// ClearInventory empties the inventory.
func (s *Store) ClearInventory() {
	s.mutate(func() {
		s.inventory = nil
		s.versions.Inventory++
	})
}

// Inventory returns a copy of the current inventory.
func (s *Store) Inventory() []models.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.InventoryItem(nil), s.inventory...)
}

// InventoryStats computes aggregate counts from the current inventory.
func (s *Store) InventoryStats() InventoryStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := InventoryStats{CountByRare: make(map[string]int64)}
	for _, item := range s.inventory {
		stats.TotalItems += item.Quantity
		if item.Material.IsFood {
			stats.FoodItems += item.Quantity
		}
		stats.CountByRare[item.Material.Rarity] += item.Quantity
	}
	return stats
}
