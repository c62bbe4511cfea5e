package models

import (
	"encoding/json"
	"sort"
)

// Material describes an item definition shared by inventory, recipes and
// equipment.
type Material struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Rarity       string  `json:"rarity"`
	IsFood       bool    `json:"is_food"`
	AttackBonus  float64 `json:"attack_bonus"`
	DefenseBonus float64 `json:"defense_bonus"`
	SpeedBonus   float64 `json:"speed_bonus"`
	Weight       float64 `json:"weight"`
}

// InventoryItem is one inventory entry: a material, how many of it the player
// holds, and the category bucket the server delivered it under.
type InventoryItem struct {
	Material Material `json:"material"`
	Quantity int64    `json:"quantity"`
	Category string   `json:"category"`
}

// InventoryItemPatch carries a partial item update.
type InventoryItemPatch struct {
	Quantity *int64 `json:"quantity,omitempty"`
}

// DecodeInventory adapts both server inventory shapes into the canonical flat
// ordered slice. The server sends either a plain array of items or a map from
// category key to array; this is the only place that branches on shape.
//
// Duplicate material ids across category buckets are kept as separate entries.
// Callers that need a single quantity per material sum with QuantityByMaterial.
func DecodeInventory(raw json.RawMessage) ([]InventoryItem, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var flat []InventoryItem
	if err := json.Unmarshal(raw, &flat); err == nil {
		for i := range flat {
			if flat[i].Category == "" {
				flat[i].Category = flat[i].Material.Category
			}
		}
		return flat, nil
	}

	var bucketed map[string][]InventoryItem
	if err := json.Unmarshal(raw, &bucketed); err != nil {
		return nil, err
	}

	// Map iteration order is random; sort bucket keys so the flattened order
	// is stable between refreshes.
	keys := sortedKeys(bucketed)
	var items []InventoryItem
	for _, key := range keys {
		for _, item := range bucketed[key] {
			item.Category = key
			items = append(items, item)
		}
	}
	return items, nil
}

// QuantityByMaterial sums quantities across all entries with the given
// material id, merging duplicates that live in different category buckets.
func QuantityByMaterial(items []InventoryItem, materialID int64) int64 {
	var total int64
	for _, item := range items {
		if item.Material.ID == materialID {
			total += item.Quantity
		}
	}
	return total
}

func sortedKeys(m map[string][]InventoryItem) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
