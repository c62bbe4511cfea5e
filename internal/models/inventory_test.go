package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInventory_FlatArray(t *testing.T) {
	raw := json.RawMessage(`[
		{"material": {"id": 1, "name": "Wood", "category": "resources"}, "quantity": 4},
		{"material": {"id": 2, "name": "Berries", "category": "food", "is_food": true}, "quantity": 2}
	]`)

	items, err := DecodeInventory(raw)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].Material.ID)
	// Category tag falls back to the material category for flat payloads.
	assert.Equal(t, "resources", items[0].Category)
	assert.Equal(t, "food", items[1].Category)
}

func TestDecodeInventory_CategoryMap(t *testing.T) {
	raw := json.RawMessage(`{
		"stone": [{"material": {"id": 1, "name": "Flint"}, "quantity": 3}],
		"wood": [{"material": {"id": 1, "name": "Flint"}, "quantity": 2}]
	}`)

	items, err := DecodeInventory(raw)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Duplicate material ids across buckets stay separate entries.
	assert.Equal(t, "stone", items[0].Category)
	assert.Equal(t, int64(3), items[0].Quantity)
	assert.Equal(t, "wood", items[1].Category)
	assert.Equal(t, int64(2), items[1].Quantity)

	// Affordability math merges them.
	assert.Equal(t, int64(5), QuantityByMaterial(items, 1))
}

func TestDecodeInventory_Empty(t *testing.T) {
	items, err := DecodeInventory(nil)
	require.NoError(t, err)
	assert.Nil(t, items)
}

func TestDecodeInventory_Corrupt(t *testing.T) {
	_, err := DecodeInventory(json.RawMessage(`"not an inventory"`))
	assert.Error(t, err)
}

func TestQuantityByMaterial_Unknown(t *testing.T) {
	items := []InventoryItem{{Material: Material{ID: 9}, Quantity: 1}}
	assert.Equal(t, int64(0), QuantityByMaterial(items, 404))
}

func TestPlayerPatch_Apply(t *testing.T) {
	energy := 42.0
	level := 5
	patch := PlayerPatch{Energy: &energy, Level: &level}

	player := Player{ID: 1, Energy: 100, Health: 80, Level: 4}
	updated := patch.Apply(player)

	assert.Equal(t, 42.0, updated.Energy)
	assert.Equal(t, 5, updated.Level)
	// Untouched fields survive the merge.
	assert.Equal(t, 80.0, updated.Health)
	// The original is not mutated.
	assert.Equal(t, 100.0, player.Energy)
}

func TestValidatePlayer(t *testing.T) {
	t.Run("nil player", func(t *testing.T) {
		assert.Error(t, ValidatePlayer(nil))
	})

	t.Run("missing id", func(t *testing.T) {
		assert.Error(t, ValidatePlayer(&Player{}))
	})

	t.Run("negative max vital", func(t *testing.T) {
		assert.Error(t, ValidatePlayer(&Player{ID: 1, MaxEnergy: -1}))
	})

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidatePlayer(&Player{ID: 1, MaxEnergy: 100}))
	})
}
