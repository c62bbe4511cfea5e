package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/ashfall-game/survival-client/internal/kvstore"
	"github.com/ashfall-game/survival-client/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *Store {
	return New(Deps{KV: kvstore.NewMemory()})
}

func TestStore_PlayerSlice(t *testing.T) {
	s := newTestStore()

	t.Run("starts empty", func(t *testing.T) {
		assert.Nil(t, s.Player())
		assert.False(t, s.Authenticated())
	})

	t.Run("set and patch", func(t *testing.T) {
		s.SetPlayer(&models.Player{ID: 1, Username: "rustwalker", Energy: 50, MaxEnergy: 100})
		s.SetAuthenticated(true)

		energy := 75.0
		s.UpdatePlayer(models.PlayerPatch{Energy: &energy})

		player := s.Player()
		require.NotNil(t, player)
		assert.Equal(t, 75.0, player.Energy)
		assert.Equal(t, "rustwalker", player.Username)
	})

	t.Run("patch without player is a no-op", func(t *testing.T) {
		s2 := newTestStore()
		energy := 10.0
		s2.UpdatePlayer(models.PlayerPatch{Energy: &energy})
		assert.Nil(t, s2.Player())
	})

	t.Run("reset clears player, auth and cell together", func(t *testing.T) {
		s.SetCurrentCell(&models.Cell{ID: 4})
		s.ResetPlayer()

		snap := s.Snapshot()
		assert.Nil(t, snap.Player)
		assert.False(t, snap.Authenticated)
		assert.Nil(t, snap.CurrentCell)
	})
}

func TestStore_AddItemMergesByMaterialID(t *testing.T) {
	s := newTestStore()

	wood := models.Material{ID: 1, Name: "Wood", Category: "resources"}
	s.AddItem(models.InventoryItem{Material: wood, Quantity: 2, Category: "resources"})
	s.AddItem(models.InventoryItem{Material: wood, Quantity: 3, Category: "resources"})
	s.AddItem(models.InventoryItem{Material: models.Material{ID: 2, Name: "Stone"}, Quantity: 1})

	items := s.Inventory()
	require.Len(t, items, 2)
	assert.Equal(t, int64(5), items[0].Quantity)
}

func TestStore_UpdateAndRemoveItem(t *testing.T) {
	s := newTestStore()
	s.SetInventory([]models.InventoryItem{
		{Material: models.Material{ID: 1}, Quantity: 5},
		{Material: models.Material{ID: 2}, Quantity: 1},
	})

	quantity := int64(9)
	s.UpdateItem(1, models.InventoryItemPatch{Quantity: &quantity})
	assert.Equal(t, int64(9), s.Inventory()[0].Quantity)

	s.RemoveItem(2)
	assert.Len(t, s.Inventory(), 1)

	// Unknown ids are no-ops.
	s.UpdateItem(404, models.InventoryItemPatch{Quantity: &quantity})
	s.RemoveItem(404)
	assert.Len(t, s.Inventory(), 1)
}

func TestStore_InventoryStats(t *testing.T) {
	s := newTestStore()
	s.SetInventory([]models.InventoryItem{
		{Material: models.Material{ID: 1, Rarity: "common", IsFood: true}, Quantity: 3},
		{Material: models.Material{ID: 2, Rarity: "rare"}, Quantity: 2},
		{Material: models.Material{ID: 3, Rarity: "common"}, Quantity: 1},
	})

	stats := s.InventoryStats()
	assert.Equal(t, int64(6), stats.TotalItems)
	assert.Equal(t, int64(3), stats.FoodItems)
	assert.Equal(t, int64(4), stats.CountByRare["common"])
	assert.Equal(t, int64(2), stats.CountByRare["rare"])
}

func TestStore_CraftingHistoryRing(t *testing.T) {
	s := newTestStore()

	for i := 0; i < 60; i++ {
		s.AddCraftingHistory(models.CraftingHistoryEntry{
			RecipeID:   int64(i),
			RecipeName: fmt.Sprintf("recipe-%d", i),
			Quantity:   1,
		})
	}

	history := s.CraftingHistory()
	require.Len(t, history, models.CraftingHistoryLimit)
	// Newest first.
	assert.Equal(t, int64(59), history[0].RecipeID)
	assert.Equal(t, int64(10), history[len(history)-1].RecipeID)
	assert.False(t, history[0].CreatedAt.IsZero())
}

func TestStore_CraftingStatsTopFive(t *testing.T) {
	s := newTestStore()

	for name, quantity := range map[string]int64{"axe": 7, "rope": 5, "torch": 5} {
		s.AddCraftingHistory(models.CraftingHistoryEntry{RecipeName: name, Quantity: quantity})
	}
	for i := 0; i < 4; i++ {
		s.AddCraftingHistory(models.CraftingHistoryEntry{RecipeName: fmt.Sprintf("filler-%d", i), Quantity: 1})
	}

	stats := s.CraftingStats()
	assert.Equal(t, int64(21), stats.TotalCrafts)
	require.Len(t, stats.TopRecipes, 5)
	assert.Equal(t, "axe", stats.TopRecipes[0].Name)
	assert.Equal(t, int64(7), stats.TopRecipes[0].Quantity)
}

func TestStore_ExpansionMapRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()

	s := New(Deps{KV: kv})
	s.ToggleInventoryCategory(ctx, "weapons")
	s.ToggleCraftingCategory(ctx, "food")
	s.ToggleCraftingCategory(ctx, "food")

	// A store rebuilt over the same kv sees the persisted flags.
	rebuilt := New(Deps{KV: kv})
	snap := rebuilt.Snapshot()
	assert.True(t, snap.UI.InventoryExpanded["weapons"])
	assert.False(t, snap.UI.CraftingExpanded["food"])
}

func TestStore_CorruptExpansionMapFallsBack(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	require.NoError(t, kv.Set(ctx, kvstore.KeyInventoryExpandedCategories, []byte("{broken")))

	var s *Store
	assert.NotPanics(t, func() {
		s = New(Deps{KV: kv})
	})
	assert.Empty(t, s.Snapshot().UI.InventoryExpanded)
}

func TestStore_ResetAllIsAtomicAndIdempotent(t *testing.T) {
	s := newTestStore()
	s.SetPlayer(&models.Player{ID: 1})
	s.SetAuthenticated(true)
	s.SetInventory([]models.InventoryItem{{Material: models.Material{ID: 1}, Quantity: 1}})
	s.SetRecipes([]models.Recipe{{ID: 1}})
	s.AddCraftingHistory(models.CraftingHistoryEntry{RecipeName: "axe", Quantity: 1})
	s.SetSkills([]models.Skill{{ID: 1}})
	s.SetActiveTab(3)
	s.SetDialogOpen("crafting", true)

	// Every subscriber snapshot must be all-reset or not reset at all.
	var sawPartial bool
	s.Subscribe(func(snap Snapshot) {
		playerGone := snap.Player == nil
		inventoryGone := len(snap.Inventory) == 0
		if playerGone != inventoryGone {
			sawPartial = true
		}
	})

	s.ResetAll()
	first := s.Snapshot()
	s.ResetAll()
	second := s.Snapshot()

	assert.False(t, sawPartial)
	assert.Nil(t, first.Player)
	assert.False(t, first.Authenticated)
	assert.Empty(t, first.Inventory)
	assert.Empty(t, first.Recipes)
	assert.Empty(t, first.CraftingHistory)
	assert.Empty(t, first.Skills)
	assert.Equal(t, 0, first.UI.ActiveTab)
	assert.Empty(t, first.UI.Dialogs)

	// Same final state both times, only the version counters move.
	second.Versions = first.Versions
	assert.Equal(t, first, second)
}

func TestStore_SubscriberGetsSnapshotPerMutation(t *testing.T) {
	s := newTestStore()

	var got []Snapshot
	s.Subscribe(func(snap Snapshot) { got = append(got, snap) })

	s.SetPlayer(&models.Player{ID: 1})
	s.SetInventory([]models.InventoryItem{{Material: models.Material{ID: 2}, Quantity: 1}})

	require.Len(t, got, 2)
	// The second snapshot sees both mutations: one lock, one state.
	require.NotNil(t, got[1].Player)
	assert.Len(t, got[1].Inventory, 1)
}

func TestStore_SnapshotIsIsolated(t *testing.T) {
	s := newTestStore()
	s.SetInventory([]models.InventoryItem{{Material: models.Material{ID: 1}, Quantity: 1}})

	snap := s.Snapshot()
	snap.Inventory[0].Quantity = 999

	assert.Equal(t, int64(1), s.Inventory()[0].Quantity)
}
