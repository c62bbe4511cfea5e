package stats

import (
	"sync"

	"github.com/ashfall-game/survival-client/internal/store"
)

// View memoizes derived aggregates against the store's per-slice version
// counters. A selector recomputes only when its slice's counter has moved, so
// a rewrite that leaves content untouched but allocates new objects does not
// bust the cache.
type View struct {
	store *store.Store

	mu sync.Mutex

	vitalsVersion uint64
	vitalsValid   bool
	vitals        *PlayerVitals
	progress      *Progress

	inventoryVersion uint64
	inventoryValid   bool
	itemGroups       []ItemGroup

	recipesVersion uint64
	recipesValid   bool
	recipeGroups   []RecipeGroup
}

// NewView creates a derived-stats view over the given store.
func NewView(s *store.Store) *View {
	return &View{store: s}
}

// Vitals returns the memoized vital bars, or nil when no player is present.
func (v *View) Vitals() *PlayerVitals {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.refreshPlayerLocked()
	return v.vitals
}

// Progress returns the memoized experience bar, or nil when no player is
// present.
func (v *View) Progress() *Progress {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.refreshPlayerLocked()
	return v.progress
}

func (v *View) refreshPlayerLocked() {
	version := v.store.Versions().Player
	if v.vitalsValid && version == v.vitalsVersion {
		return
	}
	player := v.store.Player()
	v.vitals = ComputeVitals(player)
	v.progress = ComputeProgress(player)
	v.vitalsVersion = version
	v.vitalsValid = true
}

// GroupedInventory returns the memoized category grouping of the inventory.
func (v *View) GroupedInventory() []ItemGroup {
	v.mu.Lock()
	defer v.mu.Unlock()

	version := v.store.Versions().Inventory
	if !v.inventoryValid || version != v.inventoryVersion {
		v.itemGroups = GroupItems(v.store.Inventory())
		v.inventoryVersion = version
		v.inventoryValid = true
	}
	return v.itemGroups
}

// GroupedRecipes returns the memoized category grouping of the recipes.
func (v *View) GroupedRecipes() []RecipeGroup {
	v.mu.Lock()
	defer v.mu.Unlock()

	version := v.store.Versions().Recipes
	if !v.recipesValid || version != v.recipesVersion {
		v.recipeGroups = GroupRecipes(v.store.Recipes())
		v.recipesVersion = version
		v.recipesValid = true
	}
	return v.recipeGroups
}
